package drag

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vitamin-drop/internal/core"
	"github.com/vovakirdan/vitamin-drop/internal/feedback"
	"github.com/vovakirdan/vitamin-drop/internal/timer"
)

// DefaultCompleteDelay is the pause between the last correct drop and the
// round-complete notification.
const DefaultCompleteDelay = 2 * time.Second

// Messages are the banner texts shown after a drop.
type Messages struct {
	Wrong    string
	Complete string
}

// DefaultMessages returns the stock banner texts.
func DefaultMessages() Messages {
	return Messages{
		Wrong:    "Not quite, try another one!",
		Complete: "Well done!",
	}
}

// Stats counts release outcomes since the machine was created.
type Stats struct {
	Commits   int
	Rejects   int
	SnapBacks int
}

// Machine runs the drag interaction over a Scene. It allows at most one
// active session and must be driven from a single event loop.
type Machine struct {
	scene  Scene
	rounds Rounds

	timers  *timer.Queue
	audio   AudioSink
	banner  BannerSink
	logger  *log.Logger
	layout  Layout
	delay   time.Duration
	msgs    Messages
	observe func(from, to State)

	state   State
	session *Session
	locked  map[Handle]struct{}
	pending *timer.Task
	stats   Stats
}

// Option configures a Machine.
type Option func(*Machine)

// WithTimers sets the queue the round-complete notification is scheduled on.
// Without one the notification runs immediately.
func WithTimers(q *timer.Queue) Option {
	return func(m *Machine) {
		m.timers = q
	}
}

// WithAudio sets the sink for success and failure cues.
func WithAudio(a AudioSink) Option {
	return func(m *Machine) {
		m.audio = a
	}
}

// WithBanner sets the sink for feedback messages.
func WithBanner(b BannerSink) Option {
	return func(m *Machine) {
		m.banner = b
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithLayout sets how resting source tokens are arranged.
func WithLayout(l Layout) Option {
	return func(m *Machine) {
		m.layout = l
	}
}

// WithCompleteDelay sets the pause before the round-complete notification.
func WithCompleteDelay(d time.Duration) Option {
	return func(m *Machine) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// WithMessages overrides the banner texts. Empty fields keep the default.
func WithMessages(msgs Messages) Option {
	return func(m *Machine) {
		if msgs.Wrong != "" {
			m.msgs.Wrong = msgs.Wrong
		}
		if msgs.Complete != "" {
			m.msgs.Complete = msgs.Complete
		}
	}
}

// WithTransitionObserver registers fn to be called on every state change.
func WithTransitionObserver(fn func(from, to State)) Option {
	return func(m *Machine) {
		m.observe = fn
	}
}

// NewMachine creates a machine over scene, answering correctness questions
// with rounds.
func NewMachine(scene Scene, rounds Rounds, opts ...Option) *Machine {
	m := &Machine{
		scene:  scene,
		rounds: rounds,
		logger: log.New(io.Discard),
		layout: DefaultLayout(),
		delay:  DefaultCompleteDelay,
		msgs:   DefaultMessages(),
		locked: make(map[Handle]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current interaction state.
func (m *Machine) State() State {
	return m.state
}

// Session returns the active drag session, if any.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Locked reports whether h has been committed and no longer reacts to input.
func (m *Machine) Locked(h Handle) bool {
	_, ok := m.locked[h]
	return ok
}

// Stats returns the release counters.
func (m *Machine) Stats() Stats {
	return m.stats
}

// SetLayout replaces the resting layout and reflows the source container.
// The dragged token is in the overlay, so an active session is unaffected.
func (m *Machine) SetLayout(l Layout) {
	m.layout = l
	Reflow(m.scene, Source, l)
}

// CompletionPending reports whether a round-complete notification is
// scheduled but has not fired yet.
func (m *Machine) CompletionPending() bool {
	return m.pending.Pending()
}

// PickUp starts dragging h. The token moves to the overlay at its current
// world position, is raised above everything else and leaves a placeholder
// in its slot.
func (m *Machine) PickUp(h Handle) error {
	if m.session != nil {
		return ErrSessionActive
	}
	if m.Locked(h) {
		return ErrTokenLocked
	}
	if m.scene.IsPlaceholder(h) {
		return ErrUnknownToken
	}
	itemID, ok := m.scene.ItemID(h)
	if !ok {
		return ErrUnknownToken
	}
	origin, slot, ok := m.scene.Locate(h)
	if !ok || origin == Overlay {
		return ErrUnknownToken
	}

	s := &Session{
		Token:       h,
		ItemID:      itemID,
		Origin:      origin,
		OriginSlot:  slot,
		OriginLocal: m.scene.LocalPosition(h),
		OriginWorld: m.scene.WorldPosition(h),
		OriginZ:     m.scene.ZOrder(h),
	}

	// Placeholder goes in first so it takes the token's slot index
	s.Placeholder = m.scene.InstantiatePlaceholder(origin, slot)
	m.scene.SetLocalPosition(s.Placeholder, s.OriginLocal)

	m.scene.Reparent(h, Overlay, len(m.scene.Children(Overlay)))
	m.scene.SetLocalPosition(h, s.OriginWorld.Sub(m.scene.Origin(Overlay)))
	m.scene.SetZOrder(h, TopZ)

	m.session = s
	m.transition(Dragging)
	m.logger.Debug("pick up", "item", itemID, "from", origin, "slot", slot)
	return nil
}

// Move translates the dragged token by delta. Movement is not clamped to
// any container.
func (m *Machine) Move(delta core.Point) error {
	if m.session == nil {
		m.logger.Debug("move without an active session")
		return ErrStaleSession
	}
	h := m.session.Token
	m.scene.SetLocalPosition(h, m.scene.LocalPosition(h).Add(delta))
	return nil
}

// Release drops the dragged token where it is. A correct item dropped from
// the source into the target is committed; a wrong one is sent back with
// failure feedback; anything else is sent back silently.
func (m *Machine) Release() (Outcome, error) {
	s := m.session
	if s == nil {
		m.logger.Debug("release without an active session")
		return OutcomeIgnored, ErrStaleSession
	}

	at := m.scene.WorldPosition(s.Token)
	inTarget := m.scene.Bounds(Target).Contains(at)
	inSource := m.scene.Bounds(Source).Contains(at)

	var outcome Outcome
	switch {
	case s.Origin == Source && inTarget && m.rounds.IsCorrect(s.ItemID):
		m.transition(Committing)
		outcome = m.commit(s, at)
		m.stats.Commits++
	case s.Origin == Source && inTarget:
		m.transition(Rejecting)
		m.restore(s)
		m.play(false)
		m.show(m.msgs.Wrong, feedback.Negative)
		outcome = OutcomeRejected
		m.stats.Rejects++
	default:
		m.transition(Rejecting)
		m.restore(s)
		outcome = OutcomeSnapBack
		m.stats.SnapBacks++
	}

	m.scene.SetZOrder(s.Token, s.OriginZ)
	m.session = nil
	Reflow(m.scene, Source, m.layout)
	m.transition(Idle)

	m.logger.Debug("release",
		"item", s.ItemID,
		"outcome", outcome,
		"in_target", inTarget,
		"in_source", inSource,
	)
	return outcome, nil
}

// Cancel ends the gesture the same way a release at the current position
// does.
func (m *Machine) Cancel() (Outcome, error) {
	return m.Release()
}

// Reset drops any active session and forgets committed tokens. It is used
// when the board is rebuilt for a new round.
func (m *Machine) Reset() {
	if s := m.session; s != nil {
		m.destroyPlaceholder(s)
		m.session = nil
		m.transition(Idle)
	}
	m.locked = make(map[Handle]struct{})
}

// Shutdown cancels the pending round-complete notification and drops any
// active session.
func (m *Machine) Shutdown() {
	m.pending.Cancel()
	m.pending = nil
	m.Reset()
}

func (m *Machine) commit(s *Session, at core.Point) Outcome {
	m.destroyPlaceholder(s)
	m.scene.Reparent(s.Token, Target, len(m.scene.Children(Target)))
	m.scene.SetLocalPosition(s.Token, at.Sub(m.scene.Origin(Target)))
	m.locked[s.Token] = struct{}{}

	if !m.rounds.ReportCorrectPlacement() {
		return OutcomeCommitted
	}

	m.play(true)
	m.show(m.msgs.Complete, feedback.Positive)
	m.scheduleRoundComplete()
	return OutcomeCompleted
}

func (m *Machine) restore(s *Session) {
	m.destroyPlaceholder(s)
	m.scene.Reparent(s.Token, s.Origin, s.OriginSlot)
	m.scene.SetLocalPosition(s.Token, s.OriginLocal)
}

func (m *Machine) destroyPlaceholder(s *Session) {
	if s.Placeholder == "" {
		return
	}
	m.scene.Destroy(s.Placeholder)
	s.Placeholder = ""
}

func (m *Machine) scheduleRoundComplete() {
	fire := func() {
		m.pending = nil
		for _, h := range m.scene.Children(Target) {
			delete(m.locked, h)
		}
		m.scene.Clear(Target)
		m.rounds.NotifyRoundComplete()
	}

	if m.timers == nil {
		m.logger.Warn("no timer queue, completing round immediately", "err", ErrMissingCollaborator)
		fire()
		return
	}
	m.pending.Cancel()
	m.pending = m.timers.After(m.delay, fire)
}

func (m *Machine) play(success bool) {
	if m.audio == nil {
		m.logger.Debug("skipping audio cue", "err", ErrMissingCollaborator)
		return
	}
	if success {
		m.audio.PlaySuccess()
	} else {
		m.audio.PlayFailure()
	}
}

func (m *Machine) show(text string, kind feedback.Kind) {
	if m.banner == nil {
		m.logger.Debug("skipping banner", "err", ErrMissingCollaborator, "text", text)
		return
	}
	m.banner.ShowBanner(text, kind)
}

func (m *Machine) transition(to State) {
	from := m.state
	m.state = to
	if m.observe != nil && from != to {
		m.observe(from, to)
	}
}
