// Package app holds the game context: one value that owns the round engine,
// the board, the drag machine and every collaborator they need. The platform
// layer builds one per player and drives it from its event loop.
package app

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vitamin-drop/internal/board"
	"github.com/vovakirdan/vitamin-drop/internal/config"
	"github.com/vovakirdan/vitamin-drop/internal/core"
	"github.com/vovakirdan/vitamin-drop/internal/drag"
	"github.com/vovakirdan/vitamin-drop/internal/feedback"
	"github.com/vovakirdan/vitamin-drop/internal/quiz"
	"github.com/vovakirdan/vitamin-drop/internal/storage"
	"github.com/vovakirdan/vitamin-drop/internal/timer"
)

// Audio plays drop cues and can be muted.
type Audio interface {
	drag.AudioSink
	ToggleMute() bool
	Muted() bool
}

// Store records play history. *storage.Store implements it.
type Store interface {
	StartSession(player string) (string, error)
	SaveRound(r storage.RoundResult) (int64, error)
	FinishSession(id string, rounds, mistakes int) error
}

// Deps are the collaborators a Game is built with. Audio, Store and Logger
// may be nil.
type Deps struct {
	Audio  Audio
	Store  Store
	Logger *log.Logger
	Player string
	Seed   int64 // Zero means time-based
}

// Game is the per-player context.
type Game struct {
	cfg    config.Config
	rounds []quiz.Round
	audio  Audio
	store  Store
	logger *log.Logger
	player string
	seed   int64

	rng     *rand.Rand
	layout  drag.Layout // Configured source layout before fitting
	timers  *timer.Queue
	banner  *feedback.Banner
	board   *board.Board
	engine  *quiz.Engine
	machine *drag.Machine
	unsub   func()

	screen     Screen
	view       quiz.RoundView
	sessionID  string
	roundStart time.Time
	lastPoint  core.Point
	statsBase  drag.Stats

	mistakes      int // Whole session
	roundMistakes int
	roundsDone    int
}

// New builds a game over cfg. The clock of its timer queue starts at now.
func New(cfg config.Config, deps Deps, now time.Time) *Game {
	g := &Game{
		cfg:    cfg,
		rounds: cfg.Catalog(),
		audio:  deps.Audio,
		store:  deps.Store,
		logger: deps.Logger,
		player: deps.Player,
		seed:   deps.Seed,
		timers: timer.NewQueue(now),
		screen: ScreenMain,
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.player == "" {
		g.player = "player"
	}
	if g.seed == 0 {
		g.rng = rand.New(rand.NewSource(now.UnixNano()))
	} else {
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	g.layout = drag.Layout{
		Origin:  core.Pt(2, 1),
		Spacing: core.Pt(0, float64(max(cfg.Board.Spacing, 1))),
	}

	g.banner = feedback.NewBanner(g.timers, cfg.Timing.BannerDuration)
	source, target := Zones(core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH)
	g.board = board.New(source, target)

	opts := []drag.Option{
		drag.WithTimers(g.timers),
		drag.WithBanner(g.banner),
		drag.WithLogger(g.logger),
		drag.WithCompleteDelay(cfg.Timing.CompleteDelay),
		drag.WithLayout(g.layout),
		drag.WithMessages(drag.Messages{
			Wrong:    cfg.Messages.Wrong,
			Complete: cfg.Messages.Complete,
		}),
		drag.WithTransitionObserver(func(from, to drag.State) {
			g.logger.Debug("drag", "from", from, "to", to)
		}),
	}
	if g.audio != nil {
		opts = append(opts, drag.WithAudio(g.audio))
	}
	g.resetEngine()
	g.machine = drag.NewMachine(g.board, roundsProxy{g}, opts...)
	return g
}

// roundsProxy forwards to the current engine, which is replaced when the
// catalog starts over.
type roundsProxy struct{ g *Game }

func (p roundsProxy) IsCorrect(id string) bool     { return p.g.engine.IsCorrect(id) }
func (p roundsProxy) ReportCorrectPlacement() bool { return p.g.engine.ReportCorrectPlacement() }
func (p roundsProxy) NotifyRoundComplete()         { p.g.engine.NotifyRoundComplete() }

func (g *Game) resetEngine() {
	if g.unsub != nil {
		g.unsub()
	}
	// Every pass draws from the same source, so a looped catalog reshuffles
	g.engine = quiz.NewEngine(g.rounds,
		quiz.WithRand(g.rng),
		quiz.WithBoardSize(g.cfg.Board.Size),
		quiz.WithLogger(g.logger),
	)
	g.unsub = g.engine.Completed().Subscribe(g.onRoundComplete)
}

// Screen returns the active screen.
func (g *Game) Screen() Screen {
	return g.screen
}

// ShowScreen makes s the active screen.
func (g *Game) ShowScreen(s Screen) {
	if s == g.screen {
		return
	}
	g.logger.Debug("screen", "from", g.screen, "to", s)
	g.screen = s
}

// Start begins a session from the main screen and loads the first round.
func (g *Game) Start() {
	if g.screen == ScreenGameplay {
		return
	}
	g.beginSession()
	g.ShowScreen(ScreenGameplay)
	g.loadNextRound()
}

// Restart throws the current session away and starts over from round one.
func (g *Game) Restart() {
	g.finishSession()
	g.machine.Reset()
	g.board.Reset()
	g.banner.Clear()
	g.resetEngine()
	g.screen = ScreenMain
	g.Start()
}

func (g *Game) beginSession() {
	g.mistakes = 0
	g.roundsDone = 0
	g.sessionID = ""
	g.statsBase = g.machine.Stats()
	if g.store == nil {
		return
	}
	id, err := g.store.StartSession(g.player)
	if err != nil {
		g.logger.Warn("cannot record session", "err", err)
		return
	}
	g.sessionID = id
}

func (g *Game) finishSession() {
	if g.store == nil || g.sessionID == "" {
		return
	}
	if err := g.store.FinishSession(g.sessionID, g.roundsDone, g.mistakes); err != nil {
		g.logger.Warn("cannot finish session", "err", err)
	}
	g.sessionID = ""
}

// loadNextRound replaces the board contents with the next round, or shows
// the finished screen when the catalog is done and looping is off.
func (g *Game) loadNextRound() {
	g.machine.Reset()
	g.board.Reset()

	view, err := g.engine.Advance()
	if errors.Is(err, quiz.ErrNoMoreRounds) && g.cfg.Loop && len(g.rounds) > 0 {
		g.logger.Info("catalog finished, starting over")
		g.resetEngine()
		view, err = g.engine.Advance()
	}
	if err != nil {
		g.view = quiz.RoundView{}
		g.finishSession()
		g.ShowScreen(ScreenFinished)
		return
	}

	g.view = view
	g.roundMistakes = 0
	g.roundStart = g.timers.Now()
	for _, item := range view.Items {
		g.board.InstantiateToken(item)
	}
	g.relayout()
}

// relayout fits the source tokens into the source box, shrinking the row
// spacing and then wrapping into columns when the box is too short.
func (g *Game) relayout() {
	source := g.board.Zone(drag.Source)
	widest := 0
	for _, h := range g.board.Children(drag.Source) {
		if tok, ok := g.board.Token(h); ok {
			widest = max(widest, tok.Width())
		}
	}
	l := drag.FitColumn(g.layout, g.board.Len(drag.Source), source.H-1, widest+2)
	g.machine.SetLayout(l)
}

func (g *Game) onRoundComplete() {
	g.roundsDone++
	g.saveRound()
	g.loadNextRound()
}

func (g *Game) saveRound() {
	if g.store == nil || g.sessionID == "" {
		return
	}
	_, err := g.store.SaveRound(storage.RoundResult{
		SessionID:  g.sessionID,
		Vitamin:    g.view.Vitamin,
		RoundIndex: g.view.Index,
		Placed:     g.engine.Outcome().Placed,
		Mistakes:   g.roundMistakes,
		Duration:   g.timers.Now().Sub(g.roundStart),
	})
	if err != nil {
		g.logger.Warn("cannot record round", "vitamin", g.view.Vitamin, "err", err)
	}
}

// HandlePointer feeds one pointer event to the drag machine. Events outside
// gameplay are ignored.
func (g *Game) HandlePointer(ev core.PointerEvent) drag.Outcome {
	if g.screen != ScreenGameplay {
		return drag.OutcomeIgnored
	}

	switch ev.Phase {
	case core.PointerDown:
		h, ok := g.board.HandleAt(ev.At)
		if !ok {
			return drag.OutcomeIgnored
		}
		if err := g.machine.PickUp(h); err != nil {
			g.logger.Debug("pick up refused", "err", err)
			return drag.OutcomeIgnored
		}
		g.lastPoint = ev.At

	case core.PointerMove:
		if err := g.machine.Move(ev.At.Sub(g.lastPoint)); err == nil {
			g.lastPoint = ev.At
		}

	case core.PointerUp, core.PointerCancel:
		if _, active := g.machine.Session(); !active {
			return drag.OutcomeIgnored
		}
		if err := g.machine.Move(ev.At.Sub(g.lastPoint)); err != nil {
			g.logger.Debug("final move refused", "err", err)
		}
		release := g.machine.Release
		if ev.Phase == core.PointerCancel {
			release = g.machine.Cancel
		}
		outcome, err := release()
		if err != nil {
			return drag.OutcomeIgnored
		}
		if outcome == drag.OutcomeRejected {
			g.roundMistakes++
			g.mistakes++
		}
		return outcome
	}
	return drag.OutcomeIgnored
}

// Tick advances the game clock and runs due callbacks.
func (g *Game) Tick(now time.Time) {
	g.timers.Advance(now)
}

// Resize fits the drop zones to a w x h terminal.
func (g *Game) Resize(w, h int) {
	source, target := Zones(w, h)
	g.board.SetZones(source, target)
	g.relayout()
}

// ToggleMute flips sound on or off and returns true when now muted.
func (g *Game) ToggleMute() bool {
	if g.audio == nil {
		return true
	}
	return g.audio.ToggleMute()
}

// Muted reports whether sound is off.
func (g *Game) Muted() bool {
	return g.audio == nil || g.audio.Muted()
}

// Close cancels pending callbacks and records the session as abandoned
// where it stands.
func (g *Game) Close() {
	g.machine.Shutdown()
	g.timers.CancelAll()
	if g.unsub != nil {
		g.unsub()
		g.unsub = nil
	}
	g.finishSession()
}

// Board returns the scene for drawing.
func (g *Game) Board() *board.Board { return g.board }

// Machine returns the drag machine, for drawing the active session.
func (g *Game) Machine() *drag.Machine { return g.machine }

// Banner returns the visible feedback message, if any.
func (g *Game) Banner() (feedback.Message, bool) { return g.banner.Current() }

// View returns the round on the board.
func (g *Game) View() quiz.RoundView { return g.view }

// Outcome returns the placement counters of the current round.
func (g *Game) Outcome() quiz.Outcome { return g.engine.Outcome() }

// Mistakes returns the wrong drops of the session and of the current round.
func (g *Game) Mistakes() (session, round int) { return g.mistakes, g.roundMistakes }

// DropStats returns the release counters of the current session.
func (g *Game) DropStats() drag.Stats {
	s := g.machine.Stats()
	return drag.Stats{
		Commits:   s.Commits - g.statsBase.Commits,
		Rejects:   s.Rejects - g.statsBase.Rejects,
		SnapBacks: s.SnapBacks - g.statsBase.SnapBacks,
	}
}

// RoundEnding reports whether the round is solved and the next one is
// about to load.
func (g *Game) RoundEnding() bool { return g.machine.CompletionPending() }

// RoundsDone returns the rounds completed this session.
func (g *Game) RoundsDone() int { return g.roundsDone }

// Player returns the player name the session is recorded under.
func (g *Game) Player() string { return g.player }
