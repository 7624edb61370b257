package quiz

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNoMoreRounds is returned by Advance once every round has been handed out.
// It is an expected steady-state condition; the caller decides whether to stop
// or start over with a fresh engine.
var ErrNoMoreRounds = errors.New("quiz: no more rounds")

// Engine hands out rounds in authored order and tracks correct placements.
// It is the only writer of progression state and is meant to be driven from a
// single event loop.
type Engine struct {
	rounds    []Round
	rng       *rand.Rand
	boardSize int
	logger    *log.Logger

	current  int
	correct  map[string]struct{}
	outcome  Outcome
	notified bool
	roundIdx int // Index of the round being played, -1 before the first Advance

	completed Signal
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for decoy sampling and shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithBoardSize sets how many items a round displays (answers plus decoys).
func WithBoardSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.boardSize = n
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine over an authored round list.
// The list is read, never modified.
func NewEngine(rounds []Round, opts ...Option) *Engine {
	e := &Engine{
		rounds:    rounds,
		boardSize: DefaultBoardSize,
		logger:    log.New(io.Discard),
		correct:   make(map[string]struct{}),
		roundIdx:  -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Advance moves to the next round and returns its shuffled view.
// When every round has been played it returns ErrNoMoreRounds and leaves the
// cursor where it is.
func (e *Engine) Advance() (RoundView, error) {
	if e.current >= len(e.rounds) {
		return RoundView{}, ErrNoMoreRounds
	}

	round := e.rounds[e.current]
	e.roundIdx = e.current
	e.current++

	e.correct = make(map[string]struct{}, len(round.Answers))
	for _, item := range round.Answers {
		e.correct[item.ID] = struct{}{}
	}

	exclude := make(map[string]struct{}, len(e.correct))
	for id := range e.correct {
		exclude[id] = struct{}{}
	}
	decoys := BuildPool(e.rng, e.rounds, e.current-1, exclude, e.boardSize-len(round.Answers))

	items := make([]FoodItem, 0, len(round.Answers)+len(decoys))
	items = append(items, round.Answers...)
	items = append(items, decoys...)
	Shuffle(e.rng, items)

	e.outcome = Outcome{Placed: 0, Required: len(round.Answers)}
	e.notified = false

	e.logger.Info("round started",
		"round", e.roundIdx+1,
		"total", len(e.rounds),
		"vitamin", round.Vitamin,
		"answers", len(round.Answers),
		"decoys", len(decoys),
	)

	return RoundView{
		Vitamin: round.Vitamin,
		Index:   e.roundIdx,
		Total:   len(e.rounds),
		Items:   items,
	}, nil
}

// IsCorrect reports whether id answers the current round.
func (e *Engine) IsCorrect(id string) bool {
	_, ok := e.correct[id]
	return ok
}

// ReportCorrectPlacement counts one correct item placed in the answer area.
// It returns true when that placement completes the round. Once the round is
// complete further reports are ignored and return false.
func (e *Engine) ReportCorrectPlacement() bool {
	if e.roundIdx < 0 {
		e.logger.Warn("placement reported before the first round")
		return false
	}
	if e.outcome.Complete() {
		e.logger.Warn("placement reported for a complete round", "round", e.roundIdx+1)
		return false
	}
	e.outcome.Placed++
	return e.outcome.Complete()
}

// NotifyRoundComplete emits the completion signal for the current round.
// The signal fires at most once per round and only after the last correct
// placement.
func (e *Engine) NotifyRoundComplete() {
	if e.roundIdx < 0 || !e.outcome.Complete() || e.notified {
		return
	}
	e.notified = true
	e.logger.Info("round complete", "round", e.roundIdx+1)
	e.completed.Emit()
}

// Completed returns the round-complete signal.
func (e *Engine) Completed() *Signal {
	return &e.completed
}

// Progress returns the round cursor.
func (e *Engine) Progress() Progress {
	return Progress{Current: e.current, Total: len(e.rounds)}
}

// Outcome returns the placement counters of the current round.
func (e *Engine) Outcome() Outcome {
	return e.outcome
}

// Exhausted reports whether Advance would return ErrNoMoreRounds.
func (e *Engine) Exhausted() bool {
	return e.current >= len(e.rounds)
}
