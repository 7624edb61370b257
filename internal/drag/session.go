package drag

import (
	"errors"

	"github.com/vovakirdan/vitamin-drop/internal/core"
)

var (
	// ErrSessionActive is returned by PickUp while another drag is running.
	ErrSessionActive = errors.New("drag: a drag session is already active")
	// ErrTokenLocked is returned by PickUp for a committed token.
	ErrTokenLocked = errors.New("drag: token is committed and cannot be dragged")
	// ErrUnknownToken is returned by PickUp for handles the scene does not know.
	ErrUnknownToken = errors.New("drag: unknown token")
	// ErrStaleSession is returned by Move and Release when no drag is active.
	ErrStaleSession = errors.New("drag: no active drag session")
	// ErrMissingCollaborator is logged when an optional collaborator is unset
	// and the step needing it is skipped.
	ErrMissingCollaborator = errors.New("drag: missing collaborator")
)

// State is the interaction state of the machine.
type State int

const (
	Idle State = iota
	Dragging
	Committing
	Rejecting
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Dragging:
		return "Dragging"
	case Committing:
		return "Committing"
	case Rejecting:
		return "Rejecting"
	default:
		return "Unknown"
	}
}

// Outcome is the result of a release.
type Outcome int

const (
	OutcomeIgnored   Outcome = iota // No session was active
	OutcomeCommitted                // Correct item placed, round continues
	OutcomeCompleted                // Correct item placed, round complete
	OutcomeRejected                 // Wrong item dropped on the target
	OutcomeSnapBack                 // Dropped elsewhere, silently restored
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "Ignored"
	case OutcomeCommitted:
		return "Committed"
	case OutcomeCompleted:
		return "Completed"
	case OutcomeRejected:
		return "Rejected"
	case OutcomeSnapBack:
		return "SnapBack"
	default:
		return "Unknown"
	}
}

// Accepted reports whether the token was committed.
func (o Outcome) Accepted() bool {
	return o == OutcomeCommitted || o == OutcomeCompleted
}

// Session is the state of one drag gesture, from pick-up to release.
type Session struct {
	Token       Handle
	ItemID      string
	Origin      Container
	OriginSlot  int
	OriginLocal core.Point
	OriginWorld core.Point
	OriginZ     int
	Placeholder Handle // Empty once destroyed
}
