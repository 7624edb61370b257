// Package drag implements the pointer-driven drag interaction of the game:
// pick a food token up, move it, and drop it into the answer area where it is
// either committed or sent back to its slot.
package drag

import (
	"github.com/vovakirdan/vitamin-drop/internal/core"
	"github.com/vovakirdan/vitamin-drop/internal/feedback"
)

// Handle identifies a token in the scene.
type Handle string

// Container is a drop zone, or the overlay layer a token lives in while it
// is being dragged.
type Container int

const (
	Source  Container = iota // Pool the tokens start in
	Target                   // Answer area
	Overlay                  // Drag layer above both zones
)

// String returns a human-readable name for the container.
func (c Container) String() string {
	switch c {
	case Source:
		return "Source"
	case Target:
		return "Target"
	case Overlay:
		return "Overlay"
	default:
		return "Unknown"
	}
}

// TopZ is the z-order a dragged token is raised to.
const TopZ = 9999

// Scene is the presentation contract the machine drives. Positions are local
// to the token's container; WorldPosition adds the container origin.
type Scene interface {
	// ItemID returns the food ID a token shows.
	ItemID(h Handle) (string, bool)
	// Locate returns the container of a token and its slot in it.
	Locate(h Handle) (Container, int, bool)
	// Reparent moves a token into c at slot, clamped to the child count.
	// The local position is left unchanged.
	Reparent(h Handle, c Container, slot int)
	// Destroy removes a token from the scene.
	Destroy(h Handle)
	ZOrder(h Handle) int
	SetZOrder(h Handle, z int)
	WorldPosition(h Handle) core.Point
	LocalPosition(h Handle) core.Point
	SetLocalPosition(h Handle, p core.Point)
	// Origin returns the world position of a container's local (0, 0).
	Origin(c Container) core.Point
	// Bounds returns the world-space box of a container.
	Bounds(c Container) core.Box
	// Children returns the tokens of a container in slot order.
	Children(c Container) []Handle
	IsPlaceholder(h Handle) bool
	// InstantiatePlaceholder inserts a placeholder marker at slot.
	InstantiatePlaceholder(c Container, slot int) Handle
	// Clear destroys every token of a container.
	Clear(c Container)
}

// Rounds is the narrow view of the round engine the machine needs.
type Rounds interface {
	IsCorrect(id string) bool
	ReportCorrectPlacement() bool
	NotifyRoundComplete()
}

// AudioSink plays drop feedback.
type AudioSink interface {
	PlaySuccess()
	PlayFailure()
}

// BannerSink shows drop feedback messages.
type BannerSink interface {
	ShowBanner(text string, kind feedback.Kind)
}
