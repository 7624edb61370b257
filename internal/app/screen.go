package app

import "github.com/vovakirdan/vitamin-drop/internal/core"

// Screen is one of the top-level views. Exactly one is active at a time.
type Screen int

const (
	ScreenMain Screen = iota
	ScreenGameplay
	ScreenFinished
)

// String returns a human-readable name for the screen.
func (s Screen) String() string {
	switch s {
	case ScreenMain:
		return "Main"
	case ScreenGameplay:
		return "Gameplay"
	case ScreenFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Header and footer rows kept free around the drop zones.
const (
	headerRows = 3
	footerRows = 2
	minZoneW   = 12
	minZoneH   = 4
)

// Zones splits a w x h terminal into the source column on the left and the
// answer box on the right.
func Zones(w, h int) (source, target core.Rect) {
	zh := h - headerRows - footerRows
	if zh < minZoneH {
		zh = minZoneH
	}
	zw := (w - 3) / 2
	if zw < minZoneW {
		zw = minZoneW
	}
	source = core.NewRect(1, headerRows, zw, zh)
	target = core.NewRect(source.Right()+1, headerRows, zw, zh)
	return source, target
}
