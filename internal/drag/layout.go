package drag

import "github.com/vovakirdan/vitamin-drop/internal/core"

// Layout places the resting tokens of a container: the i-th child sits at
// Origin + i*Spacing in local coordinates. With Rows set, children wrap into
// a new column every Rows slots, each column Column further along.
type Layout struct {
	Origin  core.Point
	Spacing core.Point
	Rows    int
	Column  core.Point
}

// DefaultLayout stacks tokens one row apart, inset by one cell from the
// container border.
func DefaultLayout() Layout {
	return Layout{Origin: core.Pt(1, 1), Spacing: core.Pt(0, 1)}
}

// Slot returns the local resting position of the i-th child.
func (l Layout) Slot(i int) core.Point {
	if l.Rows <= 0 {
		return l.Origin.Add(l.Spacing.Scale(float64(i)))
	}
	row, col := i%l.Rows, i/l.Rows
	return l.Origin.Add(l.Spacing.Scale(float64(row))).Add(l.Column.Scale(float64(col)))
}

// FitColumn returns l adjusted so n children stay within height rows of
// local space. Spacing shrinks first, down to one row; if n still does not
// fit the children wrap into columns colWidth apart.
func FitColumn(l Layout, n, height, colWidth int) Layout {
	l.Rows = 0
	l.Column = core.Point{}
	rows := height - int(l.Origin.Y)
	if n <= 1 || rows <= 0 {
		return l
	}

	step := int(l.Spacing.Y)
	if step < 1 {
		step = 1
	}
	// Last child sits at Origin + (n-1)*step and must be above height
	for step > 1 && (n-1)*step >= rows {
		step--
	}
	l.Spacing = core.Pt(l.Spacing.X, float64(step))
	if (n-1)*step < rows {
		return l
	}

	l.Rows = rows
	l.Column = core.Pt(float64(colWidth), 0)
	return l
}

// Reflow moves every non-placeholder child of c to its resting position.
// It depends only on the current child order, so calling it twice is the
// same as calling it once.
func Reflow(scene Scene, c Container, l Layout) {
	i := 0
	for _, h := range scene.Children(c) {
		if scene.IsPlaceholder(h) {
			continue
		}
		scene.SetLocalPosition(h, l.Slot(i))
		i++
	}
}
