// Package board is the in-memory scene the drag machine operates on: two drop
// zones on screen, an overlay for the token being dragged, and the food
// tokens themselves.
package board

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/vovakirdan/vitamin-drop/internal/core"
	"github.com/vovakirdan/vitamin-drop/internal/drag"
	"github.com/vovakirdan/vitamin-drop/internal/quiz"
)

// Token is a food item placed on the board, or a placeholder holding a slot
// open while its token is dragged.
type Token struct {
	Handle      drag.Handle
	Item        quiz.FoodItem
	Placeholder bool
	Container   drag.Container
	Local       core.Point
	Z           int
}

// Text is what the token prints: its glyph followed by its label.
func (t Token) Text() string {
	if t.Item.Image == "" {
		return t.Item.Label
	}
	return t.Item.Image + " " + t.Item.Label
}

// Width returns the number of cells Text occupies.
func (t Token) Width() int {
	return len([]rune(t.Text()))
}

type zone struct {
	rect     core.Rect
	children []drag.Handle
}

// Board implements drag.Scene.
type Board struct {
	zones  map[drag.Container]*zone
	tokens map[drag.Handle]*Token
}

var _ drag.Scene = (*Board)(nil)

// New creates a board with the given zone rectangles in screen cells.
func New(source, target core.Rect) *Board {
	b := &Board{
		zones: map[drag.Container]*zone{
			drag.Source:  {rect: source},
			drag.Target:  {rect: target},
			drag.Overlay: {},
		},
		tokens: make(map[drag.Handle]*Token),
	}
	return b
}

// SetZones moves the drop zones, for example after a terminal resize.
// Tokens keep their local positions and so follow their zone.
func (b *Board) SetZones(source, target core.Rect) {
	b.zones[drag.Source].rect = source
	b.zones[drag.Target].rect = target
}

// Zone returns the screen rectangle of a drop zone.
func (b *Board) Zone(c drag.Container) core.Rect {
	return b.zones[c].rect
}

// InstantiateToken adds a token for item at the end of the source zone.
func (b *Board) InstantiateToken(item quiz.FoodItem) drag.Handle {
	return b.add(&Token{Item: item}, drag.Source, len(b.zones[drag.Source].children))
}

// Token returns a copy of the token behind h.
func (b *Board) Token(h drag.Handle) (Token, bool) {
	t, ok := b.tokens[h]
	if !ok {
		return Token{}, false
	}
	return *t, true
}

// Len returns the number of tokens in c, placeholders included.
func (b *Board) Len(c drag.Container) int {
	return len(b.zones[c].children)
}

// DrawOrder returns every token in the order it should be painted: by
// z-order, then source before target before overlay, then by slot.
func (b *Board) DrawOrder() []Token {
	out := make([]Token, 0, len(b.tokens))
	for _, c := range []drag.Container{drag.Source, drag.Target, drag.Overlay} {
		for _, h := range b.zones[c].children {
			out = append(out, *b.tokens[h])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Z < out[j].Z
	})
	return out
}

// HandleAt returns the topmost non-placeholder token covering the cell at p.
func (b *Board) HandleAt(p core.Point) (drag.Handle, bool) {
	px, py := int(math.Floor(p.X)), int(math.Floor(p.Y))

	order := b.DrawOrder()
	for i := len(order) - 1; i >= 0; i-- {
		t := order[i]
		if t.Placeholder {
			continue
		}
		w := b.WorldPosition(t.Handle)
		x, y := int(math.Floor(w.X)), int(math.Floor(w.Y))
		if py == y && px >= x && px < x+t.Width() {
			return t.Handle, true
		}
	}
	return "", false
}

// ItemID returns the food ID a token shows.
func (b *Board) ItemID(h drag.Handle) (string, bool) {
	t, ok := b.tokens[h]
	if !ok {
		return "", false
	}
	return t.Item.ID, true
}

// Locate returns the container of a token and its slot index.
func (b *Board) Locate(h drag.Handle) (drag.Container, int, bool) {
	t, ok := b.tokens[h]
	if !ok {
		return 0, 0, false
	}
	for i, c := range b.zones[t.Container].children {
		if c == h {
			return t.Container, i, true
		}
	}
	return 0, 0, false
}

// Reparent moves a token into c at slot.
func (b *Board) Reparent(h drag.Handle, c drag.Container, slot int) {
	t, ok := b.tokens[h]
	if !ok {
		return
	}
	b.detach(t)
	b.insert(t, c, slot)
}

// Destroy removes a token from the board.
func (b *Board) Destroy(h drag.Handle) {
	t, ok := b.tokens[h]
	if !ok {
		return
	}
	b.detach(t)
	delete(b.tokens, h)
}

// ZOrder returns the draw layer of h. Higher draws on top.
func (b *Board) ZOrder(h drag.Handle) int {
	if t, ok := b.tokens[h]; ok {
		return t.Z
	}
	return 0
}

// SetZOrder sets the draw layer of h.
func (b *Board) SetZOrder(h drag.Handle, z int) {
	if t, ok := b.tokens[h]; ok {
		t.Z = z
	}
}

// WorldPosition returns the screen position of h: its zone origin plus
// its local position.
func (b *Board) WorldPosition(h drag.Handle) core.Point {
	t, ok := b.tokens[h]
	if !ok {
		return core.Point{}
	}
	return b.Origin(t.Container).Add(t.Local)
}

// LocalPosition returns the position of h relative to its zone origin.
func (b *Board) LocalPosition(h drag.Handle) core.Point {
	if t, ok := b.tokens[h]; ok {
		return t.Local
	}
	return core.Point{}
}

// SetLocalPosition moves h within its zone.
func (b *Board) SetLocalPosition(h drag.Handle, p core.Point) {
	if t, ok := b.tokens[h]; ok {
		t.Local = p
	}
}

// Origin returns the top-left cell of a zone. The overlay is anchored at
// the screen origin.
func (b *Board) Origin(c drag.Container) core.Point {
	if c == drag.Overlay {
		return core.Point{}
	}
	r := b.zones[c].rect
	return core.Pt(float64(r.X), float64(r.Y))
}

// Bounds returns the world-space box of a zone. The overlay covers
// everything.
func (b *Board) Bounds(c drag.Container) core.Box {
	if c == drag.Overlay {
		inf := math.Inf(1)
		return core.Box{Min: core.Pt(-inf, -inf), Max: core.Pt(inf, inf)}
	}
	return b.zones[c].rect.Box()
}

// Children returns the tokens of c in slot order.
func (b *Board) Children(c drag.Container) []drag.Handle {
	return append([]drag.Handle(nil), b.zones[c].children...)
}

// IsPlaceholder reports whether h is a slot marker rather than a food.
func (b *Board) IsPlaceholder(h drag.Handle) bool {
	t, ok := b.tokens[h]
	return ok && t.Placeholder
}

// InstantiatePlaceholder inserts an empty marker at slot in c.
func (b *Board) InstantiatePlaceholder(c drag.Container, slot int) drag.Handle {
	return b.add(&Token{Placeholder: true}, c, slot)
}

// Clear destroys every token in c.
func (b *Board) Clear(c drag.Container) {
	for _, h := range b.zones[c].children {
		delete(b.tokens, h)
	}
	b.zones[c].children = nil
}

// Reset destroys every token on the board.
func (b *Board) Reset() {
	for c := range b.zones {
		b.Clear(c)
	}
}

func (b *Board) add(t *Token, c drag.Container, slot int) drag.Handle {
	t.Handle = drag.Handle(uuid.NewString())
	b.tokens[t.Handle] = t
	b.insert(t, c, slot)
	return t.Handle
}

func (b *Board) insert(t *Token, c drag.Container, slot int) {
	z := b.zones[c]
	slot = core.Clamp(slot, 0, len(z.children))
	z.children = append(z.children, "")
	copy(z.children[slot+1:], z.children[slot:])
	z.children[slot] = t.Handle
	t.Container = c
}

func (b *Board) detach(t *Token) {
	z := b.zones[t.Container]
	for i, h := range z.children {
		if h == t.Handle {
			z.children = append(z.children[:i], z.children[i+1:]...)
			return
		}
	}
}
