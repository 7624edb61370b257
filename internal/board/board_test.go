package board

import (
	"testing"

	"github.com/vovakirdan/vitamin-drop/internal/core"
	"github.com/vovakirdan/vitamin-drop/internal/drag"
	"github.com/vovakirdan/vitamin-drop/internal/quiz"
)

func newBoard(labels ...string) (*Board, []drag.Handle) {
	b := New(core.NewRect(0, 2, 30, 14), core.NewRect(40, 2, 30, 14))
	handles := make([]drag.Handle, len(labels))
	for i, l := range labels {
		handles[i] = b.InstantiateToken(quiz.FoodItem{ID: l, Label: l})
	}
	return b, handles
}

func TestInstantiateToken(t *testing.T) {
	b, hs := newBoard("milk", "egg", "kale")

	if b.Len(drag.Source) != 3 {
		t.Fatalf("Len(Source) = %d, expected 3", b.Len(drag.Source))
	}
	for i, h := range hs {
		c, slot, ok := b.Locate(h)
		if !ok || c != drag.Source || slot != i {
			t.Errorf("Locate(%d) = %v, %d, %v; expected Source, %d", i, c, slot, ok, i)
		}
	}
	if hs[0] == hs[1] {
		t.Error("handles should be unique")
	}
	if id, _ := b.ItemID(hs[2]); id != "kale" {
		t.Errorf("ItemID = %q, expected kale", id)
	}
}

func TestWorldPositionFollowsZone(t *testing.T) {
	b, hs := newBoard("milk")
	b.SetLocalPosition(hs[0], core.Pt(3, 4))

	if got := b.WorldPosition(hs[0]); got != core.Pt(3, 6) {
		t.Errorf("WorldPosition = %v, expected (3, 6)", got)
	}

	b.SetZones(core.NewRect(10, 10, 30, 14), core.NewRect(50, 10, 30, 14))
	if got := b.WorldPosition(hs[0]); got != core.Pt(13, 14) {
		t.Errorf("WorldPosition after SetZones = %v, expected (13, 14)", got)
	}

	b.Reparent(hs[0], drag.Overlay, 0)
	if got := b.WorldPosition(hs[0]); got != core.Pt(3, 4) {
		t.Errorf("overlay WorldPosition = %v, expected local (3, 4)", got)
	}
}

func TestReparentSlots(t *testing.T) {
	tests := []struct {
		name     string
		slot     int
		expected int
	}{
		{"front", 0, 0},
		{"middle", 1, 1},
		{"past the end is clamped", 10, 2},
		{"negative is clamped", -3, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, hs := newBoard("a", "b", "c")
			b.Reparent(hs[0], drag.Target, 0)
			b.Reparent(hs[1], drag.Target, 1)
			b.Reparent(hs[2], drag.Target, tc.slot)

			_, slot, _ := b.Locate(hs[2])
			if slot != tc.expected {
				t.Errorf("slot = %d, expected %d", slot, tc.expected)
			}
			if b.Len(drag.Source) != 0 || b.Len(drag.Target) != 3 {
				t.Errorf("Len = %d/%d, expected 0/3", b.Len(drag.Source), b.Len(drag.Target))
			}
		})
	}
}

func TestPlaceholderAndDestroy(t *testing.T) {
	b, hs := newBoard("a", "b")

	p := b.InstantiatePlaceholder(drag.Source, 1)
	if !b.IsPlaceholder(p) || b.IsPlaceholder(hs[0]) {
		t.Fatal("IsPlaceholder is wrong")
	}
	children := b.Children(drag.Source)
	if len(children) != 3 || children[1] != p {
		t.Fatalf("Children = %v, expected placeholder at slot 1", children)
	}

	b.Destroy(p)
	if _, ok := b.Token(p); ok {
		t.Error("destroyed placeholder should be gone")
	}
	if b.Len(drag.Source) != 2 {
		t.Errorf("Len(Source) = %d, expected 2", b.Len(drag.Source))
	}
}

func TestClearAndReset(t *testing.T) {
	b, hs := newBoard("a", "b", "c")
	b.Reparent(hs[0], drag.Target, 0)

	b.Clear(drag.Target)
	if b.Len(drag.Target) != 0 {
		t.Error("Clear should empty the target")
	}
	if _, ok := b.Token(hs[0]); ok {
		t.Error("Clear should destroy the tokens")
	}
	if b.Len(drag.Source) != 2 {
		t.Errorf("Clear should leave the source alone, Len = %d", b.Len(drag.Source))
	}

	b.Reset()
	if len(b.DrawOrder()) != 0 {
		t.Error("Reset should remove every token")
	}
}

func TestBoundsInclusive(t *testing.T) {
	b, _ := newBoard()
	box := b.Bounds(drag.Target)

	if !box.Contains(core.Pt(40, 2)) || !box.Contains(core.Pt(69, 15)) {
		t.Error("target bounds should include the corner cells")
	}
	if box.Contains(core.Pt(39, 2)) || box.Contains(core.Pt(70, 2)) {
		t.Error("target bounds should not extend past the zone")
	}
	if !b.Bounds(drag.Overlay).Contains(core.Pt(-500, 1e6)) {
		t.Error("overlay bounds should cover everything")
	}
}

func TestHandleAtPrefersTopmost(t *testing.T) {
	b, hs := newBoard("apple", "pear")
	drag.Reflow(b, drag.Source, drag.DefaultLayout())

	// "apple" sits at world (1, 3), five cells wide
	tests := []struct {
		name     string
		p        core.Point
		expected drag.Handle
		found    bool
	}{
		{"first cell", core.Pt(1, 3), hs[0], true},
		{"last cell", core.Pt(5.5, 3.2), hs[0], true},
		{"past the label", core.Pt(6, 3), "", false},
		{"second row", core.Pt(2, 4), hs[1], true},
		{"empty row", core.Pt(2, 8), "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, ok := b.HandleAt(tc.p)
			if ok != tc.found || h != tc.expected {
				t.Errorf("HandleAt(%v) = %q, %v; expected %q, %v", tc.p, h, ok, tc.expected, tc.found)
			}
		})
	}

	// A raised token wins over the one beneath it
	b.SetZOrder(hs[1], drag.TopZ)
	b.SetLocalPosition(hs[1], core.Pt(0, 1))
	if h, _ := b.HandleAt(core.Pt(2, 3)); h != hs[1] {
		t.Errorf("HandleAt should return the raised token, got %q", h)
	}
}

func TestDrawOrderByZ(t *testing.T) {
	b, hs := newBoard("a", "b", "c")
	b.SetZOrder(hs[0], drag.TopZ)

	order := b.DrawOrder()
	if order[len(order)-1].Handle != hs[0] {
		t.Errorf("raised token should be painted last, got %q", order[len(order)-1].Item.ID)
	}
	if order[0].Handle != hs[1] || order[1].Handle != hs[2] {
		t.Error("equal z-order should keep slot order")
	}
}

func TestTokenText(t *testing.T) {
	tok := Token{Item: quiz.FoodItem{Label: "Milk", Image: "◆"}}
	if tok.Text() != "◆ Milk" {
		t.Errorf("Text() = %q", tok.Text())
	}
	if tok.Width() != 6 {
		t.Errorf("Width() = %d, expected 6", tok.Width())
	}
	if (Token{Item: quiz.FoodItem{Label: "Egg"}}).Text() != "Egg" {
		t.Error("a token without glyph should print only its label")
	}
}
