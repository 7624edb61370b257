// Package quiz implements the round engine of the vitamin matching game:
// question sequencing, decoy selection and correctness bookkeeping.
package quiz

// DefaultBoardSize is the number of items shown per round.
const DefaultBoardSize = 12

// FoodItem is an authored food entry. Image is an opaque handle owned by the
// presentation layer (a glyph in the terminal build).
type FoodItem struct {
	ID    string
	Label string
	Image string
}

// Round pairs a vitamin with the foods that contain it.
type Round struct {
	Vitamin string
	Answers []FoodItem
}

// Progress is the position of the engine in the round list.
type Progress struct {
	Current int // Index of the next round to hand out
	Total   int
}

// Exhausted reports whether every round has been handed out.
func (p Progress) Exhausted() bool {
	return p.Current >= p.Total
}

// Outcome counts correct placements in the current round.
type Outcome struct {
	Placed   int
	Required int
}

// Complete reports whether every answer of the round has been placed.
func (o Outcome) Complete() bool {
	return o.Placed == o.Required
}

// Remaining returns how many correct placements are still missing.
func (o Outcome) Remaining() int {
	return o.Required - o.Placed
}

// RoundView is what the presentation layer renders for one round.
// It does not say which items are correct; ask the engine instead.
type RoundView struct {
	Vitamin string
	Index   int // 0-based index of this round
	Total   int
	Items   []FoodItem
}
