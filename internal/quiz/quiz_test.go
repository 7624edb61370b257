package quiz

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func item(id string) FoodItem {
	return FoodItem{ID: id, Label: id}
}

// catalog builds rounds of the given sizes with globally unique IDs.
func catalog(sizes ...int) []Round {
	rounds := make([]Round, len(sizes))
	n := 0
	for i, size := range sizes {
		rounds[i].Vitamin = fmt.Sprintf("V%d", i)
		for j := 0; j < size; j++ {
			rounds[i].Answers = append(rounds[i].Answers, item(fmt.Sprintf("f%02d", n)))
			n++
		}
	}
	return rounds
}

func seeded(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func ids(items []FoodItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	sort.Strings(out)
	return out
}

func TestShufflePermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for n := 0; n <= 20; n++ {
		in := make([]int, n)
		for i := range in {
			in[i] = i
		}
		out := append([]int(nil), in...)
		Shuffle(rng, out)

		seen := make(map[int]int)
		for _, v := range out {
			seen[v]++
		}
		for _, v := range in {
			if seen[v] != 1 {
				t.Fatalf("n=%d: value %d appears %d times after shuffle", n, v, seen[v])
			}
		}
	}
}

func TestShuffleSingleElement(t *testing.T) {
	items := []string{"only"}
	Shuffle(rand.New(rand.NewSource(1)), items)
	if items[0] != "only" {
		t.Errorf("Shuffle of one element changed it to %q", items[0])
	}
}

func TestShuffleNilRand(t *testing.T) {
	items := []int{1, 2, 3}
	Shuffle(nil, items) // should not panic
	if len(items) != 3 {
		t.Errorf("len = %d, expected 3", len(items))
	}
}

func TestBuildPool(t *testing.T) {
	rounds := catalog(2, 5, 5, 8)

	tests := []struct {
		name     string
		exclude  []string
		count    int
		expected int
	}{
		{"enough items", nil, 10, 10},
		{"short pool", nil, 30, 18},
		{"exclusions are honoured", []string{"f02", "f03", "f10"}, 30, 15},
		{"zero count", nil, 0, 0},
		{"negative count", nil, -4, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exclude := make(map[string]struct{})
			for _, id := range tc.exclude {
				exclude[id] = struct{}{}
			}

			pool := BuildPool(rand.New(rand.NewSource(3)), rounds, 0, exclude, tc.count)

			if len(pool) != tc.expected {
				t.Fatalf("len(pool) = %d, expected %d", len(pool), tc.expected)
			}
			for _, it := range pool {
				if it.ID == "f00" || it.ID == "f01" {
					t.Errorf("pool contains %s from the excluded round", it.ID)
				}
				for _, ex := range tc.exclude {
					if it.ID == ex {
						t.Errorf("pool contains excluded ID %s", ex)
					}
				}
			}
		})
	}
}

func TestBuildPoolDeduplicatesAcrossRounds(t *testing.T) {
	// "milk" is authored under two other rounds.
	rounds := []Round{
		{Vitamin: "A", Answers: []FoodItem{item("carrot")}},
		{Vitamin: "B12", Answers: []FoodItem{item("milk"), item("egg")}},
		{Vitamin: "D", Answers: []FoodItem{item("milk"), item("salmon")}},
	}
	exclude := map[string]struct{}{"carrot": {}}

	pool := BuildPool(rand.New(rand.NewSource(1)), rounds, 0, exclude, 10)

	got := ids(pool)
	expected := []string{"egg", "milk", "salmon"}
	if fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Errorf("pool = %v, expected %v", got, expected)
	}
	for _, id := range expected {
		if _, ok := exclude[id]; !ok {
			t.Errorf("collected ID %s should have been added to the exclusion set", id)
		}
	}
}

func TestAdvanceScenarioTwentyItems(t *testing.T) {
	// Round 0 answers are A, B; the catalog holds 20 items in total.
	rounds := catalog(2, 6, 6, 6)
	e := NewEngine(rounds, seeded(42))

	view, err := e.Advance()
	if err != nil {
		t.Fatalf("Advance() failed: %v", err)
	}
	if len(view.Items) != 12 {
		t.Fatalf("len(Items) = %d, expected 12", len(view.Items))
	}

	counts := make(map[string]int)
	for _, it := range view.Items {
		counts[it.ID]++
	}
	for id, n := range counts {
		if n != 1 {
			t.Errorf("item %s displayed %d times", id, n)
		}
	}
	for _, answer := range rounds[0].Answers {
		if counts[answer.ID] != 1 {
			t.Errorf("answer %s displayed %d times, expected once", answer.ID, counts[answer.ID])
		}
	}

	outcome := e.Outcome()
	if outcome.Placed != 0 || outcome.Required != 2 {
		t.Errorf("Outcome() = %+v, expected {0 2}", outcome)
	}
}

func TestAdvanceEveryRoundIsSuperset(t *testing.T) {
	rounds := catalog(3, 4, 2, 5, 1)
	e := NewEngine(rounds, seeded(9))

	for i, round := range rounds {
		view, err := e.Advance()
		if err != nil {
			t.Fatalf("round %d: Advance() failed: %v", i, err)
		}
		if view.Index != i || view.Total != len(rounds) || view.Vitamin != round.Vitamin {
			t.Errorf("round %d: view header = %d/%d %q", i, view.Index, view.Total, view.Vitamin)
		}

		seen := make(map[string]bool)
		for _, it := range view.Items {
			if seen[it.ID] {
				t.Errorf("round %d: duplicate item %s", i, it.ID)
			}
			seen[it.ID] = true
		}
		for _, answer := range round.Answers {
			if !seen[answer.ID] {
				t.Errorf("round %d: answer %s missing from view", i, answer.ID)
			}
			if !e.IsCorrect(answer.ID) {
				t.Errorf("round %d: IsCorrect(%s) = false", i, answer.ID)
			}
		}

		// 15 items in total, so every round fits on the board
		if len(view.Items) != 12 {
			t.Errorf("round %d: len(Items) = %d, expected 12", i, len(view.Items))
		}
	}
}

func TestAdvanceUnderfilledPool(t *testing.T) {
	rounds := catalog(2, 3)
	e := NewEngine(rounds, seeded(1))

	view, err := e.Advance()
	if err != nil {
		t.Fatalf("Advance() failed: %v", err)
	}
	if len(view.Items) != 5 {
		t.Errorf("len(Items) = %d, expected min(12, 2+3) = 5", len(view.Items))
	}
}

func TestAdvanceBoardSizeOption(t *testing.T) {
	e := NewEngine(catalog(2, 10), seeded(1), WithBoardSize(6))

	view, _ := e.Advance()
	if len(view.Items) != 6 {
		t.Errorf("len(Items) = %d, expected 6", len(view.Items))
	}
}

func TestAdvanceExhausted(t *testing.T) {
	e := NewEngine(catalog(1, 1), seeded(1))

	for i := 0; i < 2; i++ {
		if _, err := e.Advance(); err != nil {
			t.Fatalf("Advance() %d failed: %v", i, err)
		}
	}
	if !e.Exhausted() {
		t.Error("engine should be exhausted after the last round")
	}

	before := e.Progress()
	_, err := e.Advance()
	if !errors.Is(err, ErrNoMoreRounds) {
		t.Fatalf("Advance() error = %v, expected ErrNoMoreRounds", err)
	}
	if after := e.Progress(); after != before {
		t.Errorf("Progress changed from %+v to %+v on a failed Advance", before, after)
	}
}

func TestIsCorrectTracksCurrentRound(t *testing.T) {
	rounds := catalog(2, 2)
	e := NewEngine(rounds, seeded(5))

	if e.IsCorrect("f00") {
		t.Error("IsCorrect should be false before the first round")
	}

	e.Advance()
	if !e.IsCorrect("f00") || e.IsCorrect("f02") {
		t.Error("first round correct set is wrong")
	}

	e.Advance()
	if e.IsCorrect("f00") || !e.IsCorrect("f02") {
		t.Error("second round correct set should replace the first")
	}
}

func TestReportCorrectPlacement(t *testing.T) {
	e := NewEngine(catalog(2, 4), seeded(1))
	e.Advance()

	if e.ReportCorrectPlacement() {
		t.Error("first of two placements should not complete the round")
	}
	if got := e.Outcome().Placed; got != 1 {
		t.Errorf("Placed = %d, expected 1", got)
	}
	if !e.ReportCorrectPlacement() {
		t.Error("second placement should complete the round")
	}

	// Past completion the counter never exceeds Required
	if e.ReportCorrectPlacement() {
		t.Error("reports after completion should return false")
	}
	if o := e.Outcome(); o.Placed != o.Required {
		t.Errorf("Outcome() = %+v, Placed should stay at Required", o)
	}
}

func TestReportBeforeFirstRound(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(catalog(2), seeded(1), WithLogger(log.New(&buf)))

	if e.ReportCorrectPlacement() {
		t.Error("report before the first round should return false")
	}
	if out := buf.String(); !strings.Contains(out, "before the first round") || strings.Contains(out, "complete round") {
		t.Errorf("log = %q, expected the before-first-round warning", out)
	}
	if o := e.Outcome(); o.Placed != 0 {
		t.Errorf("Outcome() = %+v, expected no placements", o)
	}

	e.Advance()
	if e.ReportCorrectPlacement() {
		t.Error("first of two placements should not complete the round")
	}
	if got := e.Outcome().Placed; got != 1 {
		t.Errorf("Placed = %d, expected the early report to be dropped", got)
	}
}

func TestNotifyRoundCompleteOnce(t *testing.T) {
	e := NewEngine(catalog(1, 3), seeded(1))
	fired := 0
	e.Completed().Subscribe(func() { fired++ })

	e.Advance()
	e.NotifyRoundComplete()
	if fired != 0 {
		t.Fatal("signal fired before the round was complete")
	}

	e.ReportCorrectPlacement()
	e.NotifyRoundComplete()
	e.NotifyRoundComplete()
	if fired != 1 {
		t.Errorf("signal fired %d times, expected 1", fired)
	}

	// Second round needs three placements
	e.Advance()
	for i := 1; i < 3; i++ {
		e.ReportCorrectPlacement()
		e.NotifyRoundComplete()
		if fired != 1 {
			t.Fatalf("signal fired after %d of 3 placements", i)
		}
	}
	e.ReportCorrectPlacement()
	e.NotifyRoundComplete()
	if fired != 2 {
		t.Errorf("signal fired %d times after second round, expected 2", fired)
	}
}

func TestSignalSubscribeUnsubscribe(t *testing.T) {
	var s Signal
	var order []string

	s.Subscribe(func() { order = append(order, "a") })
	unsubB := s.Subscribe(func() { order = append(order, "b") })
	s.Subscribe(func() { order = append(order, "c") })

	s.Emit()
	unsubB()
	unsubB() // second call is harmless
	s.Emit()

	expected := "[a b c a c]"
	if fmt.Sprint(order) != expected {
		t.Errorf("order = %v, expected %s", order, expected)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", s.Len())
	}
}

func TestSignalUnsubscribeDuringEmit(t *testing.T) {
	var s Signal
	calls := 0
	var unsub func()
	unsub = s.Subscribe(func() {
		calls++
		unsub()
	})
	s.Subscribe(func() { calls++ })

	s.Emit()
	s.Emit()

	if calls != 3 {
		t.Errorf("calls = %d, expected 3", calls)
	}
}
