package quiz

import (
	"math/rand"
	"time"
)

// Shuffle permutes items in place with a Fisher-Yates pass.
// A nil rng falls back to a time-seeded source.
func Shuffle[T any](rng *rand.Rand, items []T) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
