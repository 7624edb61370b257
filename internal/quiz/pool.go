package quiz

import "math/rand"

// BuildPool gathers decoys for a round: every item of every other round whose
// ID is not in exclude. Each collected ID is added to exclude, so an item
// authored under several rounds is offered once. The pool is shuffled before
// it is cut to count, which keeps the sample uniform.
//
// The result holds min(count, available) items; a short pool is not an error.
func BuildPool(rng *rand.Rand, rounds []Round, excludeRound int, exclude map[string]struct{}, count int) []FoodItem {
	if count <= 0 {
		return []FoodItem{}
	}

	var pool []FoodItem
	for i, r := range rounds {
		if i == excludeRound {
			continue
		}
		for _, item := range r.Answers {
			if _, skip := exclude[item.ID]; skip {
				continue
			}
			pool = append(pool, item)
			exclude[item.ID] = struct{}{}
		}
	}

	Shuffle(rng, pool)
	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}
