package exam

import (
	"math/rand"

	"github.com/learnsphere/exam-service/internal/models"
)

// SelectQuestions draws a bounded random sample from pool without
// replacement. The whole pool is permuted with a uniform Fisher-Yates
// shuffle and the first min(sampleSize, len(pool)) elements form the
// sample. When reshuffle is true the sample is shuffled a second,
// independent time before being returned; otherwise it keeps the order
// produced by the sampling shuffle.
//
// The pool is never mutated. Output is reproducible for a seeded rng.
// A sampleSize <= 0 or an empty pool yields an empty result.
func SelectQuestions(pool []models.Question, sampleSize int, reshuffle bool, rng *rand.Rand) []models.Question {
	if sampleSize <= 0 || len(pool) == 0 {
		return []models.Question{}
	}

	shuffled := make([]models.Question, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if sampleSize > len(shuffled) {
		sampleSize = len(shuffled)
	}
	selected := shuffled[:sampleSize]

	if reshuffle {
		rng.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
	}

	return selected
}
