package exam

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/learnsphere/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePool(n int) []models.Question {
	pool := make([]models.Question, n)
	for i := range pool {
		pool[i] = models.Question{
			ID:            fmt.Sprintf("q-%d", i),
			Type:          models.ShortAnswer,
			Text:          fmt.Sprintf("question %d", i),
			CorrectAnswer: models.StringAnswer("answer"),
		}
	}
	return pool
}

func TestSelectQuestions_SampleBound(t *testing.T) {
	pool := makePool(10)

	tests := []struct {
		name       string
		sampleSize int
		want       int
	}{
		{"smaller than pool", 4, 4},
		{"equal to pool", 10, 10},
		{"larger than pool", 25, 10},
		{"zero", 0, 0},
		{"negative", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectQuestions(pool, tt.sampleSize, false, rand.New(rand.NewSource(1)))
			assert.Len(t, got, tt.want)
		})
	}
}

func TestSelectQuestions_EmptyPool(t *testing.T) {
	got := SelectQuestions(nil, 5, true, rand.New(rand.NewSource(1)))
	assert.Empty(t, got)
}

func TestSelectQuestions_WithoutReplacement(t *testing.T) {
	pool := makePool(20)

	for seed := int64(0); seed < 50; seed++ {
		got := SelectQuestions(pool, 12, true, rand.New(rand.NewSource(seed)))
		seen := make(map[string]bool, len(got))
		for _, q := range got {
			assert.False(t, seen[q.ID], "duplicate question %s for seed %d", q.ID, seed)
			seen[q.ID] = true
		}
	}
}

func TestSelectQuestions_DeterministicForSeed(t *testing.T) {
	pool := makePool(15)

	first := SelectQuestions(pool, 7, true, rand.New(rand.NewSource(42)))
	second := SelectQuestions(pool, 7, true, rand.New(rand.NewSource(42)))
	assert.Equal(t, first, second)
}

func TestSelectQuestions_DoesNotMutatePool(t *testing.T) {
	pool := makePool(8)
	original := make([]models.Question, len(pool))
	copy(original, pool)

	SelectQuestions(pool, 8, true, rand.New(rand.NewSource(3)))
	assert.Equal(t, original, pool)
}

func TestSelectQuestions_ReshuffleKeepsSampleMembership(t *testing.T) {
	pool := makePool(10)

	// Both calls consume the sampling shuffle from identical rng state, so
	// the sampled sets match; the reshuffled variant may only reorder it.
	plain := SelectQuestions(pool, 6, false, rand.New(rand.NewSource(9)))
	reshuffled := SelectQuestions(pool, 6, true, rand.New(rand.NewSource(9)))

	require.Len(t, reshuffled, len(plain))
	assert.ElementsMatch(t, plain, reshuffled)
}

func TestSelectQuestions_UniformInclusion(t *testing.T) {
	pool := makePool(10)
	const trials = 2000
	const sampleSize = 5

	counts := make(map[string]int, len(pool))
	for seed := int64(0); seed < trials; seed++ {
		for _, q := range SelectQuestions(pool, sampleSize, false, rand.New(rand.NewSource(seed))) {
			counts[q.ID]++
		}
	}

	// Every question should appear with frequency close to n/|P| = 0.5.
	for _, q := range pool {
		freq := float64(counts[q.ID]) / trials
		assert.InDelta(t, 0.5, freq, 0.05, "question %s inclusion frequency", q.ID)
	}
}
