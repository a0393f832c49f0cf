package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental_coach_backend/internal/config"
	"rental_coach_backend/pkg/textnorm"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float64{1, 2}, []float64{2, 4}), 1e-9)
	assert.Equal(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}))
	assert.Equal(t, 0.0, Cosine([]float64{1, 0}, []float64{-1, 0}))
	assert.Equal(t, 0.0, Cosine([]float64{0, 0}, []float64{1, 1}))
	assert.Equal(t, 0.0, Cosine([]float64{1}, []float64{1, 1}))
}

func lexiconSimilarity(t *testing.T, a, b string) float64 {
	t.Helper()
	s := NewEmbeddingScorer(NewLexiconEmbedder())
	score, err := s.Similarity(context.Background(), textnorm.Normalize(a), textnorm.Normalize(b))
	require.NoError(t, err)
	return score
}

func TestLexiconSimilarityIsSymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"Can I bring my dog?", "Are pets allowed?"},
		{"How much is rent?", "What is the monthly rent?"},
		{"Is there a garage for my car?", "Is there parking?"},
	}
	for _, p := range pairs {
		ab := lexiconSimilarity(t, p[0], p[1])
		ba := lexiconSimilarity(t, p[1], p[0])
		assert.InDelta(t, ab, ba, 1e-12)
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.LessOrEqual(t, ab, 1.0)
	}
}

func TestLexiconSimilarityDogMatchesPets(t *testing.T) {
	assert.GreaterOrEqual(t, lexiconSimilarity(t, "Can I bring my dog?", "Are pets allowed?"), DefaultThreshold)
	assert.Less(t, lexiconSimilarity(t, "Can I bring my dog?", "Are guests allowed?"), DefaultThreshold)
}

func TestLexiconSimilarityCanonicalMatchesItself(t *testing.T) {
	for _, q := range config.DefaultQuestions {
		assert.InDelta(t, 1.0, lexiconSimilarity(t, q, q), 1e-9, q)
	}
}

func TestEmbeddingScorerEmptyText(t *testing.T) {
	s := NewEmbeddingScorer(failingEmbedder{})
	score, err := s.Similarity(context.Background(), "", "pet allow")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

type failingEmbedder struct{}

func (failingEmbedder) Name() string { return "failing" }
func (failingEmbedder) Embed(context.Context, string) ([]float64, error) {
	return nil, errors.New("quota exceeded")
}

type countingEmbedder struct {
	calls int
}

func (c *countingEmbedder) Name() string { return "counting" }
func (c *countingEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	c.calls++
	return []float64{float64(len(text)), 1}, nil
}

func TestCachedEmbedder(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	inner := &countingEmbedder{}
	e := NewCachedEmbedder(inner, rdb, time.Hour)
	ctx := context.Background()

	v1, err := e.Embed(ctx, "pet allow")
	require.NoError(t, err)
	v2, err := e.Embed(ctx, "pet allow")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, inner.calls)
	assert.True(t, mr.Exists(e.key("pet allow")))

	mr.FastForward(2 * time.Hour)
	_, err = e.Embed(ctx, "pet allow")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedEmbedderFallsThroughWhenRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	inner := &countingEmbedder{}
	v, err := NewCachedEmbedder(inner, rdb, time.Hour).Embed(context.Background(), "rent")
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 1}, v)
}

func TestWithNormalizedFormsAddsLemmaKeys(t *testing.T) {
	base := map[string][]float64{
		"dryer": {1, 0},
		"dry":   {0, 1},
		"pets":  {1, 1},
	}
	lemmas := map[string][]string{"dryer": {"dryish"}, "dry": {"dryer"}, "pets": {"pet"}}
	out := withNormalizedForms(base, func(w string) []string { return lemmas[w] })

	assert.Equal(t, []float64{1, 0}, out["dryer"])
	assert.Equal(t, []float64{1, 0}, out["dryish"])
	assert.Equal(t, []float64{1, 1}, out["pet"])
}

func TestLexiconPermissionWordAloneIsWeak(t *testing.T) {
	assert.Less(t, lexiconSimilarity(t, "Is it ok?", "Are pets allowed?"), DefaultThreshold)
	assert.Less(t, lexiconSimilarity(t, "Is it ok?", "Are guests allowed?"), DefaultThreshold)
	assert.GreaterOrEqual(t, lexiconSimilarity(t, "Can I have a cat?", "Are pets allowed?"), DefaultThreshold)
}
