package service

import (
	"context"
	"math"
	"sync"
	"sync/atomic"

	"rental_coach_backend/pkg/monitoring"
	"rental_coach_backend/pkg/textnorm"
)

const DefaultThreshold = 0.61

type MatchResult struct {
	Matched []string
	Scores  map[string]float64
}

// QuestionMatcher 判断一句用户发言覆盖了哪些标准问题。
// 每个问题独立打分，一句话可以命中多个问题。
type QuestionMatcher struct {
	questions  []string
	normalized []string
	scorer     Scorer
	normalize  func(string) string
	threshold  atomic.Uint64

	// 标准问题向量，首次成功后缓存；远程向量服务失败时下次重试
	mu      sync.Mutex
	vectors [][]float64
}

func NewQuestionMatcher(questions []string, scorer Scorer, threshold float64) *QuestionMatcher {
	m := &QuestionMatcher{
		questions: append([]string(nil), questions...),
		scorer:    scorer,
		normalize: textnorm.Normalize,
	}
	m.normalized = make([]string, len(questions))
	for i, q := range questions {
		m.normalized[i] = m.normalize(q)
	}
	m.SetThreshold(threshold)
	return m
}

func (m *QuestionMatcher) Threshold() float64 {
	return math.Float64frombits(m.threshold.Load())
}

func (m *QuestionMatcher) SetThreshold(t float64) {
	m.threshold.Store(math.Float64bits(t))
}

func (m *QuestionMatcher) Match(ctx context.Context, utterance string) (MatchResult, error) {
	return m.MatchWithThreshold(ctx, utterance, m.Threshold())
}

// MatchWithThreshold 分数 >= threshold 即视为命中。
// 规范化后为空的发言不命中任何问题。
func (m *QuestionMatcher) MatchWithThreshold(ctx context.Context, utterance string, threshold float64) (MatchResult, error) {
	res := MatchResult{Matched: []string{}, Scores: make(map[string]float64, len(m.questions))}

	norm := m.normalize(utterance)
	if norm == "" {
		return res, nil
	}

	score := m.scoreFunc(ctx, norm)
	for i, q := range m.questions {
		if m.normalized[i] == "" {
			res.Scores[q] = 0
			continue
		}
		s, err := score(i)
		if err != nil {
			return MatchResult{}, err
		}
		res.Scores[q] = s
		monitoring.SimilarityScore.Observe(s)
		if s >= threshold {
			res.Matched = append(res.Matched, q)
		}
	}
	return res, nil
}

// scoreFunc 向量打分器走缓存路径，其余逐对调用 Similarity
func (m *QuestionMatcher) scoreFunc(ctx context.Context, norm string) func(i int) (float64, error) {
	vs, ok := m.scorer.(VectorScorer)
	if !ok {
		return func(i int) (float64, error) {
			return m.scorer.Similarity(ctx, norm, m.normalized[i])
		}
	}

	var (
		uv   []float64
		cv   [][]float64
		err  error
		done bool
	)
	return func(i int) (float64, error) {
		if !done {
			done = true
			if cv, err = m.questionVectors(ctx, vs); err == nil {
				uv, err = vs.Embed(ctx, norm)
			}
		}
		if err != nil {
			return 0, err
		}
		return Cosine(uv, cv[i]), nil
	}
}

func (m *QuestionMatcher) questionVectors(ctx context.Context, vs VectorScorer) ([][]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vectors != nil {
		return m.vectors, nil
	}
	vectors := make([][]float64, len(m.normalized))
	for i, q := range m.normalized {
		if q == "" {
			continue
		}
		v, err := vs.Embed(ctx, q)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	m.vectors = vectors
	return vectors, nil
}
