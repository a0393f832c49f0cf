package service

import (
	"context"
	"math"
)

// Embedder 把文本映射为向量
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Scorer 语义相似度：对称、取值 [0,1]、对相同输入结果确定
type Scorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// VectorScorer 能直接给出向量的打分器，匹配器据此缓存标准问题向量，
// 每次匹配只对用户发言做一次 Embed
type VectorScorer interface {
	Scorer
	Embed(ctx context.Context, text string) ([]float64, error)
}

type EmbeddingScorer struct {
	embedder Embedder
}

func NewEmbeddingScorer(e Embedder) *EmbeddingScorer {
	return &EmbeddingScorer{embedder: e}
}

// Similarity 任一文本为空时返回 0
func (s *EmbeddingScorer) Similarity(ctx context.Context, a, b string) (float64, error) {
	if a == "" || b == "" {
		return 0, nil
	}
	va, err := s.embedder.Embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := s.embedder.Embed(ctx, b)
	if err != nil {
		return 0, err
	}
	return Cosine(va, vb), nil
}

func (s *EmbeddingScorer) Embed(ctx context.Context, text string) ([]float64, error) {
	return s.embedder.Embed(ctx, text)
}

// Cosine 余弦相似度，截断到 [0,1]；维度不一致或零向量返回 0
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	c := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, c))
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
