package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"rental_coach_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedEmbedder 用 Redis 缓存向量；缓存读写失败只记录日志，不影响结果
type CachedEmbedder struct {
	inner Embedder
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedEmbedder(inner Embedder, rdb *redis.Client, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, rdb: rdb, ttl: ttl}
}

func (e *CachedEmbedder) Name() string { return e.inner.Name() }

func (e *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embed:%s:%s", e.inner.Name(), hex.EncodeToString(sum[:]))
}

func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := e.key(text)

	raw, err := e.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var v []float64
		if jerr := json.Unmarshal(raw, &v); jerr == nil {
			return v, nil
		}
	} else if err != redis.Nil {
		logger.Log.Warn("embedding cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(v); jerr == nil {
		if serr := e.rdb.Set(ctx, key, data, e.ttl).Err(); serr != nil {
			logger.Log.Warn("embedding cache write failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return v, nil
}
