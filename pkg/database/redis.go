package database

import (
	"context"
	"fmt"
	"time"

	"rental_coach_backend/internal/config"
	applog "rental_coach_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// InitRedis redis.enabled=false 时返回 nil, nil
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}

	applog.Log.Info("Redis connection established")
	return rdb, nil
}
