package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"futurenews/internal/model"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "futurenews:batch:"

// Redis stores batches in Redis so they survive API restarts. Failures are
// logged and treated as a cache miss.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Put(ctx context.Context, year int, lang string, stories []model.Story) {
	data, err := json.Marshal(stories)
	if err != nil {
		slog.Error("error encoding batch for redis", "error", err, "year", year, "lang", lang)
		return
	}

	if err := r.client.Set(ctx, redisKeyPrefix+Key(year, lang), data, 0).Err(); err != nil {
		slog.Error("error writing batch to redis", "error", err, "year", year, "lang", lang)
	}
}

func (r *Redis) Get(ctx context.Context, year int, lang string) []model.Story {
	data, err := r.client.Get(ctx, redisKeyPrefix+Key(year, lang)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}

	if err != nil {
		slog.Error("error reading batch from redis", "error", err, "year", year, "lang", lang)
		return nil
	}

	var stories []model.Story
	if err := json.Unmarshal(data, &stories); err != nil {
		slog.Error("error decoding batch from redis", "error", err, "year", year, "lang", lang)
		return nil
	}

	return stories
}
