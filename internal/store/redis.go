package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"truthrecruit-engine/internal/domain"
)

const redisKeyPrefix = "truthrecruit:report:"

// Redis relies on key expiry, so PurgeExpired has nothing to do.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects to url. A non-empty password overrides the one in the URL.
func NewRedis(ctx context.Context, url, password string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{rdb: rdb, ttl: ttl}, nil
}

func reportKey(id string) string { return redisKeyPrefix + id }

func (r *Redis) Save(ctx context.Context, a domain.CompanyAnalysis) error {
	if a.CompanyID == "" {
		return errors.New("save report: empty company id")
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := r.rdb.Set(ctx, reportKey(a.CompanyID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("save report %s: %w", a.CompanyID, err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, id string) (domain.CompanyAnalysis, error) {
	b, err := r.rdb.Get(ctx, reportKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CompanyAnalysis{}, ErrNotFound
	}
	if err != nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("get report %s: %w", id, err)
	}

	var a domain.CompanyAnalysis
	if err := json.Unmarshal(b, &a); err != nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("decode report %s: %w", id, err)
	}
	return a, nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, reportKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) PurgeExpired(context.Context) (int64, error) { return 0, nil }

func (r *Redis) Close() error { return r.rdb.Close() }
