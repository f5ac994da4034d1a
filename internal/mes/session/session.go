// Package session tracks revoked bearer tokens.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/redis/go-redis/v9"
)

// Store remembers logged-out tokens until they would have expired anyway
type Store interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// New picks the backend named in cfg. rdb is only used for the redis backend.
func New(cfg *config.Config, rdb *redis.Client) (Store, error) {
	switch cfg.Auth.SessionBackend {
	case config.SessionBackendMemory, "":
		return NewMemory(time.Now), nil
	case config.SessionBackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis session backend needs a redis client")
		}
		return NewRedis(rdb), nil
	}
	return nil, fmt.Errorf("unknown session backend %q", cfg.Auth.SessionBackend)
}

// Memory process-local store
type Memory struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemory(now func() time.Time) *Memory {
	return &Memory{revoked: make(map[string]time.Time), now: now}
}

func (m *Memory) Revoke(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[token] = m.now().Add(ttl)
	m.sweepLocked()
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.revoked[token]
	if !ok {
		return false, nil
	}
	if !m.now().Before(until) {
		delete(m.revoked, token)
		return false, nil
	}
	return true, nil
}

func (m *Memory) sweepLocked() {
	now := m.now()
	for token, until := range m.revoked {
		if !now.Before(until) {
			delete(m.revoked, token)
		}
	}
}

// Redis store shared between replicas; entries expire with the token
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, revokedKey(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *Redis) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:revoked:" + hex.EncodeToString(sum[:])
}

// NewRedisClient connects using the redis section of cfg and pings once
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
