// Package credstore keeps the credential record in Redis so several
// terminals on one host can share a sign-in.
package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pawshelter/petcare/internal/session"
)

// ErrRedisUnavailable wraps connection failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Redis stores the two credential entries under a key prefix.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

var _ session.Storage = (*Redis)(nil)

// New returns a Redis-backed credential store.
func New(rdb *redis.Client, prefix string) *Redis {
	return &Redis{rdb: rdb, prefix: prefix}
}

// Dial connects to addr and checks the server answers.
func Dial(ctx context.Context, addr string, db int, prefix string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return New(rdb, prefix), nil
}

// Close releases the client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

func (r *Redis) userKey() string  { return r.prefix + session.KeyUser }
func (r *Redis) tokenKey() string { return r.prefix + session.KeyToken }

// LoadCredentials reads both entries with one MGET.
func (r *Redis) LoadCredentials(ctx context.Context) (string, string, error) {
	vals, err := r.rdb.MGet(ctx, r.userKey(), r.tokenKey()).Result()
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return asString(vals[0]), asString(vals[1]), nil
}

// SaveCredentials writes both entries in a MULTI/EXEC block.
func (r *Redis) SaveCredentials(ctx context.Context, user, token string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.tokenKey(), token, 0)
		pipe.Set(ctx, r.userKey(), user, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// ClearCredentials deletes both entries with one DEL.
func (r *Redis) ClearCredentials(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.userKey(), r.tokenKey()).Err(); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
