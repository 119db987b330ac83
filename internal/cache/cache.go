// Package cache is the short-TTL memoization layer in front of the
// aggregation services. Entries are keyed by (namespace, key) where key is a
// user id; payloads are JSON bytes so the memory and redis stores stay
// interchangeable and repeat reads within a TTL window return byte-identical
// responses.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the get-or-compute contract shared by the memory and redis
// backends. A compute error must never populate the store.
type Store interface {
	GetOrCompute(ctx context.Context, namespace, key string, ttl time.Duration, compute func(context.Context) ([]byte, error)) ([]byte, error)
	Invalidate(ctx context.Context, namespace, key string) error
}

// GetOrCompute wraps a Store with a JSON codec for typed payloads.
func GetOrCompute[T any](ctx context.Context, s Store, namespace, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	raw, err := s.GetOrCompute(ctx, namespace, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, err
	}
	return out, nil
}
