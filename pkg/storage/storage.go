// Package storage is the key/value persistence adapter behind the cart, wishlist,
// reviews, theme and product preview features. Backends are swappable: process
// memory, Redis, or a SQL table through GORM.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront/pkg/metrics"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("storage: key not found")

// Adapter is the persistence contract shared by every backend.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key; ttl <= 0 keeps it until removed.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// GetJSON decodes the value stored at key into dest.
func GetJSON(ctx context.Context, a Adapter, key string, dest any) error {
	raw, err := a.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes value and stores it at key.
func SetJSON(ctx context.Context, a Adapter, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return a.Set(ctx, key, raw, ttl)
}

type scoped struct {
	next   Adapter
	prefix string
}

// Scoped prefixes every key with namespace, so sessions never share entries.
func Scoped(a Adapter, namespace string) Adapter {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return a
	}
	return &scoped{next: a, prefix: namespace + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.next.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.next.Set(ctx, s.prefix+key, value, ttl)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	return s.next.Remove(ctx, s.prefix+key)
}

type instrumented struct {
	next    Adapter
	backend string
	metrics *metrics.StorageMetrics
}

// Instrumented counts backend failures; ErrNotFound is not a failure.
func Instrumented(a Adapter, backend string, m *metrics.StorageMetrics) Adapter {
	if m == nil {
		return a
	}
	return &instrumented{next: a, backend: backend, metrics: m}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := i.next.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		i.metrics.IncError(i.backend, "get")
	}
	return value, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := i.next.Set(ctx, key, value, ttl)
	if err != nil {
		i.metrics.IncError(i.backend, "set")
	}
	return err
}

func (i *instrumented) Remove(ctx context.Context, key string) error {
	err := i.next.Remove(ctx, key)
	if err != nil {
		i.metrics.IncError(i.backend, "remove")
	}
	return err
}

// Purger is implemented by backends that need expired entries swept out.
// Redis expires keys on its own and does not implement it.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// AsPurger returns the purger behind a, looking through Instrumented.
func AsPurger(a Adapter) (Purger, bool) {
	if i, ok := a.(*instrumented); ok {
		a = i.next
	}
	p, ok := a.(Purger)
	return p, ok
}
