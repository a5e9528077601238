package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/storage"
)

// StorageKey is where a session's cart lives.
const StorageKey = "cart"

// Store is one shopper's cart. It hydrates from storage once, on first access,
// and writes the whole cart back after every mutation. Storage failures are
// logged and otherwise ignored: the in-memory cart stays authoritative.
type Store struct {
	mu      sync.Mutex
	adapter storage.Adapter
	logg    *logger.Logger
	metrics *metrics.CartMetrics

	loaded bool
	lines  []Line
}

type StoreParams struct {
	Adapter storage.Adapter
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
}

func NewStore(params StoreParams) (*Store, error) {
	if params.Adapter == nil {
		return nil, fmt.Errorf("storage adapter required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Store{
		adapter: params.Adapter,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// Load hydrates the cart if it has not been hydrated yet.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
}

// Reload drops the in-memory lines and hydrates again from storage.
func (s *Store) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.ensureLoaded(ctx)
}

// Items returns a copy of the current lines.
func (s *Store) Items(ctx context.Context) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return cloneLines(s.lines)
}

// AddItem merges into an existing line with the same id or appends a new one.
// A quantity below one counts as one.
func (s *Store) AddItem(ctx context.Context, line Line) []Line {
	line.ID = normalizeID(line.ID)
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	return s.mutate(ctx, "add", func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == line.ID {
				lines[i].Quantity += line.Quantity
				return lines
			}
		}
		return append(lines, line)
	})
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) []Line {
	id = normalizeID(id)
	if quantity <= 0 {
		return s.RemoveItem(ctx, id)
	}
	return s.mutate(ctx, "update", func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == id {
				lines[i].Quantity = quantity
			}
		}
		return lines
	})
}

func (s *Store) RemoveItem(ctx context.Context, id string) []Line {
	id = normalizeID(id)
	return s.mutate(ctx, "remove", func(lines []Line) []Line {
		out := lines[:0]
		for _, l := range lines {
			if l.ID != id {
				out = append(out, l)
			}
		}
		return out
	})
}

func (s *Store) ClearCart(ctx context.Context) []Line {
	return s.mutate(ctx, "clear", func([]Line) []Line {
		return []Line{}
	})
}

func (s *Store) mutate(ctx context.Context, op string, fn func([]Line) []Line) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	s.lines = fn(s.lines)
	s.metrics.IncMutation(op)
	s.persist(ctx)
	return cloneLines(s.lines)
}

func (s *Store) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	s.lines = []Line{}

	var stored []Line
	err := storage.GetJSON(ctx, s.adapter, StorageKey, &stored)
	switch {
	case err == nil:
		s.lines = sanitize(stored)
	case errors.Is(err, storage.ErrNotFound):
	default:
		s.logg.Warn(ctx, fmt.Sprintf("cart hydrate failed, starting empty: %v", err))
	}
}

func (s *Store) persist(ctx context.Context) {
	// The write must land even if the shopper's request was cancelled mid-mutation.
	ctx = context.WithoutCancel(ctx)
	if err := storage.SetJSON(ctx, s.adapter, StorageKey, s.lines, 0); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("cart persist failed: %v", err))
	}
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}
