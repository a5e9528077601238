package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/storage"
)

const (
	defaultIdleTTL = 30 * time.Minute
	sweepInterval  = time.Minute
)

// Manager hands out one Store per session. Stores that sit idle are dropped
// from memory; the next request rehydrates them from storage.
//
// A held Store trusts its in-memory lines until it is evicted, so with a
// shared redis or sql backend and several replicas, a replica holding a stale
// cart overwrites lines written through another one (last writer wins). Run
// replicas with sticky sessions, or set ReloadEachRequest
// (STOREFRONT_CART_RELOAD_EACH_REQUEST) to rehydrate on every For call.
type Manager struct {
	adapter storage.Adapter
	logg    *logger.Logger
	metrics *metrics.CartMetrics
	taxRate decimal.Decimal
	idleTTL time.Duration
	reload  bool
	now     func() time.Time

	mu        sync.Mutex
	sessions  map[string]*session
	lastSweep time.Time
}

type session struct {
	store    *Store
	lastSeen time.Time
}

type ManagerParams struct {
	Adapter storage.Adapter
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
	TaxRate string
	IdleTTL time.Duration
	// ReloadEachRequest rehydrates the cart from storage on every For call.
	ReloadEachRequest bool
}

func NewManager(params ManagerParams) (*Manager, error) {
	if params.Adapter == nil {
		return nil, fmt.Errorf("storage adapter required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	rate, err := ParseTaxRate(params.TaxRate)
	if err != nil {
		return nil, err
	}
	idle := params.IdleTTL
	if idle <= 0 {
		idle = defaultIdleTTL
	}
	return &Manager{
		adapter:  params.Adapter,
		logg:     params.Logger,
		metrics:  params.Metrics,
		taxRate:  rate,
		idleTTL:  idle,
		reload:   params.ReloadEachRequest,
		now:      time.Now,
		sessions: make(map[string]*session),
	}, nil
}

// For returns the hydrated cart of sessionID.
func (m *Manager) For(ctx context.Context, sessionID string) (*Store, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}

	m.mu.Lock()
	now := m.now()
	m.sweep(now)
	entry, ok := m.sessions[sessionID]
	if !ok {
		store, err := NewStore(StoreParams{
			Adapter: storage.Scoped(m.adapter, sessionID),
			Logger:  m.logg,
			Metrics: m.metrics,
		})
		if err != nil {
			m.mu.Unlock()
			return nil, err
		}
		entry = &session{store: store}
		m.sessions[sessionID] = entry
	}
	entry.lastSeen = now
	m.mu.Unlock()

	if m.reload {
		entry.store.Reload(ctx)
	} else {
		entry.store.Load(ctx)
	}
	return entry.store, nil
}

// Totals prices the given lines with the configured tax rate.
func (m *Manager) Totals(lines []Line) Totals {
	return ComputeTotals(lines, m.taxRate)
}

// Evict drops every idle session now and reports how many were released.
func (m *Manager) Evict(context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.lastSweep = now
	return m.evictIdle(now)
}

// Sessions reports how many carts are held in memory.
func (m *Manager) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = now
	m.evictIdle(now)
}

func (m *Manager) evictIdle(now time.Time) int {
	evicted := 0
	for id, entry := range m.sessions {
		if now.Sub(entry.lastSeen) > m.idleTTL {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}
