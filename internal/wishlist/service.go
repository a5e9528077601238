package wishlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/storage"
)

// StorageKey holds the session's liked product ids as a JSON array.
const StorageKey = "wishlist:v1"

// Service manages per-session wishlists. Read failures degrade to an empty
// list and write failures are logged, never surfaced.
type Service interface {
	IDs(ctx context.Context, sessionID string) []string
	Contains(ctx context.Context, sessionID, productID string) bool
	// Toggle flips membership and reports whether the product is now liked.
	Toggle(ctx context.Context, sessionID, productID string) (bool, error)
}

type ServiceParams struct {
	Adapter storage.Adapter
	Logger  *logger.Logger
}

type service struct {
	adapter storage.Adapter
	logg    *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Adapter == nil {
		return nil, fmt.Errorf("storage adapter required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{adapter: params.Adapter, logg: params.Logger}, nil
}

func (s *service) IDs(ctx context.Context, sessionID string) []string {
	return s.load(ctx, sessionID)
}

func (s *service) Contains(ctx context.Context, sessionID, productID string) bool {
	productID = strings.TrimSpace(productID)
	for _, id := range s.load(ctx, sessionID) {
		if id == productID {
			return true
		}
	}
	return false
}

func (s *service) Toggle(ctx context.Context, sessionID, productID string) (bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	ids := s.load(ctx, sessionID)
	next := make([]string, 0, len(ids)+1)
	liked := true
	for _, id := range ids {
		if id == productID {
			liked = false
			continue
		}
		next = append(next, id)
	}
	if liked {
		next = append(next, productID)
	}

	if err := storage.SetJSON(ctx, s.scoped(sessionID), StorageKey, next, 0); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("wishlist persist failed: %v", err))
	}
	return liked, nil
}

func (s *service) load(ctx context.Context, sessionID string) []string {
	var ids []string
	err := storage.GetJSON(ctx, s.scoped(sessionID), StorageKey, &ids)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logg.Warn(ctx, fmt.Sprintf("wishlist read failed: %v", err))
		}
		return []string{}
	}
	return dedupe(ids)
}

func (s *service) scoped(sessionID string) storage.Adapter {
	return storage.Scoped(s.adapter, sessionID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
