package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/storage"
)

// StorageKey holds the plain "dark" or "light" value.
const StorageKey = "theme"

type Service interface {
	Get(ctx context.Context, sessionID string) enums.Theme
	Set(ctx context.Context, sessionID string, value enums.Theme) (enums.Theme, error)
	Toggle(ctx context.Context, sessionID string) enums.Theme
}

type ServiceParams struct {
	Adapter storage.Adapter
	Logger  *logger.Logger
	// Default applies until a session picks a theme.
	Default string
}

type service struct {
	adapter  storage.Adapter
	logg     *logger.Logger
	fallback enums.Theme
}

func NewService(params ServiceParams) (Service, error) {
	if params.Adapter == nil {
		return nil, fmt.Errorf("storage adapter required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	fallback := enums.ThemeLight
	if params.Default != "" {
		parsed, err := enums.ParseTheme(params.Default)
		if err != nil {
			return nil, err
		}
		fallback = parsed
	}
	return &service{adapter: params.Adapter, logg: params.Logger, fallback: fallback}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) enums.Theme {
	raw, err := storage.Scoped(s.adapter, sessionID).Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logg.Warn(ctx, fmt.Sprintf("theme read failed: %v", err))
		}
		return s.fallback
	}
	parsed, err := enums.ParseTheme(string(raw))
	if err != nil {
		return s.fallback
	}
	return parsed
}

func (s *service) Set(ctx context.Context, sessionID string, value enums.Theme) (enums.Theme, error) {
	if !value.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "theme must be light or dark").
			WithDetails(map[string]any{"field": "theme"})
	}
	s.persist(ctx, sessionID, value)
	return value, nil
}

func (s *service) Toggle(ctx context.Context, sessionID string) enums.Theme {
	next := s.Get(ctx, sessionID).Opposite()
	s.persist(ctx, sessionID, next)
	return next
}

func (s *service) persist(ctx context.Context, sessionID string, value enums.Theme) {
	if err := storage.Scoped(s.adapter, sessionID).Set(ctx, StorageKey, []byte(value), 0); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("theme persist failed: %v", err))
	}
}
