package reviews

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/storage"
)

const (
	keyPrefix  = "reviews:"
	isoMillis  = "2006-01-02T15:04:05.000Z"
	dataURLTag = "data:image/"
)

// Key is the storage key of a product's reviews.
func Key(productID string) string {
	return keyPrefix + productID
}

// Input is a new review as submitted by a shopper.
type Input struct {
	Rating int
	Text   string
	// Image is an optional data:image/... URL.
	Image string
}

// Service keeps per-session, per-product reviews, newest first.
type Service interface {
	List(ctx context.Context, sessionID, productID string) []Review
	Add(ctx context.Context, sessionID, productID string, input Input) ([]Review, error)
}

type ServiceParams struct {
	Adapter storage.Adapter
	Logger  *logger.Logger
	// MaxImageBytes caps the data URL length; zero means no cap.
	MaxImageBytes int
	Now           func() time.Time
}

type service struct {
	adapter  storage.Adapter
	logg     *logger.Logger
	maxImage int
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Adapter == nil {
		return nil, fmt.Errorf("storage adapter required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		adapter:  params.Adapter,
		logg:     params.Logger,
		maxImage: params.MaxImageBytes,
		now:      now,
	}, nil
}

func (s *service) List(ctx context.Context, sessionID, productID string) []Review {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return []Review{}
	}
	return s.load(ctx, sessionID, productID)
}

// Add validates input, prepends the review and returns the updated list.
func (s *service) Add(ctx context.Context, sessionID, productID string, input Input) ([]Review, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review text is required").
			WithDetails(map[string]any{"field": "text"})
	}
	image := strings.TrimSpace(input.Image)
	if image != "" && !strings.HasPrefix(image, dataURLTag) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review image must be an image data url").
			WithDetails(map[string]any{"field": "image"})
	}
	if s.maxImage > 0 && len(image) > s.maxImage {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review image is too large").
			WithDetails(map[string]any{"field": "image", "max_bytes": s.maxImage})
	}

	now := s.now().UTC()
	review := Review{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Rating:    clampRating(input.Rating),
		Text:      text,
		Image:     image,
		CreatedAt: now.Format(isoMillis),
	}

	next := append([]Review{review}, s.load(ctx, sessionID, productID)...)
	if err := storage.SetJSON(ctx, storage.Scoped(s.adapter, sessionID), Key(productID), next, 0); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("reviews persist failed: %v", err))
	}
	return next, nil
}

func (s *service) load(ctx context.Context, sessionID, productID string) []Review {
	var list []Review
	err := storage.GetJSON(ctx, storage.Scoped(s.adapter, sessionID), Key(productID), &list)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logg.Warn(ctx, fmt.Sprintf("reviews read failed: %v", err))
		}
		return []Review{}
	}
	if list == nil {
		return []Review{}
	}
	return list
}
