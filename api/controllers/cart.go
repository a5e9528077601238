package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type cartProvider interface {
	For(ctx context.Context, sessionID string) (*cart.Store, error)
	Totals(lines []cart.Line) cart.Totals
}

const maxLineName = 200

type cartView struct {
	Items  []cart.Line `json:"items"`
	Totals cart.Totals `json:"totals"`
}

type addCartItemRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity" validate:"gte=0,lte=99"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=99"`
}

func newCartView(carts cartProvider, lines []cart.Line) cartView {
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{Items: lines, Totals: carts.Totals(lines)}
}

func CartGet(carts cartProvider, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(carts, logg, func(r *http.Request, store *cart.Store) ([]cart.Line, error) {
		return store.Items(r.Context()), nil
	})
}

func CartClear(carts cartProvider, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(carts, logg, func(r *http.Request, store *cart.Store) ([]cart.Line, error) {
		return store.ClearCart(r.Context()), nil
	})
}

// CartAddItem merges into an existing line with the same id.
func CartAddItem(carts cartProvider, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(carts, logg, func(r *http.Request, store *cart.Store) ([]cart.Line, error) {
		var req addCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return store.AddItem(r.Context(), cart.Line{
			ID:       req.ID,
			Name:     validators.SanitizeString(req.Name, maxLineName),
			Price:    req.Price,
			Image:    req.Image,
			Quantity: req.Quantity,
		}), nil
	})
}

// CartUpdateItem sets a line's quantity; zero or less removes the line.
func CartUpdateItem(carts cartProvider, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(carts, logg, func(r *http.Request, store *cart.Store) ([]cart.Line, error) {
		lineID, err := pathParam(r, "lineId")
		if err != nil {
			return nil, err
		}
		var req updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return store.UpdateQuantity(r.Context(), lineID, *req.Quantity), nil
	})
}

func CartRemoveItem(carts cartProvider, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(carts, logg, func(r *http.Request, store *cart.Store) ([]cart.Line, error) {
		lineID, err := pathParam(r, "lineId")
		if err != nil {
			return nil, err
		}
		return store.RemoveItem(r.Context(), lineID), nil
	})
}

func cartHandler(carts cartProvider, logg *logger.Logger, op func(*http.Request, *cart.Store) ([]cart.Line, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := carts.For(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lines, err := op(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(carts, lines))
	}
}
