package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/productview"
	"github.com/angelmondragon/storefront/internal/wishlist"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type productDetailResponse struct {
	productview.View
	Wishlisted bool `json:"wishlisted"`
}

type variantRequest struct {
	ColorID   string   `json:"colorId"`
	Storage   *float64 `json:"storage" validate:"omitempty,gte=0"`
	Quantity  int      `json:"quantity" validate:"gte=0,lte=99"`
	AddToCart bool     `json:"addToCart"`
}

type variantResponse struct {
	Variant productview.Variant `json:"variant"`
	CartID  string              `json:"cartId"`
	Label   string              `json:"label"`
	Line    cart.Line           `json:"line"`
	Cart    *cartView           `json:"cart,omitempty"`
}

// ProductDetail renders the detail view; wishlist may be nil.
func ProductDetail(svc productview.Service, wl wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		sessionID, err := sessionFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		r, productID, err := productRequest(r, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Detail(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		resp := productDetailResponse{View: *view}
		if wl != nil {
			resp.Wishlisted = wl.Contains(r.Context(), sessionID, productID)
		}
		responses.WriteSuccess(w, resp)
	}
}

// ProductVariant resolves a color/storage selection and, with addToCart,
// puts the resulting line in the session cart.
func ProductVariant(svc productview.Service, carts cartProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		sessionID, err := sessionFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		r, productID, err := productRequest(r, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req variantRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.Variant(r.Context(), sessionID, productID, productview.Selection{
			ColorID: req.ColorID,
			Storage: req.Storage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line := variant.CartLine(req.Quantity)
		resp := variantResponse{
			Variant: *variant,
			CartID:  line.ID,
			Label:   line.Name,
			Line:    line,
		}

		if req.AddToCart {
			if carts == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
				return
			}
			store, err := carts.For(r.Context(), sessionID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			view := newCartView(carts, store.AddItem(r.Context(), line))
			resp.Cart = &view
		}
		responses.WriteSuccess(w, resp)
	}
}

// ProductPreview stores the listing card the shopper clicked so the detail
// page can fill gaps in the upstream record.
func ProductPreview(svc productview.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		sessionID, err := sessionFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		r, productID, err := productRequest(r, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var product catalog.Product
		if err := validators.DecodeJSONBody(r, &product); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product.ID = productID
		if err := svc.SavePreview(r.Context(), sessionID, product); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"id": productID})
	}
}
