package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/middleware"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

func sessionFrom(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}

func pathParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, name+" is required").WithDetails(map[string]any{"field": name})
	}
	return value, nil
}

// productRequest reads {productId} and returns r with the id attached to its
// log context.
func productRequest(r *http.Request, logg *logger.Logger) (*http.Request, string, error) {
	productID, err := pathParam(r, "productId")
	if err != nil {
		return r, "", err
	}
	if logg != nil {
		r = r.WithContext(logg.WithProductID(r.Context(), productID))
	}
	return r, productID, nil
}
