package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
)

const testSession = "session-abc123"

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

// fakeCatalog serves canned products; err, when set, fails every call.
type fakeCatalog struct {
	apple    []catalog.Product
	used     []catalog.Product
	speakers []catalog.Product
	brands   []catalog.Brand
	products map[string]catalog.Product
	err      error

	lastUsed bool
}

func (f *fakeCatalog) Apple(_ context.Context, used bool) ([]catalog.Product, error) {
	f.lastUsed = used
	return f.apple, f.err
}

func (f *fakeCatalog) Android(context.Context, string) ([]catalog.Product, error) {
	return nil, f.err
}

func (f *fakeCatalog) Used(context.Context) ([]catalog.Product, error) { return f.used, f.err }

func (f *fakeCatalog) Speakers(context.Context) ([]catalog.Product, error) {
	return f.speakers, f.err
}

func (f *fakeCatalog) Coolers(context.Context) ([]catalog.Product, error) { return nil, f.err }

func (f *fakeCatalog) Accessories(context.Context) ([]catalog.Product, error) { return nil, f.err }

func (f *fakeCatalog) Brands(context.Context) ([]catalog.Brand, error) { return f.brands, f.err }

func (f *fakeCatalog) SpeakerBrands(context.Context) ([]catalog.Brand, error) { return nil, f.err }

func (f *fakeCatalog) Product(_ context.Context, id string) (*catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func (f *fakeCatalog) Home(context.Context) (*catalog.Home, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &catalog.Home{Apple: f.apple, Speakers: f.speakers, Brands: f.brands}, nil
}

func newRequest(method, target string, body any, params map[string]string) *http.Request {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := middleware.WithSessionID(req.Context(), testSession)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	env := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var env types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}
