package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

type reviewBody struct {
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
	Text   string `json:"text" validate:"required,max=10"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"rating":4,"text":"nice"}`))
	var body reviewBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, reviewBody{Rating: 4, Text: "nice"}, body)
}

func TestDecodeJSONBodyValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"rating":9,"text":""}`))
	var body reviewBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]string{
		"rating": "must be less than or equal to 5",
		"text":   "is required",
	}, typed.Details())
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"rating":4,"text":"ok","extra":true}`))
	var body reviewBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestParseQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=20&min_price=99.5&used=true&category=iPhone,%20iPad&category=Watch&bad=x", nil)

	limit, err := ParseQueryInt(req, "limit", 24, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, 20, limit)

	page, err := ParseQueryInt(req, "page", 1, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	_, err = ParseQueryInt(req, "bad", 1, 1, 10)
	require.Error(t, err)

	min, err := ParseQueryFloat(req, "min_price")
	require.NoError(t, err)
	require.NotNil(t, min)
	assert.Equal(t, 99.5, *min)

	max, err := ParseQueryFloat(req, "max_price")
	require.NoError(t, err)
	assert.Nil(t, max)

	_, err = ParseQueryFloat(req, "bad")
	require.Error(t, err)

	used, err := ParseQueryBool(req, "used")
	require.NoError(t, err)
	assert.True(t, used)

	assert.Equal(t, []string{"iPhone", "iPad", "Watch"}, ParseQueryList(req, "category"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString("  abcdef ", 3))
	assert.Equal(t, "abcdef", SanitizeString("abcdef", 0))
	assert.Equal(t, "great\nphone", SanitizeString(" great\x00\nphone\x07 ", 0))
	// "•" is three bytes; a cut inside it backs off to the previous rune.
	assert.Equal(t, "Pixel", SanitizeString("Pixel • 128GB", 7))
}
