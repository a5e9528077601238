package reviews

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/storage"
)

func newService(t *testing.T, adapter storage.Adapter, now func() time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Adapter:       adapter,
		Logger:        logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		MaxImageBytes: 64,
		Now:           now,
	})
	require.NoError(t, err)
	return svc
}

func clock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestAddPrependsAndPersists(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	svc := newService(t, mem, clock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)))

	_, err := svc.Add(ctx, "s1", "p1", Input{Rating: 4, Text: "  solid phone "})
	require.NoError(t, err)
	list, err := svc.Add(ctx, "s1", "p1", Input{Rating: 9, Text: "great", Image: "data:image/png;base64,AAAA"})
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "great", list[0].Text)
	assert.Equal(t, 5, list[0].Rating)
	assert.Equal(t, "2025-03-01T09:00:02.000Z", list[0].CreatedAt)
	assert.Equal(t, "1740819602000", list[0].ID)
	assert.Equal(t, "solid phone", list[1].Text)

	assert.Equal(t, list, svc.List(ctx, "s1", "p1"))
	assert.Empty(t, svc.List(ctx, "s2", "p1"))
	assert.Empty(t, svc.List(ctx, "s1", "p2"))

	raw, err := mem.Get(ctx, "s1:reviews:p1")
	require.NoError(t, err)
	var stored []map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, "great", stored[0]["text"])
}

func TestAddValidation(t *testing.T) {
	svc := newService(t, storage.NewMemoryStore(), nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		productID string
		input     Input
	}{
		{name: "blank text", productID: "p1", input: Input{Rating: 5, Text: "   "}},
		{name: "blank product", productID: " ", input: Input{Rating: 5, Text: "ok"}},
		{name: "not a data url", productID: "p1", input: Input{Rating: 5, Text: "ok", Image: "https://x/y.png"}},
		{name: "image too large", productID: "p1", input: Input{Rating: 5, Text: "ok", Image: "data:image/png;base64," + string(make([]byte, 100))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, "s1", tt.productID, tt.input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestRatingIsClamped(t *testing.T) {
	svc := newService(t, storage.NewMemoryStore(), nil)
	list, err := svc.Add(context.Background(), "s1", "p1", Input{Rating: 0, Text: "meh"})
	require.NoError(t, err)
	assert.Equal(t, 1, list[0].Rating)
}

func TestCorruptReviewsDegradeToEmpty(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.Set(ctx, "s1:reviews:p1", []byte(`"nope"`), 0))

	svc := newService(t, mem, nil)
	assert.Empty(t, svc.List(ctx, "s1", "p1"))
}

func TestComputeStats(t *testing.T) {
	var list []Review
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"1","rating":5,"text":"a"},
		{"id":"2","rating":"4","text":"b"},
		{"id":"3","rating":4,"text":"c"},
		{"id":"4","rating":null,"text":"d"}
	]`), &list))

	stats := ComputeStats(list)
	assert.Equal(t, 4, stats.Count)
	assert.InDelta(t, 3.25, stats.Average, 1e-9)
	assert.Equal(t, [5]int{1, 0, 0, 2, 1}, stats.ByStar)

	assert.Equal(t, Stats{}, ComputeStats(nil))
}
