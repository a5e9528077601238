package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberIsLenient(t *testing.T) {
	t.Parallel()
	var payload struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": 12.5, "b": " 40 ", "c": null, "d": "abc", "e": {"x": 1}}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, 12.5, payload.A.Float64())
	assert.Equal(t, float64(40), payload.B.Float64())
	assert.Zero(t, payload.C.Float64())
	assert.Zero(t, payload.D.Float64())
	assert.Zero(t, payload.E.Float64())
}

func TestFlag(t *testing.T) {
	t.Parallel()
	var payload struct {
		A Flag `json:"a"`
		B Flag `json:"b"`
		C Flag `json:"c"`
		D Flag `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": true, "b": "false", "c": 3}`), &payload))
	require.NotNil(t, payload.A.Ptr())
	assert.True(t, *payload.A.Ptr())
	require.NotNil(t, payload.B.Ptr())
	assert.False(t, *payload.B.Ptr())
	assert.Nil(t, payload.C.Ptr())
	assert.Nil(t, payload.D.Ptr())
}

func TestColorRoundTripKeepsShape(t *testing.T) {
	t.Parallel()
	var colors []Color
	require.NoError(t, json.Unmarshal([]byte(`["Red", {"id": "c1", "name": "Blue", "imageUrl": "/b.png"}, 5]`), &colors))
	require.Len(t, colors, 3)
	assert.False(t, colors[2].Valid())

	out, err := json.Marshal(colors[:2])
	require.NoError(t, err)
	assert.JSONEq(t, `["Red", {"id": "c1", "name": "Blue", "imageUrl": "/b.png"}]`, string(out))
}

func TestStorageOptionDecoding(t *testing.T) {
	t.Parallel()
	var options []StorageOption
	require.NoError(t, json.Unmarshal([]byte(`[64, "128", {"valueGB": "256"}, {"label": "x"}, "", true]`), &options))
	require.Len(t, options, 6)
	assert.Equal(t, StorageGB(64), options[0])
	assert.Equal(t, StorageGB(128), options[1])
	assert.Equal(t, StorageGB(256), options[2])
	assert.False(t, options[3].Valid)
	assert.False(t, options[4].Valid)
	assert.False(t, options[5].Valid)
}
