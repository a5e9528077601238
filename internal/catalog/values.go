package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// Number is a lenient numeric field: JSON numbers, numeric strings and null all
// decode, and anything unparseable decodes to 0 without an error.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	if f, ok := parseLenientFloat(data); ok {
		*n = Number(f)
	}
	return nil
}

// Float64 returns the value, mapping non-finite values to 0.
func (n Number) Float64() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseLenientFloat(data []byte) (float64, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return 0, false
	}
	raw := string(trimmed)
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, false
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Flag is a lenient optional boolean (true/false or their string forms).
type Flag struct {
	Value bool
	Set   bool
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = Flag{}
	switch strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`)) {
	case "true":
		*f = Flag{Value: true, Set: true}
	case "false":
		*f = Flag{Value: false, Set: true}
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return jsonNull, nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil when the flag was absent.
func (f Flag) Ptr() *bool {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

type colorKind uint8

const (
	colorNone colorKind = iota
	colorString
	colorObject
)

// Color is one entry of a catalog colors list. Upstream sends either plain
// strings ("Midnight", "#1f2937") or populated documents.
type Color struct {
	ID       string
	Name     string
	ImageURL string
	Hex      string
	kind     colorKind
}

// ColorName builds a plain string color.
func ColorName(name string) Color {
	return Color{Name: name, kind: colorString}
}

// ColorDocument builds a populated color document.
func ColorDocument(id, name, imageURL, hex string) Color {
	return Color{ID: id, Name: name, ImageURL: imageURL, Hex: hex, kind: colorObject}
}

func (c Color) IsDocument() bool { return c.kind == colorObject }

// Valid reports whether the entry was a string or a document.
func (c Color) Valid() bool { return c.kind != colorNone }

func (c *Color) UnmarshalJSON(data []byte) error {
	*c = Color{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			*c = ColorName(s)
		}
	case '{':
		var doc struct {
			MongoID  string `json:"_id"`
			ID       string `json:"id"`
			Name     string `json:"name"`
			ImageURL string `json:"imageUrl"`
			Hex      string `json:"hex"`
		}
		_ = json.Unmarshal(trimmed, &doc)
		id := doc.MongoID
		if id == "" {
			id = doc.ID
		}
		*c = ColorDocument(id, doc.Name, doc.ImageURL, doc.Hex)
	}
	return nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case colorString:
		return json.Marshal(c.Name)
	case colorObject:
		return json.Marshal(struct {
			ID       string `json:"id,omitempty"`
			Name     string `json:"name"`
			ImageURL string `json:"imageUrl,omitempty"`
			Hex      string `json:"hex,omitempty"`
		}{c.ID, c.Name, c.ImageURL, c.Hex})
	}
	return jsonNull, nil
}

// StorageOption is one storage capacity in GB. Upstream sends numbers, numeric
// strings or {valueGB} documents; anything else is kept as an invalid entry.
type StorageOption struct {
	GB    float64
	Valid bool
}

// StorageGB builds a valid option.
func StorageGB(gb float64) StorageOption {
	return StorageOption{GB: gb, Valid: true}
}

func (s *StorageOption) UnmarshalJSON(data []byte) error {
	*s = StorageOption{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil
		}
		raw, ok := doc["valueGB"]
		if !ok {
			return nil
		}
		trimmed = raw
		if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
			*s = StorageGB(0)
			return nil
		}
	}
	if f, ok := parseLenientFloat(trimmed); ok {
		*s = StorageGB(f)
	}
	return nil
}

func (s StorageOption) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return jsonNull, nil
	}
	return json.Marshal(s.GB)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
