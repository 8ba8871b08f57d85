package projects

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Credits is a project's carbon credit balance. It may be fractional or
// negative; the dataset does not enforce a sign.
type Credits float64

func (c Credits) String() string {
	return strconv.FormatFloat(float64(c), 'f', -1, 64)
}

func (c Credits) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null (zero).
func (c *Credits) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseNumber(s)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("credits must be a number, got %s", data)
	}
	*c = Credits(f)
	return nil
}

// Record is one project entry of the dataset.
type Record struct {
	Name    string  `json:"name"`
	Link    string  `json:"link"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Biome   string  `json:"biome"`
	Vintage string  `json:"vintage"`
	Credits Credits `json:"credits"`
	Video   string  `json:"video,omitempty"`

	// Extra keeps fields this package does not model so rewrites preserve them.
	Extra map[string]json.RawMessage `json:"-"`

	// loaded holds the keys present when the record was decoded; nil for new records.
	loaded map[string]bool
}

var knownFields = []string{"name", "link", "country", "state", "biome", "vintage", "credits", "video"}

// recordFields mirrors Record without methods so decoding can use the default codec.
type recordFields struct {
	Name    *string `json:"name"`
	Link    string  `json:"link"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Biome   string  `json:"biome"`
	Vintage string  `json:"vintage"`
	Credits Credits `json:"credits"`
	Video   string  `json:"video,omitempty"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("entry must be a JSON object")
	}
	if raw == nil {
		return fmt.Errorf("entry must be a JSON object")
	}
	var fields recordFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields.Name == nil || *fields.Name == "" {
		return fmt.Errorf("name must be a non-empty string")
	}
	*r = Record{
		Name:    *fields.Name,
		Link:    fields.Link,
		Country: fields.Country,
		State:   fields.State,
		Biome:   fields.Biome,
		Vintage: fields.Vintage,
		Credits: fields.Credits,
		Video:   fields.Video,
	}
	r.loaded = make(map[string]bool, len(knownFields))
	for _, key := range knownFields {
		if _, ok := raw[key]; ok {
			r.loaded[key] = true
		}
		delete(raw, key)
	}
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

// MarshalJSON writes the modeled fields in dataset order followed by Extra
// sorted by key. A decoded record keeps its own key set: an empty field that
// was absent on load stays absent. New records carry every field except an
// empty video.
func (r Record) MarshalJSON() ([]byte, error) {
	fields := []struct {
		key   string
		value any
		empty bool
	}{
		{"name", r.Name, false},
		{"link", r.Link, r.Link == ""},
		{"country", r.Country, r.Country == ""},
		{"state", r.State, r.State == ""},
		{"biome", r.Biome, r.Biome == ""},
		{"vintage", r.Vintage, r.Vintage == ""},
		{"credits", r.Credits, r.Credits == 0},
		{"video", r.Video, r.Video == ""},
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeField := func(key string, value []byte) error {
		encodedKey, err := marshalRaw(key)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(value)
		return nil
	}

	for _, f := range fields {
		if f.empty && !r.keepsKey(f.key) {
			continue
		}
		value, err := marshalRaw(f.value)
		if err != nil {
			return nil, err
		}
		if err := writeField(f.key, value); err != nil {
			return nil, err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(r.Extra)) {
		if err := writeField(key, r.Extra[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r Record) keepsKey(key string) bool {
	if r.loaded != nil {
		return r.loaded[key]
	}
	return key != "video"
}

// marshalRaw encodes v without HTML escaping so names such as "R&D" stay
// readable in the dataset file.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Line renders the record the way `list` prints it.
func (r Record) Line() string {
	return fmt.Sprintf("- %s (credits: %s)", r.Name, r.Credits)
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	if r.Extra != nil {
		out.Extra = maps.Clone(r.Extra)
	}
	if r.loaded != nil {
		out.loaded = maps.Clone(r.loaded)
	}
	return out
}
