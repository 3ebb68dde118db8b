package csvload

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is an ordered mapping from column name to raw value.
// A key may be present with a nil value (JSON null). Setting an existing key
// replaces its value but keeps its original position.
type Row struct {
	keys   []string
	values []*string
	index  map[string]int
}

// NewRow creates an empty row with room for n columns.
func NewRow(n int) *Row {
	return &Row{
		keys:   make([]string, 0, n),
		values: make([]*string, 0, n),
		index:  make(map[string]int, n),
	}
}

// Set assigns value to key.
func (r *Row) Set(key, value string) {
	r.set(key, &value)
}

// SetNull assigns a null value to key.
func (r *Row) SetNull(key string) {
	r.set(key, nil)
}

func (r *Row) set(key string, value *string) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.values[i] = value
		return
	}
	r.index[key] = len(r.keys)
	r.keys = append(r.keys, key)
	r.values = append(r.values, value)
}

// Get returns the value for key. ok is false when the key is absent or null.
func (r *Row) Get(key string) (value string, ok bool) {
	i, found := r.index[key]
	if !found || r.values[i] == nil {
		return "", false
	}
	return *r.values[i], true
}

// Keys returns the column names in insertion order.
func (r *Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Values returns the values in key order; nil marks a null.
func (r *Row) Values() []*string {
	out := make([]*string, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of keys.
func (r *Row) Len() int {
	return len(r.keys)
}

// MarshalJSON writes the row as a JSON object, keys in row order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if r.values[i] == nil {
			buf.WriteString("null")
			continue
		}
		v, err := json.Marshal(*r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving key order.
// Values must be strings or null.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row must be a JSON object, got %v", tok)
	}

	*r = Row{index: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("row key must be a string, got %v", tok)
		}

		var value *string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("row value for %q: %w", key, err)
		}
		r.set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
