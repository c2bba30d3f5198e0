package furni

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Layers maps layer ids to layers and remembers insertion order.
//
// Iteration order follows JavaScript object key order, which is what the
// documents are authored against: array-index ids ("0", "1", ... as canonical
// decimal strings) ascending, then every other id in insertion order.
type Layers struct {
	ids  []string
	byID map[string]*Layer
}

// NewLayers returns an empty layer mapping.
func NewLayers() *Layers {
	return &Layers{byID: make(map[string]*Layer)}
}

// Len returns the number of layers. A nil *Layers is empty.
func (ls *Layers) Len() int {
	if ls == nil {
		return 0
	}
	return len(ls.ids)
}

// Get returns the layer for id.
func (ls *Layers) Get(id string) (*Layer, bool) {
	if ls == nil {
		return nil, false
	}
	l, ok := ls.byID[id]
	return l, ok
}

// Has reports whether id is present.
func (ls *Layers) Has(id string) bool {
	_, ok := ls.Get(id)
	return ok
}

// Set inserts or replaces the layer for id. Replacing keeps the id's position.
func (ls *Layers) Set(id string, l *Layer) {
	if ls.byID == nil {
		ls.byID = make(map[string]*Layer)
	}
	if _, ok := ls.byID[id]; !ok {
		ls.ids = append(ls.ids, id)
	}
	ls.byID[id] = l
}

// Delete removes id and reports whether it was present.
func (ls *Layers) Delete(id string) bool {
	if ls == nil {
		return false
	}
	if _, ok := ls.byID[id]; !ok {
		return false
	}
	delete(ls.byID, id)
	for i, v := range ls.ids {
		if v == id {
			ls.ids = append(ls.ids[:i:i], ls.ids[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns the layer ids in key order.
func (ls *Layers) IDs() []string {
	if ls == nil {
		return nil
	}
	return jsKeyOrder(ls.ids)
}

// jsKeyOrder returns keys in JavaScript object enumeration order: array-index
// keys ascending, then the rest in their given order.
func jsKeyOrder(keys []string) []string {
	var index, named []string
	for _, k := range keys {
		if isIndexKey(k) {
			index = append(index, k)
		} else {
			named = append(named, k)
		}
	}
	sort.Slice(index, func(i, j int) bool {
		a, _ := strconv.ParseUint(index[i], 10, 32)
		b, _ := strconv.ParseUint(index[j], 10, 32)
		return a < b
	})
	return append(index, named...)
}

// Clone returns a deep copy of ls.
func (ls *Layers) Clone() *Layers {
	if ls == nil {
		return nil
	}
	out := &Layers{
		ids:  append([]string(nil), ls.ids...),
		byID: make(map[string]*Layer, len(ls.byID)),
	}
	for id, l := range ls.byID {
		out.byID[id] = l.Clone()
	}
	return out
}

// isIndexKey reports whether id is a canonical array index: a decimal
// integer below 2^32-1 with no sign and no leading zeros.
func isIndexKey(id string) bool {
	if id == "" || (len(id) > 1 && id[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(id, 10, 32)
	return err == nil && n < 1<<32-1
}

// UnmarshalJSON implements json.Unmarshaler, preserving member order.
func (ls *Layers) UnmarshalJSON(data []byte) error {
	*ls = Layers{byID: make(map[string]*Layer)}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("layers: %w", err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("layers: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("layers: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("layers: unexpected key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("layers[%s]: %w", id, err)
		}
		if string(raw) == "null" {
			ls.Set(id, nil)
			continue
		}
		l := &Layer{}
		if err := l.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("layers[%s]: %w", id, err)
		}
		ls.Set(id, l)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("layers: %w", err)
	}
	return nil
}

// MarshalJSON implements json.Marshaler, writing members in key order.
func (ls Layers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range ls.IDs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		l := ls.byID[id]
		if l == nil {
			buf.WriteString("null")
			continue
		}
		b, err := json.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("layers[%s]: %w", id, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
