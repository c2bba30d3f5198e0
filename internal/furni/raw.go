package furni

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"furnedit/internal/jsonutil"
)

// rawObject is a JSON object kept as undecoded members. keys holds every
// member name in document order, including members taken out later.
type rawObject struct {
	keys    []string
	members map[string]json.RawMessage
}

// parseObject decodes data as a JSON object, remembering member order.
// JSON null yields an empty object. A repeated name keeps its first position
// and its last value.
func parseObject(data []byte, what string) (rawObject, error) {
	obj := rawObject{members: make(map[string]json.RawMessage)}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return obj, fmt.Errorf("%s: %w", what, err)
	}
	if tok == nil {
		return obj, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return obj, fmt.Errorf("%s: expected object, got %v", what, tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return obj, fmt.Errorf("%s: %w", what, err)
		}
		key, ok := tok.(string)
		if !ok {
			return obj, fmt.Errorf("%s: unexpected key %v", what, tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return obj, fmt.Errorf("%s.%s: %w", what, key, err)
		}
		if _, dup := obj.members[key]; !dup {
			obj.keys = append(obj.keys, key)
		}
		obj.members[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return obj, fmt.Errorf("%s: %w", what, err)
	}
	return obj, nil
}

// take removes key from o and reports its raw value. JSON null is reported as absent.
func (o rawObject) take(key string) (json.RawMessage, bool) {
	raw, ok := o.members[key]
	if !ok {
		return nil, false
	}
	delete(o.members, key)
	if string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

// extra returns the members nobody took, or nil when there are none.
func (o rawObject) extra() map[string]json.RawMessage {
	if len(o.members) == 0 {
		return nil
	}
	return o.members
}

// member is a modeled field to encode. Skipped members are left out.
type member struct {
	key  string
	val  interface{}
	skip bool
}

// encodeObject writes the modeled members and extra as one JSON object.
// Names listed in order come first, in that order; modeled members not in
// order follow in the sequence given; remaining extra members come last in
// key order.
func encodeObject(order []string, extra map[string]json.RawMessage, known []member) ([]byte, error) {
	vals := make(map[string]json.RawMessage, len(extra)+len(known))
	for k, v := range extra {
		vals[k] = v
	}
	var modeled []string
	for _, m := range known {
		if m.skip {
			continue
		}
		b, err := json.Marshal(m.val)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", m.key, err)
		}
		vals[m.key] = b
		modeled = append(modeled, m.key)
	}

	seen := make(map[string]bool, len(vals))
	keys := make([]string, 0, len(vals))
	add := func(k string) {
		if _, ok := vals[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, k := range order {
		add(k)
	}
	for _, k := range modeled {
		add(k)
	}
	rest := make([]string, 0, len(vals)-len(keys))
	for k := range vals {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		add(k)
	}
	return writeObject(keys, vals)
}

// encodeMap writes m with keys in JavaScript enumeration order.
func encodeMap(m map[string]json.RawMessage) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return writeObject(jsKeyOrder(keys), m)
}

func writeObject(keys []string, vals map[string]json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(vals[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeInt decodes a JSON number (or numeric string) into an int.
// Fractional values are truncated.
func decodeInt(raw json.RawMessage, field string) (int, error) {
	var n json.Number
	if err := jsonutil.UnmarshalWithContext(raw, &n, field); err != nil {
		return 0, err
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return int(f), nil
}

func decodeString(raw json.RawMessage, field string) (string, error) {
	var s string
	if err := jsonutil.UnmarshalWithContext(raw, &s, field); err != nil {
		return "", err
	}
	return s, nil
}

func cloneRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

func cloneKeys(keys []string) []string {
	if keys == nil {
		return nil
	}
	return append([]string(nil), keys...)
}
