package furni

import (
	"encoding/json"
	"fmt"

	"furnedit/internal/jsonutil"
)

// Visualization is one rendering variant of a furniture item.
type Visualization struct {
	Size       int
	Angle      int
	LayerCount int
	Layers     *Layers

	// Animations and Directions are read-only here; only their sizes are shown.
	Animations map[string]json.RawMessage
	Directions map[string]json.RawMessage

	Extra map[string]json.RawMessage

	keys []string // member order as decoded
}

// AnimationCount returns the number of animation entries.
func (v *Visualization) AnimationCount() int { return len(v.Animations) }

// DirectionCount returns the number of direction entries.
func (v *Visualization) DirectionCount() int { return len(v.Directions) }

// SyncLayerCount sets LayerCount to the number of layers.
func (v *Visualization) SyncLayerCount() {
	v.LayerCount = v.Layers.Len()
}

// Clone returns a deep copy of v.
func (v *Visualization) Clone() *Visualization {
	if v == nil {
		return nil
	}
	return &Visualization{
		Size:       v.Size,
		Angle:      v.Angle,
		LayerCount: v.LayerCount,
		Layers:     v.Layers.Clone(),
		Animations: cloneRaw(v.Animations),
		Directions: cloneRaw(v.Directions),
		Extra:      cloneRaw(v.Extra),
		keys:       cloneKeys(v.keys),
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Visualization) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "visualization")
	if err != nil {
		return err
	}
	*v = Visualization{keys: obj.keys}
	ints := []struct {
		key string
		dst *int
	}{
		{"size", &v.Size},
		{"angle", &v.Angle},
		{"layerCount", &v.LayerCount},
	}
	for _, f := range ints {
		if raw, ok := obj.take(f.key); ok {
			n, err := decodeInt(raw, "visualization "+f.key)
			if err != nil {
				return err
			}
			*f.dst = n
		}
	}
	if raw, ok := obj.take("layers"); ok {
		v.Layers = NewLayers()
		if err := v.Layers.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if raw, ok := obj.take("animations"); ok {
		if err := jsonutil.UnmarshalWithContext(raw, &v.Animations, "visualization animations"); err != nil {
			return err
		}
	}
	if raw, ok := obj.take("directions"); ok {
		if err := jsonutil.UnmarshalWithContext(raw, &v.Directions, "visualization directions"); err != nil {
			return err
		}
	}
	v.Extra = obj.extra()
	return nil
}

// MarshalJSON implements json.Marshaler. Members keep their decoded order.
func (v Visualization) MarshalJSON() ([]byte, error) {
	known := []member{
		{key: "size", val: v.Size},
		{key: "angle", val: v.Angle},
		{key: "layerCount", val: v.LayerCount},
		{key: "layers", val: v.Layers, skip: v.Layers == nil},
	}
	for _, m := range []struct {
		key string
		val map[string]json.RawMessage
	}{{"animations", v.Animations}, {"directions", v.Directions}} {
		if m.val == nil {
			continue
		}
		b, err := encodeMap(m.val)
		if err != nil {
			return nil, fmt.Errorf("visualization %s: %w", m.key, err)
		}
		known = append(known, member{key: m.key, val: json.RawMessage(b)})
	}
	b, err := encodeObject(v.keys, v.Extra, known)
	if err != nil {
		return nil, fmt.Errorf("visualization: %w", err)
	}
	return b, nil
}
