package furni

import (
	"encoding/json"
	"fmt"

	"furnedit/internal/jsonutil"
)

// Document is a furniture descriptor.
type Document struct {
	Visualizations []*Visualization

	// Extra holds every other top-level member (name, logicType, assets, ...).
	Extra map[string]json.RawMessage

	keys []string // member order as decoded
}

// Parse decodes a document from JSON.
func Parse(data []byte) (*Document, error) {
	d := &Document{}
	if err := jsonutil.UnmarshalWithContext(data, d, "parse furniture document"); err != nil {
		return nil, err
	}
	return d, nil
}

// Visualization returns the visualization at index i, or nil when out of range.
func (d *Document) Visualization(i int) *Visualization {
	if d == nil || i < 0 || i >= len(d.Visualizations) {
		return nil
	}
	return d.Visualizations[i]
}

// Clone returns a deep copy of d. The copy shares no mutable state with d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Extra: cloneRaw(d.Extra), keys: cloneKeys(d.keys)}
	if d.Visualizations != nil {
		out.Visualizations = make([]*Visualization, len(d.Visualizations))
		for i, v := range d.Visualizations {
			out.Visualizations[i] = v.Clone()
		}
	}
	return out
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "document")
	if err != nil {
		return err
	}
	*d = Document{keys: obj.keys}
	if raw, ok := obj.take("visualizations"); ok {
		if err := jsonutil.UnmarshalWithContext(raw, &d.Visualizations, "visualizations"); err != nil {
			return err
		}
	}
	d.Extra = obj.extra()
	return nil
}

// MarshalJSON implements json.Marshaler. Members keep their decoded order.
func (d Document) MarshalJSON() ([]byte, error) {
	b, err := encodeObject(d.keys, d.Extra, []member{
		{key: "visualizations", val: d.Visualizations, skip: d.Visualizations == nil},
	})
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return b, nil
}

// Encode returns the on-disk JSON form of d.
func (d *Document) Encode() ([]byte, error) {
	return jsonutil.MarshalIndent(d)
}
