package furni

import (
	"encoding/json"

	"github.com/jinzhu/copier"

	"furnedit/internal/jsonutil"
)

const (
	// DefaultAlpha is the alpha shown for a layer with no alpha set.
	DefaultAlpha = 255
	// MinAlpha and MaxAlpha bound every alpha write.
	MinAlpha = 0
	MaxAlpha = 255
)

// Layer is one renderable sub-element of a visualization.
// Nil pointer fields are absent from the document.
type Layer struct {
	Z           *int
	Alpha       *int
	Ink         Ink
	Tag         Tag
	IgnoreMouse *bool

	// Extra holds members the editor does not model (x, y, ...).
	Extra map[string]json.RawMessage

	keys []string // member order as decoded
}

// NewLayer returns a layer with the defaults used when adding a layer:
// z 0, alpha 255, no ink, no tag, mouse events not ignored.
func NewLayer() *Layer {
	l := &Layer{}
	l.SetZ(0)
	l.SetAlpha(DefaultAlpha)
	l.SetIgnoreMouse(false)
	return l
}

// ZValue returns z, or 0 when absent.
func (l *Layer) ZValue() int {
	if l == nil || l.Z == nil {
		return 0
	}
	return *l.Z
}

// AlphaValue returns alpha, or DefaultAlpha when absent.
func (l *Layer) AlphaValue() int {
	if l == nil || l.Alpha == nil {
		return DefaultAlpha
	}
	return *l.Alpha
}

// IgnoresMouse returns ignoreMouse, or false when absent.
func (l *Layer) IgnoresMouse() bool {
	return l != nil && l.IgnoreMouse != nil && *l.IgnoreMouse
}

// SetZ stores z.
func (l *Layer) SetZ(z int) { l.Z = &z }

// SetAlpha stores alpha clamped to [MinAlpha, MaxAlpha].
func (l *Layer) SetAlpha(a int) {
	a = jsonutil.Clamp(a, MinAlpha, MaxAlpha)
	l.Alpha = &a
}

// SetIgnoreMouse stores ignoreMouse.
func (l *Layer) SetIgnoreMouse(v bool) { l.IgnoreMouse = &v }

// Clone returns a deep copy of l.
func (l *Layer) Clone() *Layer {
	if l == nil {
		return nil
	}
	out := &Layer{}
	if err := copier.CopyWithOption(out, l, copier.Option{DeepCopy: true}); err != nil {
		out = l.copyFields()
	}
	out.Extra = cloneRaw(l.Extra)
	out.keys = cloneKeys(l.keys)
	return out
}

// copyFields copies the modeled fields without copier.
func (l *Layer) copyFields() *Layer {
	return &Layer{
		Z:           clonePtr(l.Z),
		Alpha:       clonePtr(l.Alpha),
		Ink:         l.Ink,
		Tag:         l.Tag,
		IgnoreMouse: clonePtr(l.IgnoreMouse),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Layer) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "layer")
	if err != nil {
		return err
	}
	*l = Layer{keys: obj.keys}
	if raw, ok := obj.take("z"); ok {
		z, err := decodeInt(raw, "layer z")
		if err != nil {
			return err
		}
		l.Z = &z
	}
	if raw, ok := obj.take("alpha"); ok {
		a, err := decodeInt(raw, "layer alpha")
		if err != nil {
			return err
		}
		l.Alpha = &a
	}
	if raw, ok := obj.take("ink"); ok {
		s, err := decodeString(raw, "layer ink")
		if err != nil {
			return err
		}
		l.Ink = Ink(s)
	}
	if raw, ok := obj.take("tag"); ok {
		s, err := decodeString(raw, "layer tag")
		if err != nil {
			return err
		}
		l.Tag = Tag(s)
	}
	if raw, ok := obj.take("ignoreMouse"); ok {
		var b bool
		if err := jsonutil.UnmarshalWithContext(raw, &b, "layer ignoreMouse"); err != nil {
			return err
		}
		l.IgnoreMouse = &b
	}
	l.Extra = obj.extra()
	return nil
}

// MarshalJSON implements json.Marshaler. Members keep their decoded order.
func (l Layer) MarshalJSON() ([]byte, error) {
	return encodeObject(l.keys, l.Extra, []member{
		{key: "z", val: l.Z, skip: l.Z == nil},
		{key: "alpha", val: l.Alpha, skip: l.Alpha == nil},
		{key: "ink", val: l.Ink, skip: l.Ink == ""},
		{key: "tag", val: l.Tag, skip: l.Tag == ""},
		{key: "ignoreMouse", val: l.IgnoreMouse, skip: l.IgnoreMouse == nil},
	})
}
