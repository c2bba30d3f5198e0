package layers

import "strings"

// LayerField names an editable layer member.
type LayerField string

const (
	FieldZ           LayerField = "z"
	FieldAlpha       LayerField = "alpha"
	FieldInk         LayerField = "ink"
	FieldTag         LayerField = "tag"
	FieldIgnoreMouse LayerField = "ignoreMouse"
)

// LayerFields returns the editable layer fields in display order.
func LayerFields() []LayerField {
	return []LayerField{FieldZ, FieldAlpha, FieldInk, FieldTag, FieldIgnoreMouse}
}

// Label returns the form label for f.
func (f LayerField) Label() string {
	switch f {
	case FieldZ:
		return "Z-Index"
	case FieldAlpha:
		return "Alpha (Visibility)"
	case FieldInk:
		return "Ink (Blend Mode)"
	case FieldTag:
		return "Tag (Color/Badge)"
	case FieldIgnoreMouse:
		return "Ignore Mouse Clicks"
	}
	return string(f)
}

// Hint returns helper text shown under the field, if any.
func (f LayerField) Hint() string {
	switch f {
	case FieldZ:
		return "Stacking order (higher = on top)"
	case FieldAlpha:
		return "0 = Invisible, 255 = Fully visible"
	}
	return ""
}

// ParseLayerField matches s against the field names, case-insensitively.
func ParseLayerField(s string) (LayerField, bool) {
	for _, f := range LayerFields() {
		if strings.EqualFold(s, string(f)) {
			return f, true
		}
	}
	return "", false
}

// VizField names an editable visualization member.
type VizField string

const (
	FieldSize       VizField = "size"
	FieldAngle      VizField = "angle"
	FieldLayerCount VizField = "layerCount"
)

// VizFields returns the visualization fields in display order.
func VizFields() []VizField {
	return []VizField{FieldSize, FieldAngle, FieldLayerCount}
}

// Label returns the form label for f.
func (f VizField) Label() string {
	switch f {
	case FieldSize:
		return "Size"
	case FieldAngle:
		return "Angle"
	case FieldLayerCount:
		return "Layer Count"
	}
	return string(f)
}

// ParseVizField matches s against the field names, case-insensitively.
func ParseVizField(s string) (VizField, bool) {
	for _, f := range VizFields() {
		if strings.EqualFold(s, string(f)) {
			return f, true
		}
	}
	return "", false
}
