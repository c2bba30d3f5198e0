package layers

import (
	"fmt"

	"furnedit/internal/furni"
)

// Panel is a render snapshot of the editor. Front-ends draw it as-is.
type Panel struct {
	// Empty is set when the document has no visualizations; nothing else is filled.
	Empty bool

	// ShowSelector is set when there is more than one visualization to choose from.
	ShowSelector   bool
	Visualizations []VizOption
	Selected       int

	Layers   []LayerRow
	Settings Settings
}

// VizOption is one entry of the visualization selector.
type VizOption struct {
	Index    int
	Label    string
	Selected bool
}

// LayerRow is one layer card, in display order.
type LayerRow struct {
	ID          string
	Z           int
	Alpha       int
	Ink         furni.Ink
	Tag         furni.Tag
	IgnoreMouse bool
	Selected    bool
}

// Value returns the display value of field.
func (r LayerRow) Value(field LayerField) string {
	switch field {
	case FieldZ:
		return fmt.Sprint(r.Z)
	case FieldAlpha:
		return fmt.Sprint(r.Alpha)
	case FieldInk:
		return r.Ink.Label()
	case FieldTag:
		return r.Tag.Label()
	case FieldIgnoreMouse:
		return fmt.Sprint(r.IgnoreMouse)
	}
	return ""
}

// Settings is the visualization settings pane.
type Settings struct {
	Size       int
	Angle      int
	LayerCount int

	TotalLayers int
	Animations  int
	Directions  int
}

// Value returns the display value of field.
func (s Settings) Value(field VizField) string {
	switch field {
	case FieldSize:
		return fmt.Sprint(s.Size)
	case FieldAngle:
		return fmt.Sprint(s.Angle)
	case FieldLayerCount:
		return fmt.Sprint(s.LayerCount)
	}
	return ""
}

// HelpEntry is one paragraph of the static layer help.
type HelpEntry struct {
	Term string
	Text string
}

// Help is the static reference shown beside the layer list.
var Help = []HelpEntry{
	{"Z-Index", "Controls the stacking order. Higher values appear on top."},
	{"Alpha", "Transparency (0-255). 0 is invisible, 255 is fully visible."},
	{"Ink", "Blend mode for rendering. ADD creates additive blending, COPY is normal rendering."},
	{"Tag", "COLOR1/COLOR2 allow users to customize furniture colors. BADGE shows guild badges."},
	{"Ignore Mouse", "When enabled, clicks pass through this layer."},
}

// VizLabel returns the selector label for visualization index i.
func VizLabel(i int, v *furni.Visualization) string {
	if v == nil {
		return fmt.Sprintf("Viz %d", i+1)
	}
	return fmt.Sprintf("Viz %d (Size: %d, Angle: %d)", i+1, v.Size, v.Angle)
}

// Panel builds the render snapshot for the current document and selection.
func (e *Editor) Panel() Panel {
	vizs := e.visualizations()
	if len(vizs) == 0 {
		return Panel{Empty: true}
	}
	p := Panel{
		ShowSelector: len(vizs) > 1,
		Selected:     e.vizIndex,
	}
	for i, v := range vizs {
		p.Visualizations = append(p.Visualizations, VizOption{
			Index:    i,
			Label:    VizLabel(i, v),
			Selected: i == e.vizIndex,
		})
	}

	v := e.doc.Visualization(e.vizIndex)
	if v == nil {
		return p
	}
	for _, id := range SortedLayerIDs(v) {
		l, _ := v.Layers.Get(id)
		p.Layers = append(p.Layers, LayerRow{
			ID:          id,
			Z:           l.ZValue(),
			Alpha:       l.AlphaValue(),
			Ink:         inkOf(l),
			Tag:         tagOf(l),
			IgnoreMouse: l.IgnoresMouse(),
			Selected:    e.hasLayer && e.layerID == id,
		})
	}
	p.Settings = Settings{
		Size:        v.Size,
		Angle:       v.Angle,
		LayerCount:  v.LayerCount,
		TotalLayers: len(p.Layers),
		Animations:  v.AnimationCount(),
		Directions:  v.DirectionCount(),
	}
	return p
}

func inkOf(l *furni.Layer) furni.Ink {
	if l == nil {
		return ""
	}
	return l.Ink
}

func tagOf(l *furni.Layer) furni.Tag {
	if l == nil {
		return ""
	}
	return l.Tag
}

// SelectedRow returns the selected layer row, if it is visible.
func (p Panel) SelectedRow() (LayerRow, bool) {
	for _, r := range p.Layers {
		if r.Selected {
			return r, true
		}
	}
	return LayerRow{}, false
}
