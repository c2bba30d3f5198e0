package layers

import (
	"strconv"

	"furnedit/internal/furni"
	"furnedit/internal/jsonutil"
)

// UpdateFunc receives every document the editor produces.
type UpdateFunc func(doc *furni.Document)

// Editor holds layer-editing selection state for a caller-owned document.
type Editor struct {
	doc      *furni.Document
	onUpdate UpdateFunc
	observer Observer

	vizIndex int
	layerID  string
	hasLayer bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithObserver registers an observer notified after each emitted mutation.
func WithObserver(o Observer) Option {
	return func(e *Editor) { e.observer = o }
}

// New creates an editor over doc. onUpdate may be nil.
func New(doc *furni.Document, onUpdate UpdateFunc, opts ...Option) *Editor {
	e := &Editor{doc: doc, onUpdate: onUpdate}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the document the editor currently renders.
func (e *Editor) Document() *furni.Document {
	return e.doc
}

// SetDocument replaces the rendered document, typically with one the editor
// emitted. A selected visualization that no longer exists resets to the
// first; a selected layer that no longer exists is cleared.
func (e *Editor) SetDocument(doc *furni.Document) {
	e.doc = doc
	if e.doc.Visualization(e.vizIndex) == nil && e.vizIndex != 0 {
		e.vizIndex = 0
		e.clearLayer()
	}
	if e.hasLayer && !e.currentLayers().Has(e.layerID) {
		e.clearLayer()
	}
}

// SelectedVisualization returns the active visualization index.
func (e *Editor) SelectedVisualization() int {
	return e.vizIndex
}

// SelectedLayer returns the selected layer id, if any.
func (e *Editor) SelectedLayer() (string, bool) {
	return e.layerID, e.hasLayer
}

// SelectVisualization makes index active and clears the layer selection.
// Out-of-range indices are ignored.
func (e *Editor) SelectVisualization(index int) {
	if index < 0 || index >= len(e.visualizations()) {
		return
	}
	e.vizIndex = index
	e.clearLayer()
}

// SelectLayer highlights id. It does not touch the document.
func (e *Editor) SelectLayer(id string) {
	e.layerID = id
	e.hasLayer = true
}

// ClearSelection drops the layer selection.
func (e *Editor) ClearSelection() {
	e.clearLayer()
}

// MoveSelection moves the layer selection by delta rows in display order,
// stopping at either end. With nothing selected the first row is selected.
func (e *Editor) MoveSelection(delta int) {
	ids := SortedLayerIDs(e.doc.Visualization(e.vizIndex))
	if len(ids) == 0 {
		return
	}
	cur := -1
	if e.hasLayer {
		for i, id := range ids {
			if id == e.layerID {
				cur = i
				break
			}
		}
	}
	next := 0
	if cur >= 0 {
		next = jsonutil.Clamp(cur+delta, 0, len(ids)-1)
	}
	e.SelectLayer(ids[next])
}

// AddLayer inserts a default layer under the lowest free integer id, updates
// layerCount, emits the document and selects the new layer. It reports the new
// id, or false when vizIndex does not exist.
func (e *Editor) AddLayer(vizIndex int) (string, bool) {
	if e.doc.Visualization(vizIndex) == nil {
		return "", false
	}
	next := e.doc.Clone()
	v := next.Visualizations[vizIndex]
	if v.Layers == nil {
		v.Layers = furni.NewLayers()
	}
	id := NextLayerID(v.Layers)
	v.Layers.Set(id, furni.NewLayer())
	v.SyncLayerCount()

	e.emit(next, Mutation{Op: OpAddLayer, VizIndex: vizIndex, LayerID: id})
	e.SelectLayer(id)
	return id, true
}

// DeleteLayer removes id, updates layerCount and emits the document. Deleting
// the selected layer clears the selection. It is a no-op when the
// visualization or layer does not exist.
func (e *Editor) DeleteLayer(vizIndex int, id string) bool {
	v := e.doc.Visualization(vizIndex)
	if v == nil || !v.Layers.Has(id) {
		return false
	}
	next := e.doc.Clone()
	nv := next.Visualizations[vizIndex]
	nv.Layers.Delete(id)
	nv.SyncLayerCount()

	e.emit(next, Mutation{Op: OpDeleteLayer, VizIndex: vizIndex, LayerID: id})
	if e.hasLayer && e.layerID == id {
		e.clearLayer()
	}
	return true
}

// UpdateLayer writes one field of layer id from its display value and emits
// the document. A missing layer is created empty first.
//
// z and alpha take integer text (non-numeric text is 0; alpha is clamped to
// [0,255]); ink and tag take a value or furni.NoneLabel, which clears the
// field; ignoreMouse takes a boolean. It is a no-op for a missing
// visualization, an unknown field, or an unknown ink or tag.
func (e *Editor) UpdateLayer(vizIndex int, id string, field LayerField, value string) bool {
	if e.doc.Visualization(vizIndex) == nil {
		return false
	}
	apply, ok := layerWriter(field, value)
	if !ok {
		return false
	}
	next := e.doc.Clone()
	v := next.Visualizations[vizIndex]
	if v.Layers == nil {
		v.Layers = furni.NewLayers()
	}
	l, exists := v.Layers.Get(id)
	if !exists || l == nil {
		l = &furni.Layer{}
		v.Layers.Set(id, l)
	}
	apply(l)

	e.emit(next, Mutation{Op: OpUpdateLayer, VizIndex: vizIndex, LayerID: id, Field: string(field), Value: value})
	return true
}

// UpdateViz writes one numeric visualization field from its display value
// (non-numeric text is 0) and emits the document.
func (e *Editor) UpdateViz(vizIndex int, field VizField, value string) bool {
	if e.doc.Visualization(vizIndex) == nil {
		return false
	}
	n := jsonutil.ParseInt(value)
	next := e.doc.Clone()
	v := next.Visualizations[vizIndex]
	switch field {
	case FieldSize:
		v.Size = n
	case FieldAngle:
		v.Angle = n
	case FieldLayerCount:
		v.LayerCount = n
	default:
		return false
	}

	e.emit(next, Mutation{Op: OpUpdateViz, VizIndex: vizIndex, Field: string(field), Value: strconv.Itoa(n)})
	return true
}

// layerWriter returns the write for field with its value already coerced.
func layerWriter(field LayerField, value string) (func(*furni.Layer), bool) {
	switch field {
	case FieldZ:
		z := jsonutil.ParseInt(value)
		return func(l *furni.Layer) { l.SetZ(z) }, true
	case FieldAlpha:
		a := jsonutil.ParseInt(value)
		return func(l *furni.Layer) { l.SetAlpha(a) }, true
	case FieldInk:
		ink, ok := furni.ParseInk(value)
		return func(l *furni.Layer) { l.Ink = ink }, ok
	case FieldTag:
		tag, ok := furni.ParseTag(value)
		return func(l *furni.Layer) { l.Tag = tag }, ok
	case FieldIgnoreMouse:
		b := jsonutil.ParseBool(value)
		return func(l *furni.Layer) { l.SetIgnoreMouse(b) }, true
	}
	return nil, false
}

func (e *Editor) emit(next *furni.Document, m Mutation) {
	m.Previous = e.doc
	m.Document = next
	if e.onUpdate != nil {
		e.onUpdate(next)
	}
	if e.observer != nil {
		e.observer.OnMutation(m)
	}
}

func (e *Editor) clearLayer() {
	e.layerID = ""
	e.hasLayer = false
}

func (e *Editor) visualizations() []*furni.Visualization {
	if e.doc == nil {
		return nil
	}
	return e.doc.Visualizations
}

func (e *Editor) currentLayers() *furni.Layers {
	v := e.doc.Visualization(e.vizIndex)
	if v == nil {
		return nil
	}
	return v.Layers
}
