package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"furnedit/internal/furni"
	"furnedit/internal/layers"
	"furnedit/internal/store"
	"furnedit/internal/trace"
)

const (
	emptyVizDoc = `{"visualizations":[{"size":64,"angle":45,"layerCount":0}]}`
	twoVizDoc   = `{
		"name": "chair",
		"visualizations": [
			{"size": 64, "angle": 45, "layerCount": 2,
			 "layers": {"0": {"z": 1}, "1": {"z": 3, "ink": "ADD"}},
			 "directions": {"0": {}, "2": {}}},
			{"size": 32, "angle": 45, "layerCount": 0}
		]
	}`
)

func parseDoc(t *testing.T, s string) *furni.Document {
	t.Helper()
	doc, err := furni.Parse([]byte(s))
	require.NoError(t, err)
	return doc
}

func newTestApp(t *testing.T, doc string, opts Options) (*AppModel, tea.Model) {
	t.Helper()
	if opts.File == "" {
		opts.File = "chair"
	}
	a := NewAppModel(parseDoc(t, doc), opts)
	return a, a.AsTeaModel()
}

// isAppMsg reports whether msg is handled by AppModel and should be fed back.
func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case DismissModalMsg, AddLayerMsg, ShowDeleteLayerMsg, DeleteLayerMsg, EditFieldMsg,
		SetLayerFieldMsg, SetVizFieldMsg, CycleVizMsg, ShowVizPickerMsg, SelectVizMsg,
		UndoMsg, RedoMsg, SaveMsg, SavedMsg, QuitMsg, ToggleHelpMsg:
		return true
	}
	return false
}

// send delivers msg and runs the resulting commands, feeding app messages
// back in. Other messages (tea.QuitMsg, blink ticks) are returned unprocessed.
func send(t *testing.T, m tea.Model, msg tea.Msg) []tea.Msg {
	t.Helper()
	var other []tea.Msg
	queue := []tea.Msg{msg}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 50, "message loop did not settle")
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		if cmd == nil {
			continue
		}
		out := cmd()
		switch {
		case isAppMsg(out):
			queue = append(queue, out)
		case out != nil:
			other = append(other, out)
		}
	}
	return other
}

func press(t *testing.T, m tea.Model, keys ...string) []tea.Msg {
	t.Helper()
	var other []tea.Msg
	for _, k := range keys {
		other = append(other, send(t, m, keyMsg(k))...)
	}
	return other
}

func topOverlay[T View](t *testing.T, a *AppModel) T {
	t.Helper()
	top, ok := a.Overlays.Peek()
	require.True(t, ok, "expected an overlay")
	v, ok := top.View.(T)
	require.True(t, ok, "unexpected overlay %T", top.View)
	return v
}

func layerOf(t *testing.T, a *AppModel, viz int, id string) *furni.Layer {
	t.Helper()
	v := a.Doc.Visualization(viz)
	require.NotNil(t, v)
	l, ok := v.Layers.Get(id)
	require.True(t, ok, "layer %s missing", id)
	return l
}

func hasQuit(msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestApp_AddLayer(t *testing.T) {
	a, m := newTestApp(t, emptyVizDoc, Options{})

	press(t, m, "a")

	v := a.Doc.Visualization(0)
	assert.Equal(t, []string{"0"}, v.Layers.IDs())
	assert.Equal(t, 1, v.LayerCount)
	id, ok := a.Editor.SelectedLayer()
	assert.True(t, ok)
	assert.Equal(t, "0", id)
	assert.True(t, a.Dirty())
	assert.True(t, a.History.CanUndo())
	assert.Contains(t, a.Status(), "visualizations/0")

	press(t, m, "a")
	assert.Equal(t, []string{"0", "1"}, a.Doc.Visualization(0).Layers.IDs())
}

func TestApp_LeaderAddLayer(t *testing.T) {
	a, m := newTestApp(t, emptyVizDoc, Options{})
	press(t, m, " ", "l", "a")
	assert.Equal(t, 1, a.Doc.Visualization(0).Layers.Len())
}

func TestApp_DeleteLayerConfirm(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})

	press(t, m, "j") // first row: layer 1 (z=3)
	id, _ := a.Editor.SelectedLayer()
	require.Equal(t, "1", id)

	press(t, m, "d")
	topOverlay[*ConfirmModal](t, a)

	press(t, m, "y")
	assert.Equal(t, 0, a.Overlays.Len())
	assert.Equal(t, []string{"0"}, a.Doc.Visualization(0).Layers.IDs())
	assert.Equal(t, 1, a.Doc.Visualization(0).LayerCount)
	_, ok := a.Editor.SelectedLayer()
	assert.False(t, ok, "deleting the selected layer clears the selection")
}

func TestApp_DeleteLayerCancel(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})
	before := a.Doc

	press(t, m, "j", "d", "esc")

	assert.Equal(t, 0, a.Overlays.Len())
	assert.Same(t, before, a.Doc)
	assert.False(t, a.Dirty())
}

func TestApp_DeleteWithoutSelection(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})
	press(t, m, "d")
	assert.Equal(t, 0, a.Overlays.Len())
	assert.Equal(t, "select a layer first", a.Status())
}

func TestApp_EditAlphaClamps(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})

	press(t, m, "j", "l", "enter") // layer 1, alpha field
	modal := topOverlay[*EditFieldModal](t, a)
	assert.Equal(t, "255", modal.Value())

	modal.input.SetValue("300")
	press(t, m, "enter")

	assert.Equal(t, 0, a.Overlays.Len())
	assert.Equal(t, 255, layerOf(t, a, 0, "1").AlphaValue())

	press(t, m, "enter")
	topOverlay[*EditFieldModal](t, a).input.SetValue("-5")
	press(t, m, "enter")
	assert.Equal(t, 0, layerOf(t, a, 0, "1").AlphaValue())
}

func TestApp_EditZReordersCards(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})

	press(t, m, "j", "j", "enter") // layer 0, z field
	topOverlay[*EditFieldModal](t, a).input.SetValue("7abc")
	press(t, m, "enter")

	assert.Equal(t, 7, layerOf(t, a, 0, "0").ZValue())
	p := a.Editor.Panel()
	assert.Equal(t, "0", p.Layers[0].ID)
	assert.True(t, p.Layers[0].Selected)
}

func TestApp_InkPickerNone(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})

	press(t, m, "j", "l", "l", "enter") // layer 1, ink field
	picker := topOverlay[*OptionPickerModal](t, a)
	sel, ok := picker.Selected()
	require.True(t, ok)
	assert.Equal(t, "ADD", sel.Value, "picker opens on the current ink")

	picker.list.Select(0)
	press(t, m, "enter")

	assert.Equal(t, furni.Ink(""), layerOf(t, a, 0, "1").Ink)
	out, err := a.Doc.Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"ink"`)
	assert.NotContains(t, string(out), "None")
}

func TestApp_TagPicker(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})

	press(t, m, "j", "l", "l", "l", "enter") // layer 1, tag field
	picker := topOverlay[*OptionPickerModal](t, a)
	picker.list.Select(3) // None, COLOR1, COLOR2, BADGE
	press(t, m, "enter")

	assert.Equal(t, furni.TagBadge, layerOf(t, a, 0, "1").Tag)
}

func TestApp_ToggleIgnoreMouse(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})

	press(t, m, "j", "l", "l", "l", "l", "l", "enter") // cursor stops at ignoreMouse
	assert.Equal(t, 0, a.Overlays.Len())
	assert.True(t, layerOf(t, a, 0, "1").IgnoresMouse())

	press(t, m, "enter")
	assert.False(t, layerOf(t, a, 0, "1").IgnoresMouse())
}

func TestApp_EditWithoutSelection(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})
	press(t, m, "enter")
	assert.Equal(t, 0, a.Overlays.Len())
	assert.Equal(t, "select a layer first", a.Status())
}

func TestApp_EditVisualizationSize(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})

	press(t, m, "tab", "enter")
	modal := topOverlay[*EditFieldModal](t, a)
	assert.Equal(t, "64", modal.Value())
	modal.input.SetValue("128")
	press(t, m, "enter")

	assert.Equal(t, 128, a.Doc.Visualization(0).Size)
	assert.Equal(t, PaneSettings, a.Layers.Focus.Current)
}

func TestApp_CycleVisualizationClearsSelection(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})

	press(t, m, "j", "]")
	assert.Equal(t, 1, a.Editor.SelectedVisualization())
	_, ok := a.Editor.SelectedLayer()
	assert.False(t, ok)
	assert.Contains(t, a.Status(), "Viz 2 (Size: 32, Angle: 45)")

	press(t, m, "]")
	assert.Equal(t, 0, a.Editor.SelectedVisualization(), "wraps around")
	press(t, m, "[")
	assert.Equal(t, 1, a.Editor.SelectedVisualization())
}

func TestApp_VizPicker(t *testing.T) {
	a, m := newTestApp(t, twoVizDoc, Options{})

	press(t, m, "v")
	picker := topOverlay[*OptionPickerModal](t, a)
	picker.list.Select(1)
	press(t, m, "enter")

	assert.Equal(t, 0, a.Overlays.Len())
	assert.Equal(t, 1, a.Editor.SelectedVisualization())
}

func TestApp_UndoRedo(t *testing.T) {
	a, m := newTestApp(t, emptyVizDoc, Options{})
	orig := a.Doc

	press(t, m, "a")
	added := a.Doc
	require.NotSame(t, orig, added)

	press(t, m, "u")
	assert.Same(t, orig, a.Doc)
	assert.False(t, a.Dirty(), "undo back to the loaded document is clean")
	assert.Equal(t, 0, a.Doc.Visualization(0).Layers.Len())

	press(t, m, "ctrl+r")
	assert.Same(t, added, a.Doc)
	assert.True(t, a.Dirty())

	press(t, m, "ctrl+r")
	assert.Equal(t, "nothing to redo", a.Status())
}

func TestApp_SaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(dir)
	require.NoError(t, err)
	a, m := newTestApp(t, emptyVizDoc, Options{Store: s})

	press(t, m, "a", "ctrl+s")

	assert.False(t, a.Dirty())
	assert.Contains(t, a.Status(), "saved")
	loaded, err := s.Load("chair")
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, loaded.Visualization(0).Layers.IDs())
}

func TestApp_SaveWithoutStore(t *testing.T) {
	a, m := newTestApp(t, emptyVizDoc, Options{})
	press(t, m, "a", "ctrl+s")
	assert.True(t, a.Dirty())
	assert.Contains(t, a.Status(), "save failed")
}

func TestApp_Autosave(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(dir)
	require.NoError(t, err)
	a, m := newTestApp(t, emptyVizDoc, Options{Store: s, Autosave: true})

	press(t, m, "a")

	assert.False(t, a.Dirty())
	_, err = os.Stat(filepath.Join(dir, "chair.json"))
	assert.NoError(t, err)
}

func TestApp_AutosaveWritesNewestDocumentLast(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(dir)
	require.NoError(t, err)
	a, m := newTestApp(t, emptyVizDoc, Options{Store: s, Autosave: true})

	_, first := m.Update(AddLayerMsg{})
	require.NotNil(t, first)
	_, second := m.Update(AddLayerMsg{})
	assert.Nil(t, second, "second save waits for the first")
	newest := a.Doc

	firstDone := first()
	_, queued := m.Update(firstDone)
	require.NotNil(t, queued, "queued save starts when the first finishes")
	assert.True(t, a.Dirty(), "first save wrote an older document")

	_, cmd := m.Update(queued())
	assert.Nil(t, cmd)
	assert.False(t, a.Dirty())

	// a late result from the older save is ignored
	_, cmd = m.Update(firstDone)
	assert.Nil(t, cmd)
	assert.False(t, a.Dirty())
	assert.Same(t, newest, a.saved)

	loaded, err := s.Load("chair")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, loaded.Visualization(0).Layers.IDs())
}

func TestApp_SaveResultOutOfOrderIgnored(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(dir)
	require.NoError(t, err)
	a, m := newTestApp(t, emptyVizDoc, Options{Store: s})
	loaded := a.Doc

	press(t, m, "a", "ctrl+s")
	require.False(t, a.Dirty())

	_, cmd := m.Update(SavedMsg{Seq: a.saveSeq - 1, Path: "chair", Doc: loaded})
	assert.Nil(t, cmd)
	assert.False(t, a.Dirty())
	assert.NotSame(t, loaded, a.saved)
}

func TestApp_QuitAsksWhenDirty(t *testing.T) {
	a, m := newTestApp(t, emptyVizDoc, Options{})
	assert.True(t, hasQuit(press(t, m, "q")), "clean document quits at once")

	press(t, m, "a")
	assert.False(t, hasQuit(press(t, m, "q")))
	topOverlay[*ConfirmModal](t, a)
	assert.True(t, hasQuit(press(t, m, "y")))
}

func TestApp_CtrlCQuitsFromModal(t *testing.T) {
	_, m := newTestApp(t, twoVizDoc, Options{})
	press(t, m, "v")
	assert.True(t, hasQuit(press(t, m, "ctrl+c")))
}

func TestApp_EmptyDocument(t *testing.T) {
	a, m := newTestApp(t, `{"visualizations":[]}`, Options{})

	assert.Contains(t, m.View(), emptyDocText)
	press(t, m, "a")
	assert.True(t, a.Status() != "" && a.statusErr)
	assert.False(t, a.Dirty())
}

func TestApp_View(t *testing.T) {
	_, m := newTestApp(t, twoVizDoc, Options{})
	press(t, m, "j")

	out := m.View()
	for _, want := range []string{
		"Layers Editor",
		"Viz 1 (Size: 64, Angle: 45)",
		"Layer 1",
		"Layer 0",
		"Alpha (Visibility)",
		"ADD",
		"Visualization Settings",
		"Auto-calculated",
		"Total Layers: 2",
		"Directions: 2 defined",
		"Animations: 0 defined",
		"About Layers",
	} {
		assert.Contains(t, out, want)
	}
}

func TestApp_ViewShowsLeaderHelp(t *testing.T) {
	_, m := newTestApp(t, twoVizDoc, Options{})
	press(t, m, " ")
	out := m.View()
	assert.Contains(t, out, "Layer")
	assert.Contains(t, out, "Visualization")
	assert.Contains(t, out, "Save")
}

func TestApp_RecordsTraceSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	rec := trace.NewWithExporter(exp, "furnedit-test")
	rec.StartSession(context.Background(), "chair")

	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	_, m := newTestApp(t, emptyVizDoc, Options{Store: s, Recorder: rec})
	press(t, m, "a", "ctrl+s")
	rec.EndSession()

	var names []string
	for _, span := range exp.GetSpans() {
		names = append(names, span.Name)
	}
	assert.Equal(t, []string{string(layers.OpAddLayer), "save", "furnedit-session"}, names)
}
