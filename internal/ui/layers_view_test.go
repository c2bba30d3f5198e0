package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furnedit/internal/layers"
)

func newTestView(t *testing.T, doc string) *LayersView {
	t.Helper()
	ed := layers.New(parseDoc(t, doc), nil)
	return NewLayersView(ed)
}

func update(v *LayersView, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = v.Update(keyMsg(k))
	}
	return cmd
}

func TestLayersView_SelectionFollowsDisplayOrder(t *testing.T) {
	v := newTestView(t, `{"visualizations":[{"layers":{"a":{"z":1},"b":{"z":3},"c":{"z":3}}}]}`)

	var got []string
	for i := 0; i < 4; i++ {
		update(v, "j")
		id, _ := v.Editor.SelectedLayer()
		got = append(got, id)
	}
	assert.Equal(t, []string{"b", "c", "a", "a"}, got)

	update(v, "k")
	id, _ := v.Editor.SelectedLayer()
	assert.Equal(t, "c", id)

	update(v, "g")
	id, _ = v.Editor.SelectedLayer()
	assert.Equal(t, "b", id)

	update(v, "esc")
	_, ok := v.Editor.SelectedLayer()
	assert.False(t, ok)
}

func TestLayersView_FieldCursor(t *testing.T) {
	v := newTestView(t, twoVizDoc)

	update(v, "l", "l")
	assert.Equal(t, layers.FieldInk, v.FocusedLayerField())
	update(v, "h", "h", "h")
	assert.Equal(t, layers.FieldZ, v.FocusedLayerField())

	update(v, "tab", "j", "j", "j")
	assert.Equal(t, PaneSettings, v.Focus.Current)
	assert.Equal(t, layers.FieldLayerCount, v.FocusedVizField())
	_, ok := v.Editor.SelectedLayer()
	assert.False(t, ok, "j in the settings pane does not move the layer selection")
}

func TestLayersView_EnterRequestsEdit(t *testing.T) {
	v := newTestView(t, twoVizDoc)
	cmd := update(v, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, EditFieldMsg{}, cmd())
}

func TestLayersView_ResizeAndRender(t *testing.T) {
	v := newTestView(t, twoVizDoc)
	v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	out := v.View()
	assert.Contains(t, out, "Layers Editor")
	assert.Contains(t, out, "Layer 1")
	assert.Contains(t, out, "Layer 0")
	assert.Less(t, strings.Index(out, "Layer 1"), strings.Index(out, "Layer 0"), "higher z first")
	assert.Contains(t, out, "Z-Index:")
}

func TestLayersView_NoLayers(t *testing.T) {
	v := newTestView(t, emptyVizDoc)
	out := v.View()
	assert.Contains(t, out, emptyLayersText)
	assert.NotContains(t, out, "Visualization:", "single visualization hides the selector")
}

func TestVisibleCards(t *testing.T) {
	cards := []string{"a\na", "b\nb", "c\nc", "d\nd"}
	assert.Equal(t, cards, visibleCards(cards, -1, 2))
	assert.Equal(t, cards, visibleCards(cards, 1, 10))
	assert.Equal(t, []string{"c\nc", "d\nd"}, visibleCards(cards, 2, 3))
}
