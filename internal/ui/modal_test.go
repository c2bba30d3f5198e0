package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furnedit/internal/furni"
	"furnedit/internal/layers"
)

func TestConfirmModal_Keys(t *testing.T) {
	m := NewDeleteLayerConfirmModal(0, "3")
	assert.Contains(t, m.View(), "Layer 3 in visualization 1")

	_, cmd := m.Update(keyMsg("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, DeleteLayerMsg{VizIndex: 0, ID: "3"}, cmd())

	_, cmd = m.Update(keyMsg("n"))
	require.NotNil(t, cmd)
	assert.Equal(t, DismissModalMsg{}, cmd())

	_, cmd = m.Update(keyMsg("x"))
	assert.Nil(t, cmd)
}

func TestEditFieldModal_SubmitTrims(t *testing.T) {
	var got string
	m := NewEditFieldModal("Size", "", "64", func(v string) tea.Msg {
		got = v
		return nil
	})
	assert.Equal(t, "64", m.Value())

	m.input.SetValue("  128 ")
	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, "128", got)

	_, cmd = m.Update(keyMsg("esc"))
	assert.Equal(t, DismissModalMsg{}, cmd())
}

func TestInkPicker_OptionsAndSelection(t *testing.T) {
	m := NewInkPickerModal(1, "0", "")
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, furni.NoneLabel, sel.Value)
	assert.Contains(t, m.View(), "ADD (Additive Blend)")
	assert.Contains(t, m.View(), "COPY (Normal)")

	m.list.Select(2)
	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, SetLayerFieldMsg{VizIndex: 1, ID: "0", Field: layers.FieldInk, Value: "COPY"}, cmd())
}

func TestVizPicker_OpensOnSelected(t *testing.T) {
	m := NewVizPickerModal([]layers.VizOption{
		{Index: 0, Label: "Viz 1 (Size: 64, Angle: 45)"},
		{Index: 1, Label: "Viz 2 (Size: 32, Angle: 45)", Selected: true},
	})
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.Value)

	_, cmd := m.Update(keyMsg("enter"))
	assert.Equal(t, SelectVizMsg{Index: 1}, cmd())
}

func TestOverlayStack(t *testing.T) {
	var s OverlayStack
	assert.Equal(t, "", s.View())
	_, ok := s.UpdateTop(keyMsg("x"))
	assert.False(t, ok)

	s.Push(Overlay{View: NewConfirmModal("A", "a", nil), Dismiss: "esc"})
	s.Push(Overlay{View: NewConfirmModal("B", "b", nil), Dismiss: "esc"})
	assert.Equal(t, 2, s.Len())
	assert.Contains(t, s.View(), "B")

	top, _ := s.Pop()
	assert.True(t, top.IsDismissKey("esc"))
	assert.False(t, top.IsDismissKey("q"))
	s.Clear()
	assert.Equal(t, 0, s.Len())
}
