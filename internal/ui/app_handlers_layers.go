package ui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"furnedit/internal/docdiff"
	"furnedit/internal/furni"
	"furnedit/internal/layers"
)

// handleAddLayer adds a layer to the active visualization and focuses it.
func (a *appModelAdapter) handleAddLayer() (tea.Model, tea.Cmd) {
	if _, ok := a.Editor.AddLayer(a.Editor.SelectedVisualization()); !ok {
		a.setError("no visualization to add a layer to")
		return a, nil
	}
	a.Layers.Focus.SetFocus(PaneLayers)
	return a, a.flushAutosave()
}

// handleShowDeleteLayer asks for confirmation before deleting the selected layer.
func (a *appModelAdapter) handleShowDeleteLayer() (tea.Model, tea.Cmd) {
	id, ok := a.Editor.SelectedLayer()
	if !ok {
		a.setError("select a layer first")
		return a, nil
	}
	return a, a.pushModal(NewDeleteLayerConfirmModal(a.Editor.SelectedVisualization(), id))
}

// handleDeleteLayer deletes a confirmed layer.
func (a *appModelAdapter) handleDeleteLayer(msg DeleteLayerMsg) (tea.Model, tea.Cmd) {
	a.Overlays.Pop()
	if !a.Editor.DeleteLayer(msg.VizIndex, msg.ID) {
		a.setError(fmt.Sprintf("layer %s not found", msg.ID))
		return a, nil
	}
	return a, a.flushAutosave()
}

// handleEditField opens the editor matching the focused field. Ignore Mouse
// toggles in place.
func (a *appModelAdapter) handleEditField() (tea.Model, tea.Cmd) {
	p := a.Editor.Panel()
	if p.Empty {
		return a, nil
	}
	viz := a.Editor.SelectedVisualization()

	if a.Layers.Focus.Current == PaneSettings {
		field := a.Layers.FocusedVizField()
		title := fmt.Sprintf("%s (%s)", field.Label(), layers.VizLabel(viz, a.Doc.Visualization(viz)))
		modal := NewEditFieldModal(title, "", p.Settings.Value(field), func(v string) tea.Msg {
			return SetVizFieldMsg{VizIndex: viz, Field: field, Value: v}
		})
		return a, a.pushModal(modal)
	}

	row, ok := p.SelectedRow()
	if !ok {
		a.setError("select a layer first")
		return a, nil
	}
	field := a.Layers.FocusedLayerField()
	switch field {
	case layers.FieldInk:
		return a, a.pushModal(NewInkPickerModal(viz, row.ID, row.Ink))
	case layers.FieldTag:
		return a, a.pushModal(NewTagPickerModal(viz, row.ID, row.Tag))
	case layers.FieldIgnoreMouse:
		return a.handleSetLayerField(SetLayerFieldMsg{
			VizIndex: viz,
			ID:       row.ID,
			Field:    field,
			Value:    strconv.FormatBool(!row.IgnoreMouse),
		})
	default:
		title := fmt.Sprintf("Layer %s: %s", row.ID, field.Label())
		modal := NewEditFieldModal(title, field.Hint(), row.Value(field), func(v string) tea.Msg {
			return SetLayerFieldMsg{VizIndex: viz, ID: row.ID, Field: field, Value: v}
		})
		return a, a.pushModal(modal)
	}
}

// handleSetLayerField applies a layer field edit.
func (a *appModelAdapter) handleSetLayerField(msg SetLayerFieldMsg) (tea.Model, tea.Cmd) {
	a.Overlays.Pop()
	if !a.Editor.UpdateLayer(msg.VizIndex, msg.ID, msg.Field, msg.Value) {
		a.setError(fmt.Sprintf("invalid %s: %q", msg.Field.Label(), msg.Value))
		return a, nil
	}
	return a, a.flushAutosave()
}

// handleSetVizField applies a visualization field edit.
func (a *appModelAdapter) handleSetVizField(msg SetVizFieldMsg) (tea.Model, tea.Cmd) {
	a.Overlays.Pop()
	if !a.Editor.UpdateViz(msg.VizIndex, msg.Field, msg.Value) {
		a.setError(fmt.Sprintf("visualization %d not found", msg.VizIndex+1))
		return a, nil
	}
	return a, a.flushAutosave()
}

// handleCycleViz moves to the previous or next visualization, wrapping around.
func (a *appModelAdapter) handleCycleViz(msg CycleVizMsg) (tea.Model, tea.Cmd) {
	n := len(a.Editor.Panel().Visualizations)
	if n < 2 {
		return a, nil
	}
	next := ((a.Editor.SelectedVisualization()+msg.Delta)%n + n) % n
	return a.handleSelectViz(SelectVizMsg{Index: next})
}

// handleShowVizPicker opens the visualization picker.
func (a *appModelAdapter) handleShowVizPicker() (tea.Model, tea.Cmd) {
	p := a.Editor.Panel()
	if len(p.Visualizations) == 0 {
		return a, nil
	}
	return a, a.pushModal(NewVizPickerModal(p.Visualizations))
}

// handleSelectViz activates a visualization. The layer selection is cleared.
func (a *appModelAdapter) handleSelectViz(msg SelectVizMsg) (tea.Model, tea.Cmd) {
	a.Overlays.Pop()
	a.Editor.SelectVisualization(msg.Index)
	viz := a.Editor.SelectedVisualization()
	a.setInfo(layers.VizLabel(viz, a.Doc.Visualization(viz)))
	return a, nil
}

func (a *appModelAdapter) pushModal(v View) tea.Cmd {
	a.Overlays.Push(Overlay{View: v, Dismiss: "esc"})
	return v.Init()
}

// setPatchStatus shows the merge patch turning prev into next.
func (a *AppModel) setPatchStatus(prefix string, prev, next *furni.Document) {
	changes, err := docdiff.Diff(prev, next)
	if err != nil {
		a.Log.Warn("diff failed", zap.Error(err))
		a.setError("diff failed: " + err.Error())
		return
	}
	a.setInfo(prefix + docdiff.Summary(changes, a.width-len(prefix)))
}

func (a *AppModel) setInfo(s string) {
	a.status, a.statusErr = s, false
}

func (a *AppModel) setError(s string) {
	a.status, a.statusErr = s, true
}
