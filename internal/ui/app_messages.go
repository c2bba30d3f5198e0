package ui

import (
	"furnedit/internal/furni"
	"furnedit/internal/layers"
)

// DismissModalMsg closes the top overlay.
type DismissModalMsg struct{}

// AddLayerMsg adds a layer to the active visualization (a, SPC l a).
type AddLayerMsg struct{}

// ShowDeleteLayerMsg asks to delete the selected layer (d, SPC l d).
type ShowDeleteLayerMsg struct{}

// DeleteLayerMsg deletes a layer after confirmation.
type DeleteLayerMsg struct {
	VizIndex int
	ID       string
}

// EditFieldMsg opens the editor for the field under the cursor (enter).
type EditFieldMsg struct{}

// SetLayerFieldMsg applies a layer field value.
type SetLayerFieldMsg struct {
	VizIndex int
	ID       string
	Field    layers.LayerField
	Value    string
}

// SetVizFieldMsg applies a visualization field value.
type SetVizFieldMsg struct {
	VizIndex int
	Field    layers.VizField
	Value    string
}

// CycleVizMsg moves the visualization selection by Delta, wrapping ([, ], SPC v n, SPC v p).
type CycleVizMsg struct {
	Delta int
}

// ShowVizPickerMsg opens the visualization picker (v).
type ShowVizPickerMsg struct{}

// SelectVizMsg makes visualization Index active.
type SelectVizMsg struct {
	Index int
}

// UndoMsg restores the previous document (u).
type UndoMsg struct{}

// RedoMsg re-applies an undone document (ctrl+r).
type RedoMsg struct{}

// SaveMsg writes the current document (ctrl+s, SPC w).
type SaveMsg struct{}

// SavedMsg reports the result of a save. Seq identifies the save that
// produced it; results of older saves are ignored.
type SavedMsg struct {
	Seq  int
	Path string
	Doc  *furni.Document // the document that was written
	Err  error
}

// QuitMsg quits, asking first when there are unsaved changes (q, SPC q).
type QuitMsg struct{}

// ToggleHelpMsg shows or hides the full key help (?).
type ToggleHelpMsg struct{}
