// Package ui is the Bubble Tea front-end of furnedit.
//
// Core pieces:
//   - View: a screen region with its own model, update and view (Elm-style)
//   - LayersView: layer cards on the left, visualization settings on the right
//   - FocusManager: tracks which pane receives navigation keys
//   - Overlay: modal views (confirm, field editor, option picker) stacked above
//   - Keymap / Leader: single keys plus SPC-prefixed leader sequences, per pane
//
// AppModel owns the document. The layers.Editor hands every edit back to it;
// AppModel records history, optionally autosaves, and returns the document to
// the editor.
package ui
