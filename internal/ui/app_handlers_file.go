package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"furnedit/internal/furni"
)

// handleUndo restores the document before the last edit.
func (a *appModelAdapter) handleUndo() (tea.Model, tea.Cmd) {
	prev, ok := a.History.Undo(a.Doc)
	if !ok {
		a.setInfo("nothing to undo")
		return a, nil
	}
	return a.restore("undo: ", prev)
}

// handleRedo re-applies the last undone edit.
func (a *appModelAdapter) handleRedo() (tea.Model, tea.Cmd) {
	next, ok := a.History.Redo(a.Doc)
	if !ok {
		a.setInfo("nothing to redo")
		return a, nil
	}
	return a.restore("redo: ", next)
}

func (a *appModelAdapter) restore(prefix string, doc *furni.Document) (tea.Model, tea.Cmd) {
	cur := a.Doc
	a.Doc = doc
	a.Editor.SetDocument(doc)
	a.setPatchStatus(prefix, cur, doc)
	if a.Autosave {
		a.pendingSave = true
	}
	return a, a.flushAutosave()
}

// handleSave writes the current document.
func (a *appModelAdapter) handleSave() (tea.Model, tea.Cmd) {
	a.setInfo("saving " + a.File + "…")
	return a, a.startSave()
}

// handleSaved records the outcome of a save and starts a queued one.
func (a *appModelAdapter) handleSaved(msg SavedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != a.saveSeq {
		a.Log.Debug("stale save result ignored", zap.Int("seq", msg.Seq), zap.Int("latest", a.saveSeq))
		return a, nil
	}
	a.saving = false
	a.Recorder.RecordSave(msg.Path, msg.Err)
	if msg.Err != nil {
		a.Log.Error("save failed", zap.String("path", msg.Path), zap.Error(msg.Err))
		a.setError("save failed: " + msg.Err.Error())
	} else {
		a.Log.Info("saved", zap.String("path", msg.Path))
		a.saved = msg.Doc
		a.setInfo("saved " + msg.Path)
	}
	if a.saveQueued {
		a.saveQueued = false
		return a, a.startSave()
	}
	return a, nil
}

// handleQuit quits, asking first when there are unsaved changes.
func (a *appModelAdapter) handleQuit() (tea.Model, tea.Cmd) {
	if !a.Dirty() {
		return a, tea.Quit
	}
	return a, a.pushModal(NewQuitConfirmModal(a.File))
}

// flushAutosave returns a save command when an accepted edit is waiting to be written.
func (a *AppModel) flushAutosave() tea.Cmd {
	if !a.pendingSave {
		return nil
	}
	a.pendingSave = false
	return a.startSave()
}

// startSave writes the current document. Saves run one at a time: while one
// is in flight the request is queued and the newest document is written
// once it finishes.
func (a *AppModel) startSave() tea.Cmd {
	if a.saving {
		a.saveQueued = true
		return nil
	}
	a.saving = true
	a.saveSeq++
	return saveCmd(a.Store, a.File, a.Doc, a.saveSeq)
}
