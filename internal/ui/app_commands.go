package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"furnedit/internal/furni"
	"furnedit/internal/store"
)

// saveCmd writes doc under name off the update goroutine.
// Emitted documents are immutable, so doc is shared rather than copied.
func saveCmd(s *store.Store, name string, doc *furni.Document, seq int) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return SavedMsg{Seq: seq, Path: name, Doc: doc, Err: errNoStore}
		}
		err := s.Save(name, doc)
		return SavedMsg{Seq: seq, Path: s.Path(name), Doc: doc, Err: err}
	}
}

// msgCmd wraps a message as a command, for keybind registration.
func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
