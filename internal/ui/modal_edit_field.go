package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// EditFieldModal edits one numeric field as free text. The value is passed
// through unchanged; the editor coerces it.
type EditFieldModal struct {
	Title    string
	Hint     string
	input    textinput.Model
	onSubmit func(value string) tea.Msg
}

// Ensure EditFieldModal implements View.
var _ View = (*EditFieldModal)(nil)

// NewEditFieldModal creates an editor prefilled with value.
func NewEditFieldModal(title, hint, value string, onSubmit func(value string) tea.Msg) *EditFieldModal {
	ti := textinput.New()
	ti.Placeholder = "0"
	ti.CharLimit = 16
	ti.Width = 20
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return &EditFieldModal{
		Title:    title,
		Hint:     hint,
		input:    ti,
		onSubmit: onSubmit,
	}
}

// Value returns the current input text.
func (m *EditFieldModal) Value() string {
	return m.input.Value()
}

// Init implements View.
func (m *EditFieldModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *EditFieldModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			return m, func() tea.Msg { return m.onSubmit(value) }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *EditFieldModal) View() string {
	content := Styles.Title.Render(m.Title) + "\n\n"
	content += m.input.View()
	if m.Hint != "" {
		content += "\n" + Styles.Muted.Render(m.Hint)
	}
	content += "\n\n" + Styles.Hint.Render("Enter: apply  Esc: cancel")
	return Styles.Box.Render(content)
}
