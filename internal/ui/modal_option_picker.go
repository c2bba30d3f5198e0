package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"furnedit/internal/furni"
	"furnedit/internal/jsonutil"
	"furnedit/internal/layers"
)

// Option is one choice of an OptionPickerModal.
type Option struct {
	Value string // passed to onSelect
	Label string
	Desc  string
}

func (o Option) FilterValue() string { return o.Label }
func (o Option) Title() string       { return o.Label }
func (o Option) Description() string { return o.Desc }

// OptionPickerModal selects one value from a short list.
type OptionPickerModal struct {
	list     list.Model
	onSelect func(value string) tea.Msg
}

// Ensure OptionPickerModal implements View.
var _ View = (*OptionPickerModal)(nil)

// NewOptionPickerModal creates a picker with the cursor on current.
func NewOptionPickerModal(title string, options []Option, current string, onSelect func(value string) tea.Msg) *OptionPickerModal {
	items := make([]list.Item, len(options))
	selected := 0
	showDesc := false
	for i, o := range options {
		items[i] = o
		if o.Value == current {
			selected = i
		}
		if o.Desc != "" {
			showDesc = true
		}
	}
	height := len(options)*2 + 4
	if !showDesc {
		height = len(options) + 4
	}
	l := list.New(items, NewCompactListDelegate(showDesc), 44, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	l.Select(selected)
	return &OptionPickerModal{list: l, onSelect: onSelect}
}

// NewInkPickerModal picks the ink of a layer. "None" clears it.
func NewInkPickerModal(vizIndex int, id string, current furni.Ink) *OptionPickerModal {
	options := []Option{{Value: furni.NoneLabel, Label: furni.NoneLabel}}
	for _, ink := range furni.Inks() {
		options = append(options, Option{Value: ink.Label(), Label: ink.Description()})
	}
	return NewOptionPickerModal(layers.FieldInk.Label(), options, current.Label(), func(v string) tea.Msg {
		return SetLayerFieldMsg{VizIndex: vizIndex, ID: id, Field: layers.FieldInk, Value: v}
	})
}

// NewTagPickerModal picks the tag of a layer. "None" clears it.
func NewTagPickerModal(vizIndex int, id string, current furni.Tag) *OptionPickerModal {
	options := []Option{{Value: furni.NoneLabel, Label: furni.NoneLabel}}
	for _, tag := range furni.Tags() {
		options = append(options, Option{Value: tag.Label(), Label: tag.Label()})
	}
	return NewOptionPickerModal(layers.FieldTag.Label(), options, current.Label(), func(v string) tea.Msg {
		return SetLayerFieldMsg{VizIndex: vizIndex, ID: id, Field: layers.FieldTag, Value: v}
	})
}

// NewVizPickerModal picks the active visualization.
func NewVizPickerModal(vizs []layers.VizOption) *OptionPickerModal {
	options := make([]Option, len(vizs))
	current := ""
	for i, v := range vizs {
		options[i] = Option{Value: strconv.Itoa(v.Index), Label: v.Label}
		if v.Selected {
			current = options[i].Value
		}
	}
	return NewOptionPickerModal("Visualization", options, current, func(v string) tea.Msg {
		return SelectVizMsg{Index: jsonutil.ParseInt(v)}
	})
}

// Init implements View.
func (m *OptionPickerModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *OptionPickerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			if sel, ok := m.list.SelectedItem().(Option); ok {
				value := sel.Value
				return m, func() tea.Msg { return m.onSelect(value) }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *OptionPickerModal) View() string {
	return Styles.BoxCompact.Render(m.list.View() + "\n" + Styles.Hint.Render("Enter: select  Esc: cancel"))
}

// Selected returns the highlighted option.
func (m *OptionPickerModal) Selected() (Option, bool) {
	o, ok := m.list.SelectedItem().(Option)
	return o, ok
}
