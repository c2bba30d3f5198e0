package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"furnedit/internal/layers"
	"furnedit/internal/ui/textutil"
)

const (
	emptyDocText    = "No visualizations defined in this furniture."
	emptyLayersText = "No layers defined. Press a to add one."
	labelWidth      = 22
)

// LayersView draws the editor panel: layer cards on the left and the
// visualization settings on the right. It reads state from Editor and never
// mutates the document; edits leave as messages for AppModel.
type LayersView struct {
	Editor      *layers.Editor
	Focus       *FocusManager
	LayerCursor FieldCursor // field inside the selected layer card
	VizCursor   FieldCursor // field inside the settings pane

	help   viewport.Model
	width  int
	height int
}

// Ensure LayersView implements View.
var _ View = (*LayersView)(nil)

// NewLayersView creates the view over ed.
func NewLayersView(ed *layers.Editor) *LayersView {
	v := &LayersView{
		Editor:      ed,
		Focus:       NewFocusManager(PaneLayers, PaneSettings),
		LayerCursor: FieldCursor{Len: len(layers.LayerFields())},
		VizCursor:   FieldCursor{Len: len(layers.VizFields())},
		help:        viewport.New(0, 0),
	}
	v.SetSize(defaultWidth, defaultHeight)
	return v
}

// SetSize resizes the view to the terminal size.
func (v *LayersView) SetSize(width, height int) {
	v.width, v.height = width, height
	_, right := splitWidths(width)
	v.help.Width = max(right-paneChrome, 1)
	v.help.Height = max(bodyHeight(height)-settingsLines, 3)
	v.help.SetContent(renderHelpText(v.help.Width))
}

// FocusedLayerField returns the layer field under the cursor.
func (v *LayersView) FocusedLayerField() layers.LayerField {
	return layers.LayerFields()[v.LayerCursor.Index]
}

// FocusedVizField returns the settings field under the cursor.
func (v *LayersView) FocusedVizField() layers.VizField {
	return layers.VizFields()[v.VizCursor.Index]
}

// Init implements View.
func (v *LayersView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *LayersView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			v.Focus.Next()
			return v, nil
		case "shift+tab":
			v.Focus.Prev()
			return v, nil
		case "enter":
			return v, msgCmd(EditFieldMsg{})
		}
		if v.Focus.Current == PaneSettings {
			return v.updateSettings(msg)
		}
		return v.updateLayers(msg)
	}
	return v, nil
}

func (v *LayersView) updateLayers(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		v.Editor.MoveSelection(1)
	case "k", "up":
		v.Editor.MoveSelection(-1)
	case "h", "left":
		v.LayerCursor.Move(-1)
	case "l", "right":
		v.LayerCursor.Move(1)
	case "g", "home":
		v.Editor.MoveSelection(-len(v.Editor.Panel().Layers))
	case "G", "end":
		v.Editor.MoveSelection(len(v.Editor.Panel().Layers))
	case "esc":
		v.Editor.ClearSelection()
	}
	return v, nil
}

func (v *LayersView) updateSettings(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "j", "down", "l", "right":
		v.VizCursor.Move(1)
		return v, nil
	case "k", "up", "h", "left":
		v.VizCursor.Move(-1)
		return v, nil
	}
	// pgup/pgdown and friends scroll the help text
	var cmd tea.Cmd
	v.help, cmd = v.help.Update(msg)
	return v, cmd
}

// View implements View.
func (v *LayersView) View() string {
	p := v.Editor.Panel()
	if p.Empty {
		return lipgloss.Place(v.width, bodyHeight(v.height)+paneBorderRow,
			lipgloss.Center, lipgloss.Center, Styles.Empty.Render(emptyDocText))
	}

	leftW, rightW := splitWidths(v.width)
	h := bodyHeight(v.height)
	left := v.paneStyle(PaneLayers).Width(leftW - 2).Height(h).
		Render(v.renderLayersPane(p, leftW-paneChrome, h))
	right := v.paneStyle(PaneSettings).Width(rightW - 2).Height(h).
		Render(v.renderSettingsPane(p, rightW-paneChrome))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (v *LayersView) paneStyle(pane Pane) lipgloss.Style {
	if v.Focus.Current == pane {
		return Styles.PaneFocused
	}
	return Styles.Pane
}

func (v *LayersView) renderLayersPane(p layers.Panel, width, height int) string {
	var head strings.Builder
	head.WriteString(Styles.Title.Render("Layers Editor") + "\n")
	if p.ShowSelector {
		label := p.Visualizations[p.Selected].Label
		pos := fmt.Sprintf("[%d/%d]", p.Selected+1, len(p.Visualizations))
		head.WriteString(Styles.Muted.Render("Visualization: ") +
			Styles.Selected.Render(textutil.Truncate(label, width-len(pos)-16)) + " " +
			Styles.Muted.Render(pos) + "\n")
	}
	head.WriteString(Styles.Hint.Render("[a] Add Layer  [d] Delete  [enter] Edit") + "\n")

	if len(p.Layers) == 0 {
		return head.String() + "\n" + Styles.Empty.Render(emptyLayersText)
	}

	cards := make([]string, len(p.Layers))
	selected := -1
	for i, row := range p.Layers {
		cards[i] = v.renderCard(row, width)
		if row.Selected {
			selected = i
		}
	}
	avail := height - lipgloss.Height(head.String())
	return head.String() + strings.Join(visibleCards(cards, selected, avail), "\n")
}

// visibleCards drops leading cards until the selected one fits in height rows.
func visibleCards(cards []string, selected, height int) []string {
	if selected <= 0 {
		return cards
	}
	start := 0
	used := 0
	for i := 0; i <= selected; i++ {
		used += lipgloss.Height(cards[i])
	}
	for used > height && start < selected {
		used -= lipgloss.Height(cards[start])
		start++
	}
	return cards[start:]
}

func (v *LayersView) renderCard(row layers.LayerRow, width int) string {
	heading := Styles.CardHeading.Render("Layer " + row.ID)
	if !row.Selected {
		summary := fmt.Sprintf("z %d  alpha %d  ink %s  tag %s", row.Z, row.Alpha, row.Ink.Label(), row.Tag.Label())
		if row.IgnoreMouse {
			summary += "  ignore mouse"
		}
		body := heading + "  " + Styles.Muted.Render(textutil.Truncate(summary, width-lipgloss.Width(heading)-6))
		return Styles.Card.Width(width - 2).Render(body)
	}

	lines := []string{heading}
	focused := v.Focus.Current == PaneLayers
	for i, field := range layers.LayerFields() {
		value := row.Value(field)
		if field == layers.FieldIgnoreMouse {
			value = checkbox(row.IgnoreMouse)
		}
		line := textutil.PadRightVisual(field.Label(), labelWidth) + value
		style := Styles.Field
		if focused && i == v.LayerCursor.Index {
			style = Styles.FieldFocused
		}
		lines = append(lines, style.Render(line))
		if hint := field.Hint(); hint != "" {
			lines = append(lines, Styles.Hint.Render(strings.Repeat(" ", labelWidth)+textutil.Truncate(hint, width-labelWidth-4)))
		}
	}
	return Styles.CardSelected.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// settingsLines is the height of the settings pane above the help viewport.
const settingsLines = 11

func (v *LayersView) renderSettingsPane(p layers.Panel, width int) string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Visualization Settings") + "\n")
	focused := v.Focus.Current == PaneSettings
	for i, field := range layers.VizFields() {
		line := textutil.PadRightVisual(field.Label(), 14) + p.Settings.Value(field)
		style := Styles.Field
		if focused && i == v.VizCursor.Index {
			style = Styles.FieldFocused
		}
		b.WriteString(style.Render(line))
		if field == layers.FieldLayerCount {
			b.WriteString(" " + Styles.Hint.Render("Auto-calculated"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + Styles.Section.Render("Layer Overview") + "\n")
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("Total Layers: %d", p.Settings.TotalLayers)) + "\n")
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("Animations: %d defined", p.Settings.Animations)) + "\n")
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("Directions: %d defined", p.Settings.Directions)) + "\n")

	b.WriteString("\n" + Styles.Section.Render("About Layers") + "\n")
	b.WriteString(v.help.View())
	return b.String()
}

// renderHelpText wraps the static layer reference to width.
func renderHelpText(width int) string {
	style := Styles.Muted.Width(width)
	parts := make([]string, len(layers.Help))
	for i, e := range layers.Help {
		parts[i] = style.Render(Styles.Label.Bold(true).Render(e.Term+":") + " " + e.Text)
	}
	return strings.Join(parts, "\n\n")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
