package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// newHelpModel returns a help.Model styled with the shared theme.
func newHelpModel() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = Styles.Muted
	h.Styles.FullSeparator = Styles.Muted
	return h
}

// RenderLeaderHelp renders the transient box listing the keys that may
// follow the sequence typed so far.
func RenderLeaderHelp(l *Leader, pane Pane) string {
	if l == nil || !l.Active() {
		return ""
	}
	bindings := keymapHelp{km: l.Keymap, prefix: l.Prefix(), pane: pane}.ShortHelp()
	if len(bindings) == 0 {
		return ""
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)
	return box.Render(Styles.Muted.Render(l.Prefix()) + " " + newHelpModel().ShortHelpView(bindings))
}

// RenderFullHelp renders every described binding active in pane.
func RenderFullHelp(km *Keymap, pane Pane, width int) string {
	if km == nil {
		return ""
	}
	h := newHelpModel()
	h.ShowAll = true
	h.Width = width
	return h.View(keymapHelp{km: km, prefix: leaderSeq, pane: pane})
}
