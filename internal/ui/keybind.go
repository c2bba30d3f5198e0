package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const leaderSeq = "SPC"

// Binding is one entry of the key table. Pressing Seq emits Msg.
type Binding struct {
	Seq   string
	Msg   tea.Msg
	Desc  string
	Panes []Pane // empty: every pane
}

func (b Binding) activeIn(pane Pane) bool {
	if len(b.Panes) == 0 {
		return true
	}
	for _, p := range b.Panes {
		if p == pane {
			return true
		}
	}
	return false
}

// Hint is one line of key help.
type Hint struct {
	Key  string
	Desc string
}

// Keymap is the editor's key table. Sequences use leader notation: "SPC l a"
// is space, l, a. Single keys use Bubble Tea key names ("a", "ctrl+s", "[").
// Help lists bindings in registration order.
type Keymap struct {
	bindings []Binding
	bySeq    map[string]int
	groups   map[string]string // leader prefix -> submenu label
}

// NewKeymap returns an empty key table.
func NewKeymap() *Keymap {
	return &Keymap{
		bySeq:  make(map[string]int),
		groups: make(map[string]string),
	}
}

// Bind makes seq emit msg in the given panes, or in every pane when none are
// given. Binding a sequence again replaces it in place.
func (k *Keymap) Bind(seq string, msg tea.Msg, desc string, panes ...Pane) {
	b := Binding{Seq: normalizeSeq(seq), Msg: msg, Desc: desc, Panes: panes}
	if i, ok := k.bySeq[b.Seq]; ok {
		k.bindings[i] = b
		return
	}
	k.bySeq[b.Seq] = len(k.bindings)
	k.bindings = append(k.bindings, b)
}

// Group labels the leader submenu opened by prefix, e.g. "SPC l" as "Layer".
func (k *Keymap) Group(prefix, label string) {
	k.groups[normalizeSeq(prefix)] = label
}

// Lookup returns the binding for seq if it is active in pane.
func (k *Keymap) Lookup(seq string, pane Pane) (Binding, bool) {
	i, ok := k.bySeq[normalizeSeq(seq)]
	if !ok || !k.bindings[i].activeIn(pane) {
		return Binding{}, false
	}
	return k.bindings[i], true
}

// continues reports whether a binding active in pane extends seq.
func (k *Keymap) continues(seq string, pane Pane) bool {
	prefix := normalizeSeq(seq) + " "
	for _, b := range k.bindings {
		if strings.HasPrefix(b.Seq, prefix) && b.activeIn(pane) {
			return true
		}
	}
	return false
}

// Next returns one hint per key that may follow prefix in pane. A key that
// opens a submenu shows the submenu label.
func (k *Keymap) Next(prefix string, pane Pane) []Hint {
	prefix = normalizeSeq(prefix) + " "
	var out []Hint
	seen := make(map[string]bool)
	for _, b := range k.bindings {
		if !strings.HasPrefix(b.Seq, prefix) || !b.activeIn(pane) {
			continue
		}
		next, _, _ := strings.Cut(strings.TrimPrefix(b.Seq, prefix), " ")
		if seen[next] {
			continue
		}
		seen[next] = true
		sub := prefix + next
		switch {
		case k.groups[sub] != "":
			out = append(out, Hint{Key: next, Desc: k.groups[sub]})
		case sub != b.Seq:
			out = append(out, Hint{Key: next, Desc: next + "…"})
		default:
			out = append(out, Hint{Key: next, Desc: b.Desc})
		}
	}
	return out
}

// Singles returns the described single-key bindings active in pane.
func (k *Keymap) Singles(pane Pane) []Hint {
	var out []Hint
	for _, b := range k.bindings {
		if strings.HasPrefix(b.Seq, leaderSeq) || b.Desc == "" || !b.activeIn(pane) {
			continue
		}
		out = append(out, Hint{Key: b.Seq, Desc: b.Desc})
	}
	return out
}

// normalizeSeq writes space as SPC and collapses whitespace.
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "space" {
			parts[i] = leaderSeq
		}
	}
	return strings.Join(parts, " ")
}

// seqPart converts a tea key string to one sequence element.
func seqPart(s string) string {
	if s == " " || s == "space" {
		return leaderSeq
	}
	return s
}

// Leader dispatches key presses against a Keymap and tracks a partially
// typed SPC sequence.
type Leader struct {
	Keymap  *Keymap
	pending []string
}

// NewLeader creates a dispatcher over km.
func NewLeader(km *Keymap) *Leader {
	return &Leader{Keymap: km}
}

// Active reports whether a leader sequence is being typed.
func (l *Leader) Active() bool {
	return len(l.pending) > 0
}

// Prefix returns the sequence typed so far, e.g. "SPC l".
func (l *Leader) Prefix() string {
	return strings.Join(l.pending, " ")
}

// Reset drops a partially typed sequence.
func (l *Leader) Reset() {
	l.pending = nil
}

// Handle processes msg for the focused pane. consumed is false when the key
// is not part of any binding and should reach the views. A completed or
// unknown leader sequence ends leader mode; esc cancels it.
func (l *Leader) Handle(msg tea.KeyMsg, pane Pane) (consumed bool, cmd tea.Cmd) {
	part := seqPart(msg.String())

	if !l.Active() {
		if part == leaderSeq {
			l.pending = []string{leaderSeq}
			return true, nil
		}
		if b, ok := l.Keymap.Lookup(part, pane); ok {
			return true, msgCmd(b.Msg)
		}
		return false, nil
	}

	if part == "esc" {
		l.Reset()
		return true, nil
	}
	seq := l.Prefix() + " " + part
	if b, ok := l.Keymap.Lookup(seq, pane); ok {
		l.Reset()
		return true, msgCmd(b.Msg)
	}
	if l.Keymap.continues(seq, pane) {
		l.pending = append(l.pending, part)
		return true, nil
	}
	l.Reset()
	return true, nil
}

// keymapHelp adapts a Keymap to help.KeyMap. Short help lists the keys that
// may follow prefix; full help adds the single-key bindings.
type keymapHelp struct {
	km     *Keymap
	prefix string
	pane   Pane
}

var _ help.KeyMap = keymapHelp{}

func (h keymapHelp) ShortHelp() []key.Binding {
	hints := h.km.Next(h.prefix, h.pane)
	if len(hints) == 0 {
		return nil
	}
	return append(hintBindings(hints), key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	))
}

func (h keymapHelp) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	if short := h.ShortHelp(); len(short) > 0 {
		cols = append(cols, short)
	}
	if single := hintBindings(h.km.Singles(h.pane)); len(single) > 0 {
		cols = append(cols, single)
	}
	return cols
}

func hintBindings(hints []Hint) []key.Binding {
	out := make([]key.Binding, len(hints))
	for i, h := range hints {
		out[i] = key.NewBinding(key.WithKeys(h.Key), key.WithHelp(h.Key, h.Desc))
	}
	return out
}
