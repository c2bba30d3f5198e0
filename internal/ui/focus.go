package ui

// Pane identifies a focusable region of the layers screen.
type Pane string

const (
	PaneLayers   Pane = "layers"
	PaneSettings Pane = "settings"
)

func (p Pane) String() string {
	switch p {
	case PaneLayers:
		return "Layers"
	case PaneSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// FocusManager tracks and rotates focus across panes.
type FocusManager struct {
	Current  Pane   // Currently focused pane
	Order    []Pane // Tab order for focus rotation
	OnChange func(from, to Pane)
}

// NewFocusManager focuses the first pane of order.
func NewFocusManager(order ...Pane) *FocusManager {
	f := &FocusManager{Order: order}
	if len(order) > 0 {
		f.Current = order[0]
	}
	return f
}

// Next advances focus to the next pane in order.
// Returns the new current pane.
func (f *FocusManager) Next() Pane {
	return f.step(1)
}

// Prev moves focus to the previous pane in order.
func (f *FocusManager) Prev() Pane {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) Pane {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.indexOf(f.Current)
	if idx < 0 && delta < 0 {
		idx = 0
	}
	next := ((idx+delta)%len(f.Order) + len(f.Order)) % len(f.Order)
	f.set(f.Order[next])
	return f.Current
}

// SetFocus sets focus to p. Returns false if p is not in order.
func (f *FocusManager) SetFocus(p Pane) bool {
	if f.indexOf(p) < 0 {
		return false
	}
	f.set(p)
	return true
}

func (f *FocusManager) set(p Pane) {
	from := f.Current
	f.Current = p
	if f.OnChange != nil && from != p {
		f.OnChange(from, p)
	}
}

func (f *FocusManager) indexOf(p Pane) int {
	for i, o := range f.Order {
		if o == p {
			return i
		}
	}
	return -1
}

// FieldCursor is the focused field inside a pane. It stops at both ends.
type FieldCursor struct {
	Index int
	Len   int
}

// Move shifts the cursor by delta, clamped to [0, Len-1].
func (c *FieldCursor) Move(delta int) {
	if c.Len <= 0 {
		c.Index = 0
		return
	}
	c.Index += delta
	if c.Index < 0 {
		c.Index = 0
	}
	if c.Index >= c.Len {
		c.Index = c.Len - 1
	}
}
