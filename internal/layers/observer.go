package layers

import "furnedit/internal/furni"

// Op identifies a document mutation.
type Op string

const (
	OpAddLayer    Op = "add_layer"
	OpDeleteLayer Op = "delete_layer"
	OpUpdateLayer Op = "update_layer"
	OpUpdateViz   Op = "update_viz"
)

// Mutation describes one emitted change.
type Mutation struct {
	Op       Op
	VizIndex int
	LayerID  string // empty for OpUpdateViz
	Field    string // empty for add/delete
	Value    string // display value as entered; coerced for OpUpdateViz

	Previous *furni.Document
	Document *furni.Document
}

// Observer is notified after each mutation has been handed to the owner.
type Observer interface {
	OnMutation(m Mutation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(m Mutation)

// OnMutation implements Observer.
func (f ObserverFunc) OnMutation(m Mutation) { f(m) }

// MultiObserver fans out mutations to multiple observers.
// A panicking observer does not prevent the others from running.
type MultiObserver struct {
	observers []Observer
}

// Ensure MultiObserver implements Observer.
var _ Observer = (*MultiObserver)(nil)

// NewMultiObserver creates a MultiObserver. Nil observers are dropped.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

// OnMutation forwards m to all observers.
func (m *MultiObserver) OnMutation(mut Mutation) {
	for _, obs := range m.observers {
		safeCall(func() { obs.OnMutation(mut) })
	}
}

func safeCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
