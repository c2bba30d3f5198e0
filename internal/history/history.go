// Package history keeps bounded undo/redo stacks of document versions.
package history

import "furnedit/internal/furni"

// DefaultLimit is the number of undo steps kept when no limit is given.
const DefaultLimit = 100

// History records documents replaced by edits. Documents are stored by
// reference and must not be mutated after they are recorded.
type History struct {
	undo  []*furni.Document
	redo  []*furni.Document
	limit int
}

// New creates a history keeping at most limit undo steps.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Record pushes prev, the document being replaced by an edit, and drops the
// redo stack. The oldest step is discarded past the limit.
func (h *History) Record(prev *furni.Document) {
	h.undo = append(h.undo, prev)
	if len(h.undo) > h.limit {
		h.undo = append(h.undo[:0:0], h.undo[len(h.undo)-h.limit:]...)
	}
	h.redo = nil
}

// Undo returns the document to restore in place of cur.
func (h *History) Undo(cur *furni.Document) (*furni.Document, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur)
	return prev, true
}

// Redo returns the document an earlier Undo replaced.
func (h *History) Redo(cur *furni.Document) (*furni.Document, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cur)
	return next, true
}

// CanUndo reports whether Undo has a step.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has a step.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undo steps.
func (h *History) Len() int { return len(h.undo) }
