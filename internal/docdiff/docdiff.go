// Package docdiff describes the difference between two furniture documents as
// RFC 7386 merge patches.
//
// Merge patches replace arrays wholesale, so the visualization list is diffed
// entry by entry: each changed visualization gets its own patch, addressed as
// "visualizations/<index>". Top-level members outside the list are diffed
// together under the empty path.
package docdiff

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"furnedit/internal/furni"
	"furnedit/internal/ui/textutil"
)

// Change is one merge patch and the document path it applies to.
type Change struct {
	Path  string
	Patch json.RawMessage
}

// String renders the change compactly, e.g. `visualizations/0 {"layerCount":2}`.
func (c Change) String() string {
	if c.Path == "" {
		return string(c.Patch)
	}
	return c.Path + " " + string(c.Patch)
}

// Diff returns the changes turning prev into next. Equal documents yield no changes.
func Diff(prev, next *furni.Document) ([]Change, error) {
	var changes []Change

	top, err := mergePatch(
		furni.Document{Extra: extraOf(prev)},
		furni.Document{Extra: extraOf(next)},
	)
	if err != nil {
		return nil, fmt.Errorf("diff document: %w", err)
	}
	if top != nil {
		changes = append(changes, Change{Path: "", Patch: top})
	}

	pv, nv := vizOf(prev), vizOf(next)
	for i := 0; i < max(len(pv), len(nv)); i++ {
		path := fmt.Sprintf("visualizations/%d", i)
		switch {
		case i >= len(nv):
			changes = append(changes, Change{Path: path, Patch: json.RawMessage("null")})
		case i >= len(pv):
			b, err := json.Marshal(nv[i])
			if err != nil {
				return nil, fmt.Errorf("diff %s: %w", path, err)
			}
			changes = append(changes, Change{Path: path, Patch: b})
		default:
			p, err := mergePatch(pv[i], nv[i])
			if err != nil {
				return nil, fmt.Errorf("diff %s: %w", path, err)
			}
			if p != nil {
				changes = append(changes, Change{Path: path, Patch: p})
			}
		}
	}
	return changes, nil
}

// Summary renders changes on one line, truncated to width columns.
// Width <= 0 disables truncation.
func Summary(changes []Change, width int) string {
	if len(changes) == 0 {
		return "no changes"
	}
	parts := make([]string, len(changes))
	for i, c := range changes {
		parts[i] = c.String()
	}
	s := strings.Join(parts, "; ")
	if width > 0 {
		return textutil.Truncate(s, width)
	}
	return s
}

// mergePatch returns nil when a and b encode to equal JSON.
func mergePatch(a, b interface{}) (json.RawMessage, error) {
	aj, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	if jsonpatch.Equal(aj, bj) {
		return nil, nil
	}
	p, err := jsonpatch.CreateMergePatch(aj, bj)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func extraOf(d *furni.Document) map[string]json.RawMessage {
	if d == nil {
		return nil
	}
	return d.Extra
}

func vizOf(d *furni.Document) []*furni.Visualization {
	if d == nil {
		return nil
	}
	return d.Visualizations
}
