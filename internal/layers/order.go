package layers

import (
	"sort"
	"strconv"

	"furnedit/internal/furni"
)

// NextLayerID returns the lowest non-negative integer, as a string, that is
// not already a layer id in ls.
func NextLayerID(ls *furni.Layers) string {
	for n := 0; ; n++ {
		id := strconv.Itoa(n)
		if !ls.Has(id) {
			return id
		}
	}
}

// SortedLayerIDs returns v's layer ids ordered by descending z, so the layer
// drawn on top is listed first. Absent z counts as 0 and ties keep key order.
func SortedLayerIDs(v *furni.Visualization) []string {
	if v == nil {
		return nil
	}
	ids := v.Layers.IDs()
	z := make(map[string]int, len(ids))
	for _, id := range ids {
		l, _ := v.Layers.Get(id)
		z[id] = l.ZValue()
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return z[ids[i]] > z[ids[j]]
	})
	return ids
}
