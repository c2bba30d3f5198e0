// Package furni models the furniture descriptor document edited by furnedit.
//
// Only the parts the layers editor touches are typed: the visualization list,
// per-visualization size/angle/layerCount, and the layer mapping. Everything
// else (assets, logic, animations, directions, colors, ...) is carried as raw
// JSON so a decode/encode cycle does not lose data.
//
// Values are treated as immutable once handed to an owner: editors call Clone
// and mutate the copy.
package furni
