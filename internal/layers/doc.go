// Package layers implements the layers editor: selection state for one
// furniture document plus copy-on-write mutations of its visualization
// layers.
//
// The editor never owns the document. Each mutation clones the current
// document, changes the clone, and passes it to the owner's update callback;
// the owner hands the accepted document back with SetDocument. Invalid input
// is normalized (numeric text falls back to 0, alpha is clamped) and
// references to missing visualizations or layers are ignored, so mutations
// report success with a bool instead of returning errors.
package layers
