package furni

import "strings"

// NoneLabel is the display placeholder for an absent ink or tag.
// It is never written to a document.
const NoneLabel = "None"

// Ink is a layer blend mode. The zero value means no ink is set.
type Ink string

const (
	InkAdd  Ink = "ADD"
	InkCopy Ink = "COPY"
)

// Inks lists the selectable ink values, excluding "none".
func Inks() []Ink { return []Ink{InkAdd, InkCopy} }

// Label returns the display label, NoneLabel for the zero value.
func (i Ink) Label() string {
	if i == "" {
		return NoneLabel
	}
	return string(i)
}

// Description returns the long picker label for an ink.
func (i Ink) Description() string {
	switch i {
	case InkAdd:
		return "ADD (Additive Blend)"
	case InkCopy:
		return "COPY (Normal)"
	case "":
		return NoneLabel
	}
	return string(i)
}

// ParseInk maps a display value to an Ink. NoneLabel and the empty string map
// to the zero Ink. Matching is case-insensitive. ok is false for values that
// are not a known ink.
func ParseInk(s string) (ink Ink, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, NoneLabel) {
		return "", true
	}
	for _, i := range Inks() {
		if strings.EqualFold(s, string(i)) {
			return i, true
		}
	}
	return "", false
}

// Tag marks a layer for recoloring or badge overlay. The zero value means no
// tag is set.
type Tag string

const (
	TagColor1 Tag = "COLOR1"
	TagColor2 Tag = "COLOR2"
	TagBadge  Tag = "BADGE"
)

// Tags lists the selectable tag values, excluding "none".
func Tags() []Tag { return []Tag{TagColor1, TagColor2, TagBadge} }

// Label returns the display label, NoneLabel for the zero value.
func (t Tag) Label() string {
	if t == "" {
		return NoneLabel
	}
	return string(t)
}

// ParseTag maps a display value to a Tag, following the same rules as ParseInk.
func ParseTag(s string) (tag Tag, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, NoneLabel) {
		return "", true
	}
	for _, t := range Tags() {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}
