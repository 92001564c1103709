package feature

import (
	"sort"

	"gopkg.in/fatih/set.v0"
)

type Color string

const (
	Default     Color = "black"
	Highlighted Color = "red"
	Filtered    Color = "blue"

	// HoverColor is used for a gene under the pointer.
	HoverColor Color = "#006b07"
)

// ColorResolver decides the colour of a feature from its homolog ids. The
// filter match set is checked before the highlight set, so a feature in
// both is drawn as filtered.
type ColorResolver struct {
	highlighted set.Interface
	filtered    set.Interface
}

func NewColorResolver() *ColorResolver {
	return &ColorResolver{
		highlighted: set.New(set.NonThreadSafe),
		filtered:    set.New(set.NonThreadSafe),
	}
}

func newIntSet(ids []int) set.Interface {
	s := set.New(set.NonThreadSafe)
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// SetHighlighted replaces the highlighted set.
func (r *ColorResolver) SetHighlighted(ids []int) {
	r.highlighted = newIntSet(ids)
}

// SetFiltered replaces the filter match set.
func (r *ColorResolver) SetFiltered(ids []int) {
	r.filtered = newIntSet(ids)
}

func (r *ColorResolver) IsHighlighted(hid int) bool {
	return r.highlighted.Has(hid)
}

func (r *ColorResolver) IsFiltered(hid int) bool {
	return r.filtered.Has(hid)
}

func (r *ColorResolver) Color(hid int) Color {
	if r.filtered.Has(hid) {
		return Filtered
	}
	if r.highlighted.Has(hid) {
		return Highlighted
	}
	return Default
}

// ColorOf returns the first non-default colour among ids.
func (r *ColorResolver) ColorOf(ids []int) Color {
	for _, id := range ids {
		if c := r.Color(id); c != Default {
			return c
		}
	}
	return Default
}

// Highlighted returns the highlighted ids in ascending order.
func (r *ColorResolver) Highlighted() []int {
	return sortedInts(r.highlighted)
}

// Filtered returns the filter match ids in ascending order.
func (r *ColorResolver) Filtered() []int {
	return sortedInts(r.filtered)
}

func sortedInts(s set.Interface) []int {
	out := make([]int, 0, s.Size())
	for _, v := range s.List() {
		out = append(out, v.(int))
	}
	sort.Ints(out)
	return out
}
