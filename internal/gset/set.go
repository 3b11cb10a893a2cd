// Package gset provides a small ordered-output string set used throughout the
// grammar analyses. It is a trimmed, PEG-specific descendant of the generic
// set family the wider tunaq compiler toolchain keeps in internal/util: the
// grammar core only ever needs sets of rule names, so there is no reason to
// carry the original's generic VSet machinery along with it.
package gset

import "sort"

// Set is a map[string]bool with convenience methods. The zero value is not
// usable; construct with New.
type Set map[string]bool

// New returns a new, empty Set, optionally pre-populated with the given
// elements.
func New(elements ...string) Set {
	s := Set{}
	for _, e := range elements {
		s.Add(e)
	}
	return s
}

// Add adds element to the set. No effect if already present.
func (s Set) Add(element string) {
	s[element] = true
}

// AddAll adds every element of o to s.
func (s Set) AddAll(o Set) {
	for k := range o {
		s.Add(k)
	}
}

// Remove removes element from the set. No effect if not present.
func (s Set) Remove(element string) {
	delete(s, element)
}

// RemoveAll removes every element of o from s.
func (s Set) RemoveAll(o Set) {
	for k := range o {
		s.Remove(k)
	}
}

// Has returns whether element is in the set.
func (s Set) Has(element string) bool {
	return s[element]
}

// Len returns the number of elements in the set.
func (s Set) Len() int {
	return len(s)
}

// Empty returns whether the set has no elements.
func (s Set) Empty() bool {
	return len(s) == 0
}

// Copy returns a shallow copy of the set.
func (s Set) Copy() Set {
	newS := New()
	newS.AddAll(s)
	return newS
}

// Difference returns a new Set with the elements of s that are not in o.
func (s Set) Difference(o Set) Set {
	newS := s.Copy()
	newS.RemoveAll(o)
	return newS
}

// Intersection returns a new Set with the elements common to both s and o.
func (s Set) Intersection(o Set) Set {
	newS := New()
	for k := range s {
		if o.Has(k) {
			newS.Add(k)
		}
	}
	return newS
}

// Sorted returns the elements of s in ascending lexicographic order. Analyses
// that must be deterministic (SCC enumeration, cycle search, leader
// selection) iterate sets by calling Sorted rather than ranging directly over
// the map, since Go map iteration order is randomized.
func (s Set) Sorted() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	sort.Strings(elems)
	return elems
}

// Min returns the lexicographically smallest element of s. Panics if s is
// empty; callers are expected to check Empty first.
func (s Set) Min() string {
	sorted := s.Sorted()
	if len(sorted) == 0 {
		panic("gset: Min called on empty set")
	}
	return sorted[0]
}
