// Package ir is the grammar intermediate representation: the data model a
// grammar front-end builds and that the analyses, expander, planner, and
// emitter consume. See the package-level doc on Grammar for the lifecycle
// these types are expected to go through.
package ir

import "github.com/dekarrin/peggen/internal/perr"

// Grammar is a mapping from rule name to Rule, plus an ordered mapping of
// metadata keys to optional string values. Insertion order of rules is
// preserved and is the emission order.
//
// A Grammar is built once by a front end, then mutated in three monotonic
// phases: analyses annotate the Nullable/LeftRecursive/Leader flags on
// existing rules; the rule expander may append synthesized helper rules
// (never mutating existing ones); the emitter only reads. After emission the
// Grammar is discarded.
type Grammar struct {
	order []string
	rules map[string]*Rule

	metaOrder []string
	meta      map[string]*string
}

// New returns an empty Grammar ready to have rules added to it.
func New() *Grammar {
	return &Grammar{
		rules: make(map[string]*Rule),
		meta:  make(map[string]*string),
	}
}

// AddRule appends r to the grammar's work-list. Returns a perr.Error wrapping
// perr.ErrDuplicateRule if a rule with the same name already exists.
func (g *Grammar) AddRule(r *Rule) error {
	if _, exists := g.rules[r.Name]; exists {
		return perr.New("rule \""+r.Name+"\" defined more than once", perr.ErrDuplicateRule)
	}
	g.rules[r.Name] = r
	g.order = append(g.order, r.Name)
	return nil
}

// Rule looks up a rule by name.
func (g *Grammar) Rule(name string) (*Rule, bool) {
	r, ok := g.rules[name]
	return r, ok
}

// RuleNames returns the rule names in insertion (work-list) order. The
// returned slice is a snapshot; it does not track later additions.
func (g *Grammar) RuleNames() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Rules returns the rules in insertion (work-list) order. The returned slice
// is a snapshot; it does not track later additions.
func (g *Grammar) Rules() []*Rule {
	rules := make([]*Rule, len(g.order))
	for i, name := range g.order {
		rules[i] = g.rules[name]
	}
	return rules
}

// Len returns the number of rules currently in the grammar.
func (g *Grammar) Len() int {
	return len(g.order)
}

// HasStart returns whether the grammar has a rule named "start", the
// required parser entry point.
func (g *Grammar) HasStart() bool {
	_, ok := g.rules["start"]
	return ok
}

// SetMeta sets a metadata key to an optional value. Passing a nil value
// records the key as present with no value, distinct from the key being
// absent entirely.
func (g *Grammar) SetMeta(key string, value *string) {
	if _, exists := g.meta[key]; !exists {
		g.metaOrder = append(g.metaOrder, key)
	}
	g.meta[key] = value
}

// Meta retrieves a metadata value by key.
func (g *Grammar) Meta(key string) (*string, bool) {
	v, ok := g.meta[key]
	return v, ok
}

// MetaKeys returns the metadata keys in the order they were first set.
func (g *Grammar) MetaKeys() []string {
	keys := make([]string, len(g.metaOrder))
	copy(keys, g.metaOrder)
	return keys
}
