// Package expand implements the rule expander (spec §4.2): it allocates
// synthesized helper rules for nested alternatives, groupings, and
// repetition, and appends them to the grammar's work-list.
//
// Unlike the nullability and first-set analyses, expansion is driven
// on demand by the call-site planner (package plan) rather than as an
// up-front pass over the grammar: a Group or Repeat item only needs a helper
// rule once something actually plans a call site for it. This mirrors
// CPython's pegen, where ParserGenerator.name_node/name_loop are called
// directly from the C-call-making visitor as it walks each rule, not in a
// separate phase — the component boundary spec §2 draws between "expander"
// and "planner" exists in the responsibilities, not in the call sequence.
package expand

import (
	"fmt"

	"github.com/dekarrin/peggen/ir"
)

// Expander allocates helper rules for one grammar, appending them to it. Its
// allocation cache is keyed on the identity of the sub-node being expanded
// (the *ir.Rhs pointer for groupings, the *ir.Repeat0/*ir.Repeat1 pointer for
// loops), not on structural equality: two structurally equal but distinct
// nodes yield distinct helpers (spec §9, Open Question (b); this is
// preserved deliberately so that helper allocation stays predictable and
// independent of any future structural-equality definition for Item).
//
// The counter is instance state, not global state (spec §9): a fresh
// Expander must be used per generation pass.
type Expander struct {
	g       *ir.Grammar
	counter int

	rhsHelpers  map[*ir.Rhs]string
	loopHelpers map[ir.Item]string
}

// New returns an Expander that will append helper rules to g.
func New(g *ir.Grammar) *Expander {
	return &Expander{
		g:           g,
		rhsHelpers:  make(map[*ir.Rhs]string),
		loopHelpers: make(map[ir.Item]string),
	}
}

// InlineOrHelper decides, for an Rhs appearing in a non-rule position (a
// Group's body, or any other anonymous sub-choice), whether it can be
// flattened in place or needs a helper rule.
//
// An Rhs with exactly one alternative containing exactly one item is trivial
// and is inlined: the planner just plans that one item directly, with no
// helper rule and no intervening call. Every other shape — multiple
// alternatives, or a single alternative with more than one item — gets a
// helper rule, even though a single multi-item alternative could in
// principle be flattened into the parent sequence; CPython's pegen does not
// bother distinguishing that case either, and neither do we (see the
// internal/expand entry in DESIGN.md for why this particular conservative
// heuristic was chosen over spec.md's looser "more than one alternative"
// wording).
//
// When a helper is needed, InlineOrHelper returns (nil, name, true); the
// caller should plan a rule invocation of name instead of the original item.
func (e *Expander) InlineOrHelper(rhs *ir.Rhs) (inlineItem ir.Item, helperName string, needsHelper bool) {
	if len(rhs.Alts) == 1 && len(rhs.Alts[0].Items) == 1 {
		return rhs.Alts[0].Items[0].Item, "", false
	}

	if name, ok := e.rhsHelpers[rhs]; ok {
		return nil, name, true
	}

	e.counter++
	name := fmt.Sprintf("%s%d", ir.HelperPrefix, e.counter)
	rule := ir.NewRule(name, "", rhs)
	e.g.AddRule(rule)
	e.rhsHelpers[rhs] = name

	return nil, name, true
}

// LoopHelper allocates (or returns the cached) loop rule for a Repeat0 or
// Repeat1 node. item must be the *ir.Repeat0 or *ir.Repeat1 pointer itself,
// not its inner item — the cache key is the repetition node's identity so
// that repeated planning of the same node reuses the same helper.
func (e *Expander) LoopHelper(repeatNode ir.Item, inner ir.Item, isRepeat1 bool) string {
	if name, ok := e.loopHelpers[repeatNode]; ok {
		return name
	}

	e.counter++
	prefix := ir.Loop0Prefix
	if isRepeat1 {
		prefix = ir.Loop1Prefix
	}
	name := fmt.Sprintf("%s%d", prefix, e.counter)

	rhs := ir.NewRhs(ir.NewAlt(ir.NewNamedItem(inner)))
	rule := ir.NewRule(name, "", rhs)
	e.g.AddRule(rule)
	e.loopHelpers[repeatNode] = name

	return name
}
