// Package analysis computes the derived flags spec §4.1 requires: the
// nullability fixpoint, the first-set graph, its strongly-connected
// components, and the left-recursive/leader assignment. All three analyses
// run once, over the grammar exactly as the front end built it, before the
// rule expander adds any synthesized helper rules — helper rules are never
// targets of a NameLeaf in the surface grammar, so they cannot participate
// in a first-set cycle and are left with their zero-value flags.
package analysis

import (
	"fmt"

	"github.com/dekarrin/peggen/internal/tokens"
	"github.com/dekarrin/peggen/ir"
)

// ComputeNullable computes the least fixed point of the nullability relation
// over every rule in g and sets Rule.Nullable accordingly. It is safe to call
// a second time on an unchanged grammar: no flag will change (spec §8).
func ComputeNullable(g *ir.Grammar) {
	rules := g.Rules()
	for {
		changed := false
		for _, r := range rules {
			n := rhsNullable(r.Rhs, g)
			if n != r.Nullable {
				r.Nullable = n
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func rhsNullable(rhs *ir.Rhs, g *ir.Grammar) bool {
	for _, alt := range rhs.Alts {
		if altNullable(alt, g) {
			return true
		}
	}
	return false
}

func altNullable(alt *ir.Alt, g *ir.Grammar) bool {
	for _, ni := range alt.Items {
		if !itemNullable(ni.Item, g) {
			return false
		}
	}
	return true
}

func itemNullable(item ir.Item, g *ir.Grammar) bool {
	switch v := item.(type) {
	case *ir.NameLeaf:
		if tokens.IsClass(v.Name) {
			return false
		}
		r, ok := g.Rule(v.Name)
		if !ok {
			// Referential integrity is the front end's responsibility
			// (spec §3); a dangling reference is conservatively treated as
			// non-nullable rather than panicking mid-fixpoint.
			return false
		}
		return r.Nullable
	case *ir.StringLeaf:
		return false
	case *ir.Opt:
		return true
	case *ir.Repeat0:
		return true
	case *ir.Repeat1:
		return itemNullable(v.Item, g)
	case *ir.Group:
		return rhsNullable(v.Rhs, g)
	case *ir.PositiveLookahead:
		return true
	case *ir.NegativeLookahead:
		return true
	case *ir.Cut:
		// A cut is a zero-width commit marker: it consumes no input, so it
		// never blocks an alternative from being nullable.
		return true
	default:
		panic(fmt.Sprintf("analysis: unhandled item type %T in nullability", item))
	}
}
