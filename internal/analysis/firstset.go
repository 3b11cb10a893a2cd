package analysis

import (
	"fmt"

	"github.com/dekarrin/peggen/internal/gset"
	"github.com/dekarrin/peggen/internal/tokens"
	"github.com/dekarrin/peggen/ir"
)

// BuildFirstGraph builds the first-set graph: a directed graph whose
// vertices are rule names. From each rule A there is an edge A -> B for
// every rule name B reachable as an initial position of some alternative of
// A, where "initial" means the first item, and also the next item whenever
// the current one is nullable. Token-class leaves contribute no vertex.
//
// Nullability must already have been computed (ComputeNullable) before
// calling this.
func BuildFirstGraph(g *ir.Grammar) map[string]gset.Set {
	graph := make(map[string]gset.Set)
	for _, name := range g.RuleNames() {
		graph[name] = gset.New()
	}

	for _, r := range g.Rules() {
		names := initialNames(r.Rhs, g)
		graph[r.Name].AddAll(names)
		for _, v := range names.Sorted() {
			if _, ok := graph[v]; !ok {
				graph[v] = gset.New()
			}
		}
	}

	return graph
}

// initialNames collects, across every alternative of rhs, the rule names
// reachable at an initial position.
func initialNames(rhs *ir.Rhs, g *ir.Grammar) gset.Set {
	result := gset.New()
	for _, alt := range rhs.Alts {
		result.AddAll(altInitialNames(alt, g))
	}
	return result
}

func altInitialNames(alt *ir.Alt, g *ir.Grammar) gset.Set {
	result := gset.New()
	for _, ni := range alt.Items {
		result.AddAll(itemInitialNames(ni.Item, g))
		if !itemNullable(ni.Item, g) {
			break
		}
	}
	return result
}

// itemInitialNames returns the rule names an item may invoke at its own
// initial position. Lookaheads contribute no vertex: they are assertions
// that do not advance the position and, per spec §4.1, are not described as
// graph-contributing in the way ordinary invocations are (see DESIGN.md for
// this decision).
func itemInitialNames(item ir.Item, g *ir.Grammar) gset.Set {
	switch v := item.(type) {
	case *ir.NameLeaf:
		if tokens.IsClass(v.Name) {
			return gset.New()
		}
		return gset.New(v.Name)
	case *ir.StringLeaf:
		return gset.New()
	case *ir.Opt:
		return itemInitialNames(v.Item, g)
	case *ir.Repeat0:
		return itemInitialNames(v.Item, g)
	case *ir.Repeat1:
		return itemInitialNames(v.Item, g)
	case *ir.Group:
		return initialNames(v.Rhs, g)
	case *ir.PositiveLookahead:
		return gset.New()
	case *ir.NegativeLookahead:
		return gset.New()
	case *ir.Cut:
		return gset.New()
	default:
		panic(fmt.Sprintf("analysis: unhandled item type %T in first-set graph", item))
	}
}
