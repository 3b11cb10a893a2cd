package analysis

import (
	"strings"

	"github.com/dekarrin/peggen/internal/gset"
	"github.com/dekarrin/peggen/internal/perr"
	"github.com/dekarrin/peggen/ir"
)

// AssignLeftRecursion computes the first-set graph for g, finds its
// strongly-connected components, and sets LeftRecursive/Leader on every rule
// per spec §4.1:
//
//   - size 1, no self-edge: non-recursive.
//   - size 1, self-edge: left-recursive and its own leader.
//   - size >1: every member is left-recursive; the leader is the
//     lexicographically smallest rule common to every simple cycle within
//     the component. If no such rule exists, returns a perr.Error wrapping
//     perr.ErrNoLeader naming the offending component.
//
// Nullability must already have been computed (ComputeNullable) before
// calling this, since the first-set graph depends on it.
func AssignLeftRecursion(g *ir.Grammar) (graph map[string]gset.Set, sccs [][]string, err error) {
	graph = BuildFirstGraph(g)
	sccs = TarjanSCC(graph)

	for _, scc := range sccs {
		if len(scc) > 1 {
			for _, name := range scc {
				if r, ok := g.Rule(name); ok {
					r.LeftRecursive = true
				}
			}

			leader, lerr := findLeader(graph, scc)
			if lerr != nil {
				return graph, sccs, lerr
			}
			if r, ok := g.Rule(leader); ok {
				r.Leader = true
			}
			continue
		}

		// size 1
		name := scc[0]
		if graph[name].Has(name) {
			if r, ok := g.Rule(name); ok {
				r.LeftRecursive = true
				r.Leader = true
			}
		}
	}

	return graph, sccs, nil
}

// findLeader enumerates the simple cycles within scc and returns the
// lexicographically smallest rule name common to every one of them. This is
// the Go port of pegen's sccutils.find_cycles_in_scc-driven leader search in
// parser_generator.py: leadership candidates start as every member of the
// component, and each cycle found removes from the candidate set every
// member of the component that the cycle does not pass through.
func findLeader(graph map[string]gset.Set, scc []string) (string, error) {
	members := gset.New(scc...)
	leaders := gset.New(scc...)

	for _, start := range scc {
		for _, cycle := range findCyclesInSCC(graph, members, start) {
			cycleSet := gset.New(cycle...)
			leaders.RemoveAll(members.Difference(cycleSet))
			if leaders.Empty() {
				return "", perr.New(
					"component {"+strings.Join(members.Sorted(), ", ")+"} has no leadership candidate",
					perr.ErrNoLeader,
				)
			}
		}
	}

	return leaders.Min(), nil
}

// findCyclesInSCC enumerates the simple cycles that start and end at start
// and stay entirely within members, via DFS over graph restricted to
// members. Each cycle is returned as the ordered list of vertices visited,
// starting and ending at start (start is included only once, at the front).
func findCyclesInSCC(graph map[string]gset.Set, members gset.Set, start string) [][]string {
	var cycles [][]string
	var path []string
	onPath := gset.New()

	var walk func(v string)
	walk = func(v string) {
		path = append(path, v)
		onPath.Add(v)

		for _, w := range graph[v].Sorted() {
			if !members.Has(w) {
				continue
			}
			if w == start {
				cycle := make([]string, len(path))
				copy(cycle, path)
				cycles = append(cycles, cycle)
				continue
			}
			if !onPath.Has(w) {
				walk(w)
			}
		}

		path = path[:len(path)-1]
		onPath.Remove(v)
	}

	walk(start)
	return cycles
}
