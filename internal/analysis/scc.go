package analysis

import "github.com/dekarrin/peggen/internal/gset"

// tarjanState carries the mutable bookkeeping for one run of Tarjan's
// algorithm. Neighbor iteration is always over gset.Set.Sorted(), so the
// same graph always yields the same sequence of SCCs (spec §8: emission
// determinism).
type tarjanState struct {
	graph   map[string]gset.Set
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	counter int
	sccs    [][]string
}

// TarjanSCC computes the strongly-connected components of graph using
// Tarjan's algorithm, visiting vertices in lexicographic order so that the
// result is deterministic for a given graph.
func TarjanSCC(graph map[string]gset.Set) [][]string {
	st := &tarjanState{
		graph:   graph,
		index:   make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
	}

	for _, v := range sortedKeys(graph) {
		if _, visited := st.index[v]; !visited {
			st.strongConnect(v)
		}
	}

	return st.sccs
}

func sortedKeys(graph map[string]gset.Set) []string {
	keys := make([]string, 0, len(graph))
	for k := range graph {
		keys = append(keys, k)
	}
	return gset.New(keys...).Sorted()
}

func (st *tarjanState) strongConnect(v string) {
	st.index[v] = st.counter
	st.lowlink[v] = st.counter
	st.counter++
	st.stack = append(st.stack, v)
	st.onStack[v] = true

	for _, w := range st.graph[v].Sorted() {
		if _, visited := st.index[w]; !visited {
			st.strongConnect(w)
			if st.lowlink[w] < st.lowlink[v] {
				st.lowlink[v] = st.lowlink[w]
			}
		} else if st.onStack[w] {
			if st.index[w] < st.lowlink[v] {
				st.lowlink[v] = st.index[w]
			}
		}
	}

	if st.lowlink[v] == st.index[v] {
		var scc []string
		for {
			n := len(st.stack) - 1
			w := st.stack[n]
			st.stack = st.stack[:n]
			st.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		st.sccs = append(st.sccs, scc)
	}
}
