package analysis

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/peggen/internal/gset"
)

func normalizeSCCs(sccs [][]string) [][]string {
	out := make([][]string, len(sccs))
	for i, scc := range sccs {
		cp := make([]string, len(scc))
		copy(cp, scc)
		sort.Strings(cp)
		out[i] = cp
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}

func Test_TarjanSCC_NoEdges(t *testing.T) {
	assert := assert.New(t)

	graph := map[string]gset.Set{
		"a": gset.New(),
		"b": gset.New(),
	}

	sccs := normalizeSCCs(TarjanSCC(graph))
	assert.Equal([][]string{{"a"}, {"b"}}, sccs)
}

func Test_TarjanSCC_SelfLoop(t *testing.T) {
	assert := assert.New(t)

	graph := map[string]gset.Set{
		"a": gset.New("a"),
	}

	sccs := TarjanSCC(graph)
	assert.Len(sccs, 1)
	assert.Equal([]string{"a"}, sccs[0])
}

func Test_TarjanSCC_DirectCycle(t *testing.T) {
	assert := assert.New(t)

	graph := map[string]gset.Set{
		"a": gset.New("b"),
		"b": gset.New("a"),
	}

	sccs := normalizeSCCs(TarjanSCC(graph))
	assert.Equal([][]string{{"a", "b"}}, sccs)
}

func Test_TarjanSCC_IndirectCycle(t *testing.T) {
	assert := assert.New(t)

	graph := map[string]gset.Set{
		"a": gset.New("b"),
		"b": gset.New("c"),
		"c": gset.New("a"),
		"d": gset.New(),
	}

	sccs := normalizeSCCs(TarjanSCC(graph))
	assert.Equal([][]string{{"a", "b", "c"}, {"d"}}, sccs)
}

func Test_TarjanSCC_DeterministicAcrossRuns(t *testing.T) {
	assert := assert.New(t)

	graph := map[string]gset.Set{
		"a": gset.New("b", "c"),
		"b": gset.New("c"),
		"c": gset.New("a"),
		"d": gset.New("b"),
	}

	first := TarjanSCC(graph)
	for i := 0; i < 10; i++ {
		again := TarjanSCC(graph)
		assert.Equal(first, again)
	}
}
