package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/peggen/ir"
)

func rhsOf(alts ...*ir.Alt) *ir.Rhs {
	return ir.NewRhs(alts...)
}

func altOf(items ...ir.Item) *ir.Alt {
	named := make([]*ir.NamedItem, len(items))
	for i, it := range items {
		named[i] = ir.NewNamedItem(it)
	}
	return ir.NewAlt(named...)
}

func Test_ComputeNullable_MinimalGrammar(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	// start: "x"
	g.AddRule(ir.NewRule("start", "", rhsOf(altOf(&ir.StringLeaf{Value: "x"}))))

	ComputeNullable(g)

	start, _ := g.Rule("start")
	assert.False(start.Nullable)
}

func Test_ComputeNullable_OptAndRepeat0AreNullable(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	g.AddRule(ir.NewRule("start", "", rhsOf(altOf(
		&ir.Opt{Item: &ir.StringLeaf{Value: "x"}},
		&ir.Repeat0{Item: &ir.StringLeaf{Value: "y"}},
	))))

	ComputeNullable(g)

	start, _ := g.Rule("start")
	assert.True(start.Nullable)
}

func Test_ComputeNullable_Repeat1RequiresInnerNullable(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	g.AddRule(ir.NewRule("start", "", rhsOf(altOf(
		&ir.Repeat1{Item: &ir.StringLeaf{Value: "x"}},
	))))

	ComputeNullable(g)

	start, _ := g.Rule("start")
	assert.False(start.Nullable)
}

func Test_ComputeNullable_TransitiveThroughRuleReference(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	// maybeX: empty | "x"
	// start: maybeX
	g.AddRule(ir.NewRule("maybeX", "", rhsOf(
		altOf(), // empty alternative: nullable
		altOf(&ir.StringLeaf{Value: "x"}),
	)))
	g.AddRule(ir.NewRule("start", "", rhsOf(altOf(&ir.NameLeaf{Name: "maybeX"}))))

	ComputeNullable(g)

	start, _ := g.Rule("start")
	assert.True(start.Nullable)
}

func Test_ComputeNullable_SecondPassIsStable(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	g.AddRule(ir.NewRule("a", "", rhsOf(altOf(&ir.NameLeaf{Name: "b"}))))
	g.AddRule(ir.NewRule("b", "", rhsOf(altOf(&ir.Opt{Item: &ir.StringLeaf{Value: "x"}}))))

	ComputeNullable(g)
	firstPass := map[string]bool{}
	for _, r := range g.Rules() {
		firstPass[r.Name] = r.Nullable
	}

	ComputeNullable(g)
	for _, r := range g.Rules() {
		assert.Equal(firstPass[r.Name], r.Nullable, "rule %q changed on second pass", r.Name)
	}
}

func Test_ComputeNullable_TokenClassNeverNullable(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	g.AddRule(ir.NewRule("start", "", rhsOf(altOf(&ir.NameLeaf{Name: "NAME"}))))

	ComputeNullable(g)

	start, _ := g.Rule("start")
	assert.False(start.Nullable)
}

func Test_ComputeNullable_CutIsNullable(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	g.AddRule(ir.NewRule("start", "", rhsOf(altOf(&ir.Cut{}))))

	ComputeNullable(g)

	start, _ := g.Rule("start")
	assert.True(start.Nullable)
}
