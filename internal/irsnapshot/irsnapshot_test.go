package irsnapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/peggen/ir"
)

func Test_Build_CapturesRuleFlags(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	r := ir.NewRule("start", "ast.Root", ir.NewRhs(ir.NewAlt(ir.NewNamedItem(&ir.StringLeaf{Value: "x"}))))
	r.Nullable = true
	r.LeftRecursive = true
	r.Leader = true
	assert.NoError(g.AddRule(r))

	snap := Build(g)

	assert.Len(snap.Rules, 1)
	got := snap.Rules[0]
	assert.Equal("start", got.Name)
	assert.Equal("ast.Root", got.Type)
	assert.True(got.Nullable)
	assert.True(got.LeftRecursive)
	assert.True(got.Leader)
	assert.False(got.IsHelper)
}

func Test_Build_PreservesWorkListOrder(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	assert.NoError(g.AddRule(ir.NewRule("start", "", ir.NewRhs(ir.NewAlt(ir.NewNamedItem(&ir.StringLeaf{Value: "x"}))))))
	assert.NoError(g.AddRule(ir.NewRule("expr", "", ir.NewRhs(ir.NewAlt(ir.NewNamedItem(&ir.StringLeaf{Value: "y"}))))))

	snap := Build(g)

	assert.Len(snap.Rules, 2)
	assert.Equal("start", snap.Rules[0].Name)
	assert.Equal("expr", snap.Rules[1].Name)
}

func Test_Build_CapturesMetaIncludingUnsetValue(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	assert.NoError(g.AddRule(ir.NewRule("start", "", ir.NewRhs(ir.NewAlt(ir.NewNamedItem(&ir.StringLeaf{Value: "x"}))))))

	val := "v1"
	g.SetMeta("version", &val)
	g.SetMeta("experimental", nil)

	snap := Build(g)

	assert.Equal([]string{"version", "experimental"}, snap.MetaKeys)
	assert.Equal([]string{"v1", ""}, snap.MetaVals)
}

func Test_Encode_Decode_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	g := ir.New()
	r := ir.NewRule("start", "ast.Root", ir.NewRhs(ir.NewAlt(ir.NewNamedItem(&ir.StringLeaf{Value: "x"}))))
	r.Nullable = true
	assert.NoError(g.AddRule(r))

	val := "v1"
	g.SetMeta("version", &val)

	snap := Build(g)

	data, err := Encode(snap)
	assert.NoError(err)
	assert.NotEmpty(data)

	decoded, err := Decode(data)
	assert.NoError(err)
	assert.Equal(snap, decoded)
}

func Test_Decode_InvalidDataIsError(t *testing.T) {
	assert := assert.New(t)

	_, err := Decode([]byte{0xff, 0xfe, 0xfd})
	assert.Error(err)
}
