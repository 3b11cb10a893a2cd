package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsClass(t *testing.T) {
	testCases := []struct {
		name   string
		expect bool
	}{
		{name: "NAME", expect: true},
		{name: "CURLY_STUFF", expect: true},
		{name: "AWAIT", expect: true},
		{name: "expr", expect: false},
		{name: "", expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, IsClass(tc.name))
		})
	}
}

func Test_PunctuationCode(t *testing.T) {
	assert := assert.New(t)

	openParen, ok := PunctuationCode("(")
	assert.True(ok)

	closeParen, ok := PunctuationCode(")")
	assert.True(ok)

	assert.NotEqual(openParen, closeParen)

	_, ok = PunctuationCode("not-a-real-spelling")
	assert.False(ok)
}

func Test_PunctuationCode_StableAcrossCalls(t *testing.T) {
	assert := assert.New(t)

	first, _ := PunctuationCode("->")
	second, _ := PunctuationCode("->")
	assert.Equal(first, second)
}
