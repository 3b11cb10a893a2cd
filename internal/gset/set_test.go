package gset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Set_Sorted(t *testing.T) {
	testCases := []struct {
		name     string
		elements []string
		expect   []string
	}{
		{
			name:   "empty set",
			expect: []string{},
		},
		{
			name:     "already sorted",
			elements: []string{"a", "b", "c"},
			expect:   []string{"a", "b", "c"},
		},
		{
			name:     "out of order with duplicate",
			elements: []string{"c", "a", "b", "a"},
			expect:   []string{"a", "b", "c"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s := New(tc.elements...)
			actual := s.Sorted()

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Set_DifferenceIntersection(t *testing.T) {
	assert := assert.New(t)

	a := New("x", "y", "z")
	b := New("y", "z", "w")

	assert.Equal([]string{"x"}, a.Difference(b).Sorted())
	assert.Equal([]string{"y", "z"}, a.Intersection(b).Sorted())
}

func Test_Set_AddRemoveHas(t *testing.T) {
	assert := assert.New(t)

	s := New()
	assert.True(s.Empty())

	s.Add("a")
	assert.True(s.Has("a"))
	assert.Equal(1, s.Len())

	s.Remove("a")
	assert.False(s.Has("a"))
	assert.True(s.Empty())
}

func Test_Set_Min(t *testing.T) {
	assert := assert.New(t)

	s := New("banana", "apple", "cherry")
	assert.Equal("apple", s.Min())
}

func Test_Set_Min_PanicsOnEmpty(t *testing.T) {
	assert := assert.New(t)

	s := New()
	assert.Panics(func() { s.Min() })
}

func Test_Set_Copy_IsIndependent(t *testing.T) {
	assert := assert.New(t)

	a := New("a", "b")
	b := a.Copy()
	b.Add("c")

	assert.False(a.Has("c"))
	assert.True(b.Has("c"))
}
