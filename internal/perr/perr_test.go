package perr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_Is_MatchesWrappedSentinel(t *testing.T) {
	assert := assert.New(t)

	e := New("no leader in component", ErrNoLeader)

	assert.True(errors.Is(e, ErrNoLeader))
	assert.False(errors.Is(e, ErrNoStartRule))
}

func Test_Error_Unwrap_ReturnsCauses(t *testing.T) {
	assert := assert.New(t)

	e := New("grammar invalid", ErrNoStartRule, ErrDuplicateRule)

	unwrapped := e.Unwrap()
	assert.Len(unwrapped, 2)
	assert.Contains(unwrapped, ErrNoStartRule)
	assert.Contains(unwrapped, ErrDuplicateRule)
}

func Test_Error_Error_IncludesMessage(t *testing.T) {
	assert := assert.New(t)

	e := New("rule \"expr\" defined more than once")
	assert.Contains(e.Error(), "expr")
}
