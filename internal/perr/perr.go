// Package perr holds the grammar-error taxonomy used by the generator.
// Notably, it contains the Error type, which can be created with one or more
// 'cause' errors. Calling errors.Is() on this Error type with an argument
// consisting of any of the errors it has as a cause will return true.
//
// This package also holds the sentinel grammar-error constants created via
// errors.New(), which spec §6 requires the generator to surface; internal
// invariant violations (§7) are not modeled here and panic instead.
package perr

import "errors"

var (
	// ErrNoStartRule is the cause wrapped when a grammar has no rule named
	// "start".
	ErrNoStartRule = errors.New("grammar has no rule named \"start\"")

	// ErrNoLeader is the cause wrapped when a first-set SCC of size greater
	// than one has no candidate common to every simple cycle within it.
	ErrNoLeader = errors.New("strongly connected component has no leadership candidate")

	// ErrUnknownPunctuation is the cause wrapped when a StringLeaf does not
	// match the keyword pattern and is not a recognized punctuation literal.
	ErrUnknownPunctuation = errors.New("string literal is not a recognized keyword or punctuation token")

	// ErrDuplicateRule is the cause wrapped when a grammar defines the same
	// rule name more than once.
	ErrDuplicateRule = errors.New("rule with same name already defined in grammar")
)

// Error is a typed error returned by the grammar-analysis and code-generation
// pipeline. It carries a message describing what happened along with one or
// more error values it considers to be its causes. Error is compatible with
// errors.Is: calling errors.Is on an Error with an argument that is one of its
// causes returns true, which lets callers branch on ErrNoLeader, ErrNoStartRule,
// and so on without needing to inspect the message text.
//
// Error should not be constructed directly; call New.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message defined for the Error, concatenated with the
// result of calling Error() on its first cause if one is defined.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}
	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns the causes of Error, or nil if none were defined.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether target is one of Error's causes.
func (e Error) Is(target error) bool {
	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

// New creates a new Error with the given message and causes. Providing cause
// errors is not required, but doing so makes errors.Is(err, cause) return true
// for each of them.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
