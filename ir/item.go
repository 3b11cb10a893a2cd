package ir

// Item is implemented by every grammar item variant: NameLeaf, StringLeaf,
// Opt, Repeat0, Repeat1, Group, PositiveLookahead, NegativeLookahead, and
// Cut. It is a marker interface; analyses, the expander, and the planner all
// switch on the concrete type rather than dispatching through item methods,
// so that adding an analysis never requires touching this file (see
// DESIGN.md's note on tagged-variant IR vs. a visitor hierarchy).
type Item interface {
	isItem()
}

// NameLeaf references either a known token class or another rule by
// identifier. Resolution between the two happens in the tokens package: if
// Name is in the closed set of token class names, it resolves to a token
// fetch primitive; otherwise it resolves to a recursive rule invocation, and
// the referential-integrity invariant (spec §3) requires that a rule with
// that name exist in the grammar.
type NameLeaf struct {
	Name string
}

func (*NameLeaf) isItem() {}

// StringLeaf is a quoted string literal, already unquoted by the front end.
// If the value matches [A-Za-z_]\w* it is a keyword match; otherwise it must
// be a recognized punctuation literal (see internal/tokens) and becomes an
// expect-token call.
type StringLeaf struct {
	Value string
}

func (*StringLeaf) isItem() {}

// Opt matches Item or skips it; it always succeeds, and its result may be a
// null/absent marker.
type Opt struct {
	Item Item
}

func (*Opt) isItem() {}

// Repeat0 is greedy zero-or-more repetition of Item; it always succeeds.
type Repeat0 struct {
	Item Item
}

func (*Repeat0) isItem() {}

// Repeat1 is greedy one-or-more repetition of Item; it fails if zero matches
// occur.
type Repeat1 struct {
	Item Item
}

func (*Repeat1) isItem() {}

// Group is a parenthesized sub-choice. Planning recurses into the inner Rhs.
type Group struct {
	Rhs *Rhs
}

func (*Group) isItem() {}

// PositiveLookahead asserts that Item matches at the current position
// without consuming input.
type PositiveLookahead struct {
	Item Item
}

func (*PositiveLookahead) isItem() {}

// NegativeLookahead asserts that Item does not match at the current position
// without consuming input.
type NegativeLookahead struct {
	Item Item
}

func (*NegativeLookahead) isItem() {}

// Cut is a commit marker. Once crossed within an alternative, failure of a
// later item in that alternative aborts the enclosing rule rather than
// trying the next alternative.
type Cut struct{}

func (*Cut) isItem() {}
