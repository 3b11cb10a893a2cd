package ir

import "strings"

// Reserved name prefixes for rules synthesized by the rule expander. A rule
// whose name begins with one of the loop prefixes always produces a
// sequence-of-children result (see Rule.IsLoop).
const (
	HelperPrefix = "_tmp_"
	Loop0Prefix  = "_loop0_"
	Loop1Prefix  = "_loop1_"
)

// Rule is a single named grammar production.
type Rule struct {
	// Name is the rule's unique identifier.
	Name string

	// Type is the optional target-language type annotation for the rule's
	// semantic result. An empty string means an opaque reference type.
	Type string

	// Rhs is the rule's right-hand side: an ordered non-empty list of
	// alternatives.
	Rhs *Rhs

	// Nullable is set by the nullability analysis: whether the rule may
	// match the empty input.
	Nullable bool

	// LeftRecursive is set by the left-recursion analysis: whether the rule
	// appears in a first-set cycle of size greater than one, or has a
	// first-set self-loop.
	LeftRecursive bool

	// Leader is set by the left-recursion analysis: whether this rule is the
	// chosen cycle leader in its strongly-connected component. Only leaders
	// emit the seed-growing loop.
	Leader bool
}

// NewRule constructs a Rule with the given name, optional type, and
// right-hand side. The derived flags start false; analyses set them.
func NewRule(name, typ string, rhs *Rhs) *Rule {
	return &Rule{Name: name, Type: typ, Rhs: rhs}
}

// IsLoop returns whether the rule was synthesized as a repetition helper by
// the rule expander. Loop rules always produce a sequence-of-children
// result.
func (r *Rule) IsLoop() bool {
	return strings.HasPrefix(r.Name, Loop0Prefix) || strings.HasPrefix(r.Name, Loop1Prefix)
}

// IsRepeat1Loop returns whether the rule is a loop helper synthesized from a
// Repeat1 (as opposed to Repeat0): zero matches is failure rather than an
// empty sequence.
func (r *Rule) IsRepeat1Loop() bool {
	return strings.HasPrefix(r.Name, Loop1Prefix)
}

// IsHelper returns whether the rule was synthesized by the rule expander to
// stand in for a nested alternative or grouping (as opposed to a repetition).
func (r *Rule) IsHelper() bool {
	return strings.HasPrefix(r.Name, HelperPrefix)
}

// Rhs is an ordered non-empty list of alternatives. Ordered choice: earlier
// alternatives win on success.
type Rhs struct {
	Alts []*Alt
}

// NewRhs constructs an Rhs from one or more alternatives. Panics if given
// zero alternatives, since an Rhs is never meaningfully empty (that is an
// internal-invariant violation, not a grammar error — see spec §7).
func NewRhs(alts ...*Alt) *Rhs {
	if len(alts) == 0 {
		panic("ir: Rhs must have at least one alternative")
	}
	return &Rhs{Alts: alts}
}

// Alt is an ordered list of named items, plus an optional semantic action.
type Alt struct {
	Items []*NamedItem

	// HasAction records whether an explicit action was supplied. When false,
	// Action is ignored and a default action is synthesized at planning
	// time: the single item's value if there is exactly one named item,
	// else a constructor call over all named items in order.
	HasAction bool

	// Action is the target-language expression string that computes the
	// alternative's semantic value from its named bindings. It is stored
	// already unwrapped from the brace delimiters the front end used to
	// mark it; the emitter treats it as opaque, unparsed text.
	Action string
}

// NewAlt constructs an Alt with no explicit action.
func NewAlt(items ...*NamedItem) *Alt {
	return &Alt{Items: items}
}

// WithAction sets an explicit action on the alternative and returns it for
// chaining.
func (a *Alt) WithAction(action string) *Alt {
	a.HasAction = true
	a.Action = action
	return a
}

// NamedItem is a pair of an optional bind name and an item. The bind name, if
// present, overrides the default variable name the call-site planner would
// otherwise derive from the item.
type NamedItem struct {
	// Bind is the explicit bind name, or "" if none was given.
	Bind string

	Item Item
}

// NewNamedItem constructs a NamedItem with no explicit bind name.
func NewNamedItem(item Item) *NamedItem {
	return &NamedItem{Item: item}
}

// Named constructs a NamedItem with an explicit bind name.
func Named(bind string, item Item) *NamedItem {
	return &NamedItem{Bind: bind, Item: item}
}
