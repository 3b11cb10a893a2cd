// Package plan implements the call-site planner (spec §4.3): for each item
// it decides the run-time call shape — which runtime-library primitive is
// invoked and what temporary variable carries the result — and hands the
// rule expander (package expand) nested alternatives, groupings, and
// repetitions to turn into helper rules as they are encountered.
package plan

import (
	"fmt"
	"strings"

	"github.com/dekarrin/peggen/internal/expand"
	"github.com/dekarrin/peggen/internal/perr"
	"github.com/dekarrin/peggen/internal/tokens"
	"github.com/dekarrin/peggen/ir"
)

// ArgKind discriminates the kind of value a Call's extra argument carries.
type ArgKind int

const (
	ArgInt ArgKind = iota
	ArgString
	ArgBool
	ArgFunc
)

// Arg is one extra argument to a planned Call, beyond the implicit parser
// receiver every runtime primitive takes.
type Arg struct {
	Kind ArgKind
	Int  int
	Str  string
	Bool bool
}

// Call describes one invocation of a runtime-library contract primitive
// (spec §4.5): Func names the primitive (a contract label, not a literal
// target-language identifier — the emitter is responsible for rendering it),
// and Args carries whatever extra arguments that primitive needs beyond the
// parser.
type Call struct {
	Func string
	Args []Arg
}

// PlannedItem is the planner's output for one NamedItem: the variable name
// that will carry its result, and the call that produces it.
type PlannedItem struct {
	// Var is the variable name the result is bound to. Empty for
	// lookaheads, which bind no variable.
	Var string

	Call Call

	// AlwaysSucceeds is set for Opt-wrapped items: the call is attempted,
	// but its failure does not fail the enclosing alternative.
	AlwaysSucceeds bool

	// IsCut marks the item as the alternative's commit point.
	IsCut bool

	// HasBinding is false only for lookaheads: every other item, including
	// Cut, contributes a variable usable from the action / default
	// constructor call.
	HasBinding bool
}

// PlannedAlt is the planner's output for one Alt: its items in order, plus
// the action to run on full success (already resolved to either the
// explicit action text or, if none was given, the synthesized default).
type PlannedAlt struct {
	Items []PlannedItem

	// Action is the expression text to assign to the result on success —
	// either the Alt's explicit action, or a synthesized default.
	Action string

	// IsDefaultAction records whether Action was synthesized by the planner
	// (single item passthrough, or a CONSTRUCTOR call) rather than supplied
	// by the front end, purely for diagnostics/tests; the emitter treats
	// Action identically either way.
	IsDefaultAction bool
}

// RulePlan is the planner's complete output for one rule: its alternatives,
// planned in order.
type RulePlan struct {
	RuleName string
	Alts     []PlannedAlt
}

// Planner plans call sites for a grammar, allocating helper rules through an
// Expander as nested structure is encountered. A Planner instance owns its
// own per-alternative variable-dedup state machinery; it holds no counters
// of its own beyond what it delegates to the Expander.
type Planner struct {
	expander *expand.Expander
}

// New returns a Planner that will allocate helper rules into g via exp.
func New(exp *expand.Expander) *Planner {
	return &Planner{expander: exp}
}

// PlanRule plans every alternative of r's right-hand side. Returns a
// perr.Error wrapping perr.ErrUnknownPunctuation if any StringLeaf in r is
// neither keyword-shaped nor a recognized punctuation literal (spec §6).
func (p *Planner) PlanRule(r *ir.Rule) (RulePlan, error) {
	plan := RulePlan{RuleName: r.Name}
	for _, alt := range r.Rhs.Alts {
		pa, err := p.planAlt(alt)
		if err != nil {
			return RulePlan{}, err
		}
		plan.Alts = append(plan.Alts, pa)
	}
	return plan, nil
}

func (p *Planner) planAlt(alt *ir.Alt) (PlannedAlt, error) {
	used := make(map[string]int)
	var items []PlannedItem
	var bindNames []string

	for _, ni := range alt.Items {
		pi, err := p.planNamedItem(ni)
		if err != nil {
			return PlannedAlt{}, err
		}
		if pi.HasBinding {
			name := pi.Var
			if name != "cut" {
				name = dedupe(name, used)
			}
			pi.Var = name
			bindNames = append(bindNames, name)
		}
		items = append(items, pi)
	}

	action := alt.Action
	isDefault := !alt.HasAction
	if isDefault {
		switch len(bindNames) {
		case 0:
			action = "nil"
		case 1:
			action = bindNames[0]
		default:
			action = "CONSTRUCTOR(p, " + strings.Join(bindNames, ", ") + ")"
		}
	}

	return PlannedAlt{Items: items, Action: action, IsDefaultAction: isDefault}, nil
}

// dedupe appends a numeric suffix to name if it collides with one already
// used in this alternative, starting at _1 (SPEC_FULL.md SUPPLEMENTED
// FEATURES #5; ported from pegen's C generator dedupe()).
func dedupe(name string, used map[string]int) string {
	n, seen := used[name]
	used[name] = n + 1
	if !seen {
		return name
	}
	return fmt.Sprintf("%s_%d", name, n)
}

func (p *Planner) planNamedItem(ni *ir.NamedItem) (PlannedItem, error) {
	pi, err := p.planItem(ni.Item)
	if err != nil {
		return PlannedItem{}, err
	}
	if ni.Bind != "" {
		pi.Var = ni.Bind
	}
	return pi, nil
}

// planItem is the heart of the planner: the table in spec §4.3, implemented
// as an exhaustive type switch. Unrecognized item types are an
// internal-invariant violation (spec §7) and panic; an unrecognized
// punctuation literal is a grammar error (spec §6) and is returned instead.
func (p *Planner) planItem(item ir.Item) (PlannedItem, error) {
	switch v := item.(type) {
	case *ir.NameLeaf:
		if tokens.IsClass(v.Name) {
			lower := strings.ToLower(v.Name)
			return PlannedItem{
				Var:        lower + "_var",
				Call:       Call{Func: lower + "Token"},
				HasBinding: true,
			}, nil
		}
		return PlannedItem{
			Var:        v.Name + "_var",
			Call:       Call{Func: v.Name + "Rule"},
			HasBinding: true,
		}, nil

	case *ir.StringLeaf:
		if isIdentifierLike(v.Value) {
			return PlannedItem{
				Var:        "keyword",
				Call:       Call{Func: "MatchKeyword", Args: []Arg{{Kind: ArgString, Str: v.Value}}},
				HasBinding: true,
			}, nil
		}
		code, ok := tokens.PunctuationCode(v.Value)
		if !ok {
			return PlannedItem{}, perr.New(
				"string literal \""+v.Value+"\" is not a recognized keyword or punctuation token",
				perr.ErrUnknownPunctuation,
			)
		}
		return PlannedItem{
			Var:        "literal",
			Call:       Call{Func: "ExpectToken", Args: []Arg{{Kind: ArgInt, Int: code}}},
			HasBinding: true,
		}, nil

	case *ir.Opt:
		inner, err := p.planItem(v.Item)
		if err != nil {
			return PlannedItem{}, err
		}
		inner.Var = "opt_var"
		inner.AlwaysSucceeds = true
		return inner, nil

	case *ir.Repeat0:
		name := p.expander.LoopHelper(item, v.Item, false)
		return PlannedItem{
			Var:        name + "_var",
			Call:       Call{Func: name + "Rule"},
			HasBinding: true,
		}, nil

	case *ir.Repeat1:
		name := p.expander.LoopHelper(item, v.Item, true)
		return PlannedItem{
			Var:        name + "_var",
			Call:       Call{Func: name + "Rule"},
			HasBinding: true,
		}, nil

	case *ir.Group:
		return p.planRhs(v.Rhs)

	case *ir.PositiveLookahead:
		return p.planLookahead(v.Item, true)

	case *ir.NegativeLookahead:
		return p.planLookahead(v.Item, false)

	case *ir.Cut:
		return PlannedItem{
			Var:        "cut",
			Call:       Call{Func: "MarkCut"},
			HasBinding: true,
			IsCut:      true,
		}, nil

	default:
		panic(fmt.Sprintf("plan: unhandled item type %T", item))
	}
}

// planRhs plans an Rhs appearing in a non-rule position (a Group's body): if
// it is trivial it is inlined directly, otherwise the expander allocates a
// helper rule and this plans a rule invocation of it.
func (p *Planner) planRhs(rhs *ir.Rhs) (PlannedItem, error) {
	inlineItem, helperName, needsHelper := p.expander.InlineOrHelper(rhs)
	if !needsHelper {
		return p.planItem(inlineItem)
	}
	return PlannedItem{
		Var:        helperName + "_var",
		Call:       Call{Func: helperName + "Rule"},
		HasBinding: true,
	}, nil
}

// planLookahead plans the wrapped item and dispatches to one of the three
// lookahead-wrapper variants based on the inner call's argument shape
// (SPEC_FULL.md SUPPLEMENTED FEATURES #4).
func (p *Planner) planLookahead(inner ir.Item, positive bool) (PlannedItem, error) {
	innerPlan, err := p.planItem(inner)
	if err != nil {
		return PlannedItem{}, err
	}

	wrapperFunc := "LookaheadZero"
	extra := []Arg(nil)
	if len(innerPlan.Call.Args) > 0 {
		switch innerPlan.Call.Args[0].Kind {
		case ArgInt:
			wrapperFunc = "LookaheadWithInt"
			extra = []Arg{innerPlan.Call.Args[0]}
		case ArgString:
			wrapperFunc = "LookaheadWithString"
			extra = []Arg{innerPlan.Call.Args[0]}
		}
	}

	args := []Arg{{Kind: ArgBool, Bool: positive}, {Kind: ArgFunc, Str: innerPlan.Call.Func}}
	args = append(args, extra...)

	return PlannedItem{
		Call:       Call{Func: wrapperFunc, Args: args},
		HasBinding: false,
	}, nil
}

func isIdentifierLike(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 {
			if !isLetter {
				return false
			}
		} else if !isLetter && !isDigit {
			return false
		}
	}
	return true
}
