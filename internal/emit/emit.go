// Package emit implements the emitter (spec §4.4): given the planned IR plus
// analysis flags, it produces target-language (Go) source for each rule —
// forward declarations, memoization guards, alternative-sequencing logic,
// action substitution, and for left-recursive leaders, the seed-growing
// loop.
//
// The runtime contract this package assumes a consuming parser support
// library provides is exactly the one spec §4.5 names: IsMemoized,
// InsertMemo, UpdateMemo, token-class fetchers, keyword/punctuation
// matchers, the three lookahead wrapper variants, a sequence allocator, and
// an arena. Those names are contract labels (spec §4.5 says the target
// implementation may rename them consistently); this emitter renders them as
// methods on a *rt.Parser receiver named p.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dekarrin/peggen/internal/plan"
	"github.com/dekarrin/peggen/ir"
)

// firstRuleTypeID is the numeric identifier assigned to the first rule in
// work-list order; spec §6 fixes this value.
const firstRuleTypeID = 1000

var titleCaser = cases.Title(language.Und)

// Emit writes the complete generated-parser text for g, given the plan for
// every rule, to sb. sourceName is recorded in the @generated header comment
// (spec §6); runID is an opaque per-generation-pass identifier threaded
// through the header for log correlation (see internal/genrun); packageName
// is the Go package name the emitted source declares itself a member of.
func Emit(sb *strings.Builder, g *ir.Grammar, plans map[string]plan.RulePlan, sourceName, runID, packageName string) error {
	if !g.HasStart() {
		return fmt.Errorf("emit: grammar has no rule named \"start\"")
	}

	w := newWriter(sb)
	names := g.RuleNames()

	emitHeader(w, sourceName, runID, packageName)
	typeIDs := emitTypeConstants(w, g, names)
	emitForwardDecls(w, g, names)

	for _, name := range names {
		rule, _ := g.Rule(name)
		rp, ok := plans[name]
		if !ok {
			return fmt.Errorf("emit: no plan for rule %q", name)
		}
		w.blank()
		emitRule(w, g, rule, rp, typeIDs)
	}

	emitSuffix(w, g)
	return nil
}

func emitHeader(w *writer, sourceName, runID, packageName string) {
	w.printf("// Code generated by peggen from %s; DO NOT EDIT.", sourceName)
	w.printf("// @generated run=%s", runID)
	w.blank()
	w.printf("package %s", packageName)
	w.blank()
	w.printf("import \"github.com/dekarrin/peggen/rt\"")
}

func emitTypeConstants(w *writer, g *ir.Grammar, names []string) map[string]int {
	ids := make(map[string]int, len(names))
	w.blank()
	w.printf("const (")
	w.with(func() {
		for i, name := range names {
			id := firstRuleTypeID + i
			ids[name] = id
			w.printf("%sType = %d", goIdent(name), id)
		}
	})
	w.printf(")")
	return ids
}

func emitForwardDecls(w *writer, g *ir.Grammar, names []string) {
	w.blank()
	w.printf("// Forward declarations, in work-list order. Go does not require")
	w.printf("// forward declarations to call a function defined later in the same")
	w.printf("// file, but spec emission order guarantees these precede every rule")
	w.printf("// body regardless, so they are recorded here for a reader scanning")
	w.printf("// top to bottom.")
	for _, name := range names {
		rule, _ := g.Rule(name)
		typ := resultType(rule, g)
		w.printf("// func %sRule(p *rt.Parser) %s", goIdent(name), typ)
		if rule.Leader && !rule.IsLoop() {
			w.printf("// func %sRaw(p *rt.Parser) %s", goIdent(name), typ)
		}
	}
}

func emitRule(w *writer, g *ir.Grammar, rule *ir.Rule, rp plan.RulePlan, typeIDs map[string]int) {
	typ := resultType(rule, g)
	typeID := typeIDs[rule.Name]

	w.printf("// %s", rule.Name)

	switch {
	case rule.IsLoop():
		emitLoopRule(w, rule, rp, typ, typeID)
	case rule.Leader:
		emitLeaderRule(w, g, rule, rp, typ, typeID)
	default:
		emitPlainRule(w, g, rule, rp, typ, typeID, true, goIdent(rule.Name)+"Rule")
	}
}

// emitPlainRule emits the non-recursive body (spec §4.4): a memo guard (when
// memoize is true), a mark, declared bind variables, each alternative tried
// in order with mark reset between failures, and a shared done label.
func emitPlainRule(w *writer, g *ir.Grammar, rule *ir.Rule, rp plan.RulePlan, typ string, typeID int, memoize bool, funcName string) {
	w.printf("func %s(p *rt.Parser) %s {", funcName, typ)
	w.with(func() {
		w.printf("var res %s", typ)
		if memoize {
			w.printf("if p.IsMemoized(%d, &res) {", typeID)
			w.with(func() { w.printf("return res") })
			w.printf("}")
		}
		w.printf("mark := p.Mark()")

		declareBindVars(w, rp, g)
		if altsNeedOk(rp) {
			w.printf("var ok bool")
		}

		anyCut := altsHaveCut(rp)
		if anyCut {
			w.printf("var cutVar bool")
		}

		for _, alt := range rp.Alts {
			w.printf("p.SetMark(mark)")
			if anyCut {
				w.printf("cutVar = false")
			}
			emitAltAttempt(w, alt, 0, func() {
				w.printf("res = %s", alt.Action)
				w.printf("goto done")
			})
			w.printf("p.SetMark(mark)")
			if altUsesCut(alt) {
				w.printf("if cutVar {")
				w.with(func() { w.printf("return res") })
				w.printf("}")
			}
		}

		w.printf("res = nil")
	})
	w.printf("done:")
	w.with(func() {
		if memoize {
			w.printf("p.InsertMemo(mark, %d, res)", typeID)
		}
		w.printf("return res")
	})
	w.printf("}")
}

// emitLeaderRule emits the two-function seed-growing form (spec §4.4): an
// outer *Rule driving the growth loop, and an inner *Raw holding the plain
// non-recursive body, unmemoized (the outer owns the memo entry entirely).
func emitLeaderRule(w *writer, g *ir.Grammar, rule *ir.Rule, rp plan.RulePlan, typ string, typeID int) {
	outerName := goIdent(rule.Name) + "Rule"
	rawName := goIdent(rule.Name) + "Raw"

	w.printf("func %s(p *rt.Parser) %s {", outerName, typ)
	w.with(func() {
		w.printf("var res %s", typ)
		w.printf("if p.IsMemoized(%d, &res) {", typeID)
		w.with(func() { w.printf("return res") })
		w.printf("}")
		w.printf("mark := p.Mark()")
		w.printf("best := mark")
		w.printf("res = nil")
		w.printf("for {")
		w.with(func() {
			w.printf("p.UpdateMemo(mark, %d, res)", typeID)
			w.printf("p.SetMark(mark)")
			w.printf("raw := %s(p)", rawName)
			w.printf("if raw == nil || p.Mark() <= best {")
			w.with(func() { w.printf("break") })
			w.printf("}")
			w.printf("best = p.Mark()")
			w.printf("res = raw")
		})
		w.printf("}")
		w.printf("p.SetMark(best)")
		w.printf("return res")
	})
	w.printf("}")
	w.blank()
	emitPlainRule(w, g, rule, rp, typ, typeID, false, rawName)
}

// emitLoopRule emits the repetition-helper form (spec §4.4): a single
// alternative, wrapped in a loop that appends each iteration's result to a
// growable buffer until the alternative fails. Repeat1 loops fail on zero
// iterations; Repeat0 loops succeed with an empty sequence.
func emitLoopRule(w *writer, rule *ir.Rule, rp plan.RulePlan, typ string, typeID int) {
	funcName := goIdent(rule.Name) + "Rule"
	alt := rp.Alts[0]

	w.printf("func %s(p *rt.Parser) %s {", funcName, typ)
	w.with(func() {
		w.printf("var res %s", typ)
		w.printf("if p.IsMemoized(%d, &res) {", typeID)
		w.with(func() { w.printf("return res") })
		w.printf("}")
		w.printf("mark := p.Mark()")
		w.printf("children := p.NewSeq()")

		declareBindVarsForAlt(w, alt)
		if altNeedsOk(alt) {
			w.printf("var ok bool")
		}

		w.printf("for {")
		w.with(func() {
			w.printf("p.SetMark(mark)")
			emitAltAttempt(w, alt, 0, func() {
				w.printf("children.Append(%s)", alt.Action)
				w.printf("mark = p.Mark()")
				w.printf("continue")
			})
			w.printf("break")
		})
		w.printf("}")

		if rule.IsRepeat1Loop() {
			w.printf("if children.Len() == 0 {")
			w.with(func() { w.printf("return nil") })
			w.printf("}")
		}

		w.printf("res = children.Freeze()")
		w.printf("p.InsertMemo(mark, %d, res)", typeID)
		w.printf("return res")
	})
	w.printf("}")
}

// emitAltAttempt recursively nests one if-with-init-clause per item so that
// a failure at any depth falls through to exactly the point after the
// outermost if for this alternative — the same cascade pegen's C generator
// gets from chained && with assignment side effects. onSuccess is emitted as
// the innermost block's body once every item has matched.
func emitAltAttempt(w *writer, alt plan.PlannedAlt, idx int, onSuccess func()) {
	if idx >= len(alt.Items) {
		onSuccess()
		return
	}
	item := alt.Items[idx]

	switch {
	case item.IsCut:
		w.printf("cutVar = true")
		emitAltAttempt(w, alt, idx+1, onSuccess)

	case item.AlwaysSucceeds:
		w.printf("%s, _ = %s", item.Var, renderCall(item.Call))
		emitAltAttempt(w, alt, idx+1, onSuccess)

	case item.Var == "":
		// lookahead: boolean call, no bound variable
		w.printf("if %s {", renderCall(item.Call))
		w.with(func() { emitAltAttempt(w, alt, idx+1, onSuccess) })
		w.printf("}")

	default:
		// item.Var and ok are both declared once at the top of the enclosing
		// function (declareBindVars / altsNeedOk); a plain assignment here,
		// rather than :=, is required so the if-init doesn't shadow that
		// declaration in this block's fresh scope.
		w.printf("if %s, ok = %s; ok {", item.Var, renderCall(item.Call))
		w.with(func() { emitAltAttempt(w, alt, idx+1, onSuccess) })
		w.printf("}")
	}
}

func renderCall(c plan.Call) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = renderArg(a)
	}
	return fmt.Sprintf("p.%s(%s)", c.Func, strings.Join(args, ", "))
}

func renderArg(a plan.Arg) string {
	switch a.Kind {
	case plan.ArgInt:
		return strconv.Itoa(a.Int)
	case plan.ArgString:
		return strconv.Quote(a.Str)
	case plan.ArgBool:
		return strconv.FormatBool(a.Bool)
	case plan.ArgFunc:
		return "p." + a.Str
	default:
		panic(fmt.Sprintf("emit: unhandled arg kind %d", a.Kind))
	}
}

func declareBindVars(w *writer, rp plan.RulePlan, g *ir.Grammar) {
	declared := make(map[string]bool)
	for _, alt := range rp.Alts {
		declareBindVarsFiltered(w, alt, declared)
	}
}

func declareBindVarsForAlt(w *writer, alt plan.PlannedAlt) {
	declared := make(map[string]bool)
	declareBindVarsFiltered(w, alt, declared)
}

func declareBindVarsFiltered(w *writer, alt plan.PlannedAlt, declared map[string]bool) {
	for _, item := range alt.Items {
		if item.Var == "" || declared[item.Var] {
			continue
		}
		declared[item.Var] = true
		w.printf("var %s %s", item.Var, bindVarType(item.Var))
	}
}

func bindVarType(varName string) string {
	switch varName {
	case "keyword":
		return "string"
	case "literal":
		return "int"
	case "opt_var":
		return "any"
	default:
		return "any"
	}
}

func altsHaveCut(rp plan.RulePlan) bool {
	for _, alt := range rp.Alts {
		if altUsesCut(alt) {
			return true
		}
	}
	return false
}

func altUsesCut(alt plan.PlannedAlt) bool {
	for _, item := range alt.Items {
		if item.IsCut {
			return true
		}
	}
	return false
}

// altsNeedOk/altNeedsOk report whether any item goes through emitAltAttempt's
// default (bound-call) branch, which assigns the shared "ok" temporary.
// Lookaheads, Cut, and AlwaysSucceeds items never do.
func altsNeedOk(rp plan.RulePlan) bool {
	for _, alt := range rp.Alts {
		if altNeedsOk(alt) {
			return true
		}
	}
	return false
}

func altNeedsOk(alt plan.PlannedAlt) bool {
	for _, item := range alt.Items {
		if !item.IsCut && !item.AlwaysSucceeds && item.Var != "" {
			return true
		}
	}
	return false
}

// resultType returns the rule's result type: a sequence type for loop
// rules, the rule's declared type if present, otherwise an opaque "any".
func resultType(rule *ir.Rule, g *ir.Grammar) string {
	if rule.IsLoop() {
		return "[]any"
	}
	if rule.Type != "" {
		return rule.Type
	}
	return "any"
}

func emitSuffix(w *writer, g *ir.Grammar) {
	start, _ := g.Rule("start")
	mode := 0
	if start.Type == "ast.Root" {
		mode = 1
	}

	w.blank()
	w.printf("// Entry shim: mode %d (0 = opaque parse result, 1 = AST root).", mode)
	w.printf("func Parse(p *rt.Parser) (any, error) {")
	w.with(func() {
		w.printf("res := %s(p)", goIdent(start.Name)+"Rule")
		w.printf("if res == nil {")
		w.with(func() { w.printf("return nil, p.SyntaxError()") })
		w.printf("}")
		w.printf("return res, nil")
	})
	w.printf("}")
}

// goIdent canonicalizes a grammar rule name into a Go-identifier-safe,
// single-case-convention fragment (e.g. "_tmp_3" -> "Tmp3"). Synthesized
// helper/loop names and user rule names may be spelled inconsistently by the
// front end; golang.org/x/text/cases is used rather than a hand-rolled
// case-folding loop so the emitter's identifier canonicalization behaves
// consistently for the same Unicode inputs the rest of the toolchain expects.
func goIdent(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			sb.WriteString(titleCaser.String(string(r)))
			upper = false
		} else {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "Rule"
	}
	return sb.String()
}
