// Package peggen drives the full pipeline described in SPEC_FULL.md: it
// takes a built ir.Grammar, runs the nullability and left-recursion
// analyses, plans and expands every rule (including helper rules appended
// along the way), and emits target-language parser source. It plays the
// same top-level role that ictiobus.go plays for the parser-construction
// toolchain this module's ambient stack is grounded on: one small entry
// point gluing together packages that each do one stage of the work.
package peggen

import (
	"strings"

	"github.com/dekarrin/peggen/internal/analysis"
	"github.com/dekarrin/peggen/internal/emit"
	"github.com/dekarrin/peggen/internal/expand"
	"github.com/dekarrin/peggen/internal/gset"
	"github.com/dekarrin/peggen/internal/perr"
	"github.com/dekarrin/peggen/internal/plan"
	"github.com/dekarrin/peggen/ir"
)

// Result carries everything a caller might want out of a completed
// generation pass: the rendered source plus the analysis artifacts, for
// callers that want to print diagnostics (cmd/peggen's inspect REPL, in
// particular) without re-running the pipeline.
type Result struct {
	Source string

	// FirstGraph and SCCs are the artifacts of the left-recursion analysis,
	// retained for diagnostics.
	FirstGraph map[string]gset.Set
	SCCs       [][]string

	// Plans holds the call-site plan for every rule present in the grammar
	// after expansion completes, keyed by rule name.
	Plans map[string]plan.RulePlan
}

// Generate runs the full pipeline against g: nullability, left-recursion
// and leader assignment, call-site planning (which drives expansion of
// helper rules on demand), and emission. sourceName and runID are passed
// through verbatim into the emitted header (spec §6); packageName is the Go
// package name the emitted source declares itself a member of.
//
// g is mutated in place: analyses set flags on existing rules, and planning
// appends synthesized helper rules to g's work-list. Callers that need the
// pre-expansion grammar should keep their own copy before calling Generate.
func Generate(g *ir.Grammar, sourceName, runID, packageName string) (Result, error) {
	if !g.HasStart() {
		return Result{}, perr.New("grammar has no \"start\" rule", perr.ErrNoStartRule)
	}

	analysis.ComputeNullable(g)

	firstGraph, sccs, err := analysis.AssignLeftRecursion(g)
	if err != nil {
		return Result{}, err
	}

	exp := expand.New(g)
	planner := plan.New(exp)

	plans := make(map[string]plan.RulePlan)

	// Rules appended by the expander while planning rule i must themselves
	// be planned; re-reading g.RuleNames() each iteration picks those up,
	// since the expander only ever appends (spec §8: work-list
	// monotonicity) and never reorders or mutates existing entries.
	for i := 0; i < g.Len(); i++ {
		names := g.RuleNames()
		name := names[i]
		rule, _ := g.Rule(name)
		rp, err := planner.PlanRule(rule)
		if err != nil {
			return Result{}, err
		}
		plans[name] = rp
	}

	var sb strings.Builder
	if err := emit.Emit(&sb, g, plans, sourceName, runID, packageName); err != nil {
		return Result{}, err
	}

	return Result{
		Source:     sb.String(),
		FirstGraph: firstGraph,
		SCCs:       sccs,
		Plans:      plans,
	}, nil
}
