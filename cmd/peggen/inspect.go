package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/rosed"

	"github.com/dekarrin/peggen"
	"github.com/dekarrin/peggen/internal/plan"
	"github.com/dekarrin/peggen/ir"
)

// runInspect opens an interactive REPL over a completed generation result:
// the user can query which rules are nullable, left-recursive, or loop
// helpers, and see the planned call sites for any one rule, without
// re-running analysis by hand. It mirrors internal/input's
// InteractiveCommandReader in using chzyer/readline directly rather than a
// bare bufio.Scanner, so history and line editing work the same way a
// TunaQuest session's REPL does.
func runInspect(g *ir.Grammar, result peggen.Result) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "peggen> "})
	if err != nil {
		fmt.Printf("ERROR: create readline config: %s\n", err.Error())
		return
	}
	defer rl.Close()

	fmt.Println("peggen inspect: type \"help\" for commands, \"quit\" to exit")

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "help":
			printInspectHelp()
		case "rules":
			printRuleTable(g)
		case "sccs":
			printSCCTable(result.SCCs)
		case "plan":
			if len(fields) < 2 {
				fmt.Println("usage: plan <rule-name>")
				continue
			}
			printPlan(result.Plans, fields[1])
		default:
			fmt.Printf("unknown command %q; type \"help\" for a list\n", fields[0])
		}
	}
}

func printInspectHelp() {
	fmt.Println("commands:")
	fmt.Println("  rules            list every rule with its analysis flags")
	fmt.Println("  sccs             list the first-set graph's strongly-connected components")
	fmt.Println("  plan <rule>      show the planned call sites for one rule")
	fmt.Println("  quit             leave the REPL")
}

func printRuleTable(g *ir.Grammar) {
	data := [][]string{{"rule", "type", "nullable", "left-rec", "leader", "loop"}}
	for _, r := range g.Rules() {
		typ := r.Type
		if typ == "" {
			typ = "(opaque)"
		}
		data = append(data, []string{
			r.Name,
			typ,
			boolMark(r.Nullable),
			boolMark(r.LeftRecursive),
			boolMark(r.Leader),
			boolMark(r.IsLoop()),
		})
	}

	out := rosed.
		Edit("").
		InsertTableOpts(0, data, 20, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	fmt.Println(out)
}

func printSCCTable(sccs [][]string) {
	data := [][]string{{"#", "members"}}
	for i, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		data = append(data, []string{fmt.Sprintf("%d", i), strings.Join(scc, ", ")})
	}
	if len(data) == 1 {
		fmt.Println("no strongly-connected components of size > 1")
		return
	}

	out := rosed.
		Edit("").
		InsertTableOpts(0, data, 20, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	fmt.Println(out)
}

func printPlan(plans map[string]plan.RulePlan, name string) {
	rp, ok := plans[name]
	if !ok {
		fmt.Printf("no such rule: %q\n", name)
		return
	}

	for i, alt := range rp.Alts {
		fmt.Printf("alt %d:\n", i)
		for _, item := range alt.Items {
			fmt.Printf("  %s <- %s\n", item.Var, renderCallForInspect(item))
		}
		fmt.Printf("  action: %s\n", alt.Action)
	}
}

func renderCallForInspect(item plan.PlannedItem) string {
	args := make([]string, len(item.Call.Args))
	for i, a := range item.Call.Args {
		switch a.Kind {
		case plan.ArgInt:
			args[i] = fmt.Sprintf("%d", a.Int)
		case plan.ArgString:
			args[i] = fmt.Sprintf("%q", a.Str)
		case plan.ArgBool:
			args[i] = fmt.Sprintf("%t", a.Bool)
		case plan.ArgFunc:
			args[i] = a.Str
		}
	}
	return fmt.Sprintf("%s(%s)", item.Call.Func, strings.Join(args, ", "))
}

func boolMark(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
