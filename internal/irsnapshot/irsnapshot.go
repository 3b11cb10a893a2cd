// Package irsnapshot serializes a summary of an expanded grammar's rules to
// a compact binary form using github.com/dekarrin/rezi, the same
// reflection-based binary codec server/dao/sqlite uses to persist session
// state. It backs the --dump-ir debug artifact (SPEC_FULL.md's DOMAIN STACK)
// and gives tests a stable fixture format that doesn't depend on Go's
// struct-printing format staying the same across versions.
//
// The snapshot is a rule-level summary, not a full encode of ir.Grammar: an
// Item tree of interface values doesn't round-trip cleanly through rezi's
// reflection-based scheme without a parallel sum-type encoding, and nothing
// downstream needs that full fidelity back — --dump-ir exists for humans
// and tests to inspect analysis results, not to reconstruct a Grammar.
package irsnapshot

import (
	"fmt"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/peggen/ir"
)

// RuleSummary captures one rule's emission-relevant flags, independent of
// its Rhs structure.
type RuleSummary struct {
	Name          string
	Type          string
	Nullable      bool
	LeftRecursive bool
	Leader        bool
	IsHelper      bool
}

// Snapshot is the full serialized form: rule summaries in work-list order,
// plus the metadata pairs set on the grammar.
type Snapshot struct {
	Rules    []RuleSummary
	MetaKeys []string
	MetaVals []string
}

// Build produces a Snapshot from g's current state. Call this after
// analysis and expansion have both run, so Nullable/LeftRecursive/Leader
// and any synthesized helper rules are reflected.
func Build(g *ir.Grammar) Snapshot {
	snap := Snapshot{}

	for _, r := range g.Rules() {
		snap.Rules = append(snap.Rules, RuleSummary{
			Name:          r.Name,
			Type:          r.Type,
			Nullable:      r.Nullable,
			LeftRecursive: r.LeftRecursive,
			Leader:        r.Leader,
			IsHelper:      r.IsHelper(),
		})
	}

	for _, key := range g.MetaKeys() {
		val, _ := g.Meta(key)
		snap.MetaKeys = append(snap.MetaKeys, key)
		if val == nil {
			snap.MetaVals = append(snap.MetaVals, "")
		} else {
			snap.MetaVals = append(snap.MetaVals, *val)
		}
	}

	return snap
}

// Encode serializes snap to its binary form.
func Encode(snap Snapshot) ([]byte, error) {
	data, err := rezi.Enc(snap)
	if err != nil {
		return nil, fmt.Errorf("encode IR snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a binary form produced by Encode.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if _, err := rezi.Dec(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode IR snapshot: %w", err)
	}
	return snap, nil
}
