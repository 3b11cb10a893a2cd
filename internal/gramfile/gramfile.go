// Package gramfile loads a grammar described as JSON directly into an
// ir.Grammar, for tests and for callers that already have a grammar in the
// data-model shape (spec §3) and don't need a textual meta-grammar
// tokenizer/parser in front of it. It is a convenience loader, not the
// front end: spec §1 is explicit that tokenizing and parsing a textual
// grammar source into this shape is out of scope for the core, and this
// package does not attempt it — it only walks an already-structured
// document.
package gramfile

import (
	"encoding/json"
	"fmt"

	"github.com/dekarrin/peggen/ir"
)

// Document is the JSON shape gramfile.Load expects: a metadata map plus
// rules in emission order.
type Document struct {
	Meta  map[string]*string `json:"meta"`
	Rules []ruleDoc          `json:"rules"`
}

type ruleDoc struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Rhs  rhsDoc  `json:"rhs"`
}

type rhsDoc struct {
	Alts []altDoc `json:"alts"`
}

type altDoc struct {
	Items     []namedItemDoc `json:"items"`
	Action    string         `json:"action"`
	HasAction bool           `json:"has_action"`
}

type namedItemDoc struct {
	Bind string  `json:"bind"`
	Item itemDoc `json:"item"`
}

// itemDoc is the tagged-union wire shape for an Item: Kind selects which of
// the other fields are meaningful.
type itemDoc struct {
	Kind string `json:"kind"`

	// NameLeaf / StringLeaf
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`

	// Opt / Repeat0 / Repeat1 / PositiveLookahead / NegativeLookahead
	Item *itemDoc `json:"item,omitempty"`

	// Group
	Rhs *rhsDoc `json:"rhs,omitempty"`
}

// Load parses JSON data in the Document shape and builds an ir.Grammar from
// it, in the order rules appear.
func Load(data []byte) (*ir.Grammar, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("gramfile: parsing JSON: %w", err)
	}

	g := ir.New()

	for key, val := range doc.Meta {
		g.SetMeta(key, val)
	}

	for _, rd := range doc.Rules {
		rhs, err := buildRhs(rd.Rhs)
		if err != nil {
			return nil, fmt.Errorf("gramfile: rule %q: %w", rd.Name, err)
		}
		if err := g.AddRule(ir.NewRule(rd.Name, rd.Type, rhs)); err != nil {
			return nil, fmt.Errorf("gramfile: rule %q: %w", rd.Name, err)
		}
	}

	return g, nil
}

func buildRhs(rd rhsDoc) (*ir.Rhs, error) {
	if len(rd.Alts) == 0 {
		return nil, fmt.Errorf("rhs has no alternatives")
	}

	alts := make([]*ir.Alt, len(rd.Alts))
	for i, ad := range rd.Alts {
		alt, err := buildAlt(ad)
		if err != nil {
			return nil, err
		}
		alts[i] = alt
	}
	return ir.NewRhs(alts...), nil
}

func buildAlt(ad altDoc) (*ir.Alt, error) {
	items := make([]*ir.NamedItem, len(ad.Items))
	for i, nid := range ad.Items {
		item, err := buildItem(nid.Item)
		if err != nil {
			return nil, err
		}
		if nid.Bind != "" {
			items[i] = ir.Named(nid.Bind, item)
		} else {
			items[i] = ir.NewNamedItem(item)
		}
	}

	alt := ir.NewAlt(items...)
	if ad.HasAction {
		alt.WithAction(ad.Action)
	}
	return alt, nil
}

func buildItem(id itemDoc) (ir.Item, error) {
	switch id.Kind {
	case "NameLeaf":
		return &ir.NameLeaf{Name: id.Name}, nil
	case "StringLeaf":
		return &ir.StringLeaf{Value: id.Value}, nil
	case "Opt":
		inner, err := requireInner(id)
		if err != nil {
			return nil, err
		}
		return &ir.Opt{Item: inner}, nil
	case "Repeat0":
		inner, err := requireInner(id)
		if err != nil {
			return nil, err
		}
		return &ir.Repeat0{Item: inner}, nil
	case "Repeat1":
		inner, err := requireInner(id)
		if err != nil {
			return nil, err
		}
		return &ir.Repeat1{Item: inner}, nil
	case "PositiveLookahead":
		inner, err := requireInner(id)
		if err != nil {
			return nil, err
		}
		return &ir.PositiveLookahead{Item: inner}, nil
	case "NegativeLookahead":
		inner, err := requireInner(id)
		if err != nil {
			return nil, err
		}
		return &ir.NegativeLookahead{Item: inner}, nil
	case "Group":
		if id.Rhs == nil {
			return nil, fmt.Errorf("Group item missing \"rhs\"")
		}
		rhs, err := buildRhs(*id.Rhs)
		if err != nil {
			return nil, err
		}
		return &ir.Group{Rhs: rhs}, nil
	case "Cut":
		return &ir.Cut{}, nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", id.Kind)
	}
}

func requireInner(id itemDoc) (ir.Item, error) {
	if id.Item == nil {
		return nil, fmt.Errorf("%q item missing \"item\"", id.Kind)
	}
	return buildItem(*id.Item)
}
