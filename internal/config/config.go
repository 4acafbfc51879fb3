// Package config loads a grammar's lexer patterns and rule table from a
// YAML document, so a grammar can be authored as data instead of Go
// literals — the shape the CLI commands in cmd/golrt read.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/mailspice/golrt/pkg/grammar"
	"github.com/mailspice/golrt/pkg/lexer"
	"github.com/mailspice/golrt/pkg/token"
)

// PatternDef is one lexer pattern entry in a grammar document.
type PatternDef struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// RuleDef is one grammar rule entry. Kind selects which of Token, Children,
// Min/Max, or Label apply; unused fields for a given Kind are ignored.
type RuleDef struct {
	ID       string   `yaml:"id"`
	Kind     string   `yaml:"kind"` // terminal | concatenation | alternation | repetition
	Token    string   `yaml:"token,omitempty"`
	Keep     bool     `yaml:"keep,omitempty"`
	Children []string `yaml:"children,omitempty"`
	Child    string   `yaml:"child,omitempty"`
	Min      int      `yaml:"min,omitempty"`
	Max      int      `yaml:"max,omitempty"`
	Label    string   `yaml:"label,omitempty"`
}

// Document is the top-level shape of a grammar YAML file.
type Document struct {
	Skip     []string     `yaml:"skip"`
	Patterns []PatternDef `yaml:"patterns"`
	Rules    []RuleDef    `yaml:"rules"`
	Initial  string       `yaml:"initial"`
}

// Load reads and parses a grammar document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a grammar document from raw YAML bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing grammar document: %w", err)
	}
	return &doc, nil
}

// LexerPatterns converts the document's pattern list into pkg/lexer's
// Pattern slice, in declaration order (priority order is preserved).
func (d *Document) LexerPatterns() []lexer.Pattern {
	patterns := make([]lexer.Pattern, len(d.Patterns))
	for i, p := range d.Patterns {
		patterns[i] = lexer.Pattern{Name: token.Name(p.Name), Expr: p.Expr}
	}
	return patterns
}

// SkipNames converts the document's skip list into pkg/token names.
func (d *Document) SkipNames() []token.Name {
	names := make([]token.Name, len(d.Skip))
	for i, s := range d.Skip {
		names[i] = token.Name(s)
	}
	return names
}

// GrammarRules converts the document's rule list into pkg/grammar.Rule
// values. An unrecognized Kind is reported as an error rather than
// silently skipped.
func (d *Document) GrammarRules() ([]grammar.Rule, error) {
	rules := make([]grammar.Rule, 0, len(d.Rules))
	for _, r := range d.Rules {
		rule, err := toRule(r)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func toRule(r RuleDef) (grammar.Rule, error) {
	id := grammar.RuleID(r.ID)
	switch r.Kind {
	case "terminal":
		return grammar.Terminal{ID: id, TokenName: token.Name(r.Token), Keep: r.Keep}, nil
	case "concatenation":
		return grammar.Concatenation{ID: id, Children: ruleIDs(r.Children), Label: r.Label}, nil
	case "alternation":
		return grammar.Alternation{ID: id, Children: ruleIDs(r.Children), Label: r.Label}, nil
	case "repetition":
		max := r.Max
		if max == 0 {
			max = grammar.Unbounded
		}
		return grammar.Repetition{ID: id, Child: grammar.RuleID(r.Child), Min: r.Min, Max: max, Label: r.Label}, nil
	default:
		return nil, fmt.Errorf("config: rule %q: unrecognized kind %q", r.ID, r.Kind)
	}
}

func ruleIDs(names []string) []grammar.RuleID {
	ids := make([]grammar.RuleID, len(names))
	for i, n := range names {
		ids[i] = grammar.RuleID(n)
	}
	return ids
}

// Initial returns the document's declared initial rule.
func (d *Document) Initial() grammar.RuleID {
	return grammar.RuleID(d.Initial)
}
