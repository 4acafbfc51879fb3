// Package grammar defines the rule model the interpreter walks: a flat
// table of rules referring to each other by id, rather than an in-memory
// graph of linked nodes. Rule-ids are indices into the table, so the graph
// can be cyclic (and usually is) without Go ever needing ownership cycles.
package grammar

import "github.com/mailspice/golrt/pkg/token"

// RuleID names a rule within a Grammar. Either an arbitrary symbolic name
// or a stringified integer works; the table does not care which.
type RuleID string

// Unbounded is the Repetition.Max sentinel meaning "no upper bound".
const Unbounded = -1

// Rule is a tagged variant: Terminal, Concatenation, Alternation, or
// Repetition. The marker method is unexported so no type outside this
// package can masquerade as a Rule; the interpreter type-switches on the
// concrete type rather than dispatching through Rule's own methods, so
// each variant carries only the fields its own semantics need.
type Rule interface {
	ruleNode()
}

// Terminal matches exactly one token named TokenName. Keep controls
// whether the matched token survives into the AST (true) or is consumed
// silently (false) — e.g. punctuation that only exists to be parsed.
type Terminal struct {
	ID        RuleID
	TokenName token.Name
	Keep      bool
}

func (Terminal) ruleNode() {}

// Concatenation matches Children in order; all must succeed, or the whole
// rule fails and the buffer is rewound to its position at entry. Label,
// when non-empty, asks the builder to wrap the result as a named node.
type Concatenation struct {
	ID       RuleID
	Children []RuleID
	Label    string
}

func (Concatenation) ruleNode() {}

// Alternation matches the first child (in declared order) that succeeds.
// On failure of a child it rewinds to its entry position before trying
// the next one.
type Alternation struct {
	ID       RuleID
	Children []RuleID
	Label    string
}

func (Alternation) ruleNode() {}

// Repetition greedily matches Child between Min and Max times inclusive.
// Max == Unbounded removes the upper bound. It never itself fails on
// running out of matches early — only on matching fewer than Min times.
type Repetition struct {
	ID    RuleID
	Min   int
	Max   int
	Child RuleID
	Label string
}

func (Repetition) ruleNode() {}

// id returns the RuleID carried by any Rule variant.
func id(r Rule) RuleID {
	switch v := r.(type) {
	case Terminal:
		return v.ID
	case Concatenation:
		return v.ID
	case Alternation:
		return v.ID
	case Repetition:
		return v.ID
	default:
		return ""
	}
}

// children returns the rule-ids a composite rule refers to; Terminal has
// none.
func children(r Rule) []RuleID {
	switch v := r.(type) {
	case Concatenation:
		return v.Children
	case Alternation:
		return v.Children
	case Repetition:
		return []RuleID{v.Child}
	default:
		return nil
	}
}
