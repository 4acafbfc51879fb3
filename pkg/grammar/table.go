package grammar

import (
	"fmt"

	"github.com/mailspice/golrt/internal/perrors"
)

// Grammar is an ordered table of rules plus a designated initial rule.
// Rule-ids are indices into a flat map, not pointers, so the referenced
// graph may be (and typically is) cyclic.
type Grammar struct {
	rules   map[RuleID]Rule
	order   []RuleID // declaration order, for "first rule wins" defaulting
	initial RuleID
}

// New builds a Grammar from an ordered slice of rules. If initial is
// empty, the first rule in declaration order becomes the initial rule,
// matching the façade's documented default. New validates the table
// before returning it; a non-nil error is always a *perrors.GrammarError.
func New(rules []Rule, initial RuleID) (*Grammar, error) {
	g := &Grammar{
		rules: make(map[RuleID]Rule, len(rules)),
		order: make([]RuleID, 0, len(rules)),
	}
	for _, r := range rules {
		rid := id(r)
		g.rules[rid] = r
		g.order = append(g.order, rid)
	}
	if initial == "" && len(g.order) > 0 {
		initial = g.order[0]
	}
	g.initial = initial

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Lookup returns the rule registered under id, and whether it was found.
func (g *Grammar) Lookup(id RuleID) (Rule, bool) {
	r, ok := g.rules[id]
	return r, ok
}

// Initial returns the grammar's designated starting rule.
func (g *Grammar) Initial() RuleID {
	return g.initial
}

// RuleIDs returns every rule-id in declaration order.
func (g *Grammar) RuleIDs() []RuleID {
	out := make([]RuleID, len(g.order))
	copy(out, g.order)
	return out
}

// Validate checks that every rule-id referenced by a composite rule is
// present in the table, and that the initial rule-id is present. Called
// automatically by New.
func (g *Grammar) Validate() error {
	if len(g.rules) == 0 {
		return &perrors.GrammarError{Message: "grammar has no rules"}
	}
	if _, ok := g.rules[g.initial]; !ok {
		return &perrors.GrammarError{Message: fmt.Sprintf("initial rule %q is not defined", g.initial)}
	}
	for _, rid := range g.order {
		r := g.rules[rid]
		for _, childID := range children(r) {
			if _, ok := g.rules[childID]; !ok {
				return &perrors.GrammarError{
					Message: fmt.Sprintf("rule %q references undefined rule %q", rid, childID),
				}
			}
		}
	}
	return nil
}
