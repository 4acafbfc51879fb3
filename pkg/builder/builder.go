// Package builder implements the tree-builder policy: the pure function
// that turns a successful reduction's flattened children into whatever
// shape the caller wants its AST nodes to take. The shape is a policy,
// not a contract — callers may supply their own Builder; DefaultBuilder
// is what the façade uses when none is given, and is sufficient for
// JSON-like ASTs.
package builder

import (
	"github.com/mailspice/golrt/pkg/grammar"
	"github.com/mailspice/golrt/pkg/token"
)

// Node is an opaque, labeled AST node: the "tagged node object" shape
// values may take alongside a bare token.Token or an ordered []any list.
type Node struct {
	Label    string
	Children any
}

// Builder converts a rule's flattened raw result into the value the
// interpreter hands up to the rule's parent. currentToken is the buffer's
// current token at the moment the rule finished reducing, for builders
// that want to stamp position information onto their nodes. Returning nil
// tells the interpreter to use raw unchanged — a custom Builder only
// needs to override the cases it cares about.
type Builder interface {
	Build(rule grammar.Rule, currentToken token.Token, raw any) any
}

// DefaultBuilder implements the default policy from the component
// design: wrap labeled productions as Nodes, unwrap singleton lists, and
// otherwise pass the flattened result through untouched.
type DefaultBuilder struct{}

// Build implements Builder.
func (DefaultBuilder) Build(rule grammar.Rule, _ token.Token, raw any) any {
	if label, ok := label(rule); ok && label != "" {
		return Node{Label: label, Children: raw}
	}
	if list, ok := raw.([]any); ok && len(list) == 1 {
		return list[0]
	}
	return raw
}

// label extracts a production's optional node label, and whether the
// rule is the kind of rule that carries one (Terminal does not).
func label(rule grammar.Rule) (string, bool) {
	switch r := rule.(type) {
	case grammar.Concatenation:
		return r.Label, true
	case grammar.Alternation:
		return r.Label, true
	case grammar.Repetition:
		return r.Label, true
	default:
		return "", false
	}
}

// Flatten implements the list-flattening law used to assemble the
// children of a Concatenation or Repetition: a value that is itself a
// list is merged element-wise; any other value is appended as a single
// element. The empty-list sentinel (an empty []any, as returned by a
// non-keep Terminal) naturally contributes nothing under this rule, so no
// separate sentinel type is needed.
func Flatten(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if list, ok := v.([]any); ok {
			out = append(out, list...)
			continue
		}
		out = append(out, v)
	}
	return out
}
