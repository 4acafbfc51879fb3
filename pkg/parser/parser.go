// Package parser wires the lexer, token buffer, rule interpreter, and
// tree builder into the single façade external callers use: construct a
// Parser from a lexer and a grammar, then call Parse on a source.
package parser

import (
	"github.com/mailspice/golrt/internal/buffer"
	"github.com/mailspice/golrt/internal/interp"
	"github.com/mailspice/golrt/internal/perrors"
	"github.com/mailspice/golrt/internal/source"
	"github.com/mailspice/golrt/pkg/builder"
	"github.com/mailspice/golrt/pkg/grammar"
	"github.com/mailspice/golrt/pkg/lexer"
)

// Parser drives a lexer and a grammar to turn a source into an AST.
type Parser struct {
	lexer       *lexer.Lexer
	grammar     *grammar.Grammar
	treeBuilder builder.Builder
}

// New builds a Parser from a lexer and an ordered rule table, using
// builder.DefaultBuilder as the tree builder and defaulting initial to
// the first rule in declaration order when empty. This is the
// convenience constructor for the common case; use Builder for finer
// control (a custom tree builder, for instance).
func New(lex *lexer.Lexer, rules []grammar.Rule, initial grammar.RuleID) (*Parser, error) {
	return NewBuilder(lex).WithRules(rules).WithInitial(initial).Build()
}

// Builder provides a fluent API for constructing Parser instances,
// mirroring the construction style used throughout this codebase's other
// builders.
type Builder struct {
	lex         *lexer.Lexer
	rules       []grammar.Rule
	initial     grammar.RuleID
	treeBuilder builder.Builder
}

// NewBuilder starts a Builder for the given lexer.
func NewBuilder(lex *lexer.Lexer) *Builder {
	return &Builder{lex: lex, treeBuilder: builder.DefaultBuilder{}}
}

// WithRules sets the grammar's rule table.
func (b *Builder) WithRules(rules []grammar.Rule) *Builder {
	b.rules = rules
	return b
}

// WithInitial sets the grammar's initial rule. Leaving it empty defaults
// to the first rule in declaration order.
func (b *Builder) WithInitial(id grammar.RuleID) *Builder {
	b.initial = id
	return b
}

// WithTreeBuilder overrides the default tree-builder policy.
func (b *Builder) WithTreeBuilder(bld builder.Builder) *Builder {
	b.treeBuilder = bld
	return b
}

// Build validates the accumulated grammar and returns a ready Parser. A
// non-nil error is always a *perrors.GrammarError.
func (b *Builder) Build() (*Parser, error) {
	g, err := grammar.New(b.rules, b.initial)
	if err != nil {
		return nil, err
	}
	return &Parser{lexer: b.lex, grammar: g, treeBuilder: b.treeBuilder}, nil
}

// Parse reads source's contents (a string, a source.Readable, or a file
// path wrapped in source.FileSource), tokenizes and reduces it against
// the parser's grammar, and returns the resulting AST value. A failed
// parse returns a *perrors.LexerError (the scanner could not match
// anything at some offset) or a *perrors.ParserRuntimeError (reduction
// did not consume the whole input).
func (p *Parser) Parse(src any) (any, error) {
	contents, err := source.Resolve(src)
	if err != nil {
		return nil, err
	}

	stream := p.lexer.Lex(contents)
	buf, err := buffer.New(stream)
	if err != nil {
		return nil, err
	}

	ctx := interp.NewContext(buf.Current())
	value, matched := interp.Reduce(ctx, buf, p.grammar, p.grammar.Initial(), p.treeBuilder)

	if matched && buf.Current().IsEOI() {
		return value, nil
	}

	furthest := ctx.Furthest
	return nil, &perrors.ParserRuntimeError{
		Message:     "unexpected token",
		Source:      contents,
		TokenName:   string(furthest.Name),
		TokenValue:  furthest.Value,
		TokenOffset: furthest.Offset,
	}
}
