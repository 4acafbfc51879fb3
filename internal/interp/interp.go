// Package interp implements the rule interpreter: the non-predictive
// top-down evaluator that walks a grammar.Grammar's rule graph, driven by
// a buffer.Buffer, producing builder-shaped values or failing with
// NoMatch.
//
// NoMatch is an ordinary internal control signal, not an error — it must
// never escape to a caller outside this package. Only the façade (which
// checks whether the top-level reduction both matched and reached
// end-of-input) turns a failed parse into a perrors.ParserRuntimeError.
//
// State that must not leak between invocations — the furthest-reached
// token used for error reporting — lives in a Context the caller
// allocates fresh per parse and threads by pointer down the recursion.
// It is never a package-level variable: the reference implementation kept
// it as an instance field and that was a race hazard this design removes.
package interp

import (
	"github.com/mailspice/golrt/internal/buffer"
	"github.com/mailspice/golrt/pkg/builder"
	"github.com/mailspice/golrt/pkg/grammar"
	"github.com/mailspice/golrt/pkg/token"
)

// EventKind classifies a trace Event.
type EventKind int

const (
	EventEnter EventKind = iota
	EventMatch
	EventNoMatch
	EventBacktrack
)

// Event is a single step reported to a Context's trace hook, supplementing
// the rule-level debug visitor the reference tooling offers: rule entry,
// successful match, failed match, and backtracking.
type Event struct {
	Kind   EventKind
	RuleID grammar.RuleID
	Cursor int
}

// Context carries the state a single parse invocation threads through
// its recursion: the furthest-reached token (for the eventual "unexpected
// token" diagnostic) and an optional trace hook. Callers allocate one
// Context per parse and never share it across invocations.
type Context struct {
	Furthest token.Token
	Trace    func(Event)
}

// NewContext builds a Context seeded with initial as the furthest token
// reached so far — the façade seeds this with the buffer's first token
// before reduction begins, so a parse that never consumes
// anything still has a sensible furthest token to report.
func NewContext(initial token.Token) *Context {
	return &Context{Furthest: initial}
}

func (c *Context) emit(kind EventKind, id grammar.RuleID, buf *buffer.Buffer) {
	if c.Trace != nil {
		c.Trace(Event{Kind: kind, RuleID: id, Cursor: buf.Key()})
	}
}

func (c *Context) noteConsumed(tok token.Token) {
	if tok.Offset > c.Furthest.Offset {
		c.Furthest = tok
	}
}

// Reduce evaluates rule id against buf, guided by g, using bld to convert
// successful reductions into tree values. It returns (value, true) on a
// match, or (nil, false) on NoMatch — in which case buf's cursor is
// guaranteed to be exactly where it was when Reduce was called.
func Reduce(ctx *Context, buf *buffer.Buffer, g *grammar.Grammar, id grammar.RuleID, bld builder.Builder) (any, bool) {
	rule, ok := g.Lookup(id)
	if !ok {
		return nil, false
	}

	ctx.emit(EventEnter, id, buf)

	switch r := rule.(type) {
	case grammar.Terminal:
		return reduceTerminal(ctx, buf, id, r)
	case grammar.Concatenation:
		return reduceConcatenation(ctx, buf, g, id, r, bld)
	case grammar.Alternation:
		return reduceAlternation(ctx, buf, g, id, r, bld)
	case grammar.Repetition:
		return reduceRepetition(ctx, buf, g, id, r, bld)
	default:
		return nil, false
	}
}

func reduceTerminal(ctx *Context, buf *buffer.Buffer, id grammar.RuleID, t grammar.Terminal) (any, bool) {
	cur := buf.Current()
	if cur.Name != t.TokenName {
		ctx.emit(EventNoMatch, id, buf)
		return nil, false
	}
	buf.Next()
	ctx.noteConsumed(cur)
	ctx.emit(EventMatch, id, buf)

	if t.Keep {
		return cur, true
	}
	return emptyList(), true
}

func reduceConcatenation(ctx *Context, buf *buffer.Buffer, g *grammar.Grammar, id grammar.RuleID, c grammar.Concatenation, bld builder.Builder) (any, bool) {
	mark := buf.Key()
	values := make([]any, 0, len(c.Children))

	for _, childID := range c.Children {
		v, ok := Reduce(ctx, buf, g, childID, bld)
		if !ok {
			buf.Seek(mark)
			ctx.emit(EventBacktrack, id, buf)
			ctx.emit(EventNoMatch, id, buf)
			return nil, false
		}
		values = append(values, v)
	}

	flattened := builder.Flatten(values)
	ctx.emit(EventMatch, id, buf)
	return applyBuilder(bld, c, buf.Current(), flattened), true
}

func reduceAlternation(ctx *Context, buf *buffer.Buffer, g *grammar.Grammar, id grammar.RuleID, a grammar.Alternation, bld builder.Builder) (any, bool) {
	mark := buf.Key()

	for _, childID := range a.Children {
		v, ok := Reduce(ctx, buf, g, childID, bld)
		if ok {
			ctx.emit(EventMatch, id, buf)
			return applyBuilder(bld, a, buf.Current(), v), true
		}
		buf.Seek(mark)
		ctx.emit(EventBacktrack, id, buf)
	}

	ctx.emit(EventNoMatch, id, buf)
	return nil, false
}

func reduceRepetition(ctx *Context, buf *buffer.Buffer, g *grammar.Grammar, id grammar.RuleID, rep grammar.Repetition, bld builder.Builder) (any, bool) {
	entryMark := buf.Key()
	var values []any
	n := 0

	for {
		mark := buf.Key()
		v, ok := Reduce(ctx, buf, g, rep.Child, bld)
		if !ok {
			buf.Seek(mark)
			break
		}
		values = append(values, v)
		n++
		if rep.Max != grammar.Unbounded && n == rep.Max {
			break
		}
	}

	if n < rep.Min {
		buf.Seek(entryMark)
		ctx.emit(EventNoMatch, id, buf)
		return nil, false
	}

	flattened := builder.Flatten(values)
	ctx.emit(EventMatch, id, buf)
	return applyBuilder(bld, rep, buf.Current(), flattened), true
}

// applyBuilder calls bld.Build and falls back to raw when the builder
// returns nil, per the "returning null signals use raw as-is" contract.
func applyBuilder(bld builder.Builder, rule grammar.Rule, cur token.Token, raw any) any {
	if bld == nil {
		return raw
	}
	if result := bld.Build(rule, cur, raw); result != nil {
		return result
	}
	return raw
}

// emptyList returns the empty-list sentinel a non-keep Terminal produces:
// a value that flattens away to nothing, needing no dedicated type.
func emptyList() []any {
	return []any{}
}
