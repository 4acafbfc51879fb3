package interp

import (
	"reflect"
	"testing"

	"github.com/mailspice/golrt/internal/buffer"
	"github.com/mailspice/golrt/pkg/builder"
	"github.com/mailspice/golrt/pkg/grammar"
	"github.com/mailspice/golrt/pkg/token"
)

type sliceStream struct {
	tokens []token.Token
	i      int
}

func (s *sliceStream) Next() (token.Token, error) {
	tok := s.tokens[s.i]
	if s.i < len(s.tokens)-1 {
		s.i++
	}
	return tok, nil
}

func newBuffer(t *testing.T, toks ...token.Token) *buffer.Buffer {
	t.Helper()
	toks = append(toks, token.EndOfInput(len(toks)))
	b, err := buffer.New(&sliceStream{tokens: toks})
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}
	return b
}

func digitGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.New([]grammar.Rule{
		grammar.Terminal{ID: "digit", TokenName: "T_DIGIT", Keep: true},
	}, "digit")
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	return g
}

func TestTerminalMatch(t *testing.T) {
	g := digitGrammar(t)
	buf := newBuffer(t, token.New("T_DIGIT", "7", 0))
	ctx := NewContext(buf.Current())

	v, ok := Reduce(ctx, buf, g, "digit", builder.DefaultBuilder{})
	if !ok {
		t.Fatal("expected Matched")
	}
	if v.(token.Token).Value != "7" {
		t.Errorf("matched value = %v, want token 7", v)
	}
	if buf.Key() != 1 {
		t.Errorf("cursor = %d, want 1 (advanced past entry)", buf.Key())
	}
}

func TestTerminalNoMatchLeavesCursorUnchanged(t *testing.T) {
	g := digitGrammar(t)
	buf := newBuffer(t, token.New("T_OTHER", "x", 0))
	ctx := NewContext(buf.Current())

	entry := buf.Key()
	_, ok := Reduce(ctx, buf, g, "digit", builder.DefaultBuilder{})
	if ok {
		t.Fatal("expected NoMatch")
	}
	if buf.Key() != entry {
		t.Errorf("cursor = %d, want unchanged %d", buf.Key(), entry)
	}
}

func TestAlternationBacktracksThroughFailedChildren(t *testing.T) {
	g, err := grammar.New([]grammar.Rule{
		grammar.Terminal{ID: "a", TokenName: "T_A", Keep: true},
		grammar.Terminal{ID: "b", TokenName: "T_B", Keep: true},
		grammar.Alternation{ID: "root", Children: []grammar.RuleID{"a", "b"}},
	}, "root")
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	buf := newBuffer(t, token.New("T_B", "b", 0))
	ctx := NewContext(buf.Current())

	v, ok := Reduce(ctx, buf, g, "root", builder.DefaultBuilder{})
	if !ok {
		t.Fatal("expected Matched")
	}
	if v.(token.Token).Name != "T_B" {
		t.Errorf("matched value = %v, want T_B", v)
	}
}

func TestRepetitionFailsAndRestoresEntryWhenBelowMin(t *testing.T) {
	g, err := grammar.New([]grammar.Rule{
		grammar.Terminal{ID: "digit", TokenName: "T_DIGIT", Keep: true},
		grammar.Repetition{ID: "digits", Child: "digit", Min: 2, Max: grammar.Unbounded},
	}, "digits")
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	buf := newBuffer(t, token.New("T_DIGIT", "1", 0), token.New("T_OTHER", "x", 1))
	ctx := NewContext(buf.Current())

	entry := buf.Key()
	_, ok := Reduce(ctx, buf, g, "digits", builder.DefaultBuilder{})
	if ok {
		t.Fatal("expected NoMatch: only 1 of required 2 repetitions matched")
	}
	if buf.Key() != entry {
		t.Errorf("cursor = %d, want restored to entry %d", buf.Key(), entry)
	}
}

func TestRepetitionGreedyStopsAtMax(t *testing.T) {
	g, err := grammar.New([]grammar.Rule{
		grammar.Terminal{ID: "digit", TokenName: "T_DIGIT", Keep: true},
		grammar.Repetition{ID: "digits", Child: "digit", Min: 0, Max: 2},
	}, "digits")
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	buf := newBuffer(t,
		token.New("T_DIGIT", "1", 0),
		token.New("T_DIGIT", "2", 1),
		token.New("T_DIGIT", "3", 2),
	)
	ctx := NewContext(buf.Current())

	v, ok := Reduce(ctx, buf, g, "digits", builder.DefaultBuilder{})
	if !ok {
		t.Fatal("expected Matched")
	}
	list := v.([]any)
	if len(list) != 2 {
		t.Fatalf("matched %d repetitions, want 2 (capped at Max)", len(list))
	}
	if buf.Current().Value != "3" {
		t.Errorf("cursor should sit on the un-consumed third digit, got %v", buf.Current())
	}
}

func TestFurthestTokenMonotonicity(t *testing.T) {
	g, err := grammar.New([]grammar.Rule{
		grammar.Terminal{ID: "a", TokenName: "T_A", Keep: true},
		grammar.Terminal{ID: "b", TokenName: "T_B", Keep: true},
		grammar.Terminal{ID: "c", TokenName: "T_C", Keep: true},
		grammar.Concatenation{ID: "root", Children: []grammar.RuleID{"a", "b", "c"}},
	}, "root")
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	buf := newBuffer(t, token.New("T_A", "a", 0), token.New("T_B", "b", 1), token.New("T_OTHER", "x", 2))
	ctx := NewContext(buf.Current())

	Reduce(ctx, buf, g, "root", builder.DefaultBuilder{})
	if ctx.Furthest.Offset != 1 {
		t.Errorf("furthest offset = %d, want 1 (T_B stays recorded after root backtracks)", ctx.Furthest.Offset)
	}
}

func TestConcatenationFlattensChildren(t *testing.T) {
	g, err := grammar.New([]grammar.Rule{
		grammar.Terminal{ID: "open", TokenName: "T_LBRACE", Keep: false},
		grammar.Terminal{ID: "key", TokenName: "T_STRING", Keep: true},
		grammar.Terminal{ID: "close", TokenName: "T_RBRACE", Keep: false},
		grammar.Concatenation{ID: "root", Children: []grammar.RuleID{"open", "key", "close"}},
	}, "root")
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	buf := newBuffer(t,
		token.New("T_LBRACE", "{", 0),
		token.New("T_STRING", `"a"`, 1),
		token.New("T_RBRACE", "}", 4),
	)
	ctx := NewContext(buf.Current())

	v, ok := Reduce(ctx, buf, g, "root", builder.DefaultBuilder{})
	if !ok {
		t.Fatal("expected Matched")
	}
	want := token.New("T_STRING", `"a"`, 1)
	if !reflect.DeepEqual(v, want) {
		t.Errorf("flattened+unwrapped result = %v, want the lone kept token %v", v, want)
	}
}
