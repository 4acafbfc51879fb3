package lexer

import (
	"errors"
	"testing"

	"github.com/mailspice/golrt/internal/perrors"
	"github.com/mailspice/golrt/pkg/token"
)

func jsonPatterns() []Pattern {
	return []Pattern{
		{Name: "T_WS", Expr: `[ \t\r\n]+`},
		{Name: "T_TRUE", Expr: `true`},
		{Name: "T_FALSE", Expr: `false`},
		{Name: "T_NULL", Expr: `null`},
		{Name: "T_STRING", Expr: `"[^"]*"`},
		{Name: "T_NUMBER", Expr: `-?[0-9]+(\.[0-9]+)?`},
		{Name: "T_LBRACE", Expr: `\{`},
		{Name: "T_RBRACE", Expr: `\}`},
		{Name: "T_LBRACKET", Expr: `\[`},
		{Name: "T_RBRACKET", Expr: `\]`},
		{Name: "T_COLON", Expr: `:`},
		{Name: "T_COMMA", Expr: `,`},
	}
}

func newJSONLexer(t *testing.T) *Lexer {
	t.Helper()
	l, err := New(jsonPatterns(), []token.Name{"T_WS"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func collect(t *testing.T, l *Lexer, source string) []token.Token {
	t.Helper()
	stream := l.Lex(source)
	var toks []token.Token
	for {
		tok, err := stream.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		toks = append(toks, tok)
		if tok.IsEOI() {
			return toks
		}
	}
}

func TestLexSkipsWhitespaceAndEmitsEOI(t *testing.T) {
	l := newJSONLexer(t)
	toks := collect(t, l, `  true  `)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	if toks[0].Name != "T_TRUE" || toks[0].Offset != 2 {
		t.Errorf("toks[0] = %+v, want T_TRUE at offset 2", toks[0])
	}
	if !toks[1].IsEOI() || toks[1].Offset != 8 {
		t.Errorf("toks[1] = %+v, want EOI at offset 8", toks[1])
	}
}

func TestLexDeclarationOrderPriority(t *testing.T) {
	// "true" matches both patterns at offset 0; T_TRUE is declared first,
	// so it wins over the identifier pattern.
	kw, err := New([]Pattern{
		{Name: "T_TRUE", Expr: `true`},
		{Name: "T_IDENT", Expr: `[a-z]+`},
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if toks := collect(t, kw, "true"); toks[0].Name != "T_TRUE" {
		t.Errorf("toks[0] = %+v, want T_TRUE (declared before T_IDENT)", toks[0])
	}

	// The json pattern set tokenizes an object in source order.
	l := newJSONLexer(t)
	toks := collect(t, l, `{"a":1}`)
	names := make([]token.Name, len(toks))
	for i, tok := range toks {
		names[i] = tok.Name
	}
	want := []token.Name{"T_LBRACE", "T_STRING", "T_COLON", "T_NUMBER", "T_RBRACE", token.EOI}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLexUnrecognizedTokenError(t *testing.T) {
	l := newJSONLexer(t)
	stream := l.Lex(`@`)
	_, err := stream.Next()
	if err == nil {
		t.Fatal("expected a LexerError, got nil")
	}
	var lexErr *perrors.LexerError
	if !errors.As(err, &lexErr) {
		t.Fatalf("error type = %T, want *perrors.LexerError", err)
	}
	if lexErr.Offset != 0 {
		t.Errorf("Offset = %d, want 0", lexErr.Offset)
	}
}

func TestNewRejectsZeroWidthPattern(t *testing.T) {
	_, err := New([]Pattern{{Name: "T_MAYBE", Expr: `a*`}}, nil)
	if err == nil {
		t.Fatal("expected a GrammarError, got nil")
	}
	var gErr *perrors.GrammarError
	if !errors.As(err, &gErr) {
		t.Fatalf("error type = %T, want *perrors.GrammarError", err)
	}
}

func TestNewRejectsDuplicatePatternName(t *testing.T) {
	_, err := New([]Pattern{
		{Name: "T_A", Expr: "a"},
		{Name: "T_A", Expr: "b"},
	}, nil)
	if err == nil {
		t.Fatal("expected a GrammarError, got nil")
	}
}

func TestTokenStreamIsIdempotentAtEOI(t *testing.T) {
	l := newJSONLexer(t)
	stream := l.Lex("")
	first, err := stream.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	second, err := stream.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first != second {
		t.Errorf("first = %+v, second = %+v, want equal", first, second)
	}
}
