// Package buffer implements the token buffer: a random-access,
// bookmarkable view over a lexer's lazy token stream. The interpreter
// backtracks by recording Key() before a risky attempt and calling Seek
// on failure; both must be O(1) and repeatable at arbitrary depth, which
// is why the stream is materialized eagerly into an indexed slice here
// rather than replayed lazily (the same tradeoff internal/parser.cursor.go
// makes in the teacher codebase, there called Mark/ResetTo).
package buffer

import "github.com/mailspice/golrt/pkg/token"

// Stream is anything that yields tokens one at a time, ending (forever)
// with the end-of-input sentinel — the shape of *lexer.TokenStream,
// narrowed to what Buffer needs so it doesn't have to import the lexer
// package.
type Stream interface {
	Next() (token.Token, error)
}

// Buffer materializes a Stream's tokens into an indexed slice on
// construction, then exposes cheap random-access navigation over them.
type Buffer struct {
	tokens []token.Token
	cursor int
}

// New drains stream completely — up to and including its end-of-input
// token — and returns a Buffer positioned at the first token. A non-nil
// error is whatever the stream itself returned (normally a
// *perrors.LexerError); the caller should treat this the same as any
// other lex failure and not use the returned Buffer.
func New(stream Stream) (*Buffer, error) {
	var tokens []token.Token
	for {
		tok, err := stream.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.IsEOI() {
			break
		}
	}
	return &Buffer{tokens: tokens}, nil
}

// Current returns the token at the cursor position. Once the cursor
// reaches the last index, Current always returns the end-of-input token.
func (b *Buffer) Current() token.Token {
	return b.tokens[b.cursor]
}

// Next advances the cursor by one position. Calling Next while already at
// the end-of-input token is a no-op, matching the buffer's terminal
// behaviour described in the design.
func (b *Buffer) Next() {
	if b.cursor < len(b.tokens)-1 {
		b.cursor++
	}
}

// Key returns the current cursor index, suitable for later Seek calls.
func (b *Buffer) Key() int {
	return b.cursor
}

// Seek sets the cursor to index, which must be within [0, Len()-1].
// Out-of-range values are clamped rather than rejected, since every
// caller in this codebase only ever seeks to a value earlier returned by
// Key.
func (b *Buffer) Seek(index int) {
	if index < 0 {
		index = 0
	}
	if index > len(b.tokens)-1 {
		index = len(b.tokens) - 1
	}
	b.cursor = index
}

// Len returns the total number of tokens in the buffer, including the
// trailing end-of-input token.
func (b *Buffer) Len() int {
	return len(b.tokens)
}
