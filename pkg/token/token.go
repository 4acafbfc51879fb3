// Package token defines the value type produced by a lexer and consumed by
// the rule interpreter: an immutable (name, value, offset) triple.
package token

// Name identifies a token kind. Unlike a fixed enum, Name is open: grammar
// authors register whatever names their lexer patterns need at runtime.
type Name string

// EOI is the sentinel name of the end-of-input token every lexer emits
// exactly once, as the last token of every stream.
const EOI Name = "T_EOI"

// Token is an immutable (name, value, offset) triple. Offset is the byte
// offset of the first byte of Value within the source the token was lexed
// from.
type Token struct {
	Name   Name
	Value  string
	Offset int
}

// New builds a Token. It exists mainly so call sites read as a constructor
// rather than a struct literal, matching the rest of the package's API.
func New(name Name, value string, offset int) Token {
	return Token{Name: name, Value: value, Offset: offset}
}

// IsEOI reports whether t is the end-of-input sentinel.
func (t Token) IsEOI() bool {
	return t.Name == EOI
}

// End returns the offset one past the last byte of the token's value.
func (t Token) End() int {
	return t.Offset + len(t.Value)
}

// EndOfInput constructs the sentinel end-of-input token at the given byte
// offset (normally len(source)).
func EndOfInput(offset int) Token {
	return Token{Name: EOI, Value: "", Offset: offset}
}
