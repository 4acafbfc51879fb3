// Package lexer implements the regex-backed tokenizer: a set of named
// patterns compiled into one alternation, scanned repeatedly from the
// current offset to produce a lazy stream of tokens terminated by a
// single end-of-input token.
//
// Unlike the reference's longest-match engines, matching here is
// declaration-order priority: when two patterns could both match at the
// same offset, the one declared earlier wins. Grammar authors order
// patterns accordingly — keywords before identifiers, for instance.
package lexer

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"

	"github.com/mailspice/golrt/internal/perrors"
	"github.com/mailspice/golrt/pkg/token"
)

// Pattern associates a token name with the regular expression that
// recognizes it. Expr is a .NET-flavored regular expression (the dialect
// dlclark/regexp2 implements), written without an enclosing anchor —
// Lexer supplies the anchor itself.
type Pattern struct {
	Name token.Name
	Expr string
}

// Option configures a Lexer at construction time, following the same
// functional-options shape the rest of this codebase's tokenizers use.
type Option func(*Lexer)

// WithNormalization normalizes lexer input through the given Unicode
// normalization form (typically norm.NFC) before scanning begins. Byte
// offsets reported by tokens are relative to the normalized text, not the
// caller's original bytes — callers that need offsets into their own
// buffer should not combine this option with later reslicing of the raw
// source.
func WithNormalization(form norm.Form) Option {
	return func(l *Lexer) {
		l.normalize = form
	}
}

// WithTrace installs a hook invoked once per scanning step: after a
// successful match, with the emitted token; or after a failed match, with
// a nil token and the error that will be returned. A nil hook (the
// default) disables tracing.
func WithTrace(trace func(tok *token.Token, err error)) Option {
	return func(l *Lexer) {
		l.trace = trace
	}
}

// Lexer compiles a set of named patterns into a single alternation and
// scans a source string against it from the current offset, repeatedly,
// until end-of-input or an unrecognized character is found.
type Lexer struct {
	combined  *regexp2.Regexp
	groupName []token.Name // index i -> the token name synthetic group "g<i>" stands for
	skip      map[token.Name]bool
	normalize norm.Form
	trace     func(tok *token.Token, err error)
}

// New compiles patterns into a Lexer. skip names matches that should be
// consumed but never emitted (whitespace, comments). New rejects, with a
// *perrors.GrammarError, any pattern that can match the empty string
// (it would never advance the scan offset, hanging the lexer forever) and
// any duplicate token name.
func New(patterns []Pattern, skip []token.Name, opts ...Option) (*Lexer, error) {
	if len(patterns) == 0 {
		return nil, &perrors.GrammarError{Message: "lexer: no patterns registered"}
	}

	seen := make(map[token.Name]bool, len(patterns))
	groupNames := make([]token.Name, len(patterns))
	alternatives := make([]string, len(patterns))

	for i, p := range patterns {
		if seen[p.Name] {
			return nil, &perrors.GrammarError{Message: fmt.Sprintf("lexer: duplicate pattern name %q", p.Name)}
		}
		seen[p.Name] = true
		groupNames[i] = p.Name

		if err := rejectZeroWidth(p); err != nil {
			return nil, err
		}

		alternatives[i] = fmt.Sprintf("(?<g%d>%s)", i, p.Expr)
	}

	combinedSrc := "^(?:" + strings.Join(alternatives, "|") + ")"
	combined, err := regexp2.Compile(combinedSrc, regexp2.None)
	if err != nil {
		return nil, &perrors.GrammarError{Message: fmt.Sprintf("lexer: invalid pattern set: %s", err)}
	}

	skipSet := make(map[token.Name]bool, len(skip))
	for _, name := range skip {
		skipSet[name] = true
	}

	l := &Lexer{
		combined:  combined,
		groupName: groupNames,
		skip:      skipSet,
		normalize: norm.Form(-1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// rejectZeroWidth compiles a single pattern anchored on its own and
// checks whether it accepts the empty string — the hallmark of a pattern
// that would never advance the scan offset.
func rejectZeroWidth(p Pattern) error {
	re, err := regexp2.Compile("^(?:"+p.Expr+")", regexp2.None)
	if err != nil {
		return &perrors.GrammarError{Message: fmt.Sprintf("lexer: pattern %q: %s", p.Name, err)}
	}
	m, err := re.FindStringMatch("")
	if err != nil {
		return &perrors.GrammarError{Message: fmt.Sprintf("lexer: pattern %q: %s", p.Name, err)}
	}
	if m != nil {
		return &perrors.GrammarError{Message: fmt.Sprintf("lexer: pattern %q matches the empty string (zero-width)", p.Name)}
	}
	return nil
}

// Lex begins scanning source and returns a lazy TokenStream over it. No
// scanning happens until the stream's Next is called.
func (l *Lexer) Lex(source string) *TokenStream {
	if l.normalize != norm.Form(-1) {
		source = l.normalize.String(source)
	}
	return &TokenStream{lexer: l, source: source}
}

// TokenStream is the lazy sequence of tokens a Lex call produces. Each
// call to Next advances the scan offset by exactly the bytes consumed by
// the match (or the skipped matches preceding it).
type TokenStream struct {
	lexer  *Lexer
	source string
	offset int
	done   bool
}

// Next returns the next token in the stream. Once the end-of-input token
// has been returned, subsequent calls keep returning it. A non-nil error
// is always a *perrors.LexerError and ends the stream at the offset where
// scanning failed.
func (s *TokenStream) Next() (token.Token, error) {
	for {
		if s.done {
			return token.EndOfInput(len(s.source)), nil
		}
		if s.offset >= len(s.source) {
			s.done = true
			tok := token.EndOfInput(len(s.source))
			s.trace(&tok, nil)
			return tok, nil
		}

		matched, name, text, err := s.matchAt(s.offset)
		if err != nil {
			s.trace(nil, err)
			return token.Token{}, err
		}
		if !matched {
			err := &perrors.LexerError{
				Message: fmt.Sprintf("unrecognized token at offset %d", s.offset),
				Source:  s.source,
				Offset:  s.offset,
			}
			s.trace(nil, err)
			return token.Token{}, err
		}

		tok := token.New(name, text, s.offset)
		s.offset += len(text)

		if s.lexer.skip[name] {
			continue
		}
		s.trace(&tok, nil)
		return tok, nil
	}
}

// trace invokes the lexer's trace hook if one was configured.
func (s *TokenStream) trace(tok *token.Token, err error) {
	if s.lexer.trace != nil {
		s.lexer.trace(tok, err)
	}
}

// matchAt runs the combined alternation anchored at byte offset off,
// re-slicing the source rather than trusting the regex engine's own
// match-index units (which the regexp2 vendor code may report in bytes,
// UTF-16 units, or runes depending on build — this sidesteps the
// question entirely by always matching a fresh, already-anchored
// substring and measuring the matched text's own byte length).
func (s *TokenStream) matchAt(off int) (matched bool, name token.Name, text string, err error) {
	m, err := s.lexer.combined.FindStringMatch(s.source[off:])
	if err != nil {
		return false, "", "", &perrors.LexerError{
			Message: fmt.Sprintf("regex evaluation failed at offset %d: %s", off, err),
			Source:  s.source,
			Offset:  off,
		}
	}
	if m == nil || m.Index != 0 {
		return false, "", "", nil
	}

	for i, groupName := range s.lexer.groupName {
		g := m.GroupByName(fmt.Sprintf("g%d", i))
		if g != nil && len(g.Captures) > 0 {
			return true, groupName, m.String(), nil
		}
	}
	// The alternation matched but no named group reports success: should
	// be unreachable given every alternative is itself a named group, but
	// treat it as no-match rather than emit a tokenless advance.
	return false, "", "", nil
}
