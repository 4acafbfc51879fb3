// Package perrors formats the runtime's three failure kinds with source
// context — line, column, and a caret pointing at the offending offset —
// the way a compiler frontend reports diagnostics.
package perrors

import (
	"fmt"
	"strings"
)

// GrammarError reports a structural defect in a rule table or lexer
// pattern set, detected at construction time: an unknown rule-id
// reference, a missing initial rule, or a zero-width lexer pattern. It is
// always fatal — the grammar or lexer it describes cannot be used.
type GrammarError struct {
	Message string
}

func (e *GrammarError) Error() string {
	return "grammar: " + e.Message
}

// LexerError reports that the scanner could not match any pattern at a
// given source offset ("Unrecognized Token").
type LexerError struct {
	Message string
	Source  string
	Offset  int
}

func (e *LexerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a pointer into the offending source line.
func (e *LexerError) Format(color bool) string {
	line, col, text := locate(e.Source, e.Offset)
	return formatDiagnostic(fmt.Sprintf("lexer: %s", e.Message), line, col, text, color)
}

// ParserRuntimeError reports that the top-level reduction failed: either
// it returned NoMatch, or it returned Matched without the buffer reaching
// end-of-input ("Unexpected Token"). It always carries the
// furthest-reached token's name, value and offset.
type ParserRuntimeError struct {
	Message     string
	Source      string
	TokenName   string
	TokenValue  string
	TokenOffset int
}

func (e *ParserRuntimeError) Error() string {
	return e.Format(false)
}

// Format renders the error with a pointer at the offending token.
func (e *ParserRuntimeError) Format(color bool) string {
	line, col, text := locate(e.Source, e.TokenOffset)
	msg := fmt.Sprintf("parser: %s (found %s %q)", e.Message, e.TokenName, e.TokenValue)
	return formatDiagnostic(msg, line, col, text, color)
}

// locate converts a byte offset into a 1-indexed (line, column) pair plus
// the text of that source line, the way internal/errors.CompilerError
// does for compiler diagnostics.
func locate(source string, offset int) (line, col int, text string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1

	lines := strings.Split(source, "\n")
	if line-1 < len(lines) {
		text = lines[line-1]
	}
	return line, col, text
}

func formatDiagnostic(message string, line, col int, sourceLine string, color bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("error at %d:%d\n", line, col))
	if sourceLine != "" {
		prefix := fmt.Sprintf("%4d | ", line)
		sb.WriteString(prefix)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(message)
	return sb.String()
}
