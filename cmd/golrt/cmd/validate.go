package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mailspice/golrt/internal/config"
	"github.com/mailspice/golrt/pkg/lexer"
	"github.com/mailspice/golrt/pkg/parser"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a grammar document without parsing anything",
	Long: `Load a grammar document, compile its lexer patterns, and build its rule
table, reporting any structural defect: an unknown rule-id reference, a
missing initial rule, a zero-width lexer pattern, or a duplicate pattern
name.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if grammarPath == "" {
		return fmt.Errorf("--grammar is required")
	}
	doc, err := config.Load(grammarPath)
	if err != nil {
		return err
	}

	lex, err := lexer.New(doc.LexerPatterns(), doc.SkipNames())
	if err != nil {
		return err
	}
	rules, err := doc.GrammarRules()
	if err != nil {
		return err
	}
	if _, err := parser.New(lex, rules, doc.Initial()); err != nil {
		return err
	}

	fmt.Printf("ok: %d pattern(s), %d rule(s), initial=%s\n", len(doc.Patterns), len(doc.Rules), doc.Initial())
	return nil
}
