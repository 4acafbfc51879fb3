package cmd

import (
	"errors"
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/mailspice/golrt/internal/config"
	"github.com/mailspice/golrt/internal/perrors"
	"github.com/mailspice/golrt/pkg/jsonast"
	"github.com/mailspice/golrt/pkg/lexer"
	"github.com/mailspice/golrt/pkg/parser"
)

var (
	parseEval string
	parseJSON bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse source text against a grammar and print the resulting tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse this string instead of reading from file or stdin")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the tree as JSON instead of a Go-value dump")
}

func runParse(cmd *cobra.Command, args []string) error {
	if grammarPath == "" {
		return fmt.Errorf("--grammar is required")
	}
	doc, err := config.Load(grammarPath)
	if err != nil {
		return err
	}

	input, err := readInput(parseEval, args)
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
	p, err := parser.New(lex, rules, doc.Initial())
	if err != nil {
		return err
	}

	tree, err := p.Parse(input)
	if err != nil {
		return explainParseError(err)
	}

	if parseJSON {
		out, err := jsonast.ToJSON(tree)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Printf("%# v\n", pretty.Formatter(tree))
	return nil
}

func explainParseError(err error) error {
	var lexErr *perrors.LexerError
	if errors.As(err, &lexErr) {
		return fmt.Errorf("%s", lexErr.Format(true))
	}
	var rtErr *perrors.ParserRuntimeError
	if errors.As(err, &rtErr) {
		return fmt.Errorf("%s", rtErr.Format(true))
	}
	return err
}
