package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailspice/golrt/internal/config"
	"github.com/mailspice/golrt/pkg/lexer"
)

var lexEval string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize source text against a grammar's lexer patterns",
	Long: `Tokenize source text and print the resulting tokens, one per line.

If no file is given, reads from stdin. Use -e to tokenize an inline
string instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize this string instead of reading from file or stdin")
}

func runLex(cmd *cobra.Command, args []string) error {
	if grammarPath == "" {
		return fmt.Errorf("--grammar is required")
	}
	doc, err := config.Load(grammarPath)
	if err != nil {
		return err
	}

	input, err := readInput(lexEval, args)
	if err != nil {
		return err
	}

	lex, err := lexer.New(doc.LexerPatterns(), doc.SkipNames())
	if err != nil {
		return err
	}

	stream := lex.Lex(input)
	for {
		tok, err := stream.Next()
		if err != nil {
			return err
		}
		fmt.Printf("%-16s %-24q @%d\n", tok.Name, tok.Value, tok.Offset)
		if tok.IsEOI() {
			return nil
		}
	}
}

func readInput(eval string, args []string) (string, error) {
	if eval != "" {
		return eval, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
