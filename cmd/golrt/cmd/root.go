package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var grammarPath string

var rootCmd = &cobra.Command{
	Use:   "golrt",
	Short: "Grammar-driven recursive-descent parser runtime",
	Long: `golrt loads a grammar — lexer patterns and a rule table — from a YAML
document and drives it against source text: tokenize it, parse it into a
tree, list its rules, or validate its structure.

Grammars are data, not code: every subcommand takes --grammar (or -g)
pointing at the YAML document describing the lexer patterns and rules.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVarP(&grammarPath, "grammar", "g", "", "path to the grammar YAML document (required)")
}
