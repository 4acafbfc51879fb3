package cmd

import (
	"fmt"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/mailspice/golrt/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the grammar's rule identifiers",
	Long: `List a grammar's rule identifiers in natural sort order, so rule sets
that mix numbered variants (rule2, rule10) read in the order a human
expects rather than plain lexical order.`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	if grammarPath == "" {
		return fmt.Errorf("--grammar is required")
	}
	doc, err := config.Load(grammarPath)
	if err != nil {
		return err
	}

	ids := make([]string, len(doc.Rules))
	for i, r := range doc.Rules {
		ids[i] = r.ID
	}
	natural.Sort(ids)

	for _, id := range ids {
		marker := "  "
		if id == string(doc.Initial()) {
			marker = "* "
		}
		fmt.Printf("%s%s\n", marker, id)
	}
	return nil
}
