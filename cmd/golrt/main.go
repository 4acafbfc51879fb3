// Command golrt drives a grammar-driven parser runtime from a YAML
// grammar document: tokenize, parse, list rules, or validate a grammar
// without writing any Go.
package main

import (
	"fmt"
	"os"

	"github.com/mailspice/golrt/cmd/golrt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
