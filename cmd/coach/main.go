// Command coach analyzes a personal ledger from the terminal.
package main

import (
	"os"

	"github.com/arthguru/finance-coach/cmd/coach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
