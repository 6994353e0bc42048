// Command wfcgen is a thin CLI front end over pkg/wfc. CLI parsing, rule
// file loading, and rendering are all external-collaborator concerns —
// none of this package's code is imported by pkg/wfc — but a runnable
// module needs one caller that wires them together, and this is it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wfcgen",
		Short: "Generate tiles from an infinite-grid wave-function-collapse ruleset",
	}
	root.AddCommand(newRegionCmd())
	root.AddCommand(newBatchCmd())
	return root
}
