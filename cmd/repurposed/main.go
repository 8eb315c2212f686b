// Command repurposed runs the drug repurposing analysis pipeline, either
// as an HTTP service or as a one-shot CLI analysis.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
