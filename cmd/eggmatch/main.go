// Command eggmatch runs the shape-matching game in a window, or verifies a
// scripted play-through headlessly.
package main

import (
	"fmt"
	"os"
)

const releaseVersion = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
