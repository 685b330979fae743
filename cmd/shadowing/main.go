// Command shadowing is the offline companion of the practice API: it scores
// attempts from the terminal, replays regression batches and mints
// development tokens.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
