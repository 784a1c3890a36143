// Command boardctl is the command line client of the task board: it signs
// in, manages boards and moves tasks between the to-do, in-progress and
// done columns.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
