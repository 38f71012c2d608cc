package main

import (
	"errors"
	"fmt"
	"os"

	"timekeeper/cmd"
	"timekeeper/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Handled errors were already reported with their own formatting.
		if !errors.Is(err, cli.ErrHandled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
