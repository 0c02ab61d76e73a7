// ABOUTME: Entry point for the fitcoach CLI
// ABOUTME: Command-line client for the FitCoach fitness platform

package main

import (
	"fmt"
	"os"

	"github.com/fitnessai/fitcoach-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
