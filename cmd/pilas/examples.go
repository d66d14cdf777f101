package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pilas "github.com/vovakirdan/tui-pilas"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List the bundled examples",
	Long:  `Shows the examples that 'pilas play' can run.`,
	Args:  cobra.NoArgs,
	Run:   runExamples,
}

func runExamples(_ *cobra.Command, _ []string) {
	examples := pilas.Examples()

	if len(examples) == 0 {
		fmt.Println("No examples available.")
		return
	}

	fmt.Println("Available examples:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, ex := range examples {
		if len(ex.ID) > maxIDLen {
			maxIDLen = len(ex.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, ex := range examples {
		fmt.Printf("  %-*s  %s\n", maxIDLen, ex.ID, ex.Description)
	}

	fmt.Println()
	fmt.Println("Run 'pilas play <id>' to run an example.")
}
