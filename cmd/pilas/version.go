package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pilas "github.com/vovakirdan/tui-pilas"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pilas version",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("pilas %s\n", pilas.Version())
	},
}
