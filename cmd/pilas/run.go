package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	pilas "github.com/vovakirdan/tui-pilas"
)

var flagNoRun bool

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a console script",
	Long: `Run a file of console commands against a fresh world, print what the
commands printed, and then show the world.

With --no-run the world is not shown, which together with the 'step'
command makes scripts usable without a terminal.

Examples:
  pilas run patito.pilas
  pilas run --no-run --engine headless check.pilas`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().BoolVar(&flagNoRun, "no-run", false, "Only run the script and print its output")
}

func runScript(_ *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read script: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := gameOptions(cfg)
	opts.Console = !flagNoRun
	game, err := pilas.Init(opts)
	if err != nil {
		return err
	}
	defer game.Close()

	out, err := game.Exec(string(src))
	printOutput(os.Stdout, out)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if flagNoRun || game.World().Quitting() {
		return nil
	}
	return runUntilSignal(game)
}

// printOutput writes script output followed by a newline, or nothing when
// the script printed nothing.
func printOutput(w io.Writer, out string) {
	if out != "" {
		fmt.Fprintln(w, out)
	}
}
