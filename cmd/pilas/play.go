package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	pilas "github.com/vovakirdan/tui-pilas"
)

var flagNoConsole bool

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open an empty world with the interactive console",
	Long: `Open an empty world with the interactive console.

Console keys:
  F4          - Show or hide the console
  Enter       - Run the line
  Up/Down     - History
  Tab         - Indent
  Ctrl+C      - Discard the current block
  Ctrl+S      - Save a screenshot
  Esc         - Quit

Type 'help' in the console for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runGame("", true)
	},
}

var playCmd = &cobra.Command{
	Use:   "play <example>",
	Short: "Run a bundled example",
	Long: `Run one of the bundled examples with the console open, so the example
can be changed while it runs. F4 hides and shows the console.

Examples:
  pilas play bounce
  pilas play control --engine gui`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runGame(args[0], !flagNoConsole)
	},
}

func init() {
	playCmd.Flags().BoolVar(&flagNoConsole, "no-console", false, "Do not allow opening the console")
}

func runGame(example string, withConsole bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := gameOptions(cfg)
	opts.Example = example
	opts.Console = withConsole

	game, err := pilas.Init(opts)
	if err != nil {
		return err
	}
	defer game.Close()

	if example == "" {
		game.Notify("pilas " + pilas.Version() + " - type 'help' in the console")
	}

	return runUntilSignal(game)
}

// runUntilSignal runs game until it quits or the process is interrupted.
func runUntilSignal(game *pilas.Game) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := game.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s engine: %w", game.Engine(), err)
	}
	return nil
}
