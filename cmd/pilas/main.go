// pilas is the command line front end of the pilas game framework.
//
// Usage:
//
//	pilas console            - Open an empty world with the console
//	pilas run <script>       - Run a console script, then show the world
//	pilas examples           - List the bundled examples
//	pilas play <example>     - Run a bundled example
//	pilas history            - Browse the console history
//	pilas serve              - Serve worlds and consoles over SSH
//	pilas version            - Print the version
//
// Global flags:
//
//	--config <path>  - Configuration file (default: ~/.pilas/config.yaml)
//	--engine <name>  - Engine backend: tui, gui, headless
//	--fps <rate>     - Tick rate
//	--debug          - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	pilas "github.com/vovakirdan/tui-pilas"
	"github.com/vovakirdan/tui-pilas/internal/config"
	_ "github.com/vovakirdan/tui-pilas/internal/platform/gui" // registers the gui engine
)

var (
	flagConfig string
	flagEngine string
	flagFPS    int
	flagWidth  int
	flagHeight int
	flagTitle  string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pilas",
	Short: "Pilas - make games in your terminal",
	Long: `Pilas is a game framework for people learning to program.

Worlds are built from actors, skills, and scenes, and scripted through an
interactive console with history and delimiter matching.

Examples:
  pilas console
  pilas play bounce
  pilas run patito.pilas
  pilas --engine gui console
  pilas serve --ssh :2222`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEngine, "engine", "", "Engine backend: "+fmt.Sprint(pilas.Engines()))
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagWidth, "width", 0, "World width in cells (default: terminal width)")
	rootCmd.PersistentFlags().IntVar(&flagHeight, "height", 0, "World height in cells (default: terminal height)")
	rootCmd.PersistentFlags().StringVar(&flagTitle, "title", "", "Window title")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pilas",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}

// gameOptions collects the global flags into facade options. The world
// takes the terminal size unless the flags or the config say otherwise.
func gameOptions(cfg config.Config) pilas.Options {
	opts := pilas.Options{
		Width:    flagWidth,
		Height:   flagHeight,
		Title:    flagTitle,
		Engine:   flagEngine,
		TickRate: flagFPS,
		Config:   &cfg,
		Logger:   newLogger(),
	}

	engine := cfg.World.Engine
	if flagEngine != "" {
		engine = flagEngine
	}
	if engine == "tui" && (opts.Width == 0 || opts.Height == 0) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if opts.Width == 0 {
				opts.Width = w
			}
			if opts.Height == 0 {
				// The last row holds the help line.
				opts.Height = h - 1
			}
		}
	}
	return opts
}
