package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pilas/internal/platform/tui"
	"github.com/vovakirdan/tui-pilas/internal/storage"
)

var (
	flagHistoryDB    string
	flagHistoryPlain bool
	flagHistoryLimit int
	flagHistoryClear string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the console history",
	Long: `Browse the commands typed in the console, grouped by session. Local
consoles use the session "local"; SSH consoles use "ssh:<user>".

Examples:
  pilas history
  pilas history --plain --limit 20
  pilas history --clear local`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryDB, "db", "", "Path to history database (default from config)")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print the most recent commands instead of browsing")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of commands printed with --plain")
	historyCmd.Flags().StringVar(&flagHistoryClear, "clear", "", "Delete the history of a session")
}

func runHistory(_ *cobra.Command, _ []string) error {
	dbPath := flagHistoryDB
	if dbPath == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbPath = cfg.Console.DBPath
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagHistoryClear != "" {
		n, err := store.CountHistory(flagHistoryClear)
		if err != nil {
			return err
		}
		if err := store.ClearHistory(flagHistoryClear); err != nil {
			return err
		}
		fmt.Printf("Deleted %d commands from session %q.\n", n, flagHistoryClear)
		return nil
	}

	if flagHistoryPlain {
		return printHistory(store, flagHistoryLimit)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunHistory(store, width, height)
}

func printHistory(store *storage.Store, limit int) error {
	entries, err := store.RecentHistory(limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No commands recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pilas console' and type a few commands first.")
		return nil
	}

	fmt.Printf("  %-16s  %-12s  %s\n", "Date", "Session", "Command")
	fmt.Printf("  %-16s  %-12s  %s\n", "----", "-------", "-------")
	for _, e := range entries {
		fmt.Printf("  %-16s  %-12s  %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Session, e.Command)
	}
	return nil
}
