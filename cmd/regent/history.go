package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/regent-cli/regent/internal/models"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [name]",
	Short: "Show command execution history",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all execution history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := disp.History().Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "maximum entries to show")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	var (
		entries []models.HistoryEntry
		err     error
	)
	if len(args) == 1 {
		entries, err = disp.History().ForCommand(args[0], flagHistoryLimit)
	} else {
		entries, err = disp.History().Load(flagHistoryLimit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	for _, e := range entries {
		status := "ok"
		if e.ReturnCode != 0 {
			status = errorStyle.Render(fmt.Sprintf("exit %d", e.ReturnCode))
		}
		line := fmt.Sprintf("%s  %s", e.ExecutedAt.Local().Format(time.DateTime), accentStyle.Render(e.CommandName))
		if len(e.Args) > 0 {
			line += " " + strings.Join(e.Args, " ")
		}
		line += faintStyle.Render(fmt.Sprintf("  (%s, %.2fs)", status, e.DurationSec))
		fmt.Println(line)
	}
	return nil
}
