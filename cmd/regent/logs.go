package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var flagLogsLimit int

var logsCmd = &cobra.Command{
	Use:   "logs [name]",
	Short: "List recent run log files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		paths, err := disp.Logs().Recent(name, flagLogsLimit)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No run logs yet.")
			return nil
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

var logsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete run logs past the retention window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		retention := time.Duration(appCfg.Logs.RetentionDays) * 24 * time.Hour
		deleted, err := disp.Logs().Prune(retention)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d log file(s).\n", deleted)
		return nil
	},
}

func init() {
	logsCmd.Flags().IntVar(&flagLogsLimit, "limit", 10, "maximum log files to list")
	logsCmd.AddCommand(logsPruneCmd)
	rootCmd.AddCommand(logsCmd)
}
