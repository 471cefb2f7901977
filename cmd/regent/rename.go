package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a registered command",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := disp.Rename(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed %s -> %s\n", args[0], accentStyle.Render(args[1]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
