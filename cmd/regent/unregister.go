package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var unregisterCmd = &cobra.Command{
	Use:   "unregister <name>",
	Short: "Remove a registered command",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := disp.Unregister(args[0]); err != nil {
			return err
		}
		fmt.Printf("Unregistered %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unregisterCmd)
}
