package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagImportMerge bool

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the registry file to a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := disp.Store().Export(args[0]); err != nil {
			return err
		}
		fmt.Printf("Registry exported to %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import a registry file, replacing or merging",
	Long: `Import commands from a registry file. By default the active registry
is replaced wholesale. With --merge, imported commands are added; the
import fails if any name collides with an existing command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := disp.Store().Import(args[0], flagImportMerge); err != nil {
			return err
		}
		if flagImportMerge {
			fmt.Printf("Registry merged from %s\n", args[0])
		} else {
			fmt.Printf("Registry imported from %s\n", args[0])
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&flagImportMerge, "merge", false, "merge into the existing registry instead of replacing it")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
