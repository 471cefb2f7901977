package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regent-cli/regent/internal/dispatch"
)

var (
	flagRunDryRun  bool
	flagRunVerbose bool
	flagRunCapture bool
	flagRunCwd     string
)

var runCmd = &cobra.Command{
	Use:   "run <name> [args...]",
	Short: "Run a command by name or alias",
	Long: `Run a registered command, forwarding any extra arguments. Flags must
come before the name; everything after it is passed through untouched.

An unregistered dotted name is run as an implicit module entry point.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().SetInterspersed(false)
	runCmd.Flags().BoolVar(&flagRunDryRun, "dry-run", false, "show what would run without executing")
	runCmd.Flags().BoolVarP(&flagRunVerbose, "verbose", "v", false, "show execution details")
	runCmd.Flags().BoolVar(&flagRunCapture, "capture", false, "capture output instead of streaming it")
	runCmd.Flags().StringVar(&flagRunCwd, "cd", "", "run in this directory")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	name, cmdArgs := args[0], args[1:]

	result, err := disp.Run(cmd.Context(), name, cmdArgs, dispatch.RunOptions{
		Capture: flagRunCapture,
		DryRun:  flagRunDryRun,
		Verbose: flagRunVerbose,
		Cwd:     flagRunCwd,
	})
	if err != nil {
		return err
	}

	if result.Captured {
		if result.Stdout != "" {
			fmt.Print(result.Stdout)
		}
		if result.Stderr != "" {
			fmt.Fprint(os.Stderr, result.Stderr)
		}
	}

	exitCode = result.ReturnCode
	return nil
}
