package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regent-cli/regent/internal/execute"
	"github.com/regent-cli/regent/internal/models"
)

var validateCmd = &cobra.Command{
	Use:   "validate [name]",
	Short: "Check that command targets look runnable",
	Long: `Check that registered targets resolve to something runnable: shell
targets to an executable on disk or PATH, module targets to a usable
module runner, callable targets to a compiled-in callable. Validation
is advisory and never changes the registry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		rec, err := disp.Info(args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return &models.UnknownCommandError{Name: args[0]}
		}
		if err := execute.Validate(*rec, appCfg.Runner.ModuleCommand); err != nil {
			exitCode = 1
			fmt.Printf("%s is invalid: %v\n", rec.Name, err)
			return nil
		}
		fmt.Printf("%s is valid.\n", rec.Name)
		return nil
	}

	problems, err := disp.ValidateAll()
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		fmt.Println("All commands are valid.")
		return nil
	}

	exitCode = 1
	fmt.Println("Invalid commands:")
	for _, name := range execute.SortedProblemNames(problems) {
		fmt.Printf("  %s: %s\n", errorStyle.Render(name), problems[name])
	}
	return nil
}
