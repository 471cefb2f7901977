package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regent-cli/regent/internal/execute"
)

// Built-in callables. The callable table is a fixed set compiled into
// the binary; registering a callable-kind command points at one of
// these namespace:function keys.
func init() {
	must(execute.RegisterCallable("regent:version", func(args []string) (int, error) {
		fmt.Println("regent " + version)
		return 0, nil
	}))
	must(execute.RegisterCallable("regent:callables", func(args []string) (int, error) {
		for _, name := range execute.CallableNames() {
			fmt.Println(name)
		}
		return 0, nil
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

var callablesCmd = &cobra.Command{
	Use:   "callables",
	Short: "List the compiled-in callable targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range execute.CallableNames() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callablesCmd)
}
