package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/regent-cli/regent/internal/config"
	"github.com/regent-cli/regent/internal/dispatch"
)

const version = "0.4.0"

var (
	flagDebug bool

	appCfg config.Settings
	disp   *dispatch.Dispatcher

	// exitCode propagates a dispatched command's return code to the
	// process exit.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:     "regent",
	Short:   "Personal command registry and dispatcher",
	Long: `regent registers named aliases for shell commands, module entry
points, and built-in callables, and runs them by name with argument
forwarding, environment merging, dependency chaining, and history.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	if flagDebug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	appCfg, err = config.Load(cwd)
	if err != nil {
		return err
	}

	disp = dispatch.New(cwd, appCfg)
	return nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	defer func() {
		signal.Stop(sigChan)
		cancel()
	}()

	go func() {
		sig := <-sigChan
		slog.Debug("interrupt received, aborting", "signal", sig)
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		if exitCode == 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
