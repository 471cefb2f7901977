package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/regent-cli/regent/internal/dispatch"
)

var (
	flagRegisterName      string
	flagRegisterKind      string
	flagRegisterDesc      string
	flagRegisterTags      []string
	flagRegisterAliases   []string
	flagRegisterDeps      []string
	flagRegisterEnv       []string
	flagRegisterTimeout   int
	flagRegisterAllowDots bool
)

var registerCmd = &cobra.Command{
	Use:   "register <target>",
	Short: "Register a command alias for a target",
	Long: `Register a named command for a target. The kind (shell, module, or
callable) and the name are inferred from the target's syntax unless
given explicitly.

Examples:
  regent register "docker compose up -d" --name dev:up
  regent register mypkg.tool                # module, named "tool"
  regent register regent:version            # callable, named "version"`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&flagRegisterName, "name", "n", "", "command name (default: inferred from target)")
	registerCmd.Flags().StringVarP(&flagRegisterKind, "kind", "k", "", "command kind: shell, module, or callable (default: inferred)")
	registerCmd.Flags().StringVarP(&flagRegisterDesc, "description", "d", "", "command description")
	registerCmd.Flags().StringSliceVar(&flagRegisterTags, "tag", nil, "tag for categorization (repeatable)")
	registerCmd.Flags().StringSliceVar(&flagRegisterAliases, "alias", nil, "alternate lookup name (repeatable)")
	registerCmd.Flags().StringSliceVar(&flagRegisterDeps, "depends-on", nil, "command to run first (repeatable, order preserved)")
	registerCmd.Flags().StringSliceVar(&flagRegisterEnv, "env", nil, "KEY=VALUE environment override (repeatable)")
	registerCmd.Flags().IntVar(&flagRegisterTimeout, "timeout", 0, "execution timeout in seconds")
	registerCmd.Flags().BoolVar(&flagRegisterAllowDots, "allow-dotted", false, "allow a dotted name despite the module fallback rule")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	env, err := parseEnvFlags(flagRegisterEnv)
	if err != nil {
		return err
	}

	rec, err := disp.Register(args[0], dispatch.RegisterOptions{
		Name:            flagRegisterName,
		Kind:            flagRegisterKind,
		Description:     flagRegisterDesc,
		Tags:            flagRegisterTags,
		Aliases:         flagRegisterAliases,
		DependsOn:       flagRegisterDeps,
		Env:             env,
		TimeoutSec:      flagRegisterTimeout,
		AllowDottedName: flagRegisterAllowDots,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s (%s): %s\n", accentStyle.Render(rec.Name), rec.Kind, rec.Target)
	return nil
}

func parseEnvFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --env value %q (expected KEY=VALUE)", pair)
		}
		env[k] = v
	}
	return env, nil
}
