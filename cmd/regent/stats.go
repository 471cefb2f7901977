package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/regent-cli/regent/internal/models"
	"github.com/regent-cli/regent/internal/registry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show registry statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := disp.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("Total commands: %d\n", stats.Total)

		if len(stats.ByKind) > 0 {
			fmt.Printf("\n%s\n", headerStyle.Render("By kind:"))
			kinds := make([]string, 0, len(stats.ByKind))
			for kind := range stats.ByKind {
				kinds = append(kinds, string(kind))
			}
			sort.Strings(kinds)
			for _, kind := range kinds {
				fmt.Printf("  %s: %d\n", kind, stats.ByKind[models.Kind(kind)])
			}
		}

		if len(stats.ByNamespace) > 0 {
			fmt.Printf("\n%s\n", headerStyle.Render("By namespace:"))
			namespaces := make([]string, 0, len(stats.ByNamespace))
			for ns := range stats.ByNamespace {
				namespaces = append(namespaces, ns)
			}
			sort.Strings(namespaces)
			for _, ns := range namespaces {
				fmt.Printf("  %s: %d\n", ns, stats.ByNamespace[ns])
			}
		}

		if len(stats.Tags) > 0 {
			fmt.Printf("\nTags: %s\n", strings.Join(stats.Tags, ", "))
		}

		fmt.Printf("\nGlobal registry: %s\n", registry.GlobalPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
