package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var flagListFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered commands, grouped by namespace",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagListFilter, "filter", "f", "", "filter by substring on the name")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	records, err := disp.List(flagListFilter)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		if flagListFilter != "" {
			fmt.Printf("No commands matching %q.\n", flagListFilter)
		} else {
			fmt.Println("No commands registered yet. Register one with: regent register <target>")
		}
		return nil
	}

	// Group by display namespace; the root group prints first. Records
	// are already sorted by name within each group.
	grouped := make(map[string][]int)
	var namespaces []string
	for i, rec := range records {
		ns := rec.Namespace()
		if _, seen := grouped[ns]; !seen {
			namespaces = append(namespaces, ns)
		}
		grouped[ns] = append(grouped[ns], i)
	}
	sort.Strings(namespaces)

	for _, ns := range namespaces {
		if ns != "" {
			fmt.Printf("\n%s\n", headerStyle.Render(ns+":"))
		}
		for _, i := range grouped[ns] {
			rec := records[i]
			line := "  " + rec.Name
			if rec.Description != "" {
				line += faintStyle.Render(" - " + rec.Description)
			}
			fmt.Println(line)
		}
	}
	return nil
}
