package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/regent-cli/regent/internal/models"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show details of a registered command",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := disp.Info(args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return &models.UnknownCommandError{Name: args[0]}
		}
		printRecord(rec)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printRecord(rec *models.CommandRecord) {
	fmt.Printf("%s %s\n", headerStyle.Render("Name:"), rec.Name)
	fmt.Printf("%s %s\n", headerStyle.Render("Kind:"), rec.Kind)
	fmt.Printf("%s %s\n", headerStyle.Render("Target:"), rec.Target)
	if rec.Description != "" {
		fmt.Printf("%s %s\n", headerStyle.Render("Description:"), rec.Description)
	}
	if len(rec.Tags) > 0 {
		fmt.Printf("%s %s\n", headerStyle.Render("Tags:"), strings.Join(rec.Tags, ", "))
	}
	if len(rec.Aliases) > 0 {
		fmt.Printf("%s %s\n", headerStyle.Render("Aliases:"), strings.Join(rec.Aliases, ", "))
	}
	if len(rec.DependsOn) > 0 {
		fmt.Printf("%s %s\n", headerStyle.Render("Depends on:"), strings.Join(rec.DependsOn, ", "))
	}
	if len(rec.Env) > 0 {
		keys := make([]string, 0, len(rec.Env))
		for k := range rec.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var pairs []string
		for _, k := range keys {
			pairs = append(pairs, k+"="+rec.Env[k])
		}
		fmt.Printf("%s %s\n", headerStyle.Render("Environment:"), strings.Join(pairs, " "))
	}
	if rec.TimeoutSec > 0 {
		fmt.Printf("%s %ds\n", headerStyle.Render("Timeout:"), rec.TimeoutSec)
	}
	fmt.Printf("%s %s\n", headerStyle.Render("Created:"), rec.CreatedAt.Format(time.RFC3339))
	fmt.Printf("%s %s\n", headerStyle.Render("Updated:"), rec.UpdatedAt.Format(time.RFC3339))
}
