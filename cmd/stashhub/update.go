package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnthonyBarbaro/stashhub/internal/ui/panels"
	"github.com/AnthonyBarbaro/stashhub/internal/update"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace this binary with the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd.Context())
	},
}

func runUpdate(ctx context.Context) error {
	fmt.Println("Checking for updates...")

	rel, err := update.Apply(ctx, panels.Version)
	if err != nil {
		return err
	}

	fmt.Printf("Updated to v%s\n", rel.Version)
	if rel.Notes != "" {
		fmt.Printf("\nRelease notes:\n%s\n", rel.Notes)
	}
	return nil
}
