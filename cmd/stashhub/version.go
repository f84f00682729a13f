package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnthonyBarbaro/stashhub/internal/logging"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/panels"
	"github.com/AnthonyBarbaro/stashhub/internal/update"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and check for updates",
	Run: func(cmd *cobra.Command, args []string) {
		runVersion(cmd.Context())
	},
}

func runVersion(ctx context.Context) {
	fmt.Printf("stashhub version %s\n", panels.Version)

	if panels.Version == "dev" {
		fmt.Println("Development build, update check skipped.")
		return
	}

	rel, err := update.Check(ctx, panels.Version)
	if err != nil {
		logging.Console("info").Warn().Err(err).Msg("update check failed")
		return
	}

	if rel != nil {
		fmt.Printf("Update available: v%s. Run \"stashhub update\" to install.\n", rel.Version)
	} else {
		fmt.Println("You are up to date.")
	}
}
