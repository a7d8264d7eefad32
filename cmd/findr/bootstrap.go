package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/findr-api/internal/infrastructure/dynamo"
	"github.com/findr-api/internal/infrastructure/seed"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the DynamoDB tables and load demo data",
	Long:  `Creates the items, claims, notifications and users tables if missing. With SEED_DEMO=true the demo users, items and notifications are written as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("dynamo client: %w", err)
		}
		dynamo.Bootstrap(ctx, client, cfg.DynamoTables)

		if !cfg.SeedDemo {
			return nil
		}
		store := dynamo.NewStore(client, cfg.DynamoTables)
		if err := seed.Load(ctx, store.Users, store.Items, store.Notifications, time.Now().UTC()); err != nil {
			return err
		}
		log.Info().Msg("demo data written")
		return nil
	},
}
