package main

import (
	"fmt"

	"tallerpro/internal/adapter/persistence/repository"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema of the configured store and exit",
	Long: `migrate applies the embedded goose migrations when STORE_DRIVER=postgres,
or creates the missing tables when STORE_DRIVER=dynamodb.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		stores, err := repository.OpenStores(cmd.Context(), cfg, true, log)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		stores.Close()
		log.Info("[migrate] done")
		return nil
	},
}
