package main

import (
	"fmt"

	"reconciliation-engine/internal/models"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := db.AutoMigrate(models.AllModels()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		fmt.Println("migration complete")
		return nil
	},
}
