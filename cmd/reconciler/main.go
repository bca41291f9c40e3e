package main

import (
	"encoding/json"
	"fmt"
	"os"

	"reconciliation-engine/internal/config"
	service "reconciliation-engine/internal/services/reconciliation"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "reconciler",
	Short:        "Reconcile bank statements against the internal ledger",
	Version:      Version,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(reportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB connects using the same environment as the server.
func openDB() (*gorm.DB, error) {
	return config.InitDB(config.Load())
}

func newService(cmd *cobra.Command) (*service.ReconciliationService, error) {
	cfg := config.Load()
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	_, locker, err := config.InitRedis(cmd.Context(), cfg)
	if err != nil {
		config.GetLogger().WithError(err).Warn("redis unavailable, session locks disabled")
	}
	return service.NewReconciliationService(db, locker), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
