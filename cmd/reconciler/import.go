package main

import (
	"fmt"

	"reconciliation-engine/internal/gateway"
	service "reconciliation-engine/internal/services/reconciliation"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var importSession string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load transactions from CSV files into a session",
}

var importBankCmd = &cobra.Command{
	Use:   "bank [file.csv]",
	Short: "Import a bank statement; rows with a known external id are skipped",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := uuid.Parse(importSession)
		if err != nil {
			return fmt.Errorf("invalid --session: %w", err)
		}
		records, err := gateway.NewCSVTransactionReader().ReadBankFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		result, err := svc.ImportBankTransactions(cmd.Context(), sessionID, records)
		if err != nil {
			return err
		}
		return printImport(result)
	},
}

var importInternalCmd = &cobra.Command{
	Use:   "internal [file.csv]",
	Short: "Import internal ledger entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := uuid.Parse(importSession)
		if err != nil {
			return fmt.Errorf("invalid --session: %w", err)
		}
		records, err := gateway.NewCSVTransactionReader().ReadInternalFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		result, err := svc.ImportInternalTransactions(cmd.Context(), sessionID, records)
		if err != nil {
			return err
		}
		return printImport(result)
	},
}

func init() {
	importCmd.PersistentFlags().StringVar(&importSession, "session", "", "session id")
	_ = importCmd.MarkPersistentFlagRequired("session")

	importCmd.AddCommand(importBankCmd)
	importCmd.AddCommand(importInternalCmd)
}

func printImport(r *service.ImportResult) error {
	fmt.Printf("inserted %d, skipped %d\n", r.Inserted, r.Skipped)
	if r.Session != nil {
		fmt.Printf("session %s: %d transactions, %d matched, status %s\n",
			r.Session.ID, r.Session.TotalTransactions, r.Session.MatchedTransactions, r.Session.Status)
	}
	return nil
}
