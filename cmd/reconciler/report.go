package main

import (
	"fmt"
	"os"

	service "reconciliation-engine/internal/services/reconciliation"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	reportSession string
	reportXLSX    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a session report as JSON, or write it as a workbook with --xlsx",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := uuid.Parse(reportSession)
		if err != nil {
			return fmt.Errorf("invalid --session: %w", err)
		}
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		report, err := svc.GenerateReport(cmd.Context(), sessionID)
		if err != nil {
			return err
		}
		if reportXLSX == "" {
			return printJSON(report)
		}

		f, err := os.Create(reportXLSX)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", reportXLSX, err)
		}
		defer f.Close()
		if err := service.ExportReportXLSX(report, f); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", reportXLSX)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportSession, "session", "", "session id")
	reportCmd.Flags().StringVar(&reportXLSX, "xlsx", "", "write an xlsx workbook to this path")
	_ = reportCmd.MarkFlagRequired("session")
}
