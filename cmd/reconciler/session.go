package main

import (
	"fmt"

	"reconciliation-engine/internal/gateway"
	"reconciliation-engine/internal/models"
	service "reconciliation-engine/internal/services/reconciliation"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	sessionOwner         string
	sessionType          string
	sessionStart         string
	sessionEnd           string
	sessionAmountTol     string
	sessionDateTolerance int
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage reconciliation sessions",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Open a new reconciliation session",
	Long: `Open a new reconciliation session for a period.

Examples:
  reconciler session create "January 2024" --owner ops --start 2024-01-01 --end 2024-01-31
  reconciler session create "Vendor Q1" --type vendor_reconciliation --amount-tolerance 0.05 --date-tolerance 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionCreate,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions for an owner, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		sessions, err := svc.ListSessions(cmd.Context(), sessionOwner)
		if err != nil {
			return err
		}
		return printJSON(sessions)
	},
}

func init() {
	sessionCmd.PersistentFlags().StringVar(&sessionOwner, "owner", "cli", "owner id")

	sessionCreateCmd.Flags().StringVar(&sessionType, "type", string(models.SessionTypeBankToBook), "session type")
	sessionCreateCmd.Flags().StringVar(&sessionStart, "start", "", "period start (YYYY-MM-DD)")
	sessionCreateCmd.Flags().StringVar(&sessionEnd, "end", "", "period end (YYYY-MM-DD)")
	sessionCreateCmd.Flags().StringVar(&sessionAmountTol, "amount-tolerance", "", "maximum amount difference for a candidate")
	sessionCreateCmd.Flags().IntVar(&sessionDateTolerance, "date-tolerance", models.DefaultDateToleranceDays, "maximum day difference for a candidate")
	_ = sessionCreateCmd.MarkFlagRequired("start")
	_ = sessionCreateCmd.MarkFlagRequired("end")

	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionListCmd)
}

func runSessionCreate(cmd *cobra.Command, args []string) error {
	start, err := gateway.ParseDate(sessionStart)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := gateway.ParseDate(sessionEnd)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	params := service.CreateSessionParams{
		Name:          args[0],
		Type:          models.SessionType(sessionType),
		PeriodStart:   start,
		PeriodEnd:     end,
		DateTolerance: &sessionDateTolerance,
	}
	if sessionAmountTol != "" {
		tol, err := decimal.NewFromString(sessionAmountTol)
		if err != nil {
			return fmt.Errorf("invalid --amount-tolerance: %w", err)
		}
		params.AmountTolerance = &tol
	}

	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	session, err := svc.CreateSession(cmd.Context(), sessionOwner, params)
	if err != nil {
		return err
	}
	return printJSON(session)
}
