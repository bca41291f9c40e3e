package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"reconciliation-engine/internal/models"
	"reconciliation-engine/internal/services/matching"
	service "reconciliation-engine/internal/services/reconciliation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	matchSession       string
	matchAuto          bool
	matchMinConfidence string
	matchUser          string
	matchAmountTol     string
	matchDateTol       int
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "List candidate matches for a session, or confirm them with --auto",
	Long: `List candidate matches for a session, ordered high, medium, low.

With --auto, pairs at or above --min-confidence are confirmed, best first,
using each transaction at most once.

Examples:
  reconciler match --session <id>
  reconciler match --session <id> --amount-tolerance 1 --date-tolerance 7
  reconciler match --session <id> --auto --min-confidence medium`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchSession, "session", "", "session id")
	matchCmd.Flags().BoolVar(&matchAuto, "auto", false, "confirm candidates instead of listing them")
	matchCmd.Flags().StringVar(&matchMinConfidence, "min-confidence", string(models.ConfidenceHigh), "lowest confidence confirmed by --auto")
	matchCmd.Flags().StringVar(&matchUser, "user", "cli", "recorded as matched_by")
	matchCmd.Flags().StringVar(&matchAmountTol, "amount-tolerance", "", "override the session amount tolerance")
	matchCmd.Flags().IntVar(&matchDateTol, "date-tolerance", -1, "override the session date tolerance")
	_ = matchCmd.MarkFlagRequired("session")
}

func runMatch(cmd *cobra.Command, args []string) error {
	sessionID, err := uuid.Parse(matchSession)
	if err != nil {
		return fmt.Errorf("invalid --session: %w", err)
	}

	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	if matchAuto {
		matches, err := svc.AutoMatch(cmd.Context(), sessionID, matchUser, models.Confidence(matchMinConfidence))
		if err != nil {
			return err
		}
		fmt.Printf("confirmed %d matches\n", len(matches))
		return nil
	}

	var criteria *service.MatchCriteria
	if matchAmountTol != "" {
		tol, err := decimal.NewFromString(matchAmountTol)
		if err != nil {
			return fmt.Errorf("invalid --amount-tolerance: %w", err)
		}
		criteria = &service.MatchCriteria{AmountTolerance: &tol}
	}
	if cmd.Flags().Changed("date-tolerance") {
		if criteria == nil {
			criteria = &service.MatchCriteria{}
		}
		criteria.DateTolerance = &matchDateTol
	}

	results, err := svc.FindMatches(cmd.Context(), sessionID, criteria)
	if err != nil {
		return err
	}
	printCandidates(results)
	return nil
}

func printCandidates(results []matching.MatchResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONFIDENCE\tBANK\tINTERNAL\tAMOUNT DIFF\tDAYS\tSIMILARITY")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\n",
			r.Confidence, r.BankTransaction.ID, r.InternalTransaction.ID,
			r.AmountDifference.String(), r.DateDifference, r.DescriptionSimilarity)
	}
	_ = w.Flush()
}
