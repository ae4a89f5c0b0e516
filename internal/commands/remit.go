package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/parser"
	"github.com/balkashynov/tally/internal/tui"
)

var remitCmd = &cobra.Command{
	Use:   "remit",
	Short: "Generate and settle remittances",
}

var remitGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create remittances for every worker over a period",
	Long: `Create one PENDING remittance per worker, paying for the time segments
that lie entirely inside the period. Workers already remitted for the same
period are skipped.

Dates accept yyyy-mm-dd, dd/mm/yyyy, RFC 3339, today, yesterday and
"N days ago" / "N weeks ago". A date-only --to covers that whole day.

Examples:
  tally remit generate --rate 25 --from 2026-01-01 --to 2026-01-31
  tally remit generate --rate 18.50 --from "2 weeks ago" --to yesterday`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		rateFlag, _ := cmd.Flags().GetString("rate")
		fromFlag, _ := cmd.Flags().GetString("from")
		toFlag, _ := cmd.Flags().GetString("to")

		rate, err := decimal.NewFromString(rateFlag)
		if err != nil {
			return fmt.Errorf("invalid --rate %q: %w", rateFlag, err)
		}
		start, err := parser.ParsePeriodStart(fromFlag)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		end, err := parser.ParsePeriodEnd(toFlag)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}

		res, err := store.CreateRemittances(cmd.Context(), db.GenerateRemittancesRequest{
			AmountPerHour: rate,
			Start:         start,
			End:           end,
		})
		if err != nil {
			return fmt.Errorf("failed to generate remittances: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.Success(fmt.Sprintf("Created %d remittance(s) for %s, skipped %d",
			len(res.Created), parser.FormatPeriod(start, end), res.Skipped)))
		if len(res.Created) > 0 {
			fmt.Fprintln(out, tui.RenderRemittances(res.Created))
		}
		return nil
	}),
}

var remitListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List remittances",
	Args:    cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		status, _ := cmd.Flags().GetString("status")
		remittances, err := store.GetRemittances(cmd.Context(), db.RemittanceFilter{Status: status})
		if err != nil {
			return fmt.Errorf("error fetching remittances: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderRemittances(remittances))
		return nil
	}),
}

var remitPaidCmd = &cobra.Command{
	Use:   "paid [remittance-id]",
	Short: "Mark a remittance as paid",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid remittance ID '%s'", args[0])
		}

		r, err := store.MarkRemittancePaid(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to mark remittance paid: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.Success(fmt.Sprintf("Remittance %s paid: %s", r.ID, r.TotalAmount.StringFixed(2))))
		return nil
	}),
}

func init() {
	remitGenerateCmd.Flags().String("rate", "", "amount paid per hour (required)")
	remitGenerateCmd.Flags().String("from", "", "period start (required)")
	remitGenerateCmd.Flags().String("to", "", "period end, inclusive (required)")
	for _, name := range []string{"rate", "from", "to"} {
		_ = remitGenerateCmd.MarkFlagRequired(name)
	}

	remitListCmd.Flags().StringP("status", "s", "", "filter by status: PENDING, REMITTED")

	remitCmd.AddCommand(remitGenerateCmd, remitListCmd, remitPaidCmd)
}
