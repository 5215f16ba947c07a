package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/requestnetwork/request-api-go/pkg/cli/internal/output"
	"github.com/requestnetwork/request-api-go/pkg/payouts"
)

var payoutsCmd = &cobra.Command{
	Use:     "payouts",
	Aliases: []string{"payout"},
	Short:   "Inspect and manage payouts",
}

var payoutsRecurringStatusCmd = &cobra.Command{
	Use:   "recurring-status ID",
	Short: "Show the state of a recurring payout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		st, err := c.Payouts.GetRecurringStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, st, func() {
			tw := output.Table(w)
			fmt.Fprintf(tw, "Status:\t%s\n", orDash(st.Status))
			fmt.Fprintf(tw, "Active:\t%t\n", st.IsActive)
			fmt.Fprintf(tw, "Payments:\t%d/%d\n", st.ExecutedPayments, st.TotalPayments)
			fmt.Fprintf(tw, "Next payment:\t%s\n", orDash(deref(st.NextPaymentDate)))
			_ = tw.Flush()
		})
	},
}

var payoutsCancelCmd = &cobra.Command{
	Use:   "cancel ID",
	Short: "Get the transactions that cancel a recurring payout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		txs, err := c.Payouts.UpdateRecurring(cmd.Context(), args[0], payouts.ActionCancel)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, txs, func() {
			tw := output.Table(w)
			fmt.Fprintln(tw, "#\tTO\tDATA")
			for i, tx := range txs.Transactions {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i, tx.To, truncate(tx.Data, 42))
			}
			_ = tw.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(payoutsCmd)
	payoutsCmd.AddCommand(payoutsRecurringStatusCmd, payoutsCancelCmd)
}
