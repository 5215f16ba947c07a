package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/requestnetwork/request-api-go/pkg/cli/internal/output"
)

var payerCmd = &cobra.Command{
	Use:   "payer",
	Short: "Payer compliance and payment details",
}

var payerStatusCmd = &cobra.Command{
	Use:   "status CLIENT_USER_ID",
	Short: "Show the compliance status of a payer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		st, err := c.Payer.GetComplianceStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, st, func() {
			tw := output.Table(w)
			fmt.Fprintf(tw, "User:\t%s\n", orDash(st.UserID))
			fmt.Fprintf(tw, "KYC:\t%s\n", orDash(st.KYCStatus))
			fmt.Fprintf(tw, "Agreement:\t%s\n", orDash(st.AgreementStatus))
			fmt.Fprintf(tw, "Compliant:\t%t\n", st.IsCompliant)
			_ = tw.Flush()
		})
	},
}

var payerDetailsCmd = &cobra.Command{
	Use:   "payment-details CLIENT_USER_ID",
	Short: "List the payment details registered for a payer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		details, err := c.Payer.GetPaymentDetails(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, details, func() {
			if len(details) == 0 {
				fmt.Fprintln(w, "No payment details registered")
				return
			}
			tw := output.Table(w)
			fmt.Fprintln(tw, "ID\tBANK\tCURRENCY\tSTATUS")
			for _, d := range details {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, orDash(d.BankName), orDash(d.Currency), orDash(d.Status))
			}
			_ = tw.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(payerCmd)
	payerCmd.AddCommand(payerStatusCmd, payerDetailsCmd)
}
