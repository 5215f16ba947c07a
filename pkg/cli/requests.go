package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/requestnetwork/request-api-go/pkg/cli/internal/output"
	"github.com/requestnetwork/request-api-go/pkg/dispatch"
	"github.com/requestnetwork/request-api-go/pkg/requests"
)

var requestsCmd = &cobra.Command{
	Use:     "requests",
	Aliases: []string{"request", "req"},
	Short:   "Create payment requests and follow their payment",
}

var (
	createFile            string
	createPayee           string
	createPayer           string
	createAmount          string
	createInvoiceCurrency string
	createPaymentCurrency string
	createReference       string

	payWallet string
	payChain  string
	payToken  string

	routesWallet string
	routesAmount string
)

var requestsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a payment request",
	Example: `  reqctl requests create --payee 0xabc... --amount 10 --invoice-currency USD --payment-currency USDC-sepolia
  reqctl requests create --file request.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var body requests.CreateRequest
		if createFile != "" {
			raw, err := readJSONFile(cmd.InOrStdin(), createFile)
			if err != nil {
				return err
			}
			if body, err = dispatch.Decode[requests.CreateRequest](raw); err != nil {
				return err
			}
		}
		setIfChanged(cmd, "payee", &body.Payee, createPayee)
		setIfChanged(cmd, "payer", &body.Payer, createPayer)
		setIfChanged(cmd, "amount", &body.Amount, createAmount)
		setIfChanged(cmd, "invoice-currency", &body.InvoiceCurrency, createInvoiceCurrency)
		setIfChanged(cmd, "payment-currency", &body.PaymentCurrency, createPaymentCurrency)
		setIfChanged(cmd, "reference", &body.Reference, createReference)

		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		res, err := c.Requests.Create(cmd.Context(), &body)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, res, func() {
			fmt.Fprintf(w, "Created request %s\n", res.RequestID)
			fmt.Fprintf(w, "Payment reference: %s\n", res.PaymentReference)
		})
	},
}

var requestsStatusCmd = &cobra.Command{
	Use:   "status REQUEST_ID",
	Short: "Show the status of a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		st, err := c.Requests.GetStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, st, func() {
			tw := output.Table(w)
			fmt.Fprintf(tw, "Request:\t%s\n", orDash(st.RequestID))
			fmt.Fprintf(tw, "Status:\t%s\n", st.Kind)
			fmt.Fprintf(tw, "Reported:\t%s\n", orDash(deref(st.Status)))
			fmt.Fprintf(tw, "Paid:\t%t\n", st.HasBeenPaid)
			fmt.Fprintf(tw, "Reference:\t%s\n", orDash(st.PaymentReference))
			if st.TxHash != nil {
				fmt.Fprintf(tw, "Tx hash:\t%s\n", *st.TxHash)
			}
			_ = tw.Flush()
		})
	},
}

var requestsPayCmd = &cobra.Command{
	Use:   "pay REQUEST_ID",
	Short: "Fetch the calldata or payment intent that pays a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		pi, err := c.Requests.GetPaymentCalldata(cmd.Context(), args[0], &requests.PayParams{
			Wallet: payWallet,
			Chain:  payChain,
			Token:  payToken,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, pi, func() { printInstructions(w, pi) })
	},
}

var requestsRoutesCmd = &cobra.Command{
	Use:   "routes REQUEST_ID",
	Short: "List the routes available to pay a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		routes, err := c.Requests.GetPaymentRoutes(cmd.Context(), args[0], &requests.RouteParams{
			Wallet: routesWallet,
			Amount: routesAmount,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, routes, func() {
			tw := output.Table(w)
			fmt.Fprintln(tw, "ID\tCHAIN\tTOKEN\tFEE\tSPEED")
			for _, r := range routes.Routes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%v\n", r.ID, orDash(r.Chain), orDash(r.Token), r.Fee, r.Speed)
			}
			_ = tw.Flush()
		})
	},
}

func printInstructions(w io.Writer, pi *requests.PaymentInstructions) {
	switch pi.Kind {
	case requests.KindCalldata:
		fmt.Fprintf(w, "Calldata: %d transaction(s)\n", len(pi.Calldata.Transactions))
		tw := output.Table(w)
		fmt.Fprintln(tw, "#\tTO\tDATA")
		for i, tx := range pi.Calldata.Transactions {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i, tx.To, truncate(tx.Data, 42))
		}
		_ = tw.Flush()
	case requests.KindPaymentIntent:
		fmt.Fprintf(w, "Payment intent: %s\n", pi.Intent.PaymentIntentID)
		fmt.Fprintln(w, "Sign it and submit the signature to complete the payment.")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func setIfChanged(cmd *cobra.Command, flag string, dst *string, value string) {
	if cmd.Flags().Changed(flag) {
		*dst = value
	}
}

func init() {
	rootCmd.AddCommand(requestsCmd)
	requestsCmd.AddCommand(requestsCreateCmd, requestsStatusCmd, requestsPayCmd, requestsRoutesCmd)

	f := requestsCreateCmd.Flags()
	f.StringVarP(&createFile, "file", "f", "", "JSON body to send (- for stdin); flags override its fields")
	f.StringVar(&createPayee, "payee", "", "Payee wallet address")
	f.StringVar(&createPayer, "payer", "", "Payer wallet address")
	f.StringVar(&createAmount, "amount", "", "Amount in the invoice currency")
	f.StringVar(&createInvoiceCurrency, "invoice-currency", "", "Invoice currency, e.g. USD")
	f.StringVar(&createPaymentCurrency, "payment-currency", "", "Payment currency id, e.g. USDC-sepolia")
	f.StringVar(&createReference, "reference", "", "Merchant reference")

	requestsPayCmd.Flags().StringVar(&payWallet, "wallet", "", "Payer wallet address")
	requestsPayCmd.Flags().StringVar(&payChain, "chain", "", "Source chain for cross-chain payments")
	requestsPayCmd.Flags().StringVar(&payToken, "token", "", "Source token for cross-chain payments")

	requestsRoutesCmd.Flags().StringVar(&routesWallet, "wallet", "", "Payer wallet address")
	requestsRoutesCmd.Flags().StringVar(&routesAmount, "amount", "", "Amount to pay, for partial payments")
	_ = requestsRoutesCmd.MarkFlagRequired("wallet")
}
