package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/requestnetwork/request-api-go/pkg/cli/internal/output"
	"github.com/requestnetwork/request-api-go/pkg/currencies"
)

var currenciesCmd = &cobra.Command{
	Use:     "currencies",
	Aliases: []string{"currency"},
	Short:   "Look up supported currencies",
}

var (
	currencyFilter currencies.Filter
	routesNetwork  string
)

var currenciesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported currencies",
	Example: `  reqctl currencies list --network sepolia
  reqctl currencies list --symbol USDC -q '$[*].id'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		list, err := c.Currencies.List(cmd.Context(), &currencyFilter)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, list, func() { printCurrencies(w, list) })
	},
}

var currenciesRoutesCmd = &cobra.Command{
	Use:   "routes CURRENCY_ID",
	Short: "List the currencies a currency can be paid with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		routes, err := c.Currencies.GetConversionRoutes(cmd.Context(), args[0], routesNetwork)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, routes, func() { printCurrencies(w, routes.ConversionRoutes) })
	},
}

func printCurrencies(w io.Writer, list []currencies.Currency) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No currencies found")
		return
	}
	tw := output.Table(w)
	fmt.Fprintln(tw, "ID\tSYMBOL\tNETWORK\tTYPE\tDECIMALS")
	for _, cur := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", cur.ID, cur.Symbol, orDash(cur.Network), orDash(cur.Type), cur.Decimals)
	}
	_ = tw.Flush()
}

func init() {
	rootCmd.AddCommand(currenciesCmd)
	currenciesCmd.AddCommand(currenciesListCmd, currenciesRoutesCmd)

	f := currenciesListCmd.Flags()
	f.StringVar(&currencyFilter.Network, "network", "", "Only currencies on this network")
	f.StringVar(&currencyFilter.Symbol, "symbol", "", "Only currencies with this symbol")
	f.StringVar(&currencyFilter.ID, "id", "", "Only the currency with this id")
	f.BoolVar(&currencyFilter.FirstOnly, "first-only", false, "Return only the first match")

	currenciesRoutesCmd.Flags().StringVar(&routesNetwork, "network", "", "Network of the currency")
}
