package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/requestnetwork/request-api-go/pkg/cli/internal/output"
)

var clientIDsCmd = &cobra.Command{
	Use:     "client-ids",
	Aliases: []string{"client-id", "clients"},
	Short:   "Manage client ids",
}

var clientIDsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List client ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		ids, err := c.ClientIDs.List(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, ids, func() {
			if len(ids) == 0 {
				fmt.Fprintln(w, "No client ids")
				return
			}
			tw := output.Table(w)
			fmt.Fprintln(tw, "ID\tCLIENT ID\tLABEL\tSTATUS\tDOMAINS")
			for _, id := range ids {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", id.ID, id.ClientID, orDash(id.Label), orDash(id.Status), len(id.AllowedDomains))
			}
			_ = tw.Flush()
		})
	},
}

var clientIDsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a client id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		id, err := c.ClientIDs.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, id, func() {
			tw := output.Table(w)
			fmt.Fprintf(tw, "ID:\t%s\n", id.ID)
			fmt.Fprintf(tw, "Client ID:\t%s\n", id.ClientID)
			fmt.Fprintf(tw, "Label:\t%s\n", orDash(id.Label))
			fmt.Fprintf(tw, "Status:\t%s\n", orDash(id.Status))
			fmt.Fprintf(tw, "Domains:\t%s\n", orDash(strings.Join(id.AllowedDomains, ", ")))
			fmt.Fprintf(tw, "Fee:\t%s\n", orDash(deref(id.FeePercentage)))
			fmt.Fprintf(tw, "Last used:\t%s\n", orDash(deref(id.LastUsedAt)))
			_ = tw.Flush()
		})
	},
}

var clientIDsRevokeCmd = &cobra.Command{
	Use:   "revoke ID",
	Short: "Revoke a client id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		if err := c.ClientIDs.Revoke(cmd.Context(), args[0]); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, map[string]any{"revoked": true, "id": args[0]}, func() {
			fmt.Fprintf(w, "Revoked client id %s\n", args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(clientIDsCmd)
	clientIDsCmd.AddCommand(clientIDsListCmd, clientIDsGetCmd, clientIDsRevokeCmd)
}
