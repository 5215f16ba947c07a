package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/requestnetwork/request-api-go/pkg/cli/internal/output"
	"github.com/requestnetwork/request-api-go/pkg/openapi"
	"github.com/requestnetwork/request-api-go/pkg/schema"
)

// SchemaRow is one registered schema in `schemas list`.
type SchemaRow struct {
	OperationID string `json:"operationId"`
	Kind        string `json:"kind"`
	Variant     string `json:"variant"`
	Status      int    `json:"status,omitempty"`
}

var schemasOperation string

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Inspect the schemas used for runtime validation",
}

var schemasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return err
		}

		rows := []SchemaRow{}
		for _, k := range reg.Keys() {
			if schemasOperation != "" && !strings.EqualFold(k.OperationID, schemasOperation) {
				continue
			}
			rows = append(rows, SchemaRow{OperationID: k.OperationID, Kind: string(k.Kind), Variant: k.Variant, Status: k.Status})
		}

		w := cmd.OutOrStdout()
		return printResult(w, rows, func() {
			tw := output.Table(w)
			fmt.Fprintln(tw, "OPERATION\tKIND\tVARIANT\tSTATUS")
			for _, r := range rows {
				k := schema.Key{Status: r.Status}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.OperationID, r.Kind, r.Variant, k.StatusString())
			}
			_ = tw.Flush()
			fmt.Fprintf(cmd.ErrOrStderr(), "%d schemas\n", len(rows))
		})
	},
}

// loadRegistry builds the registry the client would use: built-in schemas
// plus the configured schema directory.
func loadRegistry(cmd *cobra.Command) (*schema.Registry, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	reg := schema.NewRegistry()
	if _, err := openapi.RegisterBuiltin(cmd.Context(), reg); err != nil {
		return nil, err
	}
	if cfg.SchemaDir != "" {
		if _, err := schema.LoadDir(reg, cfg.SchemaDir); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	schemasCmd.AddCommand(schemasListCmd)
	schemasListCmd.Flags().StringVar(&schemasOperation, "operation", "", "Only list schemas of this operation id")
}
