package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

var (
	validateOperation string
	validateKind      string
	validateStatus    int
	validateVariant   string
)

// ValidateOutput is the JSON form of `validate`.
type ValidateOutput struct {
	Valid  bool                    `json:"valid"`
	Key    string                  `json:"key"`
	Error  string                  `json:"error,omitempty"`
	Issues []*validation.FieldError `json:"issues,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a JSON document against an operation's schema, offline",
	Long: `Validate a JSON document against the schema registered for an operation.
FILE may be - to read standard input. Exits with status 1 when the document
does not match.`,
	Example: `  reqctl validate --operation RequestControllerV2_createRequest_v2 --kind request body.json
  reqctl validate --operation RequestControllerV2_getRequestStatus_v2 --kind response --status 200 status.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := schema.ParseKind(validateKind)
		if err != nil {
			return err
		}
		key := schema.Key{OperationID: validateOperation, Kind: kind, Variant: validateVariant, Status: validateStatus}.Normalize()

		value, err := readJSONFile(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		reg, err := loadRegistry(cmd)
		if err != nil {
			return err
		}

		res := validation.ParseWithRegistry(reg, validation.RegistryInput{
			Key:         key,
			Value:       value,
			Description: fmt.Sprintf("%s does not match %s", args[0], key),
		})
		out := ValidateOutput{Valid: res.Success, Key: key.String()}
		if !res.Success {
			out.Error = res.Err.Message
			out.Issues = res.Err.Issues
		}

		w := cmd.OutOrStdout()
		if err := printResult(w, out, func() {
			if out.Valid {
				fmt.Fprintf(w, "valid: %s\n", out.Key)
				return
			}
			fmt.Fprintf(w, "invalid: %s\n", out.Error)
			for _, issue := range out.Issues {
				fmt.Fprintf(w, "  - %s\n", issue.Error())
			}
		}); err != nil {
			return err
		}
		if !out.Valid {
			return errSilent
		}
		return nil
	},
}

// readJSONFile decodes a JSON document from path, or from stdin when path
// is "-". Numbers are kept as json.Number.
func readJSONFile(stdin io.Reader, path string) (any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %w", path, err)
	}
	if dec.More() {
		return nil, errors.New(path + ": trailing data after JSON document")
	}
	return v, nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateOperation, "operation", "", "Operation id")
	validateCmd.Flags().StringVar(&validateKind, "kind", "request", "request or response")
	validateCmd.Flags().IntVar(&validateStatus, "status", 0, "Response status code")
	validateCmd.Flags().StringVar(&validateVariant, "variant", schema.DefaultVariant, "Content variant")
	_ = validateCmd.MarkFlagRequired("operation")
}
