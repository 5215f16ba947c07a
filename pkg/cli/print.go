package cli

import (
	"io"

	"github.com/requestnetwork/request-api-go/pkg/cli/internal/output"
)

func writeJSON(w io.Writer, v any) error {
	return output.JSON(w, v)
}

func queryJSON(w io.Writer, v any) error {
	return output.Query(w, v, query)
}

// orDash renders empty values as "-" in tables.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
