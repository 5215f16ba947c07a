// Package openapi embeds the Request API OpenAPI document and turns it into
// registry entries.
package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/requestnetwork/request-api-go/pkg/schema"
)

//go:embed spec/request-api.yaml
var document []byte

// JSONMediaType is the content type registered under schema.DefaultVariant.
const JSONMediaType = "application/json"

// Document returns the raw embedded OpenAPI document.
func Document() []byte {
	return document
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	return LoadData(ctx, document)
}

// LoadData parses and validates an OpenAPI document.
func LoadData(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// LoadFile loads and validates an OpenAPI document from a file path
func LoadFile(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document from file %s: %w", path, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document %s: %w", path, err)
	}
	return doc, nil
}

// LoadURL loads and validates an OpenAPI document from a URL
func LoadURL(ctx context.Context, rawURL string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document URL: %w", err)
	}
	doc, err := loader.LoadFromURI(u)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document from URL %s: %w", rawURL, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document %s: %w", rawURL, err)
	}
	return doc, nil
}

// Register adds a schema entry for every JSON request body and every
// response body with a numeric or "default" status. Operations without an
// operationId are skipped. It returns the number of entries registered.
func Register(reg *schema.Registry, doc *openapi3.T) (int, error) {
	if doc == nil || doc.Paths == nil {
		return 0, nil
	}

	paths := doc.Paths.Map()
	names := make([]string, 0, len(paths))
	for p := range paths {
		names = append(names, p)
	}
	sort.Strings(names)

	count := 0
	for _, p := range names {
		item := paths[p]
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for m := range ops {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, m := range methods {
			op := ops[m]
			if op.OperationID == "" {
				continue
			}
			n, err := registerOperation(reg, op)
			if err != nil {
				return count, fmt.Errorf("%s %s: %w", m, p, err)
			}
			count += n
		}
	}
	return count, nil
}

func registerOperation(reg *schema.Registry, op *openapi3.Operation) (int, error) {
	count := 0
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		for mediaType, media := range op.RequestBody.Value.Content {
			if media == nil || media.Schema == nil || media.Schema.Value == nil {
				continue
			}
			reg.Register(schema.Entry{
				Key: schema.Key{
					OperationID: op.OperationID,
					Kind:        schema.KindRequest,
					Variant:     variantFor(mediaType),
				},
				Schema: schema.NewOpenAPISchema(media.Schema.Value, schema.KindRequest),
			})
			count++
		}
	}

	if op.Responses == nil {
		return count, nil
	}
	for code, resp := range op.Responses.Map() {
		if resp == nil || resp.Value == nil {
			continue
		}
		status, ok, err := parseStatus(code)
		if err != nil {
			return count, err
		}
		if !ok {
			continue
		}
		for mediaType, media := range resp.Value.Content {
			if media == nil || media.Schema == nil || media.Schema.Value == nil {
				continue
			}
			reg.Register(schema.Entry{
				Key: schema.Key{
					OperationID: op.OperationID,
					Kind:        schema.KindResponse,
					Variant:     variantFor(mediaType),
					Status:      status,
				},
				Schema: schema.NewOpenAPISchema(media.Schema.Value, schema.KindResponse),
			})
			count++
		}
	}
	return count, nil
}

// parseStatus maps a response code to a key status. Range codes such as
// "2XX" are reported as not registrable.
func parseStatus(code string) (int, bool, error) {
	if code == "default" {
		return schema.StatusAny, true, nil
	}
	if strings.HasSuffix(strings.ToUpper(code), "XX") {
		return 0, false, nil
	}
	status, err := strconv.Atoi(code)
	if err != nil {
		return 0, false, fmt.Errorf("invalid response code %q", code)
	}
	return status, true, nil
}

func variantFor(mediaType string) string {
	if strings.EqualFold(mediaType, JSONMediaType) {
		return schema.DefaultVariant
	}
	return mediaType
}

// RegisterBuiltin loads the embedded document and registers its schemas.
func RegisterBuiltin(ctx context.Context, reg *schema.Registry) (int, error) {
	doc, err := Load(ctx)
	if err != nil {
		return 0, err
	}
	return Register(reg, doc)
}
