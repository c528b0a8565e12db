package http

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	return doc, nil
}

// schemaValidator checks decoded JSON bodies against one component schema.
type schemaValidator struct {
	schema *openapi3.Schema
}

func newSchemaValidator(doc *openapi3.T, name string) (*schemaValidator, error) {
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("schema %s not found in openapi spec", name)
	}
	return &schemaValidator{schema: ref.Value}, nil
}

func (v *schemaValidator) Validate(body any) error {
	err := v.schema.VisitJSON(body)
	if err == nil {
		return nil
	}
	field := "body"
	reason := err.Error()
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		if ptr := se.JSONPointer(); len(ptr) > 0 {
			field = strings.Join(ptr, ".")
		}
		reason = se.Reason
	}
	return &domain.InvalidRequestError{Field: field, Reason: reason}
}
