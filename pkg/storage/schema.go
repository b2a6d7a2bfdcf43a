package storage

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed document_schema.json
var documentSchema string

// ValidateDocument checks raw document bytes against the embedded JSON
// schema. Step details are deliberately left open in the schema: their
// shapes are reconciled by the workspace factories, not rejected here.
func ValidateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(documentSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("studio document is invalid: %s", strings.Join(problems, "; "))
}
