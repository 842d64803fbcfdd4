// Package schemas provides JSON Schema validation for raw provider
// payloads before they are decoded into internal records.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema file names under the repository's schemas/ directory.
const (
	KeywordListSchema = "schemas/keyword_list.schema.json"
	SerpReportSchema  = "schemas/serp_reports.schema.json"
	LinkReportSchema  = "schemas/link_report.schema.json"
)

// ResolveSchemaPath attempts to find a schema file by trying multiple
// common path resolutions: relative to the working directory, then one
// and two levels up. Returns "" when none exists. CLI commands and tests
// run from different working directories.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}

// Available reports whether the provider payload schemas can be found
// on disk. Validation is skipped when they cannot.
func Available() bool {
	return ResolveSchemaPath(KeywordListSchema) != "" &&
		ResolveSchemaPath(SerpReportSchema) != "" &&
		ResolveSchemaPath(LinkReportSchema) != ""
}

// ValidateKeywordList validates a raw keyword list payload.
func ValidateKeywordList(data []byte) error {
	return validateAgainst(KeywordListSchema, data)
}

// ValidateSerpReports validates a raw report list payload.
func ValidateSerpReports(data []byte) error {
	return validateAgainst(SerpReportSchema, data)
}

// ValidateLinkReport validates a raw link report payload.
func ValidateLinkReport(data []byte) error {
	return validateAgainst(LinkReportSchema, data)
}

func validateAgainst(schemaFile string, data []byte) error {
	schemaPath := ResolveSchemaPath(schemaFile)
	if schemaPath == "" {
		return &SchemaLoadError{Path: schemaFile, Message: "schema file not found"}
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaPath)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Message: "schema validation failed during load", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidationError represents a schema validation failure with field
// paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema
// itself.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}
