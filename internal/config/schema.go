package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrInvalidIgnorePatterns marks an ignore_patterns document rejected by
// the schema.
var ErrInvalidIgnorePatterns = errors.New("invalid ignore_patterns")

//go:embed schema.yaml
var ignorePatternsSchema []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// loadSchema compiles the embedded ignore_patterns schema once.
func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var document map[string]any

		unmarshalErr := yaml.Unmarshal(ignorePatternsSchema, &document)
		if unmarshalErr != nil {
			schemaErr = fmt.Errorf("parse ignore_patterns schema: %w", unmarshalErr)

			return
		}

		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(document))
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile ignore_patterns schema: %w", schemaErr)
		}
	})

	return schema, schemaErr
}

// validateIgnorePatterns checks the raw ignore_patterns mapping against
// the embedded schema before any regex compilation happens.
func validateIgnorePatterns(patterns map[string]any) error {
	compiled, loadErr := loadSchema()
	if loadErr != nil {
		return loadErr
	}

	outcome, validateErr := compiled.Validate(gojsonschema.NewGoLoader(patterns))
	if validateErr != nil {
		return fmt.Errorf("validate ignore_patterns: %w", validateErr)
	}

	if outcome.Valid() {
		return nil
	}

	details := make([]string, 0, len(outcome.Errors()))
	for _, desc := range outcome.Errors() {
		details = append(details, desc.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidIgnorePatterns, strings.Join(details, "; "))
}
