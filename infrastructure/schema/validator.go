// Package schema validates API payloads against JSON Schema documents.
package schema

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

// FieldError is a single schema violation
type FieldError struct {
	Message   string `json:"message"`
	Path      string `json:"path"`
	Validator string `json:"validator"`
}

// Report is the detailed outcome of a validation
type Report struct {
	Valid      bool         `json:"is_valid"`
	SchemaName string       `json:"schema_name"`
	Errors     []FieldError `json:"errors"`
}

// ValidationError is returned by ValidateStrict when data does not match the schema
type ValidationError struct {
	SchemaName string
	Errors     []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Path, fe.Message))
	}
	return fmt.Sprintf("schema validation failed for %s: %s", e.SchemaName, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == entities.ErrSchemaValidation
}

// Validator checks JSON data against one compiled schema
type Validator struct {
	name   string
	raw    map[string]interface{}
	schema *gojsonschema.Schema
	logger logrus.FieldLogger
}

// NewValidator loads the schema fixture name from store
func NewValidator(store interfaces.FixtureStore, name string, logger logrus.FieldLogger) (*Validator, error) {
	var raw map[string]interface{}
	if err := store.LoadJSON(name, &raw); err != nil {
		logger.Errorf("Failed to load schema %s: %v", name, err)
		return nil, err
	}

	v, err := NewInlineValidator(name, raw, logger)
	if err != nil {
		return nil, err
	}
	logger.Infof("SchemaValidator initialized with schema: %s", name)
	return v, nil
}

// NewInlineValidator compiles a schema given as a Go value
func NewInlineValidator(name string, raw map[string]interface{}, logger logrus.FieldLogger) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}
	return &Validator{
		name:   name,
		raw:    raw,
		schema: compiled,
		logger: logger.WithField("schema", name),
	}, nil
}

// Name returns the schema name
func (v *Validator) Name() string {
	return v.name
}

// Schema returns the schema document
func (v *Validator) Schema() map[string]interface{} {
	return v.raw
}

// Validate reports whether data matches the schema and logs the failures.
// data is either raw JSON bytes or a Go value.
func (v *Validator) Validate(data interface{}) bool {
	report := v.check(data)
	if report.Valid {
		v.logger.Infof("Schema validation PASSED for: %s", v.name)
		return true
	}

	for _, fe := range report.Errors {
		v.logger.WithFields(logrus.Fields{
			"path":      fe.Path,
			"validator": fe.Validator,
		}).Errorf("Schema validation FAILED: %s", fe.Message)
	}
	return false
}

// ValidateStrict returns a *ValidationError when data does not match
func (v *Validator) ValidateStrict(data interface{}) error {
	report := v.check(data)
	if report.Valid {
		return nil
	}
	return &ValidationError{SchemaName: v.name, Errors: report.Errors}
}

// ValidateWithDetails returns every violation
func (v *Validator) ValidateWithDetails(data interface{}) Report {
	report := v.check(data)
	if report.Valid {
		v.logger.Info("Schema validation passed with no errors")
	} else {
		v.logger.Warnf("Schema validation found %d error(s)", len(report.Errors))
	}
	return report
}

func (v *Validator) check(data interface{}) Report {
	report := Report{SchemaName: v.name, Errors: []FieldError{}}

	var loader gojsonschema.JSONLoader
	switch d := data.(type) {
	case []byte:
		loader = gojsonschema.NewBytesLoader(d)
	case string:
		loader = gojsonschema.NewStringLoader(d)
	default:
		loader = gojsonschema.NewGoLoader(d)
	}

	result, err := v.schema.Validate(loader)
	if err != nil {
		report.Errors = append(report.Errors, FieldError{
			Message:   err.Error(),
			Path:      "(root)",
			Validator: "parse",
		})
		return report
	}

	for _, re := range result.Errors() {
		report.Errors = append(report.Errors, FieldError{
			Message:   re.Description(),
			Path:      re.Field(),
			Validator: re.Type(),
		})
	}
	report.Valid = result.Valid()
	return report
}
