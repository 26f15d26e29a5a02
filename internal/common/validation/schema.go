// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// WebhookSchema describes the Discord-style payload accepted on /webhook. Only content is
// required; the remaining Discord fields are tolerated and ignored.
var WebhookSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"content"},
	"properties": map[string]interface{}{
		"content": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
			"maxLength": 2000,
		},
		"username": map[string]interface{}{
			"type":      "string",
			"maxLength": 80,
		},
		"avatar_url": map[string]interface{}{"type": "string"},
		"tts":        map[string]interface{}{"type": "boolean"},
	},
}

// LicenseSchema describes the JSON body accepted on /validate_license.
var LicenseSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"license_key"},
	"properties": map[string]interface{}{
		"license_key": map[string]interface{}{"type": "string"},
	},
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error joins the field errors into one line.
func (r *ValidationResult) Error() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// ValidateInput validates a decoded JSON document against schema.
func ValidateInput(input interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(input)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}
