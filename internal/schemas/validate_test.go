package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON(t *testing.T) {
	malformed := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{ invalid json }"), 0o644))

	tests := []struct {
		name        string
		schema      string
		json        string
		wantFields  bool
		wantMessage string
	}{
		{name: "valid document", schema: "valid_schema.json", json: "valid_json.json"},
		{name: "missing field", schema: "valid_schema.json", json: "invalid_json.json", wantFields: true},
		{name: "wrong type", schema: "valid_schema.json", json: "type_mismatch.json", wantFields: true},
		{name: "schema not found", schema: "nonexistent_schema.json", json: "valid_json.json", wantMessage: "not found"},
		{name: "document not found", schema: "valid_schema.json", json: "nonexistent_json.json", wantMessage: "not found"},
		{name: "malformed document", schema: "valid_schema.json", json: malformed, wantMessage: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := tt.json
			if !filepath.IsAbs(jsonPath) {
				jsonPath = filepath.Join("testdata", jsonPath)
			}
			err := ValidateJSON(filepath.Join("testdata", tt.schema), jsonPath)

			switch {
			case tt.wantFields:
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
			case tt.wantMessage != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantMessage)
			case tt.json == malformed:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateResumeFile(t *testing.T) {
	tests := []struct {
		name      string
		jsonFile  string
		wantError bool
	}{
		{
			name:      "valid resume",
			jsonFile:  filepath.Join("testdata", "valid_resume.json"),
			wantError: false,
		},
		{
			name:      "missing fields and wrong types",
			jsonFile:  filepath.Join("testdata", "invalid_resume.json"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResumeFile(tt.jsonFile)
			if tt.wantError {
				require.Error(t, err)
				validationErr, ok := err.(*ValidationError)
				require.True(t, ok, "error should be ValidationError type, got %T", err)
				assert.Greater(t, len(validationErr.Errors), 0)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateResume_ReportsFieldPaths(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "invalid_resume.json"))
	require.NoError(t, err)

	err = ValidateResume(data)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "experience.0.current")
	assert.Contains(t, fields, "skills.0.level")
	assert.Contains(t, validationErr.Error(), "email")
}

func TestValidateResume_Malformed(t *testing.T) {
	err := ValidateResume([]byte("{ not json"))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateResume_MissingFile(t *testing.T) {
	err := ValidateResumeFile(filepath.Join("testdata", "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	const nameSchema = `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`

	assert.NoError(t, ValidateJSONString(nameSchema, `{"name": "test"}`))

	var validationErr *ValidationError
	require.ErrorAs(t, ValidateJSONString(nameSchema, `{"age": 30}`), &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}

func TestValidateJSONString_NestedFieldPath(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		}
	}`

	var validationErr *ValidationError
	require.ErrorAs(t, ValidateJSONString(schema, `{"person": {}}`), &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Contains(t, validationErr.Errors[0].Message, "name")
	assert.NotEqual(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSON_ArrayValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"items": {
				"type": "array",
				"items": {"type": "string"},
				"minItems": 1
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"items": []}`)
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)

	assert.NoError(t, ValidateJSONString(schemaContent, `{"items": ["a"]}`))
}

func TestSchemaLoadError(t *testing.T) {
	err := ValidateJSONString(`{ broken`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(string schema)", loadErr.Path)
	assert.Contains(t, loadErr.Error(), "failed to load schema")
}
