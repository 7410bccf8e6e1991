package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateBytes(t *testing.T) {
	schemaPath := writeFile(t, t.TempDir(), "person.schema.json", personSchema)

	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{"valid", `{"name": "Ada", "age": 24}`, false},
		{"missing field", `{"age": 24}`, true},
		{"wrong type", `{"name": "Ada", "age": "old"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBytes(schemaPath, []byte(tt.document))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateBytes_MissingSchema(t *testing.T) {
	err := ValidateBytes(filepath.Join(t.TempDir(), "nope.schema.json"), []byte(`{"name": "Ada"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateBytes_MalformedDocument(t *testing.T) {
	schemaPath := writeFile(t, t.TempDir(), "person.schema.json", personSchema)
	assert.Error(t, ValidateBytes(schemaPath, []byte("{ invalid json }")))
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "test"}`))

	err := ValidateJSONString(personSchema, `{"age": 30}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateValue(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)

	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	assert.NoError(t, ValidateValue(schemaPath, person{Name: "Ada", Age: 30}))
	assert.Error(t, ValidateValue(schemaPath, map[string]any{"age": 30}))
	assert.Error(t, ValidateValue(filepath.Join(dir, "missing.json"), person{}))
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
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}

func TestResolveSchemaPath(t *testing.T) {
	for _, rel := range []string{PlayerTableSchema, RankedTableSchema, SimilarityTableSchema, SquadSummarySchema, SquadReviewSchema} {
		t.Run(rel, func(t *testing.T) {
			path := ResolveSchemaPath(rel)
			require.NotEmpty(t, path, "schema should resolve from the package directory")
			assert.True(t, filepath.IsAbs(path))
		})
	}
	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.schema.json"))
}
