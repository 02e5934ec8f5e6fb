package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Embedded schema names
const (
	JobProfileSchema     = "job_profile.schema.json"
	CompanyProfileSchema = "company_profile.schema.json"
)

// Get returns the content of an embedded schema by file name
func Get(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return "", &SchemaLoadError{
			Name:    name,
			Message: "schema not embedded",
			Cause:   err,
		}
	}
	return string(data), nil
}

// ValidateJobProfile validates LLM-extracted job profile JSON
func ValidateJobProfile(jsonContent string) error {
	return validateEmbedded(JobProfileSchema, jsonContent)
}

// ValidateCompanyProfile validates researched company profile JSON
func ValidateCompanyProfile(jsonContent string) error {
	return validateEmbedded(CompanyProfileSchema, jsonContent)
}

func validateEmbedded(name, jsonContent string) error {
	schema, err := Get(name)
	if err != nil {
		return fmt.Errorf("failed to load embedded schema: %w", err)
	}
	return validate(name, schema, jsonContent)
}
