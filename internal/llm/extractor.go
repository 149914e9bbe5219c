// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from an input.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "CardFields")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the full LLM prompt from the schema. The
// input itself (text or an inline image part) travels alongside the prompt.
func BuildExtractionPrompt(schema ExtractionSchema) string {
	var sb strings.Builder
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")
	sb.WriteString(SchemaBlock(schema))
	return sb.String()
}

// SchemaBlock renders only the expected-output portion of the prompt: the
// JSON structure plus the strict-output instructions. Callers that load the
// task description from a prompt template splice this in.
func SchemaBlock(schema ExtractionSchema) string {
	var sb strings.Builder

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the input, do not invent or summarize.\n")
	sb.WriteString("- If a field is not present in the input, return an empty string for it.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	return sb.String()
}

// CardFieldsSchema returns the extraction schema for business card images.
// The seven fields mirror the persisted contact record exactly.
func CardFieldsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "CardFields",
		Description: `You are an expert at reading business cards. Extract contact information from this business card image.
Be precise. If a field is missing, return an empty string.
Focus on Name, Company, Job Title, Phone, Email, Website, and Address.`,
		Fields: []SchemaField{
			{Name: "name", Type: "\"string\"", Description: "Full name of the person", Required: true},
			{Name: "companyName", Type: "\"string\"", Description: "Company or organization name", Required: true},
			{Name: "jobTitle", Type: "\"string\"", Description: "Role or job title", Required: true},
			{Name: "phone", Type: "\"string\"", Description: "Primary phone number as printed", Required: true},
			{Name: "email", Type: "\"string\"", Description: "Email address", Required: true},
			{Name: "website", Type: "\"string\"", Description: "Website URL", Required: true},
			{Name: "address", Type: "\"string\"", Description: "Postal address, single line", Required: true},
		},
	}
}
