package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalid = errors.New("validation failed")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every schema violation of a document.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalid.Error(), strings.Join(parts, "; "))
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Schema is a compiled JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

func MustCompile(def map[string]any) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return &Schema{schema: s}
}

// Validate checks doc (any JSON-marshalable value) against the schema and
// returns *Error listing the violations.
func (s *Schema) Validate(doc any) error {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	fields := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if p, ok := desc.Details()["property"].(string); ok {
				field = p
			}
		}
		fields = append(fields, FieldError{Field: field, Message: desc.Description()})
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &Error{Fields: fields}
}

func nonBlank(maxLen int) map[string]any {
	return map[string]any{
		"type":      "string",
		"minLength": 1,
		"maxLength": maxLen,
		"pattern":   `\S`,
	}
}

var JobPost = MustCompile(map[string]any{
	"type":     "object",
	"required": []string{"title", "description", "type", "location"},
	"properties": map[string]any{
		"title":       nonBlank(200),
		"description": map[string]any{"type": "string", "minLength": 1, "maxLength": 20000},
		"type":        nonBlank(100),
		"location":    nonBlank(200),
		"stipend":     map[string]any{"type": "string", "maxLength": 100},
		"status":      map[string]any{"type": "string", "enum": []string{"", "OPEN", "CLOSED"}},
	},
})

var Registration = MustCompile(map[string]any{
	"type":     "object",
	"required": []string{"name", "email", "password", "role"},
	"properties": map[string]any{
		"name":     nonBlank(120),
		"email":    map[string]any{"type": "string", "format": "email", "maxLength": 254},
		"password": map[string]any{"type": "string", "minLength": 8, "maxLength": 72},
		"role":     map[string]any{"type": "string", "minLength": 1},
	},
})

var InterviewSchedule = MustCompile(map[string]any{
	"type":     "object",
	"required": []string{"application_id", "type", "scheduled_at", "end_at", "interviewer_email"},
	"properties": map[string]any{
		"application_id":    map[string]any{"type": "string", "format": "uuid"},
		"type":              map[string]any{"type": "string", "minLength": 1},
		"scheduled_at":      map[string]any{"type": "string", "format": "date-time"},
		"end_at":            map[string]any{"type": "string", "format": "date-time"},
		"interviewer_email": map[string]any{"type": "string", "format": "email"},
		"interviewer_name":  map[string]any{"type": "string", "maxLength": 120},
		"location":          map[string]any{"type": "string", "maxLength": 200},
		"meeting_link":      map[string]any{"type": "string", "maxLength": 500},
	},
})
