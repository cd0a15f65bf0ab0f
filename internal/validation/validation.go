// Package validation checks create and update payloads for tasks and turns
// them into sanitized domain input.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"task-tracker-api/internal/domain"
)

const (
	FieldBody        = "body"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCompleted   = "completed"
)

const (
	MsgBodyNotObject     = "Request body must be a JSON object"
	MsgTitleRequired     = "Title is required"
	MsgTitleLength       = "Title must be between 1 and 200 characters"
	MsgTitleType         = "Title must be a string"
	MsgDescriptionLength = "Description cannot exceed 1000 characters"
	MsgDescriptionType   = "Description must be a string"
	MsgCompletedType     = "Completed must be a boolean"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Payload is a decoded request body: field name to arbitrary JSON value.
type Payload map[string]any

// fields are checked in this order, which is also the order of reported violations.
var fields = []string{FieldTitle, FieldDescription, FieldCompleted}

var typeMessages = map[string]string{
	FieldTitle:       MsgTitleType,
	FieldDescription: MsgDescriptionType,
	FieldCompleted:   MsgCompletedType,
}

const updateSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"description": {"type": "string"},
		"completed": {"type": "boolean"}
	}
}`

const createSchema = `{
	"type": "object",
	"required": ["title"],
	"properties": {
		"title": {"type": "string"},
		"description": {"type": "string"}
	}
}`

var schemas = map[Mode]*jsonschema.Schema{
	ModeCreate: jsonschema.MustCompileString("task-create.json", createSchema),
	ModeUpdate: jsonschema.MustCompileString("task-update.json", updateSchema),
}

// ParsePayload decodes a raw request body. An empty body is an empty payload.
func ParsePayload(data []byte) (Payload, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Payload{}, nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, InvalidBody()
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, InvalidBody()
	}

	return Payload(obj), nil
}

// InvalidBody is the failure for a request body that cannot be read as a JSON object.
func InvalidBody() error {
	return newError(Violation{Field: FieldBody, Message: MsgBodyNotObject})
}

// ValidateCreate returns the sanitized create input or an *Error holding
// every violation found.
func ValidateCreate(p Payload) (domain.NewTask, error) {
	patch, err := validate(p, ModeCreate)
	if err != nil {
		return domain.NewTask{}, err
	}

	in := domain.NewTask{Title: *patch.Title}
	if patch.Description != nil {
		in.Description = *patch.Description
	}

	return in, nil
}

// ValidateUpdate returns a patch holding only the fields present in p, or an
// *Error holding every violation found.
func ValidateUpdate(p Payload) (domain.TaskPatch, error) {
	return validate(p, ModeUpdate)
}

func validate(p Payload, mode Mode) (domain.TaskPatch, error) {
	rejected := schemaViolations(p, mode)

	var (
		patch      domain.TaskPatch
		violations []Violation
	)

	for _, field := range fields {
		// new tasks always start incomplete
		if field == FieldCompleted && mode == ModeCreate {
			continue
		}
		if msg, bad := rejected[field]; bad {
			violations = append(violations, Violation{Field: field, Message: msg})
			continue
		}

		// the schema has checked the type of every present field
		raw, present := p[field]
		if !present {
			continue
		}

		switch field {
		case FieldTitle:
			title := trim(raw.(string))
			n := length(title)
			switch {
			case n == 0 && mode == ModeCreate:
				violations = append(violations, Violation{Field: field, Message: MsgTitleRequired})
			case n == 0 || n > domain.MaxTitleLength:
				violations = append(violations, Violation{Field: field, Message: MsgTitleLength})
			default:
				patch.Title = &title
			}

		case FieldDescription:
			description := trim(raw.(string))
			if length(description) > domain.MaxDescriptionLength {
				violations = append(violations, Violation{Field: field, Message: MsgDescriptionLength})
				continue
			}
			patch.Description = &description

		case FieldCompleted:
			completed := raw.(bool)
			patch.Completed = &completed
		}
	}

	if len(violations) > 0 {
		return domain.TaskPatch{}, newError(violations...)
	}

	return patch, nil
}

// schemaViolations validates p against the schema of mode and returns, per
// top-level field, the message for the rule it broke.
func schemaViolations(p Payload, mode Mode) map[string]string {
	rejected := make(map[string]string)

	err := schemas[mode].Validate(map[string]any(p))
	if err == nil {
		return rejected
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		// a value that did not come from JSON decoding
		for field := range typeMessages {
			if _, present := p[field]; present {
				rejected[field] = typeMessages[field]
			}
		}
		return rejected
	}

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}

		// title is the only required property
		if strings.HasSuffix(e.KeywordLocation, "required") {
			rejected[FieldTitle] = MsgTitleRequired
			return
		}
		if field := topLevelField(e.InstanceLocation); field != "" {
			rejected[field] = typeMessages[field]
		}
	}
	walk(verr)

	return rejected
}

func topLevelField(location string) string {
	location = strings.TrimPrefix(location, "/")
	if i := strings.IndexByte(location, '/'); i >= 0 {
		location = location[:i]
	}
	return location
}

// trim strips the same characters as ECMAScript String.prototype.trim:
// Unicode white space and line terminators plus U+FEFF, but not U+0085.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		switch r {
		case '\uFEFF':
			return true
		case '\u0085':
			return false
		}
		return unicode.IsSpace(r)
	})
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
