package schema

import (
	"encoding/json"
	"fmt"
	"slices"
)

// MaxDepth caps how deeply entities may nest inside one event. Self
// referencing fields (Organization.subOrganizationOf, Message.replyTo) are
// followed until this depth and reported past it.
const MaxDepth = 16

// Shape is a compiled open-record validator for one entity kind or event type.
// Keys not declared by the shape are accepted and left untouched.
type Shape struct {
	Name   string
	Parent string

	// Tags lists the accepted values of `type`. Nil accepts any string.
	Tags []string

	fields  []*compiledField
	actions []string
}

// AcceptsTag reports whether tag is a valid `type` for this shape.
func (s *Shape) AcceptsTag(tag string) bool {
	if s.Tags == nil {
		return tag != ""
	}
	return slices.Contains(s.Tags, tag)
}

// Actions returns the action enum of an event shape.
func (s *Shape) Actions() []string {
	return append([]string(nil), s.actions...)
}

// validate checks v against the shape and appends every failure to issues.
func (s *Shape) validate(v any, path Path, depth int, issues []Issue) []Issue {
	obj, ok := v.(map[string]any)
	if !ok {
		return append(issues, typeMismatchIssue(path, "object", v))
	}
	if depth > MaxDepth {
		return append(issues, Issue{
			Path:    path,
			Message: fmt.Sprintf("Entity nesting exceeds the maximum depth of %d", MaxDepth),
			Code:    CodeMaxDepthExceeded,
		})
	}

	for _, f := range s.fields {
		fieldPath := path.With(f.name)
		val, present := obj[f.name]
		if !present {
			if f.required {
				issues = append(issues, requiredIssue(fieldPath))
			}
			continue
		}
		issues = f.check(s, val, fieldPath, depth, issues)
	}
	return issues
}

func (f *compiledField) check(owner *Shape, v any, path Path, depth int, issues []Issue) []Issue {
	if !f.array {
		return f.checkValue(owner, v, path, depth, issues)
	}
	items, ok := v.([]any)
	if !ok {
		return append(issues, typeMismatchIssue(path, "array", v))
	}
	for i, item := range items {
		issues = f.checkValue(owner, item, path.With(i), depth, issues)
	}
	return issues
}

func (f *compiledField) checkValue(owner *Shape, v any, path Path, depth int, issues []Issue) []Issue {
	switch f.kind {
	case kindAny:
		return issues
	case kindObject:
		if _, ok := v.(map[string]any); !ok {
			return append(issues, typeMismatchIssue(path, "object", v))
		}
		return issues
	case kindNumber:
		switch v.(type) {
		case float64, json.Number:
			return issues
		}
		return append(issues, typeMismatchIssue(path, "number", v))
	case kindBoolean:
		if _, ok := v.(bool); !ok {
			return append(issues, typeMismatchIssue(path, "boolean", v))
		}
		return issues
	case kindEntity:
		return f.shape.validate(v, path, depth+1, issues)
	case kindUnion:
		return f.union.resolve(v, path, depth+1, issues)
	}

	// Everything else is a string with a format or value constraint.
	s, ok := v.(string)
	if !ok {
		return append(issues, typeMismatchIssue(path, "string", v))
	}

	switch f.kind {
	case kindString:
		if len(f.enum) > 0 && !slices.Contains(f.enum, s) {
			issues = append(issues, enumIssue(path, f.enum, s))
		}
	case kindIRI:
		if !IsIRI(s) {
			issues = append(issues, formatIssue(path, "IRI"))
		}
	case kindDateTime:
		if !IsDateTime(s) {
			issues = append(issues, formatIssue(path, "datetime"))
		}
	case kindDuration:
		if !IsDuration(s) {
			issues = append(issues, formatIssue(path, "duration"))
		}
	case kindURL:
		if !IsURL(s) {
			issues = append(issues, formatIssue(path, "url"))
		}
	case kindContext:
		if s != f.literal {
			issues = append(issues, literalIssue(path, f.literal))
		}
	case kindAction:
		if !slices.Contains(owner.actions, s) {
			issues = append(issues, enumIssue(path, owner.actions, s))
		}
	case kindTag:
		if owner.AcceptsTag(s) {
			break
		}
		switch len(owner.Tags) {
		case 0:
			issues = append(issues, Issue{Path: path, Message: "Type must not be empty", Code: CodeInvalidString})
		case 1:
			issues = append(issues, literalIssue(path, owner.Tags[0]))
		default:
			issues = append(issues, enumIssue(path, owner.Tags, s))
		}
	}
	return issues
}
