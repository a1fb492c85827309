package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Issue codes. Clients switch on these, so they are part of the wire contract.
const (
	CodeInvalidJSON           = "invalid_json"
	CodeInvalidType           = "invalid_type"
	CodeRequired              = "required"
	CodeInvalidLiteral        = "invalid_literal"
	CodeInvalidEnumValue      = "invalid_enum_value"
	CodeInvalidString         = "invalid_string"
	CodeInvalidUnion          = "invalid_union"
	CodeUnrecognizedEventType = "unrecognized_event_type"
	CodeMaxDepthExceeded      = "max_depth_exceeded"
)

// Path locates a value inside a JSON document. Segments are object keys
// (string) or array indexes (int).
type Path []any

// With returns a new path with seg appended. The receiver is never modified,
// so sibling fields can share a parent path.
func (p Path) With(seg any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// MarshalJSON renders a nil path as [] rather than null.
func (p Path) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]any(p))
}

func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	for i, seg := range p {
		switch s := seg.(type) {
		case int:
			b.WriteString("[" + strconv.Itoa(s) + "]")
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			fmt.Fprint(&b, s)
		}
	}
	return b.String()
}

// Issue is one structural validation failure.
type Issue struct {
	Path    Path   `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%s)", i.Path, i.Message, i.Code)
}

// IssueList adapts a set of issues to the error interface for callers that
// propagate validation failures as errors.
type IssueList []Issue

func (l IssueList) Error() string {
	if len(l) == 0 {
		return "validation failed"
	}
	if len(l) == 1 {
		return l[0].String()
	}
	msgs := make([]string, len(l))
	for i, issue := range l {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// ValidationDetailer surfaces structured validation details for API error responses.
type ValidationDetailer interface {
	Details() map[string]interface{}
}

// Details lists the failing paths.
func (l IssueList) Details() map[string]interface{} {
	d := make(map[string]interface{})
	var paths []string
	for _, issue := range l {
		paths = append(paths, issue.Path.String())
	}
	if len(paths) > 0 {
		d["paths"] = paths
	}
	return d
}

func requiredIssue(path Path) Issue {
	return Issue{Path: path, Message: "Required", Code: CodeRequired}
}

func typeMismatchIssue(path Path, expected string, value any) Issue {
	return Issue{
		Path:    path,
		Message: fmt.Sprintf("Expected %s, received %s", expected, jsonTypeName(value)),
		Code:    CodeInvalidType,
	}
}

func literalIssue(path Path, expected string) Issue {
	return Issue{
		Path:    path,
		Message: fmt.Sprintf("Invalid literal value, expected %q", expected),
		Code:    CodeInvalidLiteral,
	}
}

func enumIssue(path Path, allowed []string, got string) Issue {
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "'" + a + "'"
	}
	return Issue{
		Path:    path,
		Message: fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", strings.Join(quoted, " | "), got),
		Code:    CodeInvalidEnumValue,
	}
}

func formatIssue(path Path, format string) Issue {
	return Issue{Path: path, Message: "Invalid " + format, Code: CodeInvalidString}
}

// jsonTypeName maps decoded JSON values to their JSON type names.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
