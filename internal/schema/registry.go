package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKind is returned when a lookup names no declared kind or union.
	ErrUnknownKind = errors.New("unknown entity kind")
)

// Registry holds the compiled Caliper vocabulary. It is immutable after
// Compile and safe for concurrent use.
type Registry struct {
	context string

	kinds      map[string]*Shape
	kindOrder  []string
	unions     map[string]*Union
	unionOrder []string
	events     map[string]*Shape
	eventOrder []string
}

func newRegistry() *Registry {
	return &Registry{
		kinds:  make(map[string]*Shape),
		unions: make(map[string]*Union),
		events: make(map[string]*Shape),
	}
}

// Context returns the required @context literal.
func (r *Registry) Context() string { return r.context }

// Kind returns the shape of one entity kind.
func (r *Registry) Kind(name string) (*Shape, bool) {
	s, ok := r.kinds[name]
	return s, ok
}

// Union returns a named union.
func (r *Registry) Union(name string) (*Union, bool) {
	u, ok := r.unions[name]
	return u, ok
}

// Event returns the shape of one event type.
func (r *Registry) Event(eventType string) (*Shape, bool) {
	s, ok := r.events[eventType]
	return s, ok
}

// Kinds lists entity kinds in declaration order.
func (r *Registry) Kinds() []string { return append([]string(nil), r.kindOrder...) }

// Unions lists union names in declaration order.
func (r *Registry) Unions() []string { return append([]string(nil), r.unionOrder...) }

// EventTypes lists event type tags in declaration order.
func (r *Registry) EventTypes() []string { return append([]string(nil), r.eventOrder...) }

// IsEventType reports whether t is one of the known event type tags.
func (r *Registry) IsEventType(t string) bool {
	_, ok := r.events[t]
	return ok
}

// ValidateEntity validates v as the named kind, or as the named union.
func (r *Registry) ValidateEntity(name string, v any) ([]Issue, error) {
	if s, ok := r.kinds[name]; ok {
		return s.validate(v, Path{}, 0, nil), nil
	}
	if u, ok := r.unions[name]; ok {
		return u.resolve(v, Path{}, 0, nil), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// ValidateEvent dispatches on the `type` tag and validates v against exactly
// that event definition. An unknown or missing tag yields one issue and no
// attempt is made against other definitions.
func (r *Registry) ValidateEvent(v any, path Path) []Issue {
	obj, ok := v.(map[string]any)
	if !ok {
		return []Issue{typeMismatchIssue(path, "object", v)}
	}

	tag, _ := obj["type"].(string)
	def, ok := r.events[tag]
	if !ok {
		quoted := make([]string, len(r.eventOrder))
		for i, t := range r.eventOrder {
			quoted[i] = "'" + t + "'"
		}
		return []Issue{{
			Path:    path.With("type"),
			Message: fmt.Sprintf("Invalid discriminator value. Expected %s", strings.Join(quoted, " | ")),
			Code:    CodeUnrecognizedEventType,
		}}
	}
	return def.validate(obj, path, 0, nil)
}

// FieldInfo describes one field for catalog introspection.
type FieldInfo struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Enum     []string `json:"enum,omitempty"`
}

// ShapeInfo describes a kind or event for catalog introspection.
type ShapeInfo struct {
	Name    string      `json:"name"`
	Extends string      `json:"extends,omitempty"`
	Tags    []string    `json:"tags,omitempty"`
	Actions []string    `json:"actions,omitempty"`
	Fields  []FieldInfo `json:"fields"`
}

// Describe returns a JSON-friendly view of a shape.
func (s *Shape) Describe() ShapeInfo {
	info := ShapeInfo{
		Name:    s.Name,
		Extends: s.Parent,
		Tags:    s.Tags,
		Actions: s.actions,
	}
	for _, f := range s.fields {
		t := f.spec.Type
		if f.array {
			t = "[" + t + "]"
		}
		info.Fields = append(info.Fields, FieldInfo{
			Name:     f.name,
			Type:     t,
			Required: f.required,
			Enum:     f.enum,
		})
	}
	return info
}
