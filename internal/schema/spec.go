package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EntityCatalog is the YAML declaration of every entity kind and named union.
type EntityCatalog struct {
	Kinds  KindList  `yaml:"kinds"`
	Unions UnionList `yaml:"unions"`
}

// EventCatalog is the YAML declaration of the event vocabulary.
type EventCatalog struct {
	// Context is the required value of every event's @context.
	Context string `yaml:"context"`

	// Base lists the fields shared by every event type.
	Base   FieldList `yaml:"base"`
	Events EventList `yaml:"events"`
}

// KindSpec declares one entity kind.
//
//	Page:
//	  extends: DigitalResource
//	  fields:
//	    index: number
type KindSpec struct {
	Name    string `yaml:"-"`
	Extends string `yaml:"extends,omitempty"`

	// Abstract kinds accept any type tag. Only the root Entity uses it.
	Abstract bool `yaml:"abstract,omitempty"`

	// Tags overrides the accepted type tags (Agent accepts three).
	// Defaults to the kind name.
	Tags []string `yaml:"tags,omitempty"`

	Fields FieldList `yaml:"fields,omitempty"`
}

// UnionSpec declares a structural union. Members may name kinds or other unions.
type UnionSpec struct {
	Name    string
	Members []string
}

// EventSpec declares one event type.
type EventSpec struct {
	Name    string    `yaml:"-"`
	Actions []string  `yaml:"actions"`
	Fields  FieldList `yaml:"fields,omitempty"`
}

// Field declares one record field.
//
// Fields support two declaration styles:
//
//	Shorthand (scalar): id: iri!
//	Long form (mapping): status:
//	                        type: string
//	                        enum: [Active, Inactive]
//
// Type names are the primitives (string, number, boolean, iri, datetime,
// duration, url, object, any), the structural markers (tag, context, action),
// an entity kind name or a union name. Wrap in brackets for arrays and append
// "!" to mark the field required.
type Field struct {
	Name     string   `yaml:"-"`
	Type     string   `yaml:"type"`
	Required bool     `yaml:"required,omitempty"`
	Enum     []string `yaml:"enum,omitempty"`

	// Array is derived from the [T] syntax.
	Array bool `yaml:"-"`
}

// UnmarshalYAML supports both shorthand and long-form declarations.
func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return f.parseTypeString(value.Value)
	}

	type fieldAlias Field
	var alias fieldAlias
	if err := value.Decode(&alias); err != nil {
		return err
	}
	required := alias.Required
	*f = Field(alias)

	if f.Type == "" {
		return fmt.Errorf("field missing 'type'")
	}
	if err := f.parseTypeString(f.Type); err != nil {
		return err
	}
	f.Required = f.Required || required
	return nil
}

// parseTypeString parses "[Agent]!" into Type=Agent, Array=true, Required=true.
func (f *Field) parseTypeString(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "!") {
		f.Required = true
		s = strings.TrimSuffix(s, "!")
	}
	if strings.HasPrefix(s, "[") || strings.HasSuffix(s, "]") {
		if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
			return fmt.Errorf("malformed array type %q", s)
		}
		f.Array = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return fmt.Errorf("type cannot be empty")
	}
	f.Type = s
	return nil
}

func (f *Field) String() string {
	t := f.Type
	if f.Array {
		t = "[" + t + "]"
	}
	if f.Required {
		t += "!"
	}
	return t
}

// FieldList keeps fields in declaration order so that issues are reported in
// a stable order.
type FieldList []*Field

func (l *FieldList) UnmarshalYAML(value *yaml.Node) error {
	return decodeOrdered(value, func(name string, node *yaml.Node) error {
		var f Field
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		f.Name = name
		*l = append(*l, &f)
		return nil
	})
}

// KindList keeps kinds in declaration order.
type KindList []*KindSpec

func (l *KindList) UnmarshalYAML(value *yaml.Node) error {
	return decodeOrdered(value, func(name string, node *yaml.Node) error {
		k := &KindSpec{}
		// A kind with no body ("Page:") decodes from a null node.
		if node.Tag != "!!null" {
			if err := node.Decode(k); err != nil {
				return fmt.Errorf("kind %q: %w", name, err)
			}
		}
		k.Name = name
		*l = append(*l, k)
		return nil
	})
}

// UnionList keeps unions in declaration order.
type UnionList []*UnionSpec

func (l *UnionList) UnmarshalYAML(value *yaml.Node) error {
	return decodeOrdered(value, func(name string, node *yaml.Node) error {
		var members []string
		if err := node.Decode(&members); err != nil {
			return fmt.Errorf("union %q: %w", name, err)
		}
		*l = append(*l, &UnionSpec{Name: name, Members: members})
		return nil
	})
}

// EventList keeps events in declaration order.
type EventList []*EventSpec

func (l *EventList) UnmarshalYAML(value *yaml.Node) error {
	return decodeOrdered(value, func(name string, node *yaml.Node) error {
		e := &EventSpec{}
		if err := node.Decode(e); err != nil {
			return fmt.Errorf("event %q: %w", name, err)
		}
		e.Name = name
		*l = append(*l, e)
		return nil
	})
}

// decodeOrdered walks a YAML mapping in document order. yaml.v3 decodes
// mappings into Go maps, which would lose that order.
func decodeOrdered(value *yaml.Node, fn func(name string, node *yaml.Node) error) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}
	seen := make(map[string]struct{}, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		if _, dup := seen[name]; dup {
			return fmt.Errorf("line %d: duplicate key %q", value.Content[i].Line, name)
		}
		seen[name] = struct{}{}
		if err := fn(name, value.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
