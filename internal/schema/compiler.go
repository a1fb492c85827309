package schema

import (
	"fmt"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindBoolean
	kindIRI
	kindDateTime
	kindDuration
	kindURL
	kindObject
	kindAny
	kindTag
	kindContext
	kindAction
	kindEntity
	kindUnion
)

var primitiveKinds = map[string]fieldKind{
	"string":   kindString,
	"number":   kindNumber,
	"boolean":  kindBoolean,
	"iri":      kindIRI,
	"datetime": kindDateTime,
	"duration": kindDuration,
	"url":      kindURL,
	"object":   kindObject,
	"any":      kindAny,
	"tag":      kindTag,
	"context":  kindContext,
	"action":   kindAction,
}

// compiledField is a Field with its type resolved to a primitive check, a
// shape or a union.
type compiledField struct {
	name     string
	kind     fieldKind
	required bool
	array    bool
	enum     []string
	literal  string
	shape    *Shape
	union    *Union
	spec     *Field
}

// compiler turns the declarative catalogs into linked shapes.
type compiler struct {
	kindSpecs  map[string]*KindSpec
	unionSpecs map[string]*UnionSpec
	resolved   map[string][]*Field
	reg        *Registry
}

// Compile links the entity and event catalogs into a Registry. It rejects
// unknown parents and references, inheritance and union cycles, and
// malformed field declarations.
//
// Field references between kinds may be recursive (Message.replyTo); those
// are bounded at validation time by MaxDepth.
func Compile(entities *EntityCatalog, events *EventCatalog) (*Registry, error) {
	c := &compiler{
		kindSpecs:  make(map[string]*KindSpec),
		unionSpecs: make(map[string]*UnionSpec),
		resolved:   make(map[string][]*Field),
		reg:        newRegistry(),
	}

	// Allocate every shape first so fields can point at shapes declared later.
	for _, k := range entities.Kinds {
		if _, dup := c.kindSpecs[k.Name]; dup {
			return nil, fmt.Errorf("kind %q declared twice", k.Name)
		}
		c.kindSpecs[k.Name] = k
		c.reg.kinds[k.Name] = &Shape{Name: k.Name, Parent: k.Extends}
		c.reg.kindOrder = append(c.reg.kindOrder, k.Name)
	}
	for _, u := range entities.Unions {
		if _, clash := c.kindSpecs[u.Name]; clash {
			return nil, fmt.Errorf("union %q collides with a kind of the same name", u.Name)
		}
		if _, dup := c.unionSpecs[u.Name]; dup {
			return nil, fmt.Errorf("union %q declared twice", u.Name)
		}
		c.unionSpecs[u.Name] = u
		c.reg.unions[u.Name] = &Union{Name: u.Name}
		c.reg.unionOrder = append(c.reg.unionOrder, u.Name)
	}

	for _, u := range entities.Unions {
		if err := c.flattenUnion(u.Name, make(map[string]bool)); err != nil {
			return nil, err
		}
	}

	for _, k := range entities.Kinds {
		if err := c.compileKind(k); err != nil {
			return nil, err
		}
	}

	if err := c.compileEvents(events); err != nil {
		return nil, err
	}
	return c.reg, nil
}

func (c *compiler) compileKind(k *KindSpec) error {
	fields, err := c.resolveFields(k.Name, make(map[string]bool))
	if err != nil {
		return err
	}

	shape := c.reg.kinds[k.Name]
	switch {
	case k.Abstract && len(k.Tags) > 0:
		return fmt.Errorf("kind %q: abstract kinds cannot declare tags", k.Name)
	case k.Abstract:
		shape.Tags = nil
	case len(k.Tags) > 0:
		shape.Tags = append([]string(nil), k.Tags...)
	default:
		shape.Tags = []string{k.Name}
	}

	hasTag := false
	for _, f := range fields {
		cf, err := c.compileField(f, false)
		if err != nil {
			return fmt.Errorf("kind %q field %q: %w", k.Name, f.Name, err)
		}
		if cf.kind == kindTag {
			hasTag = true
		}
		shape.fields = append(shape.fields, cf)
	}
	if !hasTag {
		return fmt.Errorf("kind %q has no tag field", k.Name)
	}
	return nil
}

// resolveFields returns the kind's fields with inherited ones first.
func (c *compiler) resolveFields(name string, visiting map[string]bool) ([]*Field, error) {
	if fields, ok := c.resolved[name]; ok {
		return fields, nil
	}
	if visiting[name] {
		return nil, fmt.Errorf("inheritance cycle through kind %q", name)
	}
	visiting[name] = true

	spec := c.kindSpecs[name]
	var fields []*Field
	if spec.Extends != "" {
		if _, ok := c.kindSpecs[spec.Extends]; !ok {
			return nil, fmt.Errorf("kind %q extends unknown kind %q", name, spec.Extends)
		}
		parent, err := c.resolveFields(spec.Extends, visiting)
		if err != nil {
			return nil, err
		}
		fields = append(fields, parent...)
	}
	fields = mergeFields(fields, spec.Fields)
	c.resolved[name] = fields
	return fields, nil
}

// mergeFields replaces same-named fields in place and appends new ones.
func mergeFields(base []*Field, overrides []*Field) []*Field {
	out := append([]*Field(nil), base...)
	for _, o := range overrides {
		replaced := false
		for i, f := range out {
			if f.Name == o.Name {
				out[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}

func (c *compiler) compileField(f *Field, event bool) (*compiledField, error) {
	cf := &compiledField{
		name:     f.Name,
		required: f.Required,
		array:    f.Array,
		enum:     f.Enum,
		spec:     f,
	}

	if k, ok := primitiveKinds[f.Type]; ok {
		cf.kind = k
		switch k {
		case kindContext, kindAction:
			if !event {
				return nil, fmt.Errorf("%s fields are only valid on events", f.Type)
			}
			if k == kindContext {
				cf.literal = c.reg.context
			}
		}
		if f.Array && (k == kindTag || k == kindContext || k == kindAction) {
			return nil, fmt.Errorf("%s fields cannot be arrays", f.Type)
		}
		if len(f.Enum) > 0 && k != kindString {
			return nil, fmt.Errorf("enum is only supported on string fields")
		}
		return cf, nil
	}

	if len(f.Enum) > 0 {
		return nil, fmt.Errorf("enum is only supported on string fields")
	}
	if s, ok := c.reg.kinds[f.Type]; ok {
		cf.kind = kindEntity
		cf.shape = s
		return cf, nil
	}
	if u, ok := c.reg.unions[f.Type]; ok {
		cf.kind = kindUnion
		cf.union = u
		return cf, nil
	}
	return nil, fmt.Errorf("unknown type %q", f.Type)
}

// flattenUnion expands nested unions into their member kinds, keeping the
// first occurrence of each kind.
func (c *compiler) flattenUnion(name string, visiting map[string]bool) error {
	u := c.reg.unions[name]
	if u.Members != nil {
		return nil
	}
	if visiting[name] {
		return fmt.Errorf("union cycle through %q", name)
	}
	visiting[name] = true

	seen := make(map[string]bool)
	var members []*Shape
	add := func(s *Shape) {
		if !seen[s.Name] {
			seen[s.Name] = true
			members = append(members, s)
		}
	}

	for _, m := range c.unionSpecs[name].Members {
		if s, ok := c.reg.kinds[m]; ok {
			add(s)
			continue
		}
		if _, ok := c.unionSpecs[m]; ok {
			if err := c.flattenUnion(m, visiting); err != nil {
				return err
			}
			for _, s := range c.reg.unions[m].Members {
				add(s)
			}
			continue
		}
		return fmt.Errorf("union %q references unknown member %q", name, m)
	}
	if len(members) == 0 {
		return fmt.Errorf("union %q has no members", name)
	}
	u.Members = members
	return nil
}

func (c *compiler) compileEvents(events *EventCatalog) error {
	if events.Context == "" {
		return fmt.Errorf("event catalog must declare a context")
	}
	c.reg.context = events.Context

	for _, e := range events.Events {
		if _, dup := c.reg.events[e.Name]; dup {
			return fmt.Errorf("event %q declared twice", e.Name)
		}
		if len(e.Actions) == 0 {
			return fmt.Errorf("event %q declares no actions", e.Name)
		}

		shape := &Shape{
			Name:    e.Name,
			Tags:    []string{e.Name},
			actions: append([]string(nil), e.Actions...),
		}
		for _, f := range mergeFields(events.Base, e.Fields) {
			cf, err := c.compileField(f, true)
			if err != nil {
				return fmt.Errorf("event %q field %q: %w", e.Name, f.Name, err)
			}
			shape.fields = append(shape.fields, cf)
		}
		c.reg.events[e.Name] = shape
		c.reg.eventOrder = append(c.reg.eventOrder, e.Name)
	}
	return nil
}
