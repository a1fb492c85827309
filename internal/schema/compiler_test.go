package schema

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

const testEvents = `
context: http://purl.imsglobal.org/ctx/caliper/v1p2
base:
  "@context": context!
  id: iri!
  type: tag!
  actor: Thing!
  action: action!
  object: Thing!
events:
  PokeEvent:
    actions: [Poked]
`

func loadInline(t *testing.T, entities, events string) (*Registry, error) {
	t.Helper()
	return LoadCatalog(fstest.MapFS{
		"entities.yaml": {Data: []byte(entities)},
		"events.yaml":   {Data: []byte(events)},
	})
}

func TestLoadCatalog_MinimalVocabulary(t *testing.T) {
	reg, err := loadInline(t, `
kinds:
  Thing:
    fields:
      id: iri!
      type: tag!
      tags: "[string]"
      size:
        type: string
        enum: [small, large]
  Widget:
    extends: Thing
    fields:
      size: number!
unions:
  AnyThing: [Widget, Thing]
`, testEvents)
	require.NoError(t, err)

	require.Equal(t, []string{"Thing", "Widget"}, reg.Kinds())
	require.Equal(t, []string{"AnyThing"}, reg.Unions())
	require.Equal(t, []string{"PokeEvent"}, reg.EventTypes())
	require.Equal(t, "http://purl.imsglobal.org/ctx/caliper/v1p2", reg.Context())

	widget, ok := reg.Kind("Widget")
	require.True(t, ok)
	info := widget.Describe()
	require.Equal(t, "Thing", info.Extends)
	require.Equal(t, []string{"Widget"}, info.Tags)
	require.Len(t, info.Fields, 4)
	require.Equal(t, FieldInfo{Name: "size", Type: "number", Required: true}, info.Fields[3])
	require.Equal(t, FieldInfo{Name: "tags", Type: "[string]"}, info.Fields[2])

	thing, _ := reg.Kind("Thing")
	require.Equal(t, []string{"small", "large"}, thing.Describe().Fields[3].Enum)

	issues, err := reg.ValidateEntity("Thing", map[string]any{"type": "Thing", "id": "urn:uuid:a5e8d2c1-0000-4000-8000-000000000000", "size": "medium"})
	require.NoError(t, err)
	require.Equal(t, []string{"size"}, issuePaths(issues))
	require.Equal(t, CodeInvalidEnumValue, issues[0].Code)
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name     string
		entities string
		events   string
		wantErr  string
	}{
		{
			name: "unknown parent",
			entities: `
kinds:
  Thing:
    extends: Nothing
    fields:
      type: tag!
`,
			wantErr: `extends unknown kind "Nothing"`,
		},
		{
			name: "inheritance cycle",
			entities: `
kinds:
  Thing:
    extends: Other
    fields:
      type: tag!
  Other:
    extends: Thing
`,
			wantErr: "inheritance cycle",
		},
		{
			name: "missing tag field",
			entities: `
kinds:
  Thing:
    fields:
      id: iri!
`,
			wantErr: `kind "Thing" has no tag field`,
		},
		{
			name: "unknown field type",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
      owner: Ghost
`,
			wantErr: `unknown type "Ghost"`,
		},
		{
			name: "enum on a non-string",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
      count:
        type: number
        enum: ["1"]
`,
			wantErr: "enum is only supported on string fields",
		},
		{
			name: "action field on an entity",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
      verb: action
`,
			wantErr: "only valid on events",
		},
		{
			name: "abstract kind with tags",
			entities: `
kinds:
  Thing:
    abstract: true
    tags: [A]
    fields:
      type: tag!
`,
			wantErr: "abstract kinds cannot declare tags",
		},
		{
			name: "union cycle",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
unions:
  A: [B]
  B: [A]
`,
			wantErr: "union cycle",
		},
		{
			name: "union with unknown member",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
unions:
  A: [Thing, Ghost]
`,
			wantErr: `unknown member "Ghost"`,
		},
		{
			name: "union named like a kind",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
unions:
  Thing: [Thing]
`,
			wantErr: "collides with a kind",
		},
		{
			name: "duplicate kind",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
  Thing:
    fields:
      type: tag!
`,
			wantErr: `"Thing"`,
		},
		{
			name: "malformed array type",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
      parts: "[Thing"
`,
			wantErr: "malformed array type",
		},
		{
			name: "event without actions",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
`,
			events: `
context: http://purl.imsglobal.org/ctx/caliper/v1p2
base:
  type: tag!
events:
  QuietEvent:
    actions: []
`,
			wantErr: `event "QuietEvent" declares no actions`,
		},
		{
			name: "event catalog without context",
			entities: `
kinds:
  Thing:
    fields:
      type: tag!
`,
			events: `
base:
  type: tag!
events:
  PokeEvent:
    actions: [Poked]
`,
			wantErr: "must declare a context",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := tt.events
			if events == "" {
				events = testEvents
			}
			_, err := loadInline(t, tt.entities, events)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(fstest.MapFS{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "entities.yaml")
}

func TestDefaultRegistry_Vocabulary(t *testing.T) {
	reg := testRegistry(t)

	require.Len(t, reg.EventTypes(), 21)
	require.GreaterOrEqual(t, len(reg.Kinds()), 60)

	agent, ok := reg.Kind("Agent")
	require.True(t, ok)
	require.Equal(t, []string{"Person", "SoftwareApplication", "Organization"}, agent.Tags)

	root, ok := reg.Kind("Entity")
	require.True(t, ok)
	require.Nil(t, root.Tags)
	require.True(t, root.AcceptsTag("Anything"))
	require.False(t, root.AcceptsTag(""))

	again, err := DefaultRegistry()
	require.NoError(t, err)
	require.Same(t, reg, again)
}
