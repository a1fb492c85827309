package schema

import (
	"encoding/json"
	"testing"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := DefaultRegistry()
	require.NoError(t, err)
	return reg
}

func entity(kind, id string, extra ...any) map[string]any {
	m := map[string]any{"type": kind, "id": id}
	for i := 0; i+1 < len(extra); i += 2 {
		m[extra[i].(string)] = extra[i+1]
	}
	return m
}

func person() map[string]any {
	return entity("Person", "https://example.edu/users/554433")
}

// minimalObjects gives, per event type, an object that satisfies that type's
// declared object shape.
var minimalObjects = map[string]func() map[string]any{
	"AnnotationEvent":         func() map[string]any { return entity("Page", "https://example.edu/pages/1") },
	"AssessmentEvent":         func() map[string]any { return entity("Assessment", "https://example.edu/quizzes/1") },
	"AssessmentItemEvent":     func() map[string]any { return entity("AssessmentItem", "https://example.edu/quizzes/1/items/1") },
	"AssignableEvent":         func() map[string]any { return entity("AssignableDigitalResource", "https://example.edu/assignments/1") },
	"FeedbackEvent":           func() map[string]any { return entity("Page", "https://example.edu/pages/1") },
	"ForumEvent":              func() map[string]any { return entity("Forum", "https://example.edu/forums/1") },
	"ThreadEvent":             func() map[string]any { return entity("Thread", "https://example.edu/forums/1/topics/1") },
	"MessageEvent":            func() map[string]any { return entity("Message", "https://example.edu/forums/1/topics/1/messages/1") },
	"GradeEvent":              func() map[string]any { return entity("Attempt", "https://example.edu/attempts/1") },
	"MediaEvent":              func() map[string]any { return entity("MediaObject", "https://example.edu/videos/1") },
	"NavigationEvent":         func() map[string]any { return entity("WebPage", "https://example.edu/pages/1") },
	"ReadingEvent":            func() map[string]any { return entity("Document", "https://example.edu/docs/1") },
	"ResourceManagementEvent": func() map[string]any { return entity("Document", "https://example.edu/docs/1") },
	"SearchEvent":             func() map[string]any { return entity("Query", "https://example.edu/queries/1") },
	"SessionEvent":            func() map[string]any { return entity("Session", "https://example.edu/sessions/1") },
	"SurveyEvent":             func() map[string]any { return entity("Survey", "https://example.edu/surveys/1") },
	"QuestionnaireEvent":      func() map[string]any { return entity("Questionnaire", "https://example.edu/surveys/1/q/1") },
	"SurveyInvitationEvent":   func() map[string]any { return entity("SurveyInvitation", "https://example.edu/invitations/1") },
	"ToolUseEvent":            func() map[string]any { return entity("SoftwareApplication", "https://example.edu/tools/1") },
	"ViewEvent":               func() map[string]any { return entity("Page", "https://example.edu/pages/1") },
	"OutcomeEvent":            func() map[string]any { return entity("Assessment", "https://example.edu/quizzes/1") },
}

// minimalEvent builds a valid event of the given type using its first action.
func minimalEvent(t *testing.T, reg *Registry, eventType string) map[string]any {
	t.Helper()
	def, ok := reg.Event(eventType)
	require.True(t, ok, "unknown event type %s", eventType)
	obj, ok := minimalObjects[eventType]
	require.True(t, ok, "no fixture for %s", eventType)

	evt := map[string]any{
		"@context":  v1.ContextIRI,
		"id":        "urn:uuid:12345678-1234-1234-1234-123456789012",
		"type":      eventType,
		"actor":     person(),
		"action":    def.Actions()[0],
		"object":    obj(),
		"eventTime": "2024-01-01T00:00:00Z",
	}
	if eventType == "NavigationEvent" {
		evt["target"] = entity("WebPage", "https://example.edu/pages/2")
	}
	return evt
}

func envelopeJSON(t *testing.T, events ...map[string]any) []byte {
	t.Helper()
	data := make([]any, len(events))
	for i, e := range events {
		data[i] = e
	}
	body, err := json.Marshal(map[string]any{
		"sensor":      "s1",
		"sendTime":    "2024-01-01T00:00:00Z",
		"dataVersion": v1.DataVersion,
		"data":        data,
	})
	require.NoError(t, err)
	return body
}

// roundTrip normalises Go values to what encoding/json decodes, so numbers
// become float64 before validation.
func roundTrip(t *testing.T, v any) any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func issuePaths(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Path.String()
	}
	return out
}
