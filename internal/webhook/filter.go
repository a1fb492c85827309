package webhook

import (
	"encoding/json"
	"slices"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/tidwall/gjson"
)

// Matches reports whether event satisfies every predicate present in f.
// A nil filter, or one with no predicates, matches every event. Values that
// are missing or not strings never satisfy a predicate.
func Matches(event json.RawMessage, f *v1.Filters) bool {
	if f == nil {
		return true
	}
	if len(f.EventTypes) > 0 && !slices.Contains(f.EventTypes, stringAt(event, "type")) {
		return false
	}
	if f.ActorID != "" && stringAt(event, "actor.id") != f.ActorID {
		return false
	}
	if f.ObjectType != "" && stringAt(event, "object.type") != f.ObjectType {
		return false
	}
	return true
}

func stringAt(event json.RawMessage, path string) string {
	r := gjson.GetBytes(event, path)
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}
