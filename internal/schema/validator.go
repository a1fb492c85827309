package schema

import (
	"encoding/json"
	"fmt"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
)

// MsgInvalidJSON is reported, with an empty path, for unparseable bodies.
const MsgInvalidJSON = "Invalid JSON in request body"

// Result is the outcome of validating one envelope.
type Result struct {
	Valid      bool
	EventCount int
	Errors     []Issue
}

// MarshalJSON renders {valid:true, eventCount:N} or {valid:false, errors:[...]}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Valid {
		return json.Marshal(struct {
			Valid      bool `json:"valid"`
			EventCount int  `json:"eventCount"`
		}{true, r.EventCount})
	}
	errs := r.Errors
	if errs == nil {
		errs = []Issue{}
	}
	return json.Marshal(struct {
		Valid  bool    `json:"valid"`
		Errors []Issue `json:"errors"`
	}{false, errs})
}

// UnmarshalJSON accepts both result shapes.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		Valid      bool    `json:"valid"`
		EventCount int     `json:"eventCount"`
		Errors     []Issue `json:"errors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{Valid: raw.Valid, EventCount: raw.EventCount, Errors: raw.Errors}
	return nil
}

// Err returns the issues as an error, or nil when the envelope is valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return IssueList(r.Errors)
}

// Validator validates Caliper envelopes against a compiled registry.
type Validator struct {
	registry *Registry
}

// NewValidator creates an envelope validator.
func NewValidator(reg *Registry) *Validator {
	if reg == nil {
		panic("schema: registry must not be nil")
	}
	return &Validator{registry: reg}
}

// Registry exposes the vocabulary the validator checks against.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// ValidateEnvelope parses body and validates the whole envelope. Every
// failure across every event is collected; validation never stops at the
// first bad event.
func (v *Validator) ValidateEnvelope(body []byte) Result {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return Result{Errors: []Issue{{Path: Path{}, Message: MsgInvalidJSON, Code: CodeInvalidJSON}}}
	}
	return v.ValidateEnvelopeValue(doc)
}

// ValidateEnvelopeValue validates an already decoded JSON document.
func (v *Validator) ValidateEnvelopeValue(doc any) Result {
	obj, ok := doc.(map[string]any)
	if !ok {
		return Result{Errors: []Issue{typeMismatchIssue(Path{}, "object", doc)}}
	}

	var issues []Issue
	issues = checkTopLevelString(obj, "sensor", issues, nil)
	issues = checkTopLevelString(obj, "sendTime", issues, func(p Path, s string) *Issue {
		if !IsDateTime(s) {
			i := formatIssue(p, "datetime")
			return &i
		}
		return nil
	})
	issues = checkTopLevelString(obj, "dataVersion", issues, func(p Path, s string) *Issue {
		if s != v1.DataVersion {
			i := literalIssue(p, v1.DataVersion)
			return &i
		}
		return nil
	})

	count := 0
	data, present := obj["data"]
	switch items, isArray := data.([]any); {
	case !present:
		issues = append(issues, requiredIssue(Path{"data"}))
	case !isArray:
		issues = append(issues, typeMismatchIssue(Path{"data"}, "array", data))
	default:
		count = len(items)
		for i, item := range items {
			issues = append(issues, v.registry.ValidateEvent(item, Path{"data", i})...)
		}
	}

	if len(issues) > 0 {
		return Result{Errors: issues}
	}
	return Result{Valid: true, EventCount: count}
}

func checkTopLevelString(obj map[string]any, key string, issues []Issue, check func(Path, string) *Issue) []Issue {
	path := Path{key}
	raw, present := obj[key]
	if !present {
		return append(issues, requiredIssue(path))
	}
	s, ok := raw.(string)
	if !ok {
		return append(issues, typeMismatchIssue(path, "string", raw))
	}
	if check != nil {
		if issue := check(path, s); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// ParseEnvelope decodes a validated body, keeping every event as raw JSON.
func ParseEnvelope(body []byte) (*v1.Envelope, error) {
	var env v1.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return &env, nil
}
