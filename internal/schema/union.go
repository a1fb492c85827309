package schema

import (
	"fmt"
	"strings"
)

// Union is a structural union: members are tried in declaration order and
// the first one that validates wins.
type Union struct {
	Name    string
	Members []*Shape
}

// Tags lists every type tag accepted by some member, in member order.
func (u *Union) Tags() []string {
	var tags []string
	seen := make(map[string]bool)
	for _, m := range u.Members {
		for _, t := range m.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// candidate is one failed member attempt.
type candidate struct {
	issues     []Issue
	tagMatched bool
}

// closer reports whether c is a better explanation of the failure than best.
// A member whose tag matched beats one whose tag did not; after that fewer
// issues wins. Ties keep the earlier member.
func (c candidate) closer(best *candidate) bool {
	if best == nil {
		return true
	}
	if c.tagMatched != best.tagMatched {
		return c.tagMatched
	}
	return len(c.issues) < len(best.issues)
}

// resolve validates v against each member. When none matches only the
// closest member's issues are reported, never the concatenation of all
// attempts.
func (u *Union) resolve(v any, path Path, depth int, issues []Issue) []Issue {
	obj, ok := v.(map[string]any)
	if !ok {
		return append(issues, typeMismatchIssue(path, "object", v))
	}
	tag, _ := obj["type"].(string)

	var best *candidate
	for _, m := range u.Members {
		got := m.validate(v, path, depth, nil)
		if len(got) == 0 {
			return issues
		}
		c := candidate{issues: got, tagMatched: m.AcceptsTag(tag)}
		if c.closer(best) {
			best = &c
		}
	}

	if best.tagMatched {
		return append(issues, best.issues...)
	}

	// No member claims this tag: replace the member's literal complaint about
	// `type` with one that names every accepted tag.
	typePath := path.With("type")
	switch raw, present := obj["type"]; {
	case !present:
		issues = append(issues, requiredIssue(typePath))
	case tag == "":
		issues = append(issues, typeMismatchIssue(typePath, "string", raw))
	default:
		issues = append(issues, Issue{
			Path:    typePath,
			Message: fmt.Sprintf("Invalid input: expected one of %s, received %q", strings.Join(u.Tags(), " | "), tag),
			Code:    CodeInvalidUnion,
		})
	}
	for _, issue := range best.issues {
		if !samePath(issue.Path, typePath) {
			issues = append(issues, issue)
		}
	}
	return issues
}

func samePath(a, b Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
