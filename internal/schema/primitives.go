package schema

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	urnUUIDPattern  = regexp.MustCompile(`(?i)^urn:uuid:[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	durationPattern = regexp.MustCompile(`^P(?:\d+Y)?(?:\d+M)?(?:\d+D)?(?:T(?:\d+H)?(?:\d+M)?(?:\d+(?:\.\d+)?S)?)?$`)
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})$`)
)

// IsURL reports whether s is an absolute URL with a scheme and an authority
// or opaque part.
func IsURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if u.Host != "" {
		return true
	}
	// mailto:, urn:... and friends carry an opaque part instead of a host.
	return u.Opaque != ""
}

// IsIRI accepts an absolute URL or a urn:uuid: identifier in canonical
// 8-4-4-4-12 layout.
func IsIRI(s string) bool {
	if strings.HasPrefix(strings.ToLower(s), "urn:uuid:") {
		return urnUUIDPattern.MatchString(s)
	}
	return IsURL(s)
}

// IsDateTime accepts ISO-8601 timestamps with a mandatory time and zone
// designator, optionally with fractional seconds.
func IsDateTime(s string) bool {
	_, ok := ParseDateTime(s)
	return ok
}

// ParseDateTime parses a Caliper timestamp.
func ParseDateTime(s string) (time.Time, bool) {
	if !dateTimePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsDuration accepts ISO-8601 durations. The grammar admits "P" and "PT"
// with no components; those carry no duration and are rejected.
func IsDuration(s string) bool {
	if !durationPattern.MatchString(s) {
		return false
	}
	if s == "P" || strings.HasSuffix(s, "T") {
		return false
	}
	return true
}
