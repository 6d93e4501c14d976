package fields

import "regexp"

// matchStep pairs a pattern with a function that turns its submatches into
// a field value. An empty result means "no match, keep trying".
type matchStep struct {
	pattern *regexp.Regexp
	extract func(match []string) string
}

// group returns a step that captures a single submatch group.
func group(pattern *regexp.Regexp, n int) matchStep {
	return matchStep{
		pattern: pattern,
		extract: func(match []string) string {
			if n < len(match) {
				return match[n]
			}
			return ""
		},
	}
}

// firstMatch evaluates steps in order and returns the first non-empty
// result, or empty when no step yields one.
func firstMatch(text string, steps []matchStep) string {
	for _, step := range steps {
		match := step.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if value := step.extract(match); value != "" {
			return value
		}
	}
	return ""
}
