// Package topic provides hierarchical dot-notation event topics with
// wildcard pattern matching.
//
// Subscription patterns may use "*" to match exactly one segment and
// "**" to match zero or more segments:
//
//	designer.command.executed matches designer.command.*
//	designer.command.executed matches designer.**
package topic

import "strings"

// Topic is a hierarchical event type using dot notation, e.g.
// "designer.command.executed".
type Topic string

const (
	// WildcardSingle matches exactly one segment in a pattern.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments in a pattern.
	WildcardMulti = "**"

	// Separator separates topic segments.
	Separator = "."
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split on the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Parent removes the last segment. A single-segment topic has no parent.
func (t Topic) Parent() Topic {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return ""
	}
	return Topic(s[:idx])
}

// Child appends a segment.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return Topic(string(t) + Separator + segment)
}

// Base returns the last segment.
func (t Topic) Base() string {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// IsPattern reports whether the topic contains wildcard segments.
func (t Topic) IsPattern() bool {
	return strings.Contains(string(t), WildcardSingle)
}

// IsValid reports whether the topic is non-empty with no empty segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether this topic matches a pattern that may contain
// wildcards. A concrete topic matches itself.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(topic, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == WildcardMulti {
			// Try consuming zero or more topic segments.
			for i := 0; i <= len(topic); i++ {
				if match(topic[i:], pattern[1:]) {
					return true
				}
			}
			return false
		}
		if len(topic) == 0 {
			return false
		}
		if pattern[0] != WildcardSingle && pattern[0] != topic[0] {
			return false
		}
		topic = topic[1:]
		pattern = pattern[1:]
	}
	return len(topic) == 0
}

// Join builds a topic from segments.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}
