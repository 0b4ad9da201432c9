package router

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultAction is the action base used when no path segments remain.
const DefaultAction = "index"

// Action is the outcome of action selection.
type Action struct {
	// ID is the dispatch key: lower-cased method followed by the capitalized base.
	ID string
	// Base is the action name before capitalization.
	Base string
	// Remaining holds the path segments left after selection.
	Remaining []string
}

// SelectAction computes the dispatch key for method and the remaining path.
// The first segment, when present, becomes the action base and is consumed.
// The input slice is not modified.
func SelectAction(method string, segments []string) Action {
	base := DefaultAction
	rest := []string{}
	if len(segments) > 0 {
		base = segments[0]
		rest = make([]string, len(segments)-1)
		copy(rest, segments[1:])
	}

	return Action{
		ID:        ActionID(method, base),
		Base:      base,
		Remaining: rest,
	}
}

// ActionID joins a method and an action base into a dispatch key,
// e.g. ("GET", "index") => "getIndex".
func ActionID(method, base string) string {
	return strings.ToLower(method) + UpperFirst(base)
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// CutMethod strips the lower-cased form of the first matching method from
// the front of a dispatch key, e.g. ("post2024", GET, POST) => (POST, "2024").
// ok is false when id starts with none of the methods.
func CutMethod(id string, methods ...string) (method, base string, ok bool) {
	for _, m := range methods {
		if rest, found := strings.CutPrefix(id, strings.ToLower(m)); found {
			return m, rest, true
		}
	}
	return "", id, false
}
