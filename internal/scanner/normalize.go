package scanner

import (
	"io"
	"regexp"
	"slices"
	"strings"
)

// iconNameShape is the strict-mode filter: a letter followed by letters, digits or dashes.
var iconNameShape = regexp.MustCompile(`(?i)^[a-z][a-z0-9-]*$`)

// Normalize filters and sorts the accumulated set.
func Normalize(set NameSet, strict bool) []string {
	return NormalizeValues(set.Values(), strict)
}

// NormalizeValues drops empty values and template placeholders (values whose
// trimmed form starts with '{'), removes duplicates and sorts ascending by byte
// order. In strict mode only icon-shaped values survive.
func NormalizeValues(values []string, strict bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if Keep(v, strict) {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Keep reports whether a captured value belongs in the output.
func Keep(value string, strict bool) bool {
	if value == "" || strings.HasPrefix(strings.TrimSpace(value), "{") {
		return false
	}
	if strict && !iconNameShape.MatchString(value) {
		return false
	}
	return true
}

// Emit writes names one per line. Nothing is written for an empty list.
func Emit(w io.Writer, names []string) error {
	if len(names) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(names, "\n")+"\n")
	return err
}
