// Package multivalue decides how raw tag values map onto list fields.
//
// A field read as several separate entries keeps each entry as one value.
// A field read as a single entry is split on the first separator kind it
// contains.
package multivalue

import (
	"strings"
)

// Separators lists the separator kinds in the order they are tried.
// Only the first kind found in a string is used to split it.
var Separators = []string{"//", "/", `\\`, `\`, ";", ","}

// JoinSeparator joins list values for formats without native repetition.
const JoinSeparator = "; "

// FindSeparator returns the first separator kind present in s, or "".
func FindSeparator(s string) string {
	for _, sep := range Separators {
		if strings.Contains(s, sep) {
			return sep
		}
	}
	return ""
}

// Split splits s on the first separator kind it contains. Parts are trimmed
// and empty parts dropped, so runs of a separator count once. A string with
// no separator yields a single part.
func Split(s string) []string {
	sep := FindSeparator(s)
	if sep == "" {
		if t := strings.TrimSpace(s); t != "" {
			return []string{t}
		}
		return nil
	}

	cutset := " \t\r\n" + sep[:1]
	var parts []string
	for _, part := range strings.Split(s, sep) {
		if t := strings.Trim(part, cutset); t != "" {
			parts = append(parts, t)
		}
	}
	return parts
}

// Reconcile turns the raw values of a list field into logical values.
//
// More than one raw value means the tag stored separate entries: each is
// kept as-is, in order, with blanks dropped. A single raw value is split
// on separators.
func Reconcile(raw []string) []string {
	switch len(raw) {
	case 0:
		return nil
	case 1:
		return Split(raw[0])
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// First returns the first raw value of a scalar field. Later repeats are
// ignored. The result is "" when the first value is blank.
func First(raw []string) string {
	if len(raw) == 0 {
		return ""
	}
	return strings.TrimSpace(raw[0])
}

// Join flattens list values into one string for formats that store a
// single value per field.
func Join(values []string) string {
	return strings.Join(values, JoinSeparator)
}
