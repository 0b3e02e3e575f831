// Package genre resolves raw genre text into genre names.
//
// Raw genres may hold legacy numeric codes in bracket form ("(17)"),
// several names joined by punctuation, or one name per repeated entry.
package genre

import (
	"slices"
	"strconv"
	"strings"

	"github.com/simonhull/audiotag/internal/multivalue"
)

// refinements are the non-numeric bracket codes of ID3v2.3 TCON.
var refinements = map[string]string{
	"RX": "Remix",
	"CR": "Cover",
}

// Resolve turns the raw genre values of one format into an ordered,
// de-duplicated list of names. It returns nil when nothing remains.
//
// A single raw value is parsed for bracket codes and separators. Several
// raw values are separate entries and are kept as-is, except that an
// entry made only of bracket codes is still looked up.
func Resolve(raw []string) []string {
	var out []string
	switch len(raw) {
	case 0:
		return nil
	case 1:
		out = ResolveString(raw[0])
	default:
		for _, v := range raw {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if resolved, rest, ok := parseCodes(v); ok && rest == "" {
				out = append(out, resolved...)
				continue
			}
			out = append(out, v)
		}
	}
	return dedupe(out)
}

// ResolveString parses one raw genre string.
//
// Bracket codes win over any text that directly follows them: "(17)Rock"
// and "(17)" both give Rock, "(17)(6)" gives Rock and Grunge. Unknown codes
// keep their literal bracket form. When the string holds codes anywhere,
// each separated part is scanned for them, so "(17)/(6)" and "Pop, (17)"
// resolve every code. Otherwise the string is split on the first separator
// kind it contains. Bare numbers are names, not codes.
func ResolveString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// "((" escapes a literal parenthesis.
	if strings.HasPrefix(s, "((") {
		return dedupe(multivalue.Split(s[1:]))
	}

	if codeIndex(s) < 0 {
		return dedupe(multivalue.Split(s))
	}

	var out []string
	for _, part := range multivalue.Split(s) {
		out = append(out, resolvePart(part)...)
	}
	return dedupe(out)
}

// resolvePart resolves one separated part. Text before the first code is a
// name of its own; text after the codes is ignored.
func resolvePart(part string) []string {
	i := codeIndex(part)
	if i < 0 {
		return []string{part}
	}

	var out []string
	if name := strings.TrimSpace(part[:i]); name != "" {
		out = append(out, name)
	}
	resolved, _, _ := parseCodes(part[i:])
	return append(out, resolved...)
}

// codeIndex returns the offset of the first bracket code in s, or -1.
func codeIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '(' {
			continue
		}
		if _, _, ok := parseCodes(s[i:]); ok {
			return i
		}
	}
	return -1
}

// parseCodes reads consecutive leading "(N)" groups, allowing blanks
// between them. It returns the resolved names, the text after the last
// group, and whether any group was found.
func parseCodes(s string) ([]string, string, bool) {
	var out []string
	rest := s
	for {
		next := strings.TrimLeft(rest, " ")
		if !strings.HasPrefix(next, "(") {
			break
		}
		end := strings.IndexByte(next, ')')
		if end < 0 {
			break
		}
		name, ok := lookupCode(next[1:end])
		if !ok {
			break
		}
		if name == "" {
			name = next[:end+1]
		}
		out = append(out, name)
		rest = next[end+1:]
	}
	if len(out) == 0 {
		return nil, s, false
	}
	return out, strings.TrimSpace(rest), true
}

// lookupCode resolves the text inside one bracket group. ok is false when
// the text is not a code at all; an empty name means a numeric code that
// is missing from the table.
func lookupCode(inner string) (name string, ok bool) {
	if r, found := refinements[inner]; found {
		return r, true
	}
	if inner == "" || strings.TrimFunc(inner, isDigit) != "" {
		return "", false
	}
	code, err := strconv.Atoi(inner)
	if err != nil {
		return "", true
	}
	n, _ := Name(code)
	return n, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func dedupe(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
