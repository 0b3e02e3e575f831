package types

import (
	"maps"
	"slices"
	"strings"
)

// Metadata is the unified, format-independent view of a file's tags.
//
// Values are string, []string or int according to Key.Shape. A key is
// present only when a format carried a non-empty value for it. In a write
// request a nil value clears the field.
type Metadata map[Key]any

// String returns the string value for k, or "".
func (m Metadata) String(k Key) string {
	s, _ := m[k].(string)
	return s
}

// Strings returns the list value for k as a copy.
func (m Metadata) Strings(k Key) []string {
	l, _ := m[k].([]string)
	return slices.Clone(l)
}

// Int returns the integer value for k.
func (m Metadata) Int(k Key) (int, bool) {
	n, ok := m[k].(int)
	return n, ok
}

// Has reports whether m holds a non-empty value for k.
func (m Metadata) Has(k Key) bool {
	v, ok := m[k]
	return ok && !IsEmptyValue(v)
}

// Merge copies every key of other that m lacks. Existing keys are never
// overwritten.
//
// Example:
//
//	merged := Metadata{}
//	for _, f := range container.Formats() {
//		merged.Merge(perFormat[f])
//	}
func (m Metadata) Merge(other Metadata) {
	for k, v := range other {
		if m.Has(k) || IsEmptyValue(v) {
			continue
		}
		m[k] = cloneValue(v)
	}
}

// Clone returns a deep copy.
func (m Metadata) Clone() Metadata {
	c := make(Metadata, len(m))
	for k, v := range m {
		c[k] = cloneValue(v)
	}
	return c
}

// Keys returns the keys present in m in AllKeys order.
func (m Metadata) Keys() []Key {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b Key) int {
		return slices.Index(AllKeys, a) - slices.Index(AllKeys, b)
	})
	return keys
}

// Validate checks every key is known and every value matches its shape.
// nil values are accepted.
func (m Metadata) Validate() error {
	for _, k := range m.Keys() {
		if err := CheckValue(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// CheckValue checks that v matches the declared shape of k.
func CheckValue(k Key, v any) error {
	if v == nil {
		return nil
	}
	ok := false
	switch k.Shape() {
	case ShapeString:
		_, ok = v.(string)
	case ShapeList:
		_, ok = v.([]string)
	case ShapeInt:
		_, ok = v.(int)
	}
	if !ok || !k.Valid() {
		return &InvalidMetadataTypeError{Key: k, Want: k.Shape(), Got: v}
	}
	return nil
}

// IsEmptyValue reports whether v carries no data: nil, blank strings and
// lists of blank strings.
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		for _, s := range val {
			if strings.TrimSpace(s) != "" {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func cloneValue(v any) any {
	if l, ok := v.([]string); ok {
		return slices.Clone(l)
	}
	return v
}
