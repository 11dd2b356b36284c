// Package notation implements per-field encode/decode rules for the four
// inline metadata conventions a task line can carry: bare glyph, glyph
// with a space, bracketed key-value, and annotation call. Detection
// patterns live in a static table keyed by field kind so that adding a
// field or convention is a data change.
package notation

import "fmt"

// Notation identifies one of the four textual conventions for a
// metadata field.
type Notation int

const (
	// Plain is the glyph immediately followed by the value: 📅2024-01-20
	Plain Notation = iota
	// Spaced is the glyph, a space, then the value: 📅 2024-01-20
	Spaced
	// Bracketed is the key-value form: [due:: 2024-01-20]
	Bracketed
	// Annotation is the call form: @due(2024-01-20)
	Annotation
)

var notationNames = map[Notation]string{
	Plain:      "plain",
	Spaced:     "spaced",
	Bracketed:  "bracketed",
	Annotation: "annotation",
}

func (n Notation) String() string {
	if s, ok := notationNames[n]; ok {
		return s
	}
	return fmt.Sprintf("notation(%d)", int(n))
}

// Parse returns the Notation named by s.
func Parse(s string) (Notation, error) {
	for n, name := range notationNames {
		if name == s {
			return n, nil
		}
	}
	return Plain, fmt.Errorf("unknown notation %q", s)
}
