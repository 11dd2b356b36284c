package notation

import (
	"regexp"
	"strings"
)

// Match describes one detected field occurrence inside a task line.
// Offsets are byte positions into the searched string.
type Match struct {
	Start    int
	End      int
	Raw      string    // the exact matched text
	Value    string    // the canonical field value (priority as "1".."5")
	Notation Notation  // the convention the occurrence was written in
}

// Detect returns the first occurrence of the field in text, scanning all
// four conventions and picking the leftmost match. Detection never fails;
// absence is reported with ok=false.
func Detect(kind FieldKind, text string) (Match, bool) {
	spec, ok := fieldSpecs[kind]
	if !ok {
		return Match{}, false
	}

	best := Match{Start: -1}
	consider := func(re *regexp.Regexp, n Notation) {
		if re == nil {
			return
		}
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			return
		}
		if best.Start >= 0 && loc[0] >= best.Start {
			return
		}
		m := Match{
			Start:    loc[0],
			End:      loc[1],
			Raw:      text[loc[0]:loc[1]],
			Notation: n,
		}
		if len(loc) >= 4 && loc[2] >= 0 {
			m.Value = text[loc[2]:loc[3]]
		}
		best = m
	}

	consider(spec.glyph, Plain)
	consider(spec.bracket, Bracketed)
	consider(spec.annotation, Annotation)

	if best.Start < 0 {
		return Match{}, false
	}

	if best.Notation == Plain && best.Value != "" {
		// The glyph pattern covers both the Plain and Spaced conventions;
		// whitespace between glyph and value tells them apart.
		if idx := strings.Index(best.Raw, best.Value); idx > 0 {
			if strings.ContainsAny(best.Raw[:idx], " \t") {
				best.Notation = Spaced
			}
		}
	}

	if kind == FieldPriority && best.Notation != Bracketed && best.Notation != Annotation {
		if p, ok := glyphPriorities[strings.TrimSuffix(best.Value, "️")]; ok {
			best.Value = priorityString(p)
		}
	}

	return best, true
}

// DetectTags returns every inline hash tag in text, in order of
// appearance. Match values carry the leading '#'.
func DetectTags(text string) []Match {
	locs := tagPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]Match, 0, len(locs))
	for _, loc := range locs {
		// group 2 is the tag body; the '#' sits one byte before it
		start := loc[4] - 1
		m := Match{
			Start:    start,
			End:      loc[5],
			Raw:      text[start:loc[5]],
			Value:    text[start:loc[5]],
			Notation: Plain,
		}
		out = append(out, m)
	}
	return out
}

// SplitIDSequence splits a comma-separated dependency id list into its
// individual ids, dropping empties.
func SplitIDSequence(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func priorityString(p int) string {
	return string(rune('0' + p))
}
