package codec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/colonyops/taskboard/internal/core/datetime"
	"github.com/colonyops/taskboard/internal/core/notation"
	"github.com/colonyops/taskboard/internal/core/task"
)

// SerializeTask rewrites previousRawLine so it reflects rec. Each field
// that differs from what the text currently carries is replaced in place
// (keeping the notation already in use), appended in the default notation
// when absent, or deleted when cleared. Fields that did not change are
// left byte-for-byte intact; if nothing changed the input is returned
// unchanged.
//
// Invalid field values on rec are rejected before any mutation; the
// original text is returned alongside the error.
func (c *Codec) SerializeTask(previousRawLine string, rec task.Task) (string, error) {
	if err := c.validateRecord(rec); err != nil {
		return previousRawLine, err
	}

	if strings.TrimSpace(previousRawLine) == "" {
		return c.composeLine(rec), nil
	}

	if taskLineRe.FindStringSubmatch(previousRawLine) == nil {
		return previousRawLine, ErrMalformedTaskLine
	}

	if err := checkSpanConflicts(previousRawLine); err != nil {
		return previousRawLine, err
	}

	line := previousRawLine

	// Status symbol lives in the first checkbox occurrence.
	if m := checkboxRe.FindStringSubmatchIndex(line); m != nil {
		current := line[m[2]:m[3]]
		if current != rec.Status {
			line = line[:m[2]] + rec.Status + line[m[3]:]
		}
	}

	for _, kind := range notation.SingleValueFields {
		var err error
		line, err = c.sanitizeField(line, kind, fieldValue(rec, kind))
		if err != nil {
			return previousRawLine, err
		}
	}

	line = sanitizeTags(line, rec.Tags)
	line = c.sanitizeTitle(line, rec.Title)

	return line, nil
}

// sanitizeTitle swaps the title text in place when it changed, leaving
// surrounding metadata untouched.
func (c *Codec) sanitizeTitle(line, want string) string {
	parsed, err := c.ParseTask(line, nil)
	if err != nil || parsed.Title == want {
		return line
	}
	if parsed.Title == "" {
		if m := checkboxRe.FindStringIndex(line); m != nil {
			return line[:m[1]] + " " + want + line[m[1]:]
		}
		return line
	}
	return strings.Replace(line, parsed.Title, want, 1)
}

// sanitizeField performs the locate-and-replace surgery for one field:
// replace in place when the value changed, append when missing, delete
// when cleared.
func (c *Codec) sanitizeField(line string, kind notation.FieldKind, want string) (string, error) {
	m, found := notation.Detect(kind, line)

	switch {
	case !found && want == "":
		return line, nil

	case !found:
		rendered, err := notation.Render(kind, want, c.DefaultNotation)
		if err != nil {
			return line, err
		}
		return appendField(line, rendered), nil

	case want == "":
		return removeSpan(line, m.Start, m.End), nil

	default:
		if fieldEqual(kind, m.Value, want) {
			return line, nil
		}
		rendered, err := notation.Render(kind, want, m.Notation)
		if err != nil {
			return line, err
		}
		// Some glyph captures include trailing whitespace; keep it so the
		// separator to the next token survives the replacement.
		raw := line[m.Start:m.End]
		rendered += raw[len(strings.TrimRight(raw, " \t")):]
		return line[:m.Start] + rendered + line[m.End:], nil
	}
}

// sanitizeTags reconciles the inline tag set with want: tags no longer
// wanted are removed, new tags are appended, and tags that remain keep
// their original position and spelling.
func sanitizeTags(line string, want []string) string {
	wanted := make(map[string]bool, len(want))
	for _, tag := range want {
		wanted[normalizeTag(tag)] = true
	}

	matches := notation.DetectTags(line)
	present := make(map[string]bool, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		key := normalizeTag(matches[i].Value)
		if !wanted[key] {
			line = removeSpan(line, matches[i].Start, matches[i].End)
			continue
		}
		present[key] = true
	}

	for _, tag := range want {
		if !present[normalizeTag(tag)] {
			line = appendField(line, notation.RenderTag(tag))
		}
	}

	return line
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(tag, "#"))
}

// appendField adds rendered to the end of the line with single-space
// separation, ahead of a trailing block link when one is present.
func appendField(line, rendered string) string {
	trimmed := strings.TrimRight(line, " \t")
	return trimmed + " " + rendered
}

// fieldValue returns the canonical string value rec carries for kind,
// empty when the field is unset.
func fieldValue(rec task.Task, kind notation.FieldKind) string {
	switch kind {
	case notation.FieldID:
		if rec.ID == 0 {
			return ""
		}
		return strconv.Itoa(rec.ID)
	case notation.FieldPriority:
		if rec.Priority == 0 {
			return ""
		}
		return strconv.Itoa(rec.Priority)
	case notation.FieldTime:
		return rec.Time
	case notation.FieldCreatedDate:
		return rec.CreatedDate
	case notation.FieldStartDate:
		return rec.StartDate
	case notation.FieldScheduledDate:
		return rec.ScheduledDate
	case notation.FieldDueDate:
		return rec.Due
	case notation.FieldCompletionDate:
		return rec.Completion
	case notation.FieldCancelledDate:
		return rec.CancelledDate
	case notation.FieldReminder:
		return rec.Reminder
	case notation.FieldRecurrence:
		return rec.Recurrence
	case notation.FieldDependsOn:
		if len(rec.DependsOn) == 0 {
			return ""
		}
		ids := make([]string, len(rec.DependsOn))
		for i, id := range rec.DependsOn {
			ids[i] = strconv.Itoa(id)
		}
		return strings.Join(ids, ", ")
	}
	return ""
}

// fieldEqual compares a detected raw value against the record's value in
// the field's canonical domain, so 20-01-2024 on disk equals 2024-01-20
// on the record.
func fieldEqual(kind notation.FieldKind, detected, want string) bool {
	switch kind {
	case notation.FieldCreatedDate, notation.FieldStartDate, notation.FieldScheduledDate,
		notation.FieldDueDate, notation.FieldCompletionDate, notation.FieldCancelledDate:
		return datetime.Canonical(detected) == datetime.Canonical(want)
	case notation.FieldReminder:
		d := strings.Replace(detected, " ", "T", 1)
		if d == want {
			return true
		}
		// A clock-only occurrence was resolved against the task's first
		// date during parsing.
		return !strings.Contains(detected, "-") && strings.HasSuffix(want, "T"+detected)
	case notation.FieldRecurrence:
		return strings.TrimSpace(detected) == strings.TrimSpace(want)
	case notation.FieldDependsOn:
		a := notation.SplitIDSequence(detected)
		b := notation.SplitIDSequence(want)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	case notation.FieldTime:
		return strings.ReplaceAll(detected, " ", "") == strings.ReplaceAll(want, " ", "")
	default:
		return detected == want
	}
}

func (c *Codec) validateRecord(rec task.Task) error {
	for _, kind := range notation.SingleValueFields {
		v := fieldValue(rec, kind)
		if v == "" {
			continue
		}
		if _, err := notation.Render(kind, v, c.DefaultNotation); err != nil {
			return err
		}
	}
	return nil
}

// checkSpanConflicts detects two fields claiming overlapping text, which
// indicates a notation ambiguity the codec must not paper over.
func checkSpanConflicts(line string) error {
	type span struct {
		kind       notation.FieldKind
		start, end int
	}

	var spans []span
	for _, kind := range notation.SingleValueFields {
		if m, ok := notation.Detect(kind, line); ok {
			spans = append(spans, span{kind: kind, start: m.Start, end: m.End})
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return fmt.Errorf("%w: %s overlaps %s", ErrFieldRenderConflict,
				spans[i-1].kind, spans[i].kind)
		}
	}
	return nil
}

// composeLine builds a task line from scratch, used when there is no
// previous text to patch.
func (c *Codec) composeLine(rec task.Task) string {
	var b strings.Builder
	b.WriteString("- [")
	if rec.Status == "" {
		b.WriteString(" ")
	} else {
		b.WriteString(rec.Status)
	}
	b.WriteString("] ")
	b.WriteString(rec.Title)

	for _, tag := range rec.Tags {
		b.WriteString(" ")
		b.WriteString(notation.RenderTag(tag))
	}

	for _, kind := range notation.SingleValueFields {
		v := fieldValue(rec, kind)
		if v == "" {
			continue
		}
		rendered, err := notation.Render(kind, v, c.DefaultNotation)
		if err != nil {
			continue
		}
		b.WriteString(" ")
		b.WriteString(rendered)
	}

	return b.String()
}

// FormatTask renders the full text block for a task: the serialized line
// followed by its body lines, verbatim.
func (c *Codec) FormatTask(rec task.Task, line string) string {
	if len(rec.Body) == 0 {
		return line
	}
	return line + "\n" + strings.Join(rec.Body, "\n")
}
