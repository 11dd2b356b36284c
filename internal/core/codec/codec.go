// Package codec encodes and decodes task records to and from single lines
// of markdown text. Parsing accepts any mix of the four metadata
// conventions; serialization performs minimal in-place surgery so that
// text the user wrote survives unchanged.
package codec

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/colonyops/taskboard/internal/core/datetime"
	"github.com/colonyops/taskboard/internal/core/notation"
	"github.com/colonyops/taskboard/internal/core/task"
)

var (
	// ErrMalformedTaskLine is returned when a line has no checkbox prefix.
	ErrMalformedTaskLine = errors.New("malformed task line: no checkbox prefix")
	// ErrFieldRenderConflict is returned when two fields claim overlapping
	// spans of the serialized text.
	ErrFieldRenderConflict = errors.New("field render conflict")
)

// Line structure: indentation (incl. blockquote markers), list marker,
// checkbox with status symbol, then the rest of the line.
var (
	taskLineRe    = regexp.MustCompile(`^([\s>]*)([-*+]|[0-9]+[.)]) +\[(.)\] *(.*)$`)
	checkboxRe    = regexp.MustCompile(`\[(.)\]`)
	timeAtStartRe = regexp.MustCompile(`^\s*(\d{2}:\d{2}\s*-\s*\d{2}:\d{2})\s*`)
)

// Codec parses and serializes task lines. The status alphabet and the
// default notation for newly written fields come from caller
// configuration.
type Codec struct {
	Alphabet        task.Alphabet
	DefaultNotation notation.Notation
}

// New returns a codec with the given status alphabet and default
// notation for appended fields.
func New(alphabet task.Alphabet, def notation.Notation) *Codec {
	return &Codec{Alphabet: alphabet, DefaultNotation: def}
}

// IsTaskLine reports whether line carries a checkbox prefix.
func IsTaskLine(line string) bool {
	return taskLineRe.MatchString(line)
}

// ParseTask extracts a task record from a raw line and its body lines.
// Metadata is detected across all four conventions; whatever text is left
// after removing matched fields becomes the title. Body lines are copied
// verbatim.
func (c *Codec) ParseTask(rawLine string, bodyLines []string) (task.Task, error) {
	m := taskLineRe.FindStringSubmatch(rawLine)
	if m == nil {
		return task.Task{}, ErrMalformedTaskLine
	}

	t := task.Task{
		Status: m[3],
		Body:   append([]string(nil), bodyLines...),
	}

	rest := m[4]

	// Day-planner style puts the time span directly after the checkbox.
	if loc := timeAtStartRe.FindStringSubmatchIndex(rest); loc != nil {
		t.Time = rest[loc[2]:loc[3]]
		rest = rest[loc[1]:]
	}

	title := rest
	for _, kind := range notation.SingleValueFields {
		fm, ok := notation.Detect(kind, title)
		if !ok {
			continue
		}
		c.assignField(&t, kind, fm.Value)
		title = removeSpan(title, fm.Start, fm.End)
	}

	tags := notation.DetectTags(title)
	for i := len(tags) - 1; i >= 0; i-- {
		title = removeSpan(title, tags[i].Start, tags[i].End)
	}
	for _, tm := range tags {
		t.Tags = append(t.Tags, strings.TrimPrefix(tm.Value, "#"))
	}

	t.Title = strings.TrimSpace(collapseSpaces(title))

	// A clock-only reminder resolves against the first available date.
	if t.Reminder != "" && !strings.Contains(t.Reminder, "-") {
		if base := firstDate(t); base != "" {
			t.Reminder = base + "T" + t.Reminder
		}
	}

	return t, nil
}

func (c *Codec) assignField(t *task.Task, kind notation.FieldKind, value string) {
	switch kind {
	case notation.FieldID:
		if id, err := strconv.Atoi(value); err == nil {
			t.ID = id
		}
	case notation.FieldPriority:
		if p, err := strconv.Atoi(value); err == nil && p >= 1 && p <= 5 {
			t.Priority = p
		}
	case notation.FieldTime:
		if t.Time == "" {
			t.Time = value
		}
	case notation.FieldCreatedDate:
		t.CreatedDate = datetime.Canonical(value)
	case notation.FieldStartDate:
		t.StartDate = datetime.Canonical(value)
	case notation.FieldScheduledDate:
		t.ScheduledDate = datetime.Canonical(value)
	case notation.FieldDueDate:
		t.Due = datetime.Canonical(value)
	case notation.FieldCompletionDate:
		t.Completion = datetime.Canonical(value)
	case notation.FieldCancelledDate:
		t.CancelledDate = datetime.Canonical(value)
	case notation.FieldReminder:
		t.Reminder = strings.Replace(value, " ", "T", 1)
	case notation.FieldRecurrence:
		t.Recurrence = strings.TrimSpace(value)
	case notation.FieldDependsOn:
		for _, id := range notation.SplitIDSequence(value) {
			n, err := strconv.Atoi(id)
			if err != nil {
				continue
			}
			if !containsInt(t.DependsOn, n) {
				t.DependsOn = append(t.DependsOn, n)
			}
		}
	}
}

// StatusType resolves the semantic status of t against the codec's
// alphabet.
func (c *Codec) StatusType(t task.Task) (task.StatusType, bool) {
	return c.Alphabet.Type(t.Status)
}

func firstDate(t task.Task) string {
	for _, d := range []string{t.StartDate, t.ScheduledDate, t.Due} {
		if d != "" {
			return dateOnly(d)
		}
	}
	return ""
}

func dateOnly(d string) string {
	if i := strings.IndexAny(d, "T "); i > 0 {
		return d[:i]
	}
	return d
}

// removeSpan deletes text[start:end] and swallows one neighboring space
// so the deletion does not leave a double gap behind.
func removeSpan(text string, start, end int) string {
	if start > 0 && text[start-1] == ' ' {
		start--
	} else if end < len(text) && text[end] == ' ' {
		end++
	}
	return text[:start] + text[end:]
}

func collapseSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

func containsInt(xs []int, n int) bool {
	for _, x := range xs {
		if x == n {
			return true
		}
	}
	return false
}
