package notation

import "regexp"

// FieldKind identifies one metadata field type on a task line.
type FieldKind int

const (
	FieldCreatedDate FieldKind = iota
	FieldStartDate
	FieldScheduledDate
	FieldDueDate
	FieldCompletionDate
	FieldCancelledDate
	FieldTime
	FieldPriority
	FieldReminder
	FieldDependsOn
	FieldID
	FieldRecurrence
	FieldTag
)

var fieldNames = map[FieldKind]string{
	FieldCreatedDate:    "createdDate",
	FieldStartDate:      "startDate",
	FieldScheduledDate:  "scheduledDate",
	FieldDueDate:        "dueDate",
	FieldCompletionDate: "completionDate",
	FieldCancelledDate:  "cancelledDate",
	FieldTime:           "time",
	FieldPriority:       "priority",
	FieldReminder:       "reminder",
	FieldDependsOn:      "dependsOn",
	FieldID:             "id",
	FieldRecurrence:     "recurrence",
	FieldTag:            "tag",
}

func (k FieldKind) String() string { return fieldNames[k] }

// SingleValueFields lists the fields that appear at most once per task
// line, in the order the codec processes them. Tags are multi-valued and
// handled separately.
var SingleValueFields = []FieldKind{
	FieldID,
	FieldPriority,
	FieldTime,
	FieldCreatedDate,
	FieldStartDate,
	FieldScheduledDate,
	FieldDueDate,
	FieldReminder,
	FieldDependsOn,
	FieldRecurrence,
	FieldCompletionDate,
	FieldCancelledDate,
}

// PriorityGlyphs maps the 1 (highest) to 5 (lowest) priority scale to its
// glyph. 0 means no priority and has no glyph.
var PriorityGlyphs = map[int]string{
	1: "🔺",
	2: "⏫",
	3: "🔼",
	4: "🔽",
	5: "⏬",
}

var glyphPriorities = func() map[string]int {
	m := make(map[string]int, len(PriorityGlyphs))
	for p, g := range PriorityGlyphs {
		m[g] = p
	}
	return m
}()

const (
	dateValue = `(\d{4}-\d{2}-\d{2}|\d{2}-\d{2}-\d{4})`
	// completion and reminder values may carry a time-of-day
	dateTimeValue = `(\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2})?)?|\d{2}-\d{2}-\d{4})`
	timeSpanValue = `(\d{2}:\d{2}\s*-\s*\d{2}:\d{2})`
	idValue       = `([a-zA-Z0-9_-]+)`
	idSeqValue    = `([a-zA-Z0-9_-]+(?:\s*,\s*[a-zA-Z0-9_-]+)*)`
	// optional Variant Selector 16 after an emoji glyph
	vs16 = `\x{FE0F}?`
)

// fieldSpec holds the detection patterns and render vocabulary for one
// field. The glyph regex covers both the Plain and Spaced conventions
// (whitespace between glyph and value is optional on detection).
type fieldSpec struct {
	glyph      *regexp.Regexp
	bracket    *regexp.Regexp
	annotation *regexp.Regexp

	glyphLit   string // glyph used when rendering
	bracketKey string // key inside [key:: value]
	annotName  string // name inside @name(value)
}

func dateSpec(glyphs, renderGlyph, key, annot, value string) fieldSpec {
	return fieldSpec{
		glyph:      regexp.MustCompile(glyphs + vs16 + `\s*` + value),
		bracket:    regexp.MustCompile(`\[` + key + `::\s*` + value + `\s*\]`),
		annotation: regexp.MustCompile(`@` + annot + `\(\s*` + value + `\s*\)`),
		glyphLit:   renderGlyph,
		bracketKey: key,
		annotName:  annot,
	}
}

var fieldSpecs = map[FieldKind]fieldSpec{
	FieldCreatedDate:    dateSpec(`➕`, "➕", "created", "created", dateValue),
	FieldStartDate:      dateSpec(`🛫`, "🛫", "start", "start", dateValue),
	FieldScheduledDate:  dateSpec(`(?:⏳|⌛)`, "⏳", "scheduled", "scheduled", dateValue),
	FieldDueDate:        dateSpec(`(?:📅|📆|🗓)`, "📅", "due", "due", dateValue),
	FieldCompletionDate: dateSpec(`✅`, "✅", "completion", "completion", dateTimeValue),
	FieldCancelledDate:  dateSpec(`❌`, "❌", "cancelled", "cancelled", dateValue),
	FieldTime: {
		glyph:      regexp.MustCompile(`⏰` + vs16 + `\s*\[?` + timeSpanValue + `\]?`),
		bracket:    regexp.MustCompile(`\[time::\s*(.*?)\]`),
		annotation: regexp.MustCompile(`@time\(\s*(.*?)\s*\)`),
		glyphLit:   "⏰",
		bracketKey: "time",
		annotName:  "time",
	},
	FieldPriority: {
		glyph:      regexp.MustCompile(`(🔺|⏫|🔼|🔽|⏬)` + vs16),
		bracket:    regexp.MustCompile(`\[priority::\s*(\d{1,2})\s*\]`),
		annotation: regexp.MustCompile(`@priority\(\s*(\d{1,2})\s*\)`),
		bracketKey: "priority",
		annotName:  "priority",
	},
	FieldReminder: {
		glyph:      regexp.MustCompile(`\(@(\d{4}-\d{2}-\d{2}(?: \d{2}:\d{2})?|\d{2}:\d{2})\)`),
		bracket:    regexp.MustCompile(`\[reminder::\s*(.*?)\]`),
		annotation: regexp.MustCompile(`@reminder\(\s*(.*?)\s*\)`),
		bracketKey: "reminder",
		annotName:  "reminder",
	},
	FieldDependsOn: {
		glyph:      regexp.MustCompile(`⛔` + vs16 + `\s*` + idSeqValue),
		bracket:    regexp.MustCompile(`\[depends on::\s*(.*?)\]`),
		annotation: regexp.MustCompile(`@dependsOn\(\s*(.*?)\s*\)`),
		glyphLit:   "⛔",
		bracketKey: "depends on",
		annotName:  "dependsOn",
	},
	FieldID: {
		glyph:      regexp.MustCompile(`🆔` + vs16 + `\s*` + idValue),
		bracket:    regexp.MustCompile(`\[id::\s*` + idValue + `\s*\]`),
		annotation: regexp.MustCompile(`@id\(\s*` + idValue + `\s*\)`),
		glyphLit:   "🆔",
		bracketKey: "id",
		annotName:  "id",
	},
	FieldRecurrence: {
		glyph:      regexp.MustCompile(`🔁` + vs16 + `\s*([a-zA-Z0-9, !]+)`),
		bracket:    regexp.MustCompile(`\[repeat::\s*(.*?)\]`),
		annotation: regexp.MustCompile(`@recurrence\(\s*(.*?)\s*\)`),
		glyphLit:   "🔁",
		bracketKey: "repeat",
		annotName:  "recurrence",
	},
}

// tagPattern matches inline hash tags. The leading boundary keeps URLs
// and mid-word hashes out; brackets are excluded from the tag body so a
// hash inside a wiki link never matches.
var tagPattern = regexp.MustCompile(`(^|\s)#([^\s!@#$%^&*(),.?":{}|<>\[\]]+)`)
