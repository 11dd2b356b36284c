package notation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/colonyops/taskboard/internal/core/datetime"
)

// ErrInvalidFieldValue is returned when a caller asks to render a value
// that is not syntactically valid for the field, e.g. a malformed date.
// Rendering never mutates anything, so callers can treat this as a
// contract violation detected before any text surgery.
var ErrInvalidFieldValue = errors.New("invalid field value")

var (
	idValueRe    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	clockValueRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Render produces the textual form of a field value in the requested
// convention. The output always round-trips through Detect.
func Render(kind FieldKind, value string, n Notation) (string, error) {
	value = strings.TrimSpace(value)
	if err := validate(kind, value); err != nil {
		return "", err
	}

	spec := fieldSpecs[kind]

	switch kind {
	case FieldTime:
		switch n {
		case Plain:
			return "⏰[" + value + "]", nil
		case Spaced:
			return "⏰ [" + value + "]", nil
		}
	case FieldPriority:
		p, _ := strconv.Atoi(value)
		switch n {
		case Plain, Spaced:
			return PriorityGlyphs[p], nil
		}
	case FieldReminder:
		switch n {
		case Plain, Spaced:
			// the paren convention spells date-times with a space
			return "(@" + strings.Replace(value, "T", " ", 1) + ")", nil
		}
	}

	switch n {
	case Plain:
		return spec.glyphLit + value, nil
	case Spaced:
		return spec.glyphLit + " " + value, nil
	case Bracketed:
		return "[" + spec.bracketKey + ":: " + value + "]", nil
	case Annotation:
		return "@" + spec.annotName + "(" + value + ")", nil
	}
	return "", fmt.Errorf("%w: unknown notation %v", ErrInvalidFieldValue, n)
}

// RenderTag formats a tag with its leading hash.
func RenderTag(tag string) string {
	if strings.HasPrefix(tag, "#") {
		return tag
	}
	return "#" + tag
}

func validate(kind FieldKind, value string) error {
	if value == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidFieldValue, kind)
	}

	switch kind {
	case FieldCreatedDate, FieldStartDate, FieldScheduledDate, FieldDueDate,
		FieldCompletionDate, FieldCancelledDate:
		if !datetime.Valid(value) {
			return fmt.Errorf("%w: %s %q", ErrInvalidFieldValue, kind, value)
		}
	case FieldTime:
		if !datetime.ValidTimeSpan(value) {
			return fmt.Errorf("%w: time span %q", ErrInvalidFieldValue, value)
		}
	case FieldPriority:
		p, err := strconv.Atoi(value)
		if err != nil || p < 1 || p > 5 {
			return fmt.Errorf("%w: priority %q", ErrInvalidFieldValue, value)
		}
	case FieldReminder:
		if !datetime.Valid(value) && !clockValueRe.MatchString(value) {
			return fmt.Errorf("%w: reminder %q", ErrInvalidFieldValue, value)
		}
	case FieldID:
		if !idValueRe.MatchString(value) {
			return fmt.Errorf("%w: id %q", ErrInvalidFieldValue, value)
		}
	case FieldDependsOn:
		for _, id := range SplitIDSequence(value) {
			if !idValueRe.MatchString(id) {
				return fmt.Errorf("%w: dependency id %q", ErrInvalidFieldValue, id)
			}
		}
	}
	return nil
}
