package codec

import (
	"github.com/colonyops/taskboard/internal/core/notation"
	"github.com/colonyops/taskboard/internal/core/task"
)

// ApplyStatusTransition updates rec for a status change to symbol. A move
// into done stamps the completion date and clears any cancellation; a
// move into cancelled does the reverse; any other status clears both.
// The now func supplies the timestamp so callers control the clock.
func ApplyStatusTransition(rec task.Task, symbol string, typ task.StatusType, now func() string) task.Task {
	rec.Status = symbol

	switch typ {
	case task.StatusDone:
		rec.Completion = now()
		rec.CancelledDate = ""
	case task.StatusCancelled:
		rec.CancelledDate = now()
		rec.Completion = ""
	default:
		rec.Completion = ""
		rec.CancelledDate = ""
	}

	return rec
}

// StripMetadataForDisplay removes the named fields from a raw task line,
// collapsing the whitespace left behind. Stripping is idempotent and
// never touches fields outside hidden.
func StripMetadataForDisplay(rawLine string, hidden []notation.FieldKind) string {
	line := rawLine
	for _, kind := range hidden {
		for {
			if kind == notation.FieldTag {
				matches := notation.DetectTags(line)
				if len(matches) == 0 {
					break
				}
				for i := len(matches) - 1; i >= 0; i-- {
					line = removeSpan(line, matches[i].Start, matches[i].End)
				}
				continue
			}
			m, ok := notation.Detect(kind, line)
			if !ok {
				break
			}
			line = removeSpan(line, m.Start, m.End)
		}
	}
	return line
}
