// Package task defines the task record domain model shared by the codec,
// filter evaluator, and board classifier.
package task

import "strings"

// StatusType is the semantic lifecycle state behind a checkbox symbol.
type StatusType string

const (
	StatusTodo       StatusType = "todo"
	StatusInProgress StatusType = "in_progress"
	StatusDone       StatusType = "done"
	StatusCancelled  StatusType = "cancelled"
)

// Alphabet maps checkbox symbols to their semantic status type.
// The set of symbols is user configurable; every symbol must map to
// exactly one StatusType.
type Alphabet map[string]StatusType

// DefaultAlphabet returns the conventional markdown checkbox mapping.
func DefaultAlphabet() Alphabet {
	return Alphabet{
		" ": StatusTodo,
		"/": StatusInProgress,
		"x": StatusDone,
		"X": StatusDone,
		"-": StatusCancelled,
	}
}

// Type returns the semantic status for a symbol. Unknown symbols report
// ok=false; that is a configuration problem for the caller to surface,
// not something the core guesses around.
func (a Alphabet) Type(symbol string) (StatusType, bool) {
	t, ok := a[symbol]
	return t, ok
}

// Location identifies where a task lives inside its owning document.
// It is carried through for the external writer and never interpreted
// by the codec.
type Location struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
	StartChar int `json:"start_char"`
	EndChar   int `json:"end_char"`
}

// Task is the canonical in-memory representation of one checkbox item.
//
// Date fields hold the canonical YYYY-MM-DD (or YYYY-MM-DDTHH:MM) spelling
// regardless of the textual notation used on disk. A zero ID means the
// task has not been assigned a stable identifier yet.
type Task struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Body            []string   `json:"body,omitempty"`
	Status          string     `json:"status"`
	Priority        int        `json:"priority,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	FrontmatterTags []string   `json:"frontmatter_tags,omitempty"`
	CreatedDate     string     `json:"created_date,omitempty"`
	StartDate       string     `json:"start_date,omitempty"`
	ScheduledDate   string     `json:"scheduled_date,omitempty"`
	Due             string     `json:"due,omitempty"`
	Completion      string     `json:"completion,omitempty"`
	CancelledDate   string     `json:"cancelled_date,omitempty"`
	Time            string     `json:"time,omitempty"`
	Reminder        string     `json:"reminder,omitempty"`
	Recurrence      string     `json:"recurrence,omitempty"`
	DependsOn       []int      `json:"depends_on,omitempty"`
	FilePath        string     `json:"file_path,omitempty"`
	TaskLocation    Location   `json:"task_location"`
}

// AllTags returns the union of task-local tags and document frontmatter
// tags, preserving order and dropping duplicates (case-insensitive).
func (t Task) AllTags() []string {
	seen := make(map[string]struct{}, len(t.Tags)+len(t.FrontmatterTags))
	out := make([]string, 0, len(t.Tags)+len(t.FrontmatterTags))

	for _, lists := range [][]string{t.Tags, t.FrontmatterTags} {
		for _, tag := range lists {
			key := normalizeTag(tag)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// HasTag reports whether the tag union contains the given tag,
// case-insensitively and ignoring a leading '#'.
func (t Task) HasTag(tag string) bool {
	want := normalizeTag(tag)
	for _, have := range t.AllTags() {
		if normalizeTag(have) == want {
			return true
		}
	}
	return false
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(tag, "#"))
}

// Collection holds one scan pass worth of records, partitioned the way
// the classifier consumes them.
type Collection struct {
	Pending   []Task
	Completed []Task
}
