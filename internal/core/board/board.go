// Package board partitions task collections into kanban columns. Each
// column carries a classification rule, an optional filter expression,
// and a sort order; classification is a pure function over the input
// collection except for the manual-order reconciliation, whose result is
// handed back to the caller explicitly.
package board

import (
	"time"

	"github.com/colonyops/taskboard/internal/core/filter"
	"github.com/colonyops/taskboard/internal/core/task"
)

// ColumnKind selects which classification rule a column applies.
type ColumnKind string

const (
	// KindUndated holds pending tasks without the configured date field.
	KindUndated ColumnKind = "undated"
	// KindDated holds pending tasks whose date falls in a day-offset
	// range relative to today.
	KindDated ColumnKind = "dated"
	// KindNamedTag holds tasks carrying a tag matching the column's
	// pattern. The pattern may contain * as a multi-character wildcard.
	KindNamedTag ColumnKind = "namedTag"
	// KindUntagged holds pending tasks with no tags at all.
	KindUntagged ColumnKind = "untagged"
	// KindOtherTags holds pending tasks whose tags match none of the
	// sibling namedTag columns on the same board.
	KindOtherTags ColumnKind = "otherTags"
	// KindTaskStatus holds tasks with an exact status symbol.
	KindTaskStatus ColumnKind = "taskStatus"
	// KindTaskPriority holds tasks with an exact priority level.
	KindTaskPriority ColumnKind = "taskPriority"
	// KindPathFiltered holds tasks whose file path matches a glob or
	// substring pattern.
	KindPathFiltered ColumnKind = "pathFiltered"
	// KindCompleted holds completed tasks, newest first, truncated to
	// the column's limit.
	KindCompleted ColumnKind = "completed"
	// KindAllPending holds every pending task.
	KindAllPending ColumnKind = "allPending"
)

// DateField names which of the task's dates a dated or undated column
// inspects.
type DateField string

const (
	DateDue       DateField = "due"
	DateStart     DateField = "start"
	DateScheduled DateField = "scheduled"
)

// DateRange is a signed day-offset window relative to today, inclusive
// on both ends. From > To is treated as the same window with the
// endpoints swapped.
type DateRange struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// SortCriterion orders a column by one task attribute. Criteria apply in
// list order: the first is the primary key, the rest break ties.
type SortCriterion struct {
	Field     string `json:"field" yaml:"field"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Descending reports whether the criterion sorts high to low.
func (c SortCriterion) Descending() bool { return c.Direction == "desc" }

// ColumnSpec is one user-authored column definition.
type ColumnSpec struct {
	Name string     `json:"name" yaml:"name"`
	Kind ColumnKind `json:"kind" yaml:"kind"`

	DateField  DateField  `json:"dateField,omitempty" yaml:"dateField,omitempty"`
	Range      *DateRange `json:"range,omitempty" yaml:"range,omitempty"`
	TagPattern string     `json:"tagPattern,omitempty" yaml:"tagPattern,omitempty"`
	Status     string     `json:"status,omitempty" yaml:"status,omitempty"`
	Priority   int        `json:"priority,omitempty" yaml:"priority,omitempty"`
	Path       string     `json:"path,omitempty" yaml:"path,omitempty"`
	Limit      int        `json:"limit,omitempty" yaml:"limit,omitempty"`

	Filter         filter.Expression `json:"filter,omitempty" yaml:"filter,omitempty"`
	SortCriteria   []SortCriterion   `json:"sort,omitempty" yaml:"sort,omitempty"`
	ManualOrderIDs []int             `json:"manualOrder,omitempty" yaml:"manualOrder,omitempty"`
}

// dateOf returns the task date the column is configured to inspect.
func (s ColumnSpec) dateOf(t task.Task) string {
	switch s.DateField {
	case DateStart:
		return t.StartDate
	case DateScheduled:
		return t.ScheduledDate
	default:
		return t.Due
	}
}

// Context carries the classification environment: the reference day for
// date-range columns and the sibling columns of the board, which the
// otherTags rule needs.
type Context struct {
	Today   time.Time
	Columns []ColumnSpec
}

// Result is the outcome of classifying one column. ManualOrderChanged
// signals that ManualOrder differs from the column's stored id list and
// must be written back by the caller.
type Result struct {
	Tasks              []task.Task
	ManualOrder        []int
	ManualOrderChanged bool
}
