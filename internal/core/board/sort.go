package board

import (
	"sort"
	"strings"

	"github.com/colonyops/taskboard/internal/core/datetime"
	"github.com/colonyops/taskboard/internal/core/task"
)

// Sort criterion field names.
const (
	SortByPriority    = "priority"
	SortByDue         = "dueDate"
	SortByStart       = "startDate"
	SortByScheduled   = "scheduledDate"
	SortByCreated     = "createdDate"
	SortByCompletion  = "completionDate"
	SortByTitle       = "title"
	SortByID          = "id"
	SortByManualOrder = "manualOrder"
)

// sortTasks applies the column's criteria. A manualOrder criterion is
// exclusive: it replaces every other key and may heal the persisted id
// list, which is surfaced on the result.
func sortTasks(tasks []task.Task, spec ColumnSpec) Result {
	for _, c := range spec.SortCriteria {
		if c.Field == SortByManualOrder {
			return applyManualOrder(tasks, spec.ManualOrderIDs)
		}
	}

	criteria := spec.SortCriteria
	if len(criteria) == 0 && spec.Kind == KindCompleted {
		// Completed buckets default to most recently finished first.
		criteria = []SortCriterion{{Field: SortByCompletion, Direction: "desc"}}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		for _, c := range criteria {
			cmp := compareBy(tasks[i], tasks[j], c.Field)
			if cmp == 0 {
				continue
			}
			if c.Descending() {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	return Result{Tasks: tasks}
}

// compareBy orders a before b when negative. Missing values (priority 0,
// empty dates) always sort last regardless of direction.
func compareBy(a, b task.Task, field string) int {
	switch field {
	case SortByPriority:
		return comparePriority(a.Priority, b.Priority)
	case SortByDue:
		return compareDates(a.Due, b.Due)
	case SortByStart:
		return compareDates(a.StartDate, b.StartDate)
	case SortByScheduled:
		return compareDates(a.ScheduledDate, b.ScheduledDate)
	case SortByCreated:
		return compareDates(a.CreatedDate, b.CreatedDate)
	case SortByCompletion:
		return compareDates(a.Completion, b.Completion)
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByID:
		return a.ID - b.ID
	}
	return 0
}

func comparePriority(a, b int) int {
	switch {
	case a == b:
		return 0
	case a == 0:
		return 1
	case b == 0:
		return -1
	default:
		return a - b
	}
}

func compareDates(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	da, okA := datetime.ParseDate(a)
	db, okB := datetime.ParseDate(b)
	if !okA || !okB {
		return 0
	}
	switch {
	case da.Before(db):
		return -1
	case db.Before(da):
		return 1
	default:
		return 0
	}
}

// applyManualOrder reconciles the persisted id order against the current
// result set: unseen ids are prepended in their result order, ids whose
// records are gone are removed, and survivors keep their order. Records
// without an id yet trail the list.
func applyManualOrder(tasks []task.Task, orderIDs []int) Result {
	byID := make(map[int]task.Task, len(tasks))
	var unassigned []task.Task
	for _, t := range tasks {
		if t.ID == 0 {
			unassigned = append(unassigned, t)
			continue
		}
		byID[t.ID] = t
	}

	known := make(map[int]bool, len(orderIDs))
	for _, id := range orderIDs {
		known[id] = true
	}

	changed := false

	var healed []int
	for _, t := range tasks {
		if t.ID != 0 && !known[t.ID] {
			healed = append(healed, t.ID)
			changed = true
		}
	}
	for _, id := range orderIDs {
		if _, ok := byID[id]; !ok {
			changed = true
			continue
		}
		healed = append(healed, id)
	}

	ordered := make([]task.Task, 0, len(tasks))
	for _, id := range healed {
		ordered = append(ordered, byID[id])
	}
	ordered = append(ordered, unassigned...)

	return Result{Tasks: ordered, ManualOrder: healed, ManualOrderChanged: changed}
}
