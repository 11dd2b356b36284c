package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskboard/internal/core/filter"
	"github.com/colonyops/taskboard/internal/core/task"
)

var today = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func titles(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestClassifyDated(t *testing.T) {
	col := task.Collection{Pending: []task.Task{
		{ID: 1, Title: "yesterday", Due: "2024-01-14"},
		{ID: 2, Title: "today", Due: "2024-01-15"},
		{ID: 3, Title: "tomorrow", Due: "2024-01-16"},
		{ID: 4, Title: "next week", Due: "2024-01-22"},
		{ID: 5, Title: "undated"},
	}}

	classify := func(from, to int) []string {
		res := Classify(col, ColumnSpec{
			Kind:  KindDated,
			Range: &DateRange{From: from, To: to},
		}, Context{Today: today})
		return titles(res.Tasks)
	}

	t.Run("today only", func(t *testing.T) {
		assert.Equal(t, []string{"today"}, classify(0, 0))
	})

	t.Run("inclusive endpoints", func(t *testing.T) {
		assert.Equal(t, []string{"today", "tomorrow"}, classify(0, 1))
	})

	t.Run("overdue window", func(t *testing.T) {
		assert.Equal(t, []string{"yesterday"}, classify(-7, -1))
	})

	t.Run("swapped endpoints behave the same", func(t *testing.T) {
		assert.Equal(t, classify(0, 1), classify(1, 0))
	})

	t.Run("undated tasks never appear", func(t *testing.T) {
		assert.NotContains(t, classify(-30, 30), "undated")
	})

	t.Run("missing range yields empty column", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindDated}, Context{Today: today})
		assert.Empty(t, res.Tasks)
	})
}

func TestClassifyUndated(t *testing.T) {
	col := task.Collection{Pending: []task.Task{
		{ID: 1, Title: "dated", Due: "2024-01-15"},
		{ID: 2, Title: "undated"},
	}}

	res := Classify(col, ColumnSpec{Kind: KindUndated}, Context{Today: today})
	assert.Equal(t, []string{"undated"}, titles(res.Tasks))
}

func TestClassifyTags(t *testing.T) {
	col := task.Collection{Pending: []task.Task{
		{ID: 1, Title: "work", Tags: []string{"work"}},
		{ID: 2, Title: "work-urgent", Tags: []string{"work/urgent"}},
		{ID: 3, Title: "home", Tags: []string{"Home"}},
		{ID: 4, Title: "frontmatter-only", FrontmatterTags: []string{"work"}},
		{ID: 5, Title: "bare"},
	}}

	t.Run("exact match is case-insensitive and spans frontmatter", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindNamedTag, TagPattern: "Work"}, Context{Today: today})
		assert.Equal(t, []string{"work", "frontmatter-only"}, titles(res.Tasks))
	})

	t.Run("wildcard pattern", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindNamedTag, TagPattern: "work*"}, Context{Today: today})
		assert.Equal(t, []string{"work", "work-urgent", "frontmatter-only"}, titles(res.Tasks))
	})

	t.Run("untagged", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindUntagged}, Context{Today: today})
		assert.Equal(t, []string{"bare"}, titles(res.Tasks))
	})

	t.Run("other tags excludes sibling-claimed tags", func(t *testing.T) {
		siblings := []ColumnSpec{
			{Kind: KindNamedTag, TagPattern: "work*"},
			{Kind: KindUntagged},
		}
		res := Classify(col, ColumnSpec{Kind: KindOtherTags}, Context{Today: today, Columns: siblings})
		assert.Equal(t, []string{"home"}, titles(res.Tasks))
	})
}

func TestClassifyAttributes(t *testing.T) {
	col := task.Collection{
		Pending: []task.Task{
			{ID: 1, Title: "start", Status: " ", Priority: 1, FilePath: "inbox/a.md"},
			{ID: 2, Title: "doing", Status: "/", Priority: 2, FilePath: "projects/q1/b.md"},
		},
		Completed: []task.Task{
			{ID: 3, Title: "done", Status: "x", Completion: "2024-01-10"},
		},
	}

	t.Run("status matches across pending and completed", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindTaskStatus, Status: "x"}, Context{Today: today})
		assert.Equal(t, []string{"done"}, titles(res.Tasks))
	})

	t.Run("priority exact", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindTaskPriority, Priority: 2}, Context{Today: today})
		assert.Equal(t, []string{"doing"}, titles(res.Tasks))
	})

	t.Run("path substring", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindPathFiltered, Path: "projects"}, Context{Today: today})
		assert.Equal(t, []string{"doing"}, titles(res.Tasks))
	})

	t.Run("path glob", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindPathFiltered, Path: "projects/**/*.md"}, Context{Today: today})
		assert.Equal(t, []string{"doing"}, titles(res.Tasks))
	})

	t.Run("path comma-separated patterns", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindPathFiltered, Path: "archive/**, inbox"}, Context{Today: today})
		assert.Equal(t, []string{"start"}, titles(res.Tasks))
	})

	t.Run("all pending", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindAllPending}, Context{Today: today})
		assert.Len(t, res.Tasks, 2)
	})

	t.Run("unknown kind yields empty, not error", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: "bogus"}, Context{Today: today})
		assert.Empty(t, res.Tasks)
	})
}

func TestClassifyCompleted(t *testing.T) {
	col := task.Collection{Completed: []task.Task{
		{ID: 1, Title: "oldest", Completion: "2024-01-01"},
		{ID: 2, Title: "newest", Completion: "2024-01-12"},
		{ID: 3, Title: "middle", Completion: "2024-01-05"},
	}}

	t.Run("defaults to most recently finished first", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindCompleted}, Context{Today: today})
		assert.Equal(t, []string{"newest", "middle", "oldest"}, titles(res.Tasks))
	})

	t.Run("limit applies after sorting", func(t *testing.T) {
		res := Classify(col, ColumnSpec{Kind: KindCompleted, Limit: 2}, Context{Today: today})
		assert.Equal(t, []string{"newest", "middle"}, titles(res.Tasks))
	})
}

func TestClassifyFilter(t *testing.T) {
	col := task.Collection{Pending: []task.Task{
		{ID: 1, Title: "keep me", Tags: []string{"work"}},
		{ID: 2, Title: "drop me", Tags: []string{"home"}},
	}}

	spec := ColumnSpec{
		Kind: KindAllPending,
		Filter: filter.Expression{
			Combinator: filter.All,
			Groups: []filter.Group{{
				Combinator: filter.All,
				Predicates: []filter.Predicate{{Property: "tags", Comparator: "hasTag", Value: "work"}},
			}},
		},
	}

	res := Classify(col, spec, Context{Today: today})
	assert.Equal(t, []string{"keep me"}, titles(res.Tasks))
}

func TestSorting(t *testing.T) {
	t.Run("priority ascending puts unprioritized last", func(t *testing.T) {
		col := task.Collection{Pending: []task.Task{
			{ID: 1, Title: "none", Priority: 0},
			{ID: 2, Title: "low", Priority: 4},
			{ID: 3, Title: "high", Priority: 1},
		}}
		res := Classify(col, ColumnSpec{
			Kind:         KindAllPending,
			SortCriteria: []SortCriterion{{Field: SortByPriority}},
		}, Context{Today: today})
		assert.Equal(t, []string{"high", "low", "none"}, titles(res.Tasks))
	})

	t.Run("due ascending puts undated last", func(t *testing.T) {
		col := task.Collection{Pending: []task.Task{
			{ID: 1, Title: "later", Due: "2024-02-01"},
			{ID: 2, Title: "none"},
			{ID: 3, Title: "soon", Due: "2024-01-16"},
		}}
		res := Classify(col, ColumnSpec{
			Kind:         KindAllPending,
			SortCriteria: []SortCriterion{{Field: SortByDue}},
		}, Context{Today: today})
		assert.Equal(t, []string{"soon", "later", "none"}, titles(res.Tasks))
	})

	t.Run("secondary criterion breaks ties", func(t *testing.T) {
		col := task.Collection{Pending: []task.Task{
			{ID: 1, Title: "b", Priority: 1},
			{ID: 2, Title: "a", Priority: 1},
		}}
		res := Classify(col, ColumnSpec{
			Kind: KindAllPending,
			SortCriteria: []SortCriterion{
				{Field: SortByPriority},
				{Field: SortByTitle},
			},
		}, Context{Today: today})
		assert.Equal(t, []string{"a", "b"}, titles(res.Tasks))
	})
}

func TestManualOrder(t *testing.T) {
	manualSpec := func(ids []int) ColumnSpec {
		return ColumnSpec{
			Kind:           KindAllPending,
			SortCriteria:   []SortCriterion{{Field: SortByManualOrder}},
			ManualOrderIDs: ids,
		}
	}

	t.Run("stored order applies unchanged", func(t *testing.T) {
		col := task.Collection{Pending: []task.Task{
			{ID: 1, Title: "one"}, {ID: 2, Title: "two"}, {ID: 3, Title: "three"},
		}}
		res := Classify(col, manualSpec([]int{3, 1, 2}), Context{Today: today})

		require.False(t, res.ManualOrderChanged)
		assert.Equal(t, []int{3, 1, 2}, res.ManualOrder)
		assert.Equal(t, []string{"three", "one", "two"}, titles(res.Tasks))
	})

	t.Run("new ids are prepended and missing ids removed", func(t *testing.T) {
		col := task.Collection{Pending: []task.Task{
			{ID: 1, Title: "one"}, {ID: 2, Title: "two"}, {ID: 4, Title: "four"},
		}}
		res := Classify(col, manualSpec([]int{3, 1, 2}), Context{Today: today})

		require.True(t, res.ManualOrderChanged)
		assert.Equal(t, []int{4, 1, 2}, res.ManualOrder)
		assert.Equal(t, []string{"four", "one", "two"}, titles(res.Tasks))
	})

	t.Run("multiple new ids keep their relative order", func(t *testing.T) {
		col := task.Collection{Pending: []task.Task{
			{ID: 5, Title: "five"}, {ID: 6, Title: "six"}, {ID: 1, Title: "one"},
		}}
		res := Classify(col, manualSpec([]int{1}), Context{Today: today})

		require.True(t, res.ManualOrderChanged)
		assert.Equal(t, []int{5, 6, 1}, res.ManualOrder)
	})

	t.Run("tasks without ids trail the column", func(t *testing.T) {
		col := task.Collection{Pending: []task.Task{
			{ID: 0, Title: "unassigned"}, {ID: 1, Title: "one"},
		}}
		res := Classify(col, manualSpec([]int{1}), Context{Today: today})

		assert.Equal(t, []string{"one", "unassigned"}, titles(res.Tasks))
	})
}
