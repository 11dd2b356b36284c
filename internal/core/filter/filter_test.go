package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/taskboard/internal/core/task"
)

func sampleTask() task.Task {
	return task.Task{
		ID:              7,
		Title:           "Write quarterly report",
		Status:          " ",
		Priority:        2,
		Tags:            []string{"work", "Writing", "#urgent"},
		FrontmatterTags: []string{"office"},
		Due:             "2024-01-20",
		StartDate:       "2024-01-10",
		Reminder:        "2024-01-20T09:00",
		DependsOn:       []int{3, 9},
		Body:            []string{"collect figures", "draft summary"},
		FilePath:        "projects/q1/report.md",
	}
}

func TestEvaluatePredicate(t *testing.T) {
	rec := sampleTask()

	tests := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"string is, case-insensitive", Predicate{"title", "is", "write QUARTERLY report"}, true},
		{"string isNot", Predicate{"title", "isNot", "other"}, true},
		{"string contains", Predicate{"title", "contains", "quarterly"}, true},
		{"string doesNotContain", Predicate{"title", "doesNotContain", "annual"}, true},
		{"string startsWith", Predicate{"title", "startsWith", "write"}, true},
		{"string endsWith", Predicate{"title", "endsWith", "report"}, true},
		{"number greater", Predicate{"priority", ">", "1"}, true},
		{"number less fails", Predicate{"priority", "<", "2"}, false},
		{"number gte boundary", Predicate{"priority", ">=", "2"}, true},
		{"number equals", Predicate{"id", "=", "7"}, true},
		{"non-numeric operand degrades to false", Predicate{"priority", ">", "high"}, false},
		{"date before", Predicate{"due", "before", "2024-02-01"}, true},
		{"date after fails", Predicate{"due", "after", "2024-02-01"}, false},
		{"date onOrBefore boundary", Predicate{"due", "onOrBefore", "2024-01-20"}, true},
		{"date onOrAfter boundary", Predicate{"due", "onOrAfter", "2024-01-20"}, true},
		{"date equals ignores time of day", Predicate{"due", "=", "2024-01-20"}, true},
		{"hasTag exact membership", Predicate{"tags", "hasTag", "writing"}, true},
		{"hasTag includes frontmatter tags", Predicate{"tags", "hasTag", "office"}, true},
		{"hasTag leading hash accepted", Predicate{"tags", "hasTag", "#work"}, true},
		{"hasTag leading hash on stored tag", Predicate{"tags", "hasTag", "urgent"}, true},
		{"doesNotHaveTag", Predicate{"tags", "doesNotHaveTag", "home"}, true},
		{"set contains substring", Predicate{"tags", "contains", "writ"}, true},
		{"set doesNotContain substring", Predicate{"tags", "doesNotContain", "xyz"}, true},
		{"isEmpty on absent field", Predicate{"scheduled", "isEmpty", ""}, true},
		{"isNotEmpty on present field", Predicate{"due", "isNotEmpty", ""}, true},
		{"unknown property isEmpty is true", Predicate{"nonsense", "isEmpty", ""}, true},
		{"unknown property anything else is false", Predicate{"nonsense", "is", "x"}, false},
		{"type mismatch degrades to false", Predicate{"due", "hasTag", "work"}, false},
		{"path substring", Predicate{"filePath", "contains", "q1"}, true},
		{"body contains", Predicate{"body", "contains", "draft"}, true},
		{"reminder isNotEmpty", Predicate{"reminder", "isNotEmpty", ""}, true},
		{"dependsOn has id", Predicate{"dependsOn", "hasTag", "3"}, true},
		{"dependsOn missing id", Predicate{"dependsOn", "hasTag", "4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluatePredicate(rec, tt.pred))
		})
	}
}

func TestEvaluateGroup(t *testing.T) {
	rec := sampleTask()

	yes := Predicate{"title", "contains", "report"}
	no := Predicate{"title", "contains", "absent"}

	tests := []struct {
		name  string
		group Group
		want  bool
	}{
		{"all of one true", Group{All, []Predicate{yes}}, true},
		{"all with one false", Group{All, []Predicate{yes, no, yes}}, false},
		{"any with one true", Group{Any, []Predicate{no, yes, no}}, true},
		{"any with none true", Group{Any, []Predicate{no, no, no}}, false},
		{"none with all false", Group{None, []Predicate{no, no, no}}, true},
		{"none with one true", Group{None, []Predicate{no, yes}}, false},
		{"empty group matches", Group{Any, nil}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateGroup(rec, tt.group))
		})
	}
}

func TestEvaluateExpression(t *testing.T) {
	rec := sampleTask()

	yes := Group{All, []Predicate{{"tags", "hasTag", "work"}}}
	no := Group{All, []Predicate{{"tags", "hasTag", "home"}}}

	tests := []struct {
		name string
		expr Expression
		want bool
	}{
		{"zero groups always passes", Expression{Combinator: All}, true},
		{"all groups true", Expression{All, []Group{yes, yes}}, true},
		{"all with failing group", Expression{All, []Group{yes, no}}, false},
		{"any with passing group", Expression{Any, []Group{no, yes}}, true},
		{"none with all failing", Expression{None, []Group{no}}, true},
		{"none with passing group", Expression{None, []Group{yes}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateExpression(rec, tt.expr))
		})
	}
}

func TestExpressionEmpty(t *testing.T) {
	assert.True(t, Expression{}.Empty())
	assert.True(t, Expression{Groups: []Group{{Combinator: All}}}.Empty())
	assert.False(t, Expression{Groups: []Group{
		{Combinator: All, Predicates: []Predicate{{"title", "is", "x"}}},
	}}.Empty())
}
