package board

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/taskboard/internal/core/datetime"
	"github.com/colonyops/taskboard/internal/core/filter"
	"github.com/colonyops/taskboard/internal/core/task"
)

// Classify selects, filters, and sorts the tasks belonging to one
// column. An unrecognized kind yields an empty result; a record that
// cannot be evaluated for the column's rule is skipped rather than
// failing the pass.
func Classify(col task.Collection, spec ColumnSpec, ctx Context) Result {
	bucketed := bucket(col, spec, ctx)

	if !spec.Filter.Empty() {
		kept := bucketed[:0]
		for _, t := range bucketed {
			if filter.EvaluateExpression(t, spec.Filter) {
				kept = append(kept, t)
			}
		}
		bucketed = kept
	}

	res := sortTasks(bucketed, spec)

	if spec.Kind == KindCompleted && spec.Limit > 0 && len(res.Tasks) > spec.Limit {
		res.Tasks = res.Tasks[:spec.Limit]
	}

	return res
}

func bucket(col task.Collection, spec ColumnSpec, ctx Context) []task.Task {
	var out []task.Task

	switch spec.Kind {
	case KindUndated:
		for _, t := range col.Pending {
			if spec.dateOf(t) == "" {
				out = append(out, t)
			}
		}

	case KindDated:
		if spec.Range == nil {
			return nil
		}
		from, to := spec.Range.From, spec.Range.To
		if from > to {
			from, to = to, from
		}
		for _, t := range col.Pending {
			d, ok := datetime.ParseDate(spec.dateOf(t))
			if !ok {
				continue
			}
			diff := datetime.DaysBetween(ctx.Today, d)
			if diff >= from && diff <= to {
				out = append(out, t)
			}
		}

	case KindNamedTag:
		for _, t := range col.Pending {
			if anyTagMatches(t.AllTags(), spec.TagPattern) {
				out = append(out, t)
			}
		}

	case KindUntagged:
		for _, t := range col.Pending {
			if len(t.AllTags()) == 0 {
				out = append(out, t)
			}
		}

	case KindOtherTags:
		patterns := siblingTagPatterns(ctx.Columns)
		for _, t := range col.Pending {
			if len(t.AllTags()) == 0 {
				continue
			}
			claimed := false
			for _, p := range patterns {
				if anyTagMatches(t.AllTags(), p) {
					claimed = true
					break
				}
			}
			if !claimed {
				out = append(out, t)
			}
		}

	case KindTaskStatus:
		for _, t := range append(append([]task.Task(nil), col.Pending...), col.Completed...) {
			if t.Status == spec.Status {
				out = append(out, t)
			}
		}

	case KindTaskPriority:
		for _, t := range col.Pending {
			if t.Priority == spec.Priority {
				out = append(out, t)
			}
		}

	case KindPathFiltered:
		for _, t := range col.Pending {
			if pathMatches(t.FilePath, spec.Path) {
				out = append(out, t)
			}
		}

	case KindCompleted:
		out = append(out, col.Completed...)

	case KindAllPending:
		out = append(out, col.Pending...)
	}

	return out
}

// anyTagMatches reports whether any tag matches pattern. A * in the
// pattern matches any run of characters; comparison is case-insensitive
// and ignores a leading hash on either side.
func anyTagMatches(tags []string, pattern string) bool {
	p := strings.ToLower(strings.TrimPrefix(pattern, "#"))
	for _, tag := range tags {
		if tagMatches(strings.ToLower(strings.TrimPrefix(tag, "#")), p) {
			return true
		}
	}
	return false
}

func tagMatches(tag, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return tag == pattern
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(tag, parts[0]) {
		return false
	}
	tag = tag[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		i := strings.Index(tag, part)
		if i < 0 {
			return false
		}
		tag = tag[i+len(part):]
	}
	return strings.HasSuffix(tag, last)
}

// pathMatches tests path against a comma-separated pattern list. Glob
// patterns (including **) are matched with doublestar; anything else
// falls back to substring matching.
func pathMatches(path, patterns string) bool {
	for _, pattern := range strings.Split(patterns, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.ContainsAny(pattern, "*?[{") {
			if ok, err := doublestar.Match(pattern, path); err == nil && ok {
				return true
			}
			continue
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

func siblingTagPatterns(columns []ColumnSpec) []string {
	var patterns []string
	for _, c := range columns {
		if c.Kind == KindNamedTag && c.TagPattern != "" {
			patterns = append(patterns, c.TagPattern)
		}
	}
	return patterns
}
