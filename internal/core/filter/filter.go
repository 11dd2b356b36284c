// Package filter evaluates user-authored boolean criteria against task
// records. Expressions are a fixed two-level tree: an expression combines
// groups, a group combines atomic predicates, each level with its own
// ALL/ANY/NONE combinator. Evaluation is total: malformed rows degrade to
// false instead of failing, so one bad filter never hides a whole column.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/colonyops/taskboard/internal/core/datetime"
	"github.com/colonyops/taskboard/internal/core/task"
)

// Combinator joins the results of a group's predicates or an
// expression's groups.
type Combinator string

const (
	// All is logical AND, vacuously true over an empty list.
	All Combinator = "all"
	// Any is logical OR. Over an empty list it is false; empty predicate
	// lists short-circuit to a match before the combinator is consulted.
	Any Combinator = "any"
	// None is true iff no entry is true.
	None Combinator = "none"
)

// ParseCombinator returns the Combinator named by s.
func ParseCombinator(s string) (Combinator, error) {
	switch Combinator(strings.ToLower(s)) {
	case All, Any, None:
		return Combinator(strings.ToLower(s)), nil
	}
	return All, fmt.Errorf("unknown combinator %q", s)
}

// Predicate is one atomic condition: a record property, a comparator,
// and a literal operand.
type Predicate struct {
	Property   string `json:"property" yaml:"property"`
	Comparator string `json:"comparator" yaml:"comparator"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Group combines predicates under one combinator.
type Group struct {
	Combinator Combinator  `json:"combinator" yaml:"combinator"`
	Predicates []Predicate `json:"predicates" yaml:"predicates"`
}

// Expression is the root of the filter tree.
type Expression struct {
	Combinator Combinator `json:"combinator" yaml:"combinator"`
	Groups     []Group    `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Empty reports whether the expression carries no criteria at all.
func (e Expression) Empty() bool {
	for _, g := range e.Groups {
		if len(g.Predicates) > 0 {
			return false
		}
	}
	return true
}

// EvaluateExpression tests rec against the full expression. An
// expression with zero groups always passes.
func EvaluateExpression(rec task.Task, expr Expression) bool {
	if len(expr.Groups) == 0 {
		return true
	}

	results := make([]bool, len(expr.Groups))
	for i, g := range expr.Groups {
		results[i] = EvaluateGroup(rec, g)
	}
	return combine(expr.Combinator, results)
}

// EvaluateGroup tests rec against one group. A group with no predicates
// matches regardless of combinator.
func EvaluateGroup(rec task.Task, g Group) bool {
	if len(g.Predicates) == 0 {
		return true
	}

	results := make([]bool, len(g.Predicates))
	for i, p := range g.Predicates {
		results[i] = EvaluatePredicate(rec, p)
	}
	return combine(g.Combinator, results)
}

func combine(c Combinator, results []bool) bool {
	switch c {
	case Any:
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	case None:
		for _, r := range results {
			if r {
				return false
			}
		}
		return true
	default: // All
		for _, r := range results {
			if !r {
				return false
			}
		}
		return true
	}
}

// valueKind tells the comparator dispatch what the resolved property is.
type valueKind int

const (
	kindAbsent valueKind = iota
	kindString
	kindNumber
	kindDate
	kindSet
)

type resolved struct {
	kind valueKind
	str  string
	num  float64
	set  []string
}

// EvaluatePredicate tests one atomic condition against rec. Unknown
// properties resolve to an absent value and nonsensical
// property/comparator pairings evaluate to false.
func EvaluatePredicate(rec task.Task, p Predicate) bool {
	v := resolveProperty(rec, p.Property)

	switch p.Comparator {
	case "isEmpty":
		return isEmpty(v)
	case "isNotEmpty":
		return !isEmpty(v)
	}

	if v.kind == kindAbsent {
		return false
	}

	switch v.kind {
	case kindString:
		return compareString(v.str, p.Comparator, p.Value)
	case kindNumber:
		return compareNumber(v.num, p.Comparator, p.Value)
	case kindDate:
		return compareDate(v.str, p.Comparator, p.Value)
	case kindSet:
		return compareSet(v.set, p.Comparator, p.Value)
	}
	return false
}

func resolveProperty(rec task.Task, property string) resolved {
	switch strings.ToLower(property) {
	case "title":
		return resolved{kind: kindString, str: rec.Title}
	case "body":
		if len(rec.Body) == 0 {
			return resolved{kind: kindAbsent}
		}
		return resolved{kind: kindString, str: strings.Join(rec.Body, "\n")}
	case "status":
		return resolved{kind: kindString, str: rec.Status}
	case "id":
		return resolved{kind: kindNumber, num: float64(rec.ID)}
	case "priority":
		if rec.Priority == 0 {
			return resolved{kind: kindAbsent}
		}
		return resolved{kind: kindNumber, num: float64(rec.Priority)}
	case "tags":
		return resolved{kind: kindSet, set: rec.AllTags()}
	case "due", "duedate":
		return dateValue(rec.Due)
	case "start", "startdate":
		return dateValue(rec.StartDate)
	case "scheduled", "scheduleddate":
		return dateValue(rec.ScheduledDate)
	case "created", "createddate":
		return dateValue(rec.CreatedDate)
	case "completion", "completiondate":
		return dateValue(rec.Completion)
	case "cancelled", "cancelleddate":
		return dateValue(rec.CancelledDate)
	case "time":
		return resolved{kind: kindString, str: rec.Time}
	case "reminder":
		return resolved{kind: kindString, str: rec.Reminder}
	case "dependson":
		if len(rec.DependsOn) == 0 {
			return resolved{kind: kindAbsent}
		}
		ids := make([]string, len(rec.DependsOn))
		for i, id := range rec.DependsOn {
			ids[i] = strconv.Itoa(id)
		}
		return resolved{kind: kindSet, set: ids}
	case "recurrence":
		return resolved{kind: kindString, str: rec.Recurrence}
	case "filepath", "path":
		return resolved{kind: kindString, str: rec.FilePath}
	}
	return resolved{kind: kindAbsent}
}

func dateValue(s string) resolved {
	if s == "" {
		return resolved{kind: kindAbsent}
	}
	return resolved{kind: kindDate, str: s}
}

func isEmpty(v resolved) bool {
	switch v.kind {
	case kindAbsent:
		return true
	case kindString, kindDate:
		return v.str == ""
	case kindSet:
		return len(v.set) == 0
	}
	return false
}

// compareString applies a case-insensitive string comparator.
func compareString(have, comparator, want string) bool {
	h, w := strings.ToLower(have), strings.ToLower(want)
	switch comparator {
	case "is", "=":
		return h == w
	case "isNot":
		return h != w
	case "contains":
		return strings.Contains(h, w)
	case "doesNotContain":
		return !strings.Contains(h, w)
	case "startsWith":
		return strings.HasPrefix(h, w)
	case "endsWith":
		return strings.HasSuffix(h, w)
	}
	return false
}

func compareNumber(have float64, comparator, operand string) bool {
	want, err := strconv.ParseFloat(strings.TrimSpace(operand), 64)
	if err != nil {
		return false
	}
	switch comparator {
	case "=", "is":
		return have == want
	case "isNot":
		return have != want
	case ">":
		return have > want
	case "<":
		return have < want
	case ">=":
		return have >= want
	case "<=":
		return have <= want
	}
	return false
}

// compareDate compares calendar days only; time-of-day on either side is
// ignored.
func compareDate(have, comparator, operand string) bool {
	a, okA := datetime.ParseDate(have)
	b, okB := datetime.ParseDate(operand)
	if !okA || !okB {
		return false
	}
	diff := datetime.DaysBetween(b, a)

	switch comparator {
	case "=", "is":
		return diff == 0
	case "isNot":
		return diff != 0
	case "before":
		return diff < 0
	case "after":
		return diff > 0
	case "onOrBefore":
		return diff <= 0
	case "onOrAfter":
		return diff >= 0
	}
	return false
}

func compareSet(have []string, comparator, operand string) bool {
	w := strings.ToLower(strings.TrimPrefix(operand, "#"))
	switch comparator {
	case "hasTag":
		for _, t := range have {
			if strings.ToLower(strings.TrimPrefix(t, "#")) == w {
				return true
			}
		}
		return false
	case "doesNotHaveTag":
		return !compareSet(have, "hasTag", operand)
	case "contains":
		for _, t := range have {
			if strings.Contains(strings.ToLower(strings.TrimPrefix(t, "#")), w) {
				return true
			}
		}
		return false
	case "doesNotContain":
		return !compareSet(have, "contains", operand)
	}
	return false
}
