package scanner

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/taskboard/internal/core/task"
)

// Polarity controls how a filter rule treats its matches.
type Polarity string

const (
	// PolarityOff disables the rule.
	PolarityOff Polarity = "off"
	// PolarityInclude keeps only matching entries.
	PolarityInclude Polarity = "include"
	// PolarityExclude drops matching entries.
	PolarityExclude Polarity = "exclude"
)

// Rule is one scan filter: a polarity plus the values it matches
// against.
type Rule struct {
	Polarity Polarity `json:"polarity" yaml:"polarity"`
	Values   []string `json:"values,omitempty" yaml:"values,omitempty"`
}

func (r Rule) active() bool {
	return r.Polarity != PolarityOff && r.Polarity != "" && len(r.Values) > 0
}

// apply resolves the rule for a match outcome: include keeps matches,
// exclude keeps non-matches, off keeps everything.
func (r Rule) apply(matched bool) bool {
	switch r.Polarity {
	case PolarityInclude:
		return matched
	case PolarityExclude:
		return !matched
	default:
		return true
	}
}

// Filters is the full scan filter configuration. File, folder, and
// frontmatter rules gate whole documents; the tag rule gates individual
// tasks.
type Filters struct {
	Files       Rule `json:"files" yaml:"files"`
	Folders     Rule `json:"folders" yaml:"folders"`
	Tags        Rule `json:"tags" yaml:"tags"`
	Frontmatter Rule `json:"frontmatter" yaml:"frontmatter"`
}

// FileAllowed reports whether a document at p participates in the scan.
func (f Filters) FileAllowed(p string) bool {
	if f.Files.active() {
		if !f.Files.apply(matchesFile(p, f.Files.Values)) {
			return false
		}
	}
	if f.Folders.active() {
		if !f.Folders.apply(matchesFolder(p, f.Folders.Values)) {
			return false
		}
	}
	return true
}

// FrontmatterAllowed reports whether a document with the given parsed
// properties participates in the scan. Rule values take the form "key"
// (key present) or "key: value" (key equals value).
func (f Filters) FrontmatterAllowed(props map[string]any) bool {
	if !f.Frontmatter.active() {
		return true
	}
	return f.Frontmatter.apply(matchesFrontmatter(props, f.Frontmatter.Values))
}

// TaskAllowed reports whether an individual task passes the tag rule.
func (f Filters) TaskAllowed(rec task.Task) bool {
	if !f.Tags.active() {
		return true
	}
	return f.Tags.apply(hasAnyTag(rec, f.Tags.Values))
}

func matchesFile(p string, patterns []string) bool {
	base := path.Base(p)
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, p); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pat, base); err == nil && ok {
			return true
		}
		if p == pat || base == pat {
			return true
		}
	}
	return false
}

func matchesFolder(p string, folders []string) bool {
	dir := path.Dir(p)
	for _, folder := range folders {
		folder = strings.TrimSuffix(folder, "/")
		if folder == "" {
			continue
		}
		if strings.ContainsAny(folder, "*?[{") {
			if ok, err := doublestar.Match(folder, dir); err == nil && ok {
				return true
			}
			continue
		}
		if dir == folder || strings.HasPrefix(dir, folder+"/") {
			return true
		}
	}
	return false
}

func matchesFrontmatter(props map[string]any, wanted []string) bool {
	for _, w := range wanted {
		key, want, hasValue := strings.Cut(w, ":")
		key = strings.TrimSpace(key)

		got, ok := props[key]
		if !ok {
			continue
		}
		if !hasValue {
			return true
		}
		if strings.EqualFold(fmt.Sprint(got), strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

func hasAnyTag(rec task.Task, wanted []string) bool {
	for _, w := range wanted {
		if rec.HasTag(w) {
			return true
		}
	}
	return false
}
