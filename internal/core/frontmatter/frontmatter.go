// Package frontmatter extracts YAML front matter from markdown
// documents. The scanner uses it to pick up document-level tags so they
// can join each task's own tags during classification.
package frontmatter

import (
	"bufio"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds metadata parsed from a document's YAML front matter.
// All fields are best-effort: missing or malformed front matter produces
// zero values.
type Frontmatter struct {
	Title string  `yaml:"title"`
	Tags  TagList `yaml:"tags"`

	// Raw carries every property as parsed, for callers that filter on
	// arbitrary keys.
	Raw map[string]any `yaml:"-"`
}

// TagList accepts both YAML forms documents use for tags: a sequence and
// a single scalar.
type TagList []string

func (t *TagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*t = splitScalarTags(s)
	case yaml.SequenceNode:
		var xs []string
		if err := node.Decode(&xs); err != nil {
			return err
		}
		for _, s := range xs {
			*t = append(*t, normalize(s))
		}
	}
	return nil
}

// splitScalarTags handles "tags: work, home" and "tags: #work #home".
func splitScalarTags(s string) TagList {
	var out TagList
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		if tag := normalize(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "#")
}

// Parse extracts YAML front matter from document content. Front matter
// must be delimited by "---" on its own line at the start of the file.
// Returns zero-value Frontmatter if no valid front matter is found.
func Parse(content string) Frontmatter {
	scanner := bufio.NewScanner(strings.NewReader(content))

	// First line must be "---"
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return Frontmatter{}
	}

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return Frontmatter{}
	}

	raw := strings.Join(lines, "\n")

	var fm Frontmatter
	_ = yaml.Unmarshal([]byte(raw), &fm)
	_ = yaml.Unmarshal([]byte(raw), &fm.Raw)

	return fm
}
