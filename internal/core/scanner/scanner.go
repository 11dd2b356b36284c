// Package scanner turns markdown document content into task collections.
// It locates checkbox lines, gathers each task's indented body, parses
// lines through the codec, and partitions the results by status type.
// Scan filters decide which files and tasks participate at all.
package scanner

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskboard/internal/core/codec"
	"github.com/colonyops/taskboard/internal/core/frontmatter"
	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/task"
)

// Scanner parses documents into task collections.
type Scanner struct {
	codec   *codec.Codec
	filters Filters
	log     zerolog.Logger
}

// New returns a scanner using c for line parsing and filters for
// file/task selection.
func New(c *codec.Codec, filters Filters) *Scanner {
	return &Scanner{
		codec:   c,
		filters: filters,
		log:     logging.Component("scanner"),
	}
}

// ScanDocument parses one document's content into pending and completed
// tasks. Lines that look like tasks but fail to parse are logged and
// skipped, never silently dropped without trace. Returns an empty
// collection when the file is excluded by the scan filters.
func (s *Scanner) ScanDocument(path, content string) task.Collection {
	var col task.Collection

	if !s.filters.FileAllowed(path) {
		s.log.Debug().Str("path", path).Msg("file excluded by scan filters")
		return col
	}

	fm := frontmatter.Parse(content)
	if !s.filters.FrontmatterAllowed(fm.Raw) {
		s.log.Debug().Str("path", path).Msg("file excluded by frontmatter filter")
		return col
	}

	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); i++ {
		if !codec.IsTaskLine(lines[i]) {
			continue
		}

		body, end := collectBody(lines, i)

		rec, err := s.codec.ParseTask(lines[i], body)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Int("line", i+1).
				Msg("task line failed to parse")
			i = end
			continue
		}

		rec.FilePath = path
		rec.FrontmatterTags = []string(fm.Tags)
		rec.TaskLocation = task.Location{
			StartLine: i + 1,
			EndLine:   end + 1,
			StartChar: 0,
			EndChar:   len(lines[end]),
		}

		if s.filters.TaskAllowed(rec) {
			s.addTask(&col, rec)
		}

		i = end
	}

	return col
}

// addTask appends rec to the pending or completed side of col according
// to its status type. Symbols outside the alphabet land in pending so a
// misconfigured status never makes a task vanish.
func (s *Scanner) addTask(col *task.Collection, rec task.Task) {
	typ, ok := s.codec.StatusType(rec)
	if !ok {
		s.log.Warn().Str("status", rec.Status).Int("id", rec.ID).
			Msg("status symbol not in configured alphabet")
		col.Pending = append(col.Pending, rec)
		return
	}

	if typ == task.StatusDone {
		col.Completed = append(col.Completed, rec)
		return
	}
	col.Pending = append(col.Pending, rec)
}

// collectBody gathers the indented lines that belong to the task at
// index start. A body line is any subsequent line indented deeper than
// the task line; the first line at or below the task's indentation ends
// the body. Blank lines inside the body are kept.
func collectBody(lines []string, start int) (body []string, end int) {
	base := indentWidth(lines[start])
	end = start

	for j := start + 1; j < len(lines); j++ {
		line := lines[j]
		if strings.TrimSpace(line) == "" {
			// A blank line belongs to the body only when more indented
			// content follows.
			if j+1 < len(lines) && indentWidth(lines[j+1]) > base &&
				strings.TrimSpace(lines[j+1]) != "" {
				body = append(body, line)
				end = j
				continue
			}
			break
		}
		if indentWidth(line) <= base {
			break
		}
		body = append(body, line)
		end = j
	}

	return body, end
}

func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}
