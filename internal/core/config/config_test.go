package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskboard/internal/core/board"
	"github.com/colonyops/taskboard/internal/core/task"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskboard.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"), "/tmp/data")
		require.NoError(t, err)

		assert.Equal(t, "spaced", cfg.DefaultNotation)
		assert.Equal(t, "/tmp/data", cfg.DataDir)
		require.Len(t, cfg.Boards, 1)
		assert.Equal(t, "default", cfg.Boards[0].Name)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
default_notation: bracketed
boards:
  - name: work
    columns:
      - name: Soon
        kind: dated
        range: {from: 0, to: 3}
      - name: Tagged
        kind: namedTag
        tagPattern: "work/*"
`)
		cfg, err := Load(path, "/tmp/data")
		require.NoError(t, err)

		assert.Equal(t, "bracketed", cfg.DefaultNotation)
		require.Len(t, cfg.Boards, 1)
		require.Len(t, cfg.Boards[0].Columns, 2)
		assert.Equal(t, board.KindNamedTag, cfg.Boards[0].Columns[1].Kind)
		assert.Equal(t, &board.DateRange{From: 0, To: 3}, cfg.Boards[0].Columns[0].Range)
	})

	t.Run("invalid notation rejected", func(t *testing.T) {
		path := writeConfig(t, "default_notation: fancy\n")
		_, err := Load(path, "/tmp/data")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_notation")
	})

	t.Run("dated column without range rejected", func(t *testing.T) {
		path := writeConfig(t, `
boards:
  - name: broken
    columns:
      - name: Soon
        kind: dated
`)
		_, err := Load(path, "/tmp/data")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "range")
	})

	t.Run("unknown column kind rejected", func(t *testing.T) {
		path := writeConfig(t, `
boards:
  - name: broken
    columns:
      - name: Col
        kind: mystery
`)
		_, err := Load(path, "/tmp/data")
		require.Error(t, err)
	})

	t.Run("unknown theme rejected", func(t *testing.T) {
		path := writeConfig(t, "theme: neon\n")
		_, err := Load(path, "/tmp/data")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "theme")
	})

	t.Run("unknown sort field rejected", func(t *testing.T) {
		path := writeConfig(t, `
boards:
  - name: broken
    columns:
      - name: Col
        kind: allPending
        sort: [{field: urgency}]
`)
		_, err := Load(path, "/tmp/data")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sort")
	})

	t.Run("bad sort direction rejected", func(t *testing.T) {
		path := writeConfig(t, `
boards:
  - name: broken
    columns:
      - name: Col
        kind: allPending
        sort: [{field: dueDate, direction: sideways}]
`)
		_, err := Load(path, "/tmp/data")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "direction")
	})

	t.Run("duplicate board names rejected", func(t *testing.T) {
		path := writeConfig(t, `
boards:
  - name: same
    columns: [{name: A, kind: allPending}]
  - name: same
    columns: [{name: B, kind: allPending}]
`)
		_, err := Load(path, "/tmp/data")
		require.Error(t, err)
	})
}

func TestAlphabet(t *testing.T) {
	t.Run("user symbols merge over defaults", func(t *testing.T) {
		cfg := Config{StatusAlphabet: map[string]string{"~": "cancelled"}}
		alphabet := cfg.Alphabet()

		typ, ok := alphabet.Type("~")
		require.True(t, ok)
		assert.Equal(t, task.StatusCancelled, typ)

		typ, ok = alphabet.Type("x")
		require.True(t, ok)
		assert.Equal(t, task.StatusDone, typ)
	})

	t.Run("multi-character symbol rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StatusAlphabet = map[string]string{"xx": "done"}
		require.Error(t, cfg.Validate())
	})

	t.Run("unknown status type rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StatusAlphabet = map[string]string{"?": "someday"}
		require.Error(t, cfg.Validate())
	})
}

func TestFindBoard(t *testing.T) {
	cfg := Config{Boards: []Board{{Name: "first"}, {Name: "second"}}}

	b, ok := cfg.FindBoard("")
	require.True(t, ok)
	assert.Equal(t, "first", b.Name)

	b, ok = cfg.FindBoard("second")
	require.True(t, ok)
	assert.Equal(t, "second", b.Name)

	_, ok = cfg.FindBoard("third")
	assert.False(t, ok)
}
