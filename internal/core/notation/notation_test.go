package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		kind     FieldKind
		text     string
		value    string
		notation Notation
	}{
		{"plain glyph", FieldDueDate, "report 📅2024-01-20 now", "2024-01-20", Plain},
		{"spaced glyph", FieldDueDate, "report 📅 2024-01-20", "2024-01-20", Spaced},
		{"glyph with variant selector", FieldDueDate, "report 📅️ 2024-01-20", "2024-01-20", Spaced},
		{"alternate due glyph", FieldDueDate, "report 📆2024-01-20", "2024-01-20", Plain},
		{"alternate scheduled glyph", FieldScheduledDate, "report ⌛ 2024-03-01", "2024-03-01", Spaced},
		{"day-first date preserved", FieldDueDate, "report 📅 20-01-2024", "20-01-2024", Spaced},
		{"bracketed", FieldDueDate, "report [due:: 2024-01-20]", "2024-01-20", Bracketed},
		{"annotation", FieldStartDate, "report @start(2024-01-10)", "2024-01-10", Annotation},
		{"completion with time of day", FieldCompletionDate, "done ✅ 2024-02-01T14:30", "2024-02-01T14:30", Spaced},
		{"priority glyph maps to number", FieldPriority, "urgent ⏫", "2", Plain},
		{"priority glyph variant selector", FieldPriority, "urgent ⏫️", "2", Plain},
		{"priority bracketed stays numeric", FieldPriority, "urgent [priority:: 4]", "4", Bracketed},
		{"reminder clock only", FieldReminder, "call (@09:00)", "09:00", Plain},
		{"reminder date and clock", FieldReminder, "call (@2024-01-20 09:00)", "2024-01-20 09:00", Plain},
		{"time span brackets", FieldTime, "standup ⏰ [10:00 - 10:15]", "10:00 - 10:15", Spaced},
		{"depends on sequence", FieldDependsOn, "after ⛔ 3, 7", "3, 7", Spaced},
		{"id", FieldID, "task 🆔 42", "42", Spaced},
		{"recurrence phrase", FieldRecurrence, "chore 🔁 every week", "every week", Spaced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Detect(tt.kind, tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.value, m.Value)
			assert.Equal(t, tt.notation, m.Notation)
		})
	}

	t.Run("absent field reports ok=false", func(t *testing.T) {
		_, ok := Detect(FieldDueDate, "nothing dated here")
		assert.False(t, ok)
	})

	t.Run("leftmost occurrence wins across conventions", func(t *testing.T) {
		m, ok := Detect(FieldDueDate, "[due:: 2024-02-02] 📅2024-01-01")
		require.True(t, ok)
		assert.Equal(t, "2024-02-02", m.Value)
		assert.Equal(t, Bracketed, m.Notation)
	})
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		kind     FieldKind
		value    string
		notation Notation
		want     string
	}{
		{"due plain", FieldDueDate, "2024-01-20", Plain, "📅2024-01-20"},
		{"due spaced", FieldDueDate, "2024-01-20", Spaced, "📅 2024-01-20"},
		{"due bracketed", FieldDueDate, "2024-01-20", Bracketed, "[due:: 2024-01-20]"},
		{"due annotation", FieldDueDate, "2024-01-20", Annotation, "@due(2024-01-20)"},
		{"day-first date kept as written", FieldDueDate, "20-01-2024", Spaced, "📅 20-01-2024"},
		{"priority renders its glyph", FieldPriority, "2", Spaced, "⏫"},
		{"priority bracketed", FieldPriority, "2", Bracketed, "[priority:: 2]"},
		{"time span plain", FieldTime, "10:00 - 11:00", Plain, "⏰[10:00 - 11:00]"},
		{"time span spaced", FieldTime, "10:00 - 11:00", Spaced, "⏰ [10:00 - 11:00]"},
		{"reminder paren form spells the T as a space", FieldReminder, "2024-01-20T09:00", Spaced, "(@2024-01-20 09:00)"},
		{"reminder clock only", FieldReminder, "09:00", Plain, "(@09:00)"},
		{"recurrence spaced", FieldRecurrence, "every week", Spaced, "🔁 every week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.kind, tt.value, tt.notation)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rendered output round-trips through Detect", func(t *testing.T) {
		for _, n := range []Notation{Plain, Spaced, Bracketed, Annotation} {
			out, err := Render(FieldDueDate, "2024-01-20", n)
			require.NoError(t, err)

			m, ok := Detect(FieldDueDate, "task "+out)
			require.True(t, ok, "notation %s", n)
			assert.Equal(t, "2024-01-20", m.Value)
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		cases := []struct {
			kind  FieldKind
			value string
		}{
			{FieldDueDate, "someday"},
			{FieldDueDate, ""},
			{FieldPriority, "9"},
			{FieldTime, "10:00"},
			{FieldID, "a b"},
			{FieldDependsOn, "3;7"},
		}
		for _, c := range cases {
			_, err := Render(c.kind, c.value, Spaced)
			assert.ErrorIs(t, err, ErrInvalidFieldValue, "%s %q", c.kind, c.value)
		}
	})
}

func TestDetectTags(t *testing.T) {
	t.Run("finds tags in order with hash", func(t *testing.T) {
		got := DetectTags("- [ ] sort #work then #home/chores")
		require.Len(t, got, 2)
		assert.Equal(t, "#work", got[0].Value)
		assert.Equal(t, "#home/chores", got[1].Value)
	})

	t.Run("mid-word and wiki-link hashes are not tags", func(t *testing.T) {
		assert.Empty(t, DetectTags("see item#4 and [[note#section]]"))
	})
}

func TestSplitIDSequence(t *testing.T) {
	assert.Equal(t, []string{"3", "7", "9"}, SplitIDSequence("3, 7,  ,9"))
	assert.Empty(t, SplitIDSequence("  "))
}

func TestParse(t *testing.T) {
	n, err := Parse("bracketed")
	require.NoError(t, err)
	assert.Equal(t, Bracketed, n)

	_, err = Parse("fancy")
	assert.Error(t, err)
}
