package journal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChecklistTemplate(t *testing.T) {
	journalID := uuid.New()

	tmpl, err := NewChecklistTemplate(journalID, "  Wait for the retest ")
	require.NoError(t, err)
	assert.Equal(t, journalID, tmpl.JournalID)
	assert.Equal(t, "Wait for the retest", tmpl.Text)

	_, err = NewChecklistTemplate(journalID, " ")
	assert.ErrorIs(t, err, ErrEmptyTemplateText)
}

func TestSortByOrder(t *testing.T) {
	input := []ChecklistTemplate{
		{Text: "c", Order: 2},
		{Text: "a1", Order: 0},
		{Text: "b", Order: 1},
		{Text: "a2", Order: 0},
	}

	sorted := SortByOrder(input)

	texts := make([]string, 0, len(sorted))
	for _, tmpl := range sorted {
		texts = append(texts, tmpl.Text)
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, texts)
	assert.Equal(t, "c", input[0].Text, "input must stay untouched")
}

func TestNewStrategy(t *testing.T) {
	s, err := NewStrategy("  Opening range ")
	require.NoError(t, err)
	assert.Equal(t, "Opening range", s.Name)
	assert.NotEqual(t, uuid.Nil, s.ID)

	_, err = NewStrategy("")
	assert.ErrorIs(t, err, ErrEmptyStrategyName)
}
