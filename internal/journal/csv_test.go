package journal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/model"
)

func TestWriteReadLines(t *testing.T) {
	lines := []model.Line{
		{
			EntryID:     "e1",
			Date:        date(2025, 1, 15),
			Reference:   "JE-2025-01-001",
			Description: "Software subscription",
			AccountID:   5020,
			Debit:       dec("4.00"),
			Status:      model.StatusPosted,
			Version:     2,
		},
		{
			EntryID:   "e1",
			Date:      date(2025, 1, 15),
			Reference: "JE-2025-01-001",
			AccountID: 1010,
			Credit:    dec("4.00"),
			Status:    model.StatusPosted,
			Version:   2,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, lines))

	got, err := ReadLines(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "JE-2025-01-001", got[0].Reference)
	assert.True(t, got[0].Debit.Equal(dec("4.00")))
	assert.True(t, got[0].Credit.IsZero())
	assert.True(t, got[1].Credit.Equal(dec("4.00")))
	assert.Equal(t, model.StatusPosted, got[1].Status)
	assert.Equal(t, 2, got[1].Version)
}

func TestReadLines_Empty(t *testing.T) {
	got, err := ReadLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadLines_HeaderOnly(t *testing.T) {
	got, err := ReadLines(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalLine_BadFields(t *testing.T) {
	_, err := UnmarshalLine([]string{"short"})
	assert.Error(t, err)

	_, err = UnmarshalLine([]string{"e1", "not-a-date", "JE-2025-01-001", "", "1010", "1.00", "", "draft", "1"})
	assert.Error(t, err)

	_, err = UnmarshalLine([]string{"e1", "2025-01-15", "JE-2025-01-001", "", "abc", "1.00", "", "draft", "1"})
	assert.Error(t, err)
}

func TestMarshalLine_EmptyAmountsStayBlank(t *testing.T) {
	line := model.Line{
		EntryID:   "e1",
		Date:      date(2025, 1, 15),
		Reference: "JE-2025-01-001",
		AccountID: 1010,
		Status:    model.StatusDraft,
		Version:   1,
	}
	row := MarshalLine(line)
	assert.Equal(t, "", row[colDebit])
	assert.Equal(t, "", row[colCredit])
}
