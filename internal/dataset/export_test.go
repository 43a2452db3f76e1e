package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

func sampleLedger() []domain.WinnerRecord {
	at := time.Date(2026, 2, 14, 19, 30, 0, 0, time.UTC)
	return []domain.WinnerRecord{
		{SequenceNumber: 1, ParticipantID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), ParticipantName: "Bob", PrizeName: "Laptop", Group: "Gold", DrawnAt: at},
		{SequenceNumber: 2, ParticipantID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), ParticipantName: "Smith, Ann", PrizeName: "Mug", Group: "Silver", Image: "mug.png", DrawnAt: at},
	}
}

func TestWriteWinners_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWinners(&buf, sampleLedger(), FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, WinnersHeader, rows[0])
	assert.Equal(t, []string{"1", "Gold", "Laptop", "Bob", "11111111-1111-1111-1111-111111111111", "", "2026-02-14T19:30:00Z"}, rows[1])
	assert.Equal(t, "Smith, Ann", rows[2][3])
	assert.Equal(t, "mug.png", rows[2][5])
}

func TestWriteWinners_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWinners(&buf, nil, FormatJSON))
	assert.JSONEq(t, `[]`, buf.String())

	buf.Reset()
	require.NoError(t, WriteWinners(&buf, sampleLedger(), FormatJSON))
	var got []domain.WinnerRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleLedger(), got)
}

func TestWriteWinners_UnsupportedFormat(t *testing.T) {
	err := WriteWinners(&bytes.Buffer{}, nil, Format("xml"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
