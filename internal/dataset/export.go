package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

// WinnersHeader is the header row of the winners export
var WinnersHeader = []string{"Seq", "Group", "Prize", "Winner", "Participant ID", "Image", "Drawn At"}

// WriteWinners writes the ledger in sequence order as CSV or JSON.
func WriteWinners(w io.Writer, winners []domain.WinnerRecord, format Format) error {
	switch format {
	case FormatCSV:
		return writeWinnersCSV(w, winners)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if winners == nil {
			winners = []domain.WinnerRecord{}
		}
		return enc.Encode(winners)
	default:
		return fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgUnsupportedFormat, format)
	}
}

func writeWinnersCSV(w io.Writer, winners []domain.WinnerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(WinnersHeader); err != nil {
		return err
	}
	for _, rec := range winners {
		row := []string{
			strconv.Itoa(rec.SequenceNumber),
			rec.Group,
			rec.PrizeName,
			rec.ParticipantName,
			rec.ParticipantID.String(),
			rec.Image,
			rec.DrawnAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
