// Package dataset loads the participants and prizes datasets a draw session
// starts from. Both CSV (with a header row) and JSON (an array of objects)
// are accepted; column and key names are matched case-insensitively.
package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// Format identifies a dataset encoding
type Format string

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s %q", domain.ErrInvalidDataset, ErrMsgUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s %q", domain.ErrInvalidDataset, ErrMsgUnsupportedFormat, s)
	}
}

// record is one dataset row keyed by folded column name, with the original
// column names kept for Extra.
type record struct {
	line   int
	values map[string]string
	names  map[string]string
}

func (r record) get(aliases []string) (string, bool) {
	fold := cases.Fold()
	for _, a := range aliases {
		if v, ok := r.values[fold.String(a)]; ok {
			return v, true
		}
	}
	return "", false
}

// LoadParticipants reads a participants file, choosing the format by extension.
func LoadParticipants(ctx context.Context, path string) ([]domain.Participant, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	var rows []record
	if format == FormatJSON {
		rows, err = loadJSONFile(path)
	} else {
		rows, err = readFile(path, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	participants, err := participantsFromRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.FromContext(ctx).Info(LogMsgParticipantsLoaded, "path", path, "count", len(participants))
	return participants, nil
}

// ReadParticipants parses a participants dataset from r.
func ReadParticipants(r io.Reader, format Format) ([]domain.Participant, error) {
	rows, err := readRecords(r, format)
	if err != nil {
		return nil, err
	}
	return participantsFromRecords(rows)
}

// LoadPrizes reads a prizes file, choosing the format by extension.
func LoadPrizes(ctx context.Context, path string) ([]domain.Prize, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	var rows []record
	if format == FormatJSON {
		rows, err = loadJSONFile(path)
	} else {
		rows, err = readFile(path, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	prizes, err := prizesFromRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.FromContext(ctx).Info(LogMsgPrizesLoaded, "path", path, "count", len(prizes))
	return prizes, nil
}

// ReadPrizes parses a prizes dataset from r.
func ReadPrizes(r io.Reader, format Format) ([]domain.Prize, error) {
	rows, err := readRecords(r, format)
	if err != nil {
		return nil, err
	}
	return prizesFromRecords(rows)
}

func readFile(path string, format Format) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextOpenFile, err)
	}
	defer f.Close()
	return readRecords(f, format)
}

func readRecords(r io.Reader, format Format) ([]record, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatJSON:
		return readJSON(r)
	default:
		return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidDataset, ErrMsgUnsupportedFormat, format)
	}
}

func participantsFromRecords(rows []record) ([]domain.Participant, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidDataset, ErrMsgNoRows)
	}

	fold := cases.Fold()
	known := make(map[string]bool, len(participantNameColumns))
	for _, c := range participantNameColumns {
		known[fold.String(c)] = true
	}

	out := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		name, ok := row.get(participantNameColumns)
		if !ok {
			return nil, fmt.Errorf("%w: row %d: %s %q", domain.ErrInvalidDataset, row.line, ErrMsgMissingColumn, participantNameColumns[0])
		}
		if name == "" {
			return nil, fmt.Errorf("%w: row %d: %s %q", domain.ErrInvalidDataset, row.line, ErrMsgEmptyCell, participantNameColumns[0])
		}

		var extra map[string]string
		for key, v := range row.values {
			if known[key] {
				continue
			}
			if extra == nil {
				extra = make(map[string]string)
			}
			extra[row.names[key]] = v
		}

		out = append(out, domain.Participant{
			ID:    newParticipantID(),
			Name:  name,
			Extra: extra,
		})
	}
	return out, nil
}

func prizesFromRecords(rows []record) ([]domain.Prize, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidDataset, ErrMsgNoRows)
	}

	out := make([]domain.Prize, 0, len(rows))
	for _, row := range rows {
		group, err := requiredField(row, prizeGroupColumns)
		if err != nil {
			return nil, err
		}
		prize, err := requiredField(row, prizeNameColumns)
		if err != nil {
			return nil, err
		}
		image, _ := row.get(prizeImageColumns)

		out = append(out, domain.Prize{Group: group, Prize: prize, Image: image})
	}
	return out, nil
}

func requiredField(row record, aliases []string) (string, error) {
	v, ok := row.get(aliases)
	if !ok {
		return "", fmt.Errorf("%w: row %d: %s %q", domain.ErrInvalidDataset, row.line, ErrMsgMissingColumn, aliases[0])
	}
	if v == "" {
		return "", fmt.Errorf("%w: row %d: %s %q", domain.ErrInvalidDataset, row.line, ErrMsgEmptyCell, aliases[0])
	}
	return v, nil
}
