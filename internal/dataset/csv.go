package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

// readCSV reads a header row followed by data rows. Line numbers in errors
// count the header as line 1.
func readCSV(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidDataset, ErrMsgNoRows)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidDataset, ErrContextReadHeader, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	fold := cases.Fold()
	keys := make([]string, len(header))
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		keys[i] = fold.String(header[i])
	}

	var rows []record
	line := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("%w: row %d: %s", domain.ErrInvalidDataset, line, ErrMsgRowWidth)
			}
			return nil, fmt.Errorf("%w: %s %d: %v", domain.ErrInvalidDataset, ErrContextReadRow, line, err)
		}
		if isBlank(fields) {
			continue
		}

		rec := record{
			line:   line,
			values: make(map[string]string, len(fields)),
			names:  make(map[string]string, len(fields)),
		}
		for i, v := range fields {
			if keys[i] == "" {
				continue
			}
			rec.values[keys[i]] = strings.TrimSpace(v)
			rec.names[keys[i]] = header[i]
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
