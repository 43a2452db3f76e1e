package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/utils"
)

func loadJSONFile(path string) ([]record, error) {
	var raw []map[string]any
	if err := utils.LoadJSON(path, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
	}
	return recordsFromObjects(raw)
}

func readJSON(r io.Reader) ([]record, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidDataset, ErrMsgNoRows)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidDataset, ErrContextDecodeJSON, err)
	}
	return recordsFromObjects(raw)
}

// recordsFromObjects flattens JSON objects into records. Rows are numbered
// from 1. Strings, numbers and booleans are accepted as values; nulls are
// treated as absent.
func recordsFromObjects(raw []map[string]any) ([]record, error) {
	fold := cases.Fold()
	rows := make([]record, 0, len(raw))
	for i, obj := range raw {
		rec := record{
			line:   i + 1,
			values: make(map[string]string, len(obj)),
			names:  make(map[string]string, len(obj)),
		}
		for k, v := range obj {
			s, ok := scalarString(v)
			if !ok {
				if v == nil {
					continue
				}
				return nil, fmt.Errorf("%w: row %d: %q: %s", domain.ErrInvalidDataset, i+1, k, ErrMsgNotAString)
			}
			key := fold.String(strings.TrimSpace(k))
			rec.values[key] = strings.TrimSpace(s)
			rec.names[key] = strings.TrimSpace(k)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
