package currency

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amirasaad/fxconvert/pkg/currency"
)

//go:embed meta.csv
var metaCSV string

const expectedColumns = 8

// LoadCurrencyMetaCSV loads currency metadata from a CSV file or embedded content.
// If path is empty, it uses the embedded CSV content.
func LoadCurrencyMetaCSV(path string) ([]currency.Meta, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	} else {
		r = strings.NewReader(metaCSV)
	}

	return parseCurrencyMetaCSV(r)
}

func parseCurrencyMetaCSV(r io.Reader) ([]currency.Meta, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("invalid CSV format: missing header")
	}
	if len(records[0]) < expectedColumns {
		return nil, fmt.Errorf(
			"invalid CSV format: expected at least %d columns, got %d",
			expectedColumns,
			len(records[0]),
		)
	}

	var metas []currency.Meta
	for _, rec := range records[1:] {
		// Skip malformed rows
		if len(rec) < expectedColumns || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		decimals, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil {
			decimals = -1
		}
		metas = append(metas, currency.Meta{
			Code:        strings.ToUpper(strings.TrimSpace(rec[0])),
			Name:        rec[1],
			Symbol:      rec[2],
			Locale:      rec[3],
			Decimals:    decimals,
			Pattern:     rec[5],
			Icon:        rec[6],
			Placeholder: rec[7],
		})
	}
	return metas, nil
}
