// Package dataset loads monthly stock prices and turns them into chart data points.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Faultbox/stockbars/internal/chart"
)

// CSV errors.
var (
	ErrEmptyCSV  = errors.New("empty CSV")
	ErrBadHeader = errors.New("bad CSV header")
	ErrBadPrice  = errors.New("bad price")
	ErrShortRow  = errors.New("row has fewer columns than the header")
)

// Table is a parsed price table: one row per month, one column per company.
type Table struct {
	Months  []string
	Symbols []string
	Prices  [][]float32 // [month][company]
}

// ParseCSV reads a table with a "Month,SYM1,SYM2,..." header.
// Cells are trimmed; prices must be finite non-negative numbers.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: need a month column and at least one symbol, got %d columns", ErrBadHeader, len(header))
	}

	t := &Table{}
	for _, h := range header[1:] {
		t.Symbols = append(t.Symbols, strings.TrimSpace(h))
	}

	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if len(rec) < len(header) {
			return nil, fmt.Errorf("%w: row %d has %d of %d columns", ErrShortRow, row, len(rec), len(header))
		}

		prices := make([]float32, len(t.Symbols))
		for i, sym := range t.Symbols {
			cell := strings.TrimSpace(rec[i+1])
			v, err := strconv.ParseFloat(cell, 32)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("%w: row %d, %s: %q", ErrBadPrice, row, sym, cell)
			}
			prices[i] = float32(v)
		}

		t.Months = append(t.Months, strings.TrimSpace(rec[0]))
		t.Prices = append(t.Prices, prices)
	}

	return t, nil
}

// Points flattens the table month by month, company by company.
func (t *Table) Points() []chart.DataPoint {
	points := make([]chart.DataPoint, 0, len(t.Months)*len(t.Symbols))
	for m, month := range t.Months {
		for c, sym := range t.Symbols {
			points = append(points, chart.DataPoint{
				Category: c,
				Time:     m,
				Label:    month,
				Symbol:   sym,
				Value:    t.Prices[m][c],
			})
		}
	}
	return points
}
