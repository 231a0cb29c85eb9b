package csvfile

import (
	"errors"
	"fmt"
	"io"

	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/pkg/errs"
)

// ReadRecords reads the Region and OrderValue columns of an orders CSV.
// Other columns are ignored, so both staging files and two-column extracts work.
// A blank or "null" OrderValue is a null value; any other non-numeric value fails
// the whole read with an InvalidInputError.
func ReadRecords(r io.Reader) ([]order.Record, error) {
	reader, err := newReader(r)
	if err != nil {
		return nil, err
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []order.Record{}, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	regionCol, valueCol := -1, -1
	for i, h := range header {
		switch order.NormalizeColumn(h) {
		case order.NormalizeColumn(order.ColumnRegion):
			regionCol = i
		case order.NormalizeColumn(order.ColumnOrderValue):
			valueCol = i
		}
	}

	if regionCol < 0 {
		return nil, errs.NewValueIsRequiredError(order.ColumnRegion)
	}
	if valueCol < 0 {
		return nil, errs.NewValueIsRequiredError(order.ColumnOrderValue)
	}

	records := make([]order.Record, 0)
	for n := 1; ; n++ {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, readErr
		}

		value, parseErr := order.ParseValue(cell(row, valueCol))
		if parseErr != nil {
			return nil, fmt.Errorf("row %d: %w", n, parseErr)
		}
		records = append(records, order.NewRecord(cell(row, regionCol), value))
	}

	return records, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
