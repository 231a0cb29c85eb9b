package order

import "strings"

// Column names of the orders CSV, as written to the staging file.
const (
	ColumnOrderID     = "OrderID"
	ColumnCustomerID  = "CustomerId"
	ColumnProductID   = "ProductID"
	ColumnRegion      = "Region"
	ColumnOrderDate   = "OrderDate"
	ColumnOrderAmount = "OrderAmount"
	ColumnQuantity    = "Quantity"
	ColumnOrderValue  = "OrderValue"
)

// StagingColumns is the header of a cleaned orders file.
var StagingColumns = []string{
	ColumnOrderID,
	ColumnCustomerID,
	ColumnProductID,
	ColumnRegion,
	ColumnOrderDate,
	ColumnOrderAmount,
	ColumnQuantity,
	ColumnOrderValue,
}

// RawOrder is one untyped row of a landing file keyed by normalized column name.
type RawOrder map[string]string

// NewRawOrder pairs a header with a row. Extra cells beyond the header are dropped;
// missing cells are absent from the map.
func NewRawOrder(header, row []string) RawOrder {
	raw := make(RawOrder, len(header))
	for i, h := range header {
		if i >= len(row) {
			break
		}
		raw[NormalizeColumn(h)] = row[i]
	}
	return raw
}

// Get returns the cell for a column, matched case-insensitively.
func (r RawOrder) Get(column string) (string, bool) {
	v, ok := r[NormalizeColumn(column)]
	return v, ok
}

// NormalizeColumn folds "Order Date", "order_date" and "OrderDate" to one key.
func NormalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "_", "")
	return strings.ReplaceAll(name, "-", "")
}
