package services

import (
	"strconv"
	"strings"
	"time"

	"orderstats/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

const (
	// DefaultProductID replaces a missing or unparseable product identifier.
	DefaultProductID int64 = 1000

	orderDateLayout = time.DateOnly
)

// spelledOutValues are free-text cells seen in landing files and their numeric meaning.
var (
	spelledOutAmounts    = map[string]string{"One Hundred Pounds": "100"}
	spelledOutQuantities = map[string]string{"Three": "3"}
)

// CleanResult is the outcome of cleaning one landing file.
type CleanResult struct {
	Orders     []*order.Order
	Rows       int
	Duplicates int
}

// OrderCleaner normalizes raw landing rows into typed orders.
//
// For every row it:
//   - strips carriage returns from all cells
//   - casts OrderID, CustomerId and ProductID to integers (unparseable cells become null)
//   - parses OrderDate as yyyy-MM-dd, falling back to today
//   - maps "One Hundred Pounds" to 100 and "Three" to 3 before casting OrderAmount and Quantity
//   - fills a missing ProductID with 1000, Quantity with 0 and OrderAmount with 0
//
// Rows that are identical after cleaning are kept once, in first-seen order.
type OrderCleaner struct {
	now func() time.Time
}

// CleanerOption configures an OrderCleaner.
type CleanerOption func(*OrderCleaner)

// WithClock replaces the clock that supplies the fallback order date.
func WithClock(now func() time.Time) CleanerOption {
	return func(c *OrderCleaner) {
		c.now = now
	}
}

// NewOrderCleaner creates a cleaner using the wall clock.
func NewOrderCleaner(opts ...CleanerOption) *OrderCleaner {
	c := &OrderCleaner{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean converts raw rows into orders.
func (c *OrderCleaner) Clean(rows []order.RawOrder) (CleanResult, error) {
	today := truncateToDate(c.now())
	result := CleanResult{
		Orders: make([]*order.Order, 0, len(rows)),
		Rows:   len(rows),
	}
	seen := make(map[string]struct{}, len(rows))

	for _, raw := range rows {
		o, err := c.cleanRow(raw, today)
		if err != nil {
			return CleanResult{}, err
		}

		key := o.Key()
		if _, dup := seen[key]; dup {
			result.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		result.Orders = append(result.Orders, o)
	}

	return result, nil
}

func (c *OrderCleaner) cleanRow(raw order.RawOrder, today time.Time) (*order.Order, error) {
	cell := func(column string) string {
		v, _ := raw.Get(column)
		return strings.ReplaceAll(v, "\r", "")
	}

	productID := DefaultProductID
	if p := parseInt(cell(order.ColumnProductID)); p != nil {
		productID = *p
	}

	orderDate, err := time.Parse(orderDateLayout, strings.TrimSpace(cell(order.ColumnOrderDate)))
	if err != nil {
		orderDate = today
	}

	amount := decimal.Zero
	if a := parseDecimal(replaceSpelledOut(cell(order.ColumnOrderAmount), spelledOutAmounts)); a != nil {
		amount = *a
	}

	quantity := 0
	if q := parseInt(replaceSpelledOut(cell(order.ColumnQuantity), spelledOutQuantities)); q != nil {
		quantity = int(*q)
	}

	return order.NewOrder(order.Params{
		OrderID:    positive(parseInt(cell(order.ColumnOrderID))),
		CustomerID: parseInt(cell(order.ColumnCustomerID)),
		ProductID:  productID,
		Region:     strings.TrimSpace(cell(order.ColumnRegion)),
		OrderDate:  orderDate,
		Amount:     amount,
		Quantity:   quantity,
	})
}

func replaceSpelledOut(v string, table map[string]string) string {
	if n, ok := table[strings.TrimSpace(v)]; ok {
		return n
	}
	return v
}

func parseInt(v string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseDecimal(v string) *decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &d
}

// positive drops identifiers that cannot be order keys.
func positive(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	return id
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
