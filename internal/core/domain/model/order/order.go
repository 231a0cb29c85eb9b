package order

import (
	"errors"
	"fmt"
	"time"

	"orderstats/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Params carries the cleaned column values of one order row.
// OrderID and CustomerID stay nil when the source value could not be cast.
type Params struct {
	OrderID    *int64
	CustomerID *int64
	ProductID  int64
	Region     string
	OrderDate  time.Time
	Amount     decimal.Decimal
	Quantity   int
}

// Order is a cleaned order row ready to be written to the staging file and the
// orders table.
//
// Order follows these invariants:
//   - OrderID, when present, is positive
//   - OrderDate is always set (the cleaner fills missing dates)
//   - Value is always Amount * Quantity
type Order struct {
	orderID    *int64
	customerID *int64
	productID  int64
	region     string
	orderDate  time.Time
	amount     decimal.Decimal
	quantity   int

	isConstructed bool
}

// NewOrder validates params and builds an Order.
//
// Example:
//
//	id := int64(1001)
//	o, err := order.NewOrder(order.Params{
//	    OrderID:   &id,
//	    ProductID: 1000,
//	    Region:    "West",
//	    OrderDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
//	    Amount:    decimal.NewFromInt(100),
//	    Quantity:  3,
//	})
//	// o.Value() == 300
func NewOrder(p Params) (*Order, error) {
	o := &Order{
		customerID:    copyID(p.CustomerID),
		productID:     p.ProductID,
		region:        p.Region,
		amount:        p.Amount,
		quantity:      p.Quantity,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setOrderID(p.OrderID),
		o.setOrderDate(p.OrderDate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// OrderID returns the source order identifier, nil when it was missing.
func (o *Order) OrderID() *int64 {
	return copyID(o.orderID)
}

// CustomerID returns the customer identifier, nil when it was missing.
func (o *Order) CustomerID() *int64 {
	return copyID(o.customerID)
}

func (o *Order) ProductID() int64 {
	return o.productID
}

func (o *Order) Region() string {
	return o.region
}

func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

func (o *Order) Amount() decimal.Decimal {
	return o.amount
}

func (o *Order) Quantity() int {
	return o.quantity
}

// Value returns the derived order value: amount times quantity.
func (o *Order) Value() decimal.Decimal {
	return o.amount.Mul(decimal.NewFromInt(int64(o.quantity)))
}

// Record projects the order onto the pair used by the region ranking.
func (o *Order) Record() Record {
	return NewValuedRecord(o.region, o.Value())
}

// Key identifies the row content; two orders with the same key are duplicates.
func (o *Order) Key() string {
	return fmt.Sprintf("%s|%s|%d|%q|%s|%s|%d",
		formatID(o.orderID), formatID(o.customerID), o.productID, o.region,
		o.orderDate.Format(time.DateOnly), o.amount.String(), o.quantity)
}

func (o *Order) setOrderID(id *int64) error {
	if id != nil && *id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%d is not greater than 0", *id))
	}
	o.orderID = copyID(id)
	return nil
}

func (o *Order) setOrderDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("orderDate")
	}
	o.orderDate = date
	return nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("%d", *id)
}
