package order_test

import (
	"testing"
	"time"

	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() order.Params {
	id := int64(1001)
	customer := int64(7)
	return order.Params{
		OrderID:    &id,
		CustomerID: &customer,
		ProductID:  1000,
		Region:     "West",
		OrderDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.RequireFromString("12.50"),
		Quantity:   3,
	}
}

func TestNewOrder_ValidParams(t *testing.T) {
	o, err := order.NewOrder(validParams())

	require.NoError(t, err)
	require.NoError(t, o.Validate())
	assert.Equal(t, int64(1001), *o.OrderID())
	assert.Equal(t, int64(7), *o.CustomerID())
	assert.Equal(t, int64(1000), o.ProductID())
	assert.Equal(t, "West", o.Region())
	assert.Equal(t, 3, o.Quantity())
	assert.True(t, o.Value().Equal(decimal.RequireFromString("37.5")))
}

func TestNewOrder_MissingIdentifiersAreAllowed(t *testing.T) {
	p := validParams()
	p.OrderID = nil
	p.CustomerID = nil

	o, err := order.NewOrder(p)

	require.NoError(t, err)
	assert.Nil(t, o.OrderID())
	assert.Nil(t, o.CustomerID())
}

func TestNewOrder_InvalidParams(t *testing.T) {
	p := validParams()
	zero := int64(0)
	p.OrderID = &zero
	p.OrderDate = time.Time{}

	o, err := order.NewOrder(p)

	require.Error(t, err)
	assert.Nil(t, o)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewOrder_DoesNotAliasCallerIDs(t *testing.T) {
	p := validParams()
	o, err := order.NewOrder(p)
	require.NoError(t, err)

	*p.OrderID = 5

	assert.Equal(t, int64(1001), *o.OrderID())
}

func TestOrder_Validate_NotConstructed(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Record(t *testing.T) {
	o, err := order.NewOrder(validParams())
	require.NoError(t, err)

	r := o.Record()

	require.NoError(t, r.Validate())
	assert.Equal(t, "West", r.Region())
	assert.True(t, r.Value().Valid)
	assert.True(t, r.Value().Decimal.Equal(decimal.RequireFromString("37.5")))
}

func TestOrder_Key(t *testing.T) {
	a, err := order.NewOrder(validParams())
	require.NoError(t, err)

	p := validParams()
	p.Amount = decimal.RequireFromString("12.5")
	b, err := order.NewOrder(p)
	require.NoError(t, err)

	p.Quantity = 4
	c, err := order.NewOrder(p)
	require.NoError(t, err)

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestRawOrder_Get(t *testing.T) {
	raw := order.NewRawOrder(
		[]string{"OrderID", "Customer Id", "order_date\r", "Extra"},
		[]string{"1", "2", "2024-01-01"},
	)

	v, ok := raw.Get(order.ColumnOrderID)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = raw.Get(order.ColumnCustomerID)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok = raw.Get(order.ColumnOrderDate)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-01", v)

	_, ok = raw.Get("Extra")
	assert.False(t, ok)
}
