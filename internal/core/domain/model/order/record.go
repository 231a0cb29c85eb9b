package order

import (
	"errors"
	"math"
	"strings"

	"orderstats/internal/pkg/errs"
	"orderstats/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record was not created through NewRecord.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")
)

// Record is one order as seen by the region ranking: a region identifier and an
// order value that may be null. An empty region means the order has no region
// and does not take part in grouping.
type Record struct {
	region string
	value  decimal.NullDecimal
	guard  guard.ConstructorGuard
}

// NewRecord creates a record. The region is kept verbatim; grouping uses exact equality.
func NewRecord(region string, value decimal.NullDecimal) Record {
	return Record{
		region: region,
		value:  value,
		guard:  guard.NewConstructorGuard(),
	}
}

// NewValuedRecord is a shorthand for a record with a non-null value.
func NewValuedRecord(region string, value decimal.Decimal) Record {
	return NewRecord(region, decimal.NewNullDecimal(value))
}

// Validate ensures the record was created through NewRecord.
func (r Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// Region returns the region identifier, empty when the order has none.
func (r Record) Region() string {
	return r.region
}

// HasRegion reports whether the record can be grouped.
func (r Record) HasRegion() bool {
	return r.region != ""
}

// Value returns the order value; Valid is false for a null value.
func (r Record) Value() decimal.NullDecimal {
	return r.value
}

// ParseValue converts the textual form of an order value. Blank text and the
// literal "null" are a null value; anything else must be a finite number or the
// result is an InvalidInputError.
func ParseValue(raw string) (decimal.NullDecimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "null") {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, errs.NewInvalidInputErrorWithCause("orderValue", raw, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// ValueFromFloat converts a float order value, rejecting NaN and infinities.
func ValueFromFloat(f float64) (decimal.NullDecimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.NullDecimal{}, errs.NewInvalidInputError("orderValue", f)
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(f)), nil
}
