// Package ranking holds the output rows of the region average spending ranking.
package ranking

import "github.com/shopspring/decimal"

// RegionAverage is one ranked region: the mean order value of its orders.
// AverageSpending is null when every order in the region had a null value;
// OrderCount is the number of non-null values that were averaged.
type RegionAverage struct {
	Region          string
	AverageSpending decimal.NullDecimal
	OrderCount      int
}
