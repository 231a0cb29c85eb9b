package queries

import (
	"errors"
	"math"

	"orderstats/internal/pkg/errs"
	"orderstats/internal/pkg/guard"
)

var (
	ErrGetRegionAverageSpendingQueryIsNotConstructed = errors.New(
		"GetRegionAverageSpendingQuery must be created via NewGetRegionAverageSpendingQuery constructor",
	)
)

// GetRegionAverageSpendingQuery ranks regions by the average value of the
// orders stored in the warehouse table.
//
// Example:
//
//	query, _ := NewGetRegionAverageSpendingQuery(10)
//	handler := NewGetRegionAverageSpendingQueryHandler(db, services.NewRegionAverageRanker())
//
//	regions, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to rank regions: %w", err)
//	}
//
//	for _, r := range regions {
//	    fmt.Printf("%s: %s\n", r.Region, r.AverageSpending.Decimal.StringFixed(2))
//	}
type GetRegionAverageSpendingQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewGetRegionAverageSpendingQuery creates the query. A limit of 0 returns every region.
func NewGetRegionAverageSpendingQuery(limit int) (GetRegionAverageSpendingQuery, error) {
	if limit < 0 {
		return GetRegionAverageSpendingQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, math.MaxInt)
	}

	return GetRegionAverageSpendingQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRegionAverageSpendingQuery) Validate() error {
	return q.guard.Validate(ErrGetRegionAverageSpendingQueryIsNotConstructed)
}

func (q GetRegionAverageSpendingQuery) Limit() int {
	return q.limit
}
