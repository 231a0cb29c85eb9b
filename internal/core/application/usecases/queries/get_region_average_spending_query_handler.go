package queries

import (
	"context"
	"database/sql"

	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/core/domain/model/ranking"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetRegionAverageSpendingQueryHandler reads every stored (region, order value)
// pair and ranks them. Orders with a NULL region are read but not grouped.
type GetRegionAverageSpendingQueryHandler struct {
	db     *gorm.DB
	ranker Ranker
}

func NewGetRegionAverageSpendingQueryHandler(db *gorm.DB, ranker Ranker) GetRegionAverageSpendingQueryHandler {
	return GetRegionAverageSpendingQueryHandler{db: db, ranker: ranker}
}

// Handle executes the query. The result is never nil.
func (h GetRegionAverageSpendingQueryHandler) Handle(
	ctx context.Context,
	query GetRegionAverageSpendingQuery,
) ([]ranking.RegionAverage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			region,
			order_value
		FROM orders
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]order.Record, 0)
	for rows.Next() {
		var region sql.NullString
		var value decimal.NullDecimal

		if err = rows.Scan(&region, &value); err != nil {
			return nil, err
		}
		records = append(records, order.NewRecord(region.String, value))
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	ranked, err := h.ranker.Rank(records)
	if err != nil {
		return nil, err
	}

	if query.Limit() > 0 && len(ranked) > query.Limit() {
		ranked = ranked[:query.Limit()]
	}

	return ranked, nil
}
