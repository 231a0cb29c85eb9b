package queries

import (
	"context"

	"orderstats/internal/core/domain/model/ranking"
)

// RankOrdersQueryHandler ranks the records carried by the query.
//
// Example:
//
//	handler := NewRankOrdersQueryHandler(services.NewRegionAverageRanker())
//	query := NewRankOrdersQuery([]order.Record{
//	    order.NewValuedRecord("West", decimal.NewFromInt(100)),
//	    order.NewValuedRecord("East", decimal.NewFromInt(50)),
//	})
//
//	regions, err := handler.Handle(ctx, query)
type RankOrdersQueryHandler struct {
	ranker Ranker
}

func NewRankOrdersQueryHandler(ranker Ranker) RankOrdersQueryHandler {
	return RankOrdersQueryHandler{ranker: ranker}
}

// Handle executes the query. A cancelled context is reported before ranking starts.
func (h RankOrdersQueryHandler) Handle(ctx context.Context, query RankOrdersQuery) ([]ranking.RegionAverage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return h.ranker.Rank(query.Records())
}
