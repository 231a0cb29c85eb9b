package queries

import (
	"errors"
	"slices"

	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/pkg/guard"
)

var (
	ErrRankOrdersQueryIsNotConstructed = errors.New("RankOrdersQuery must be created via NewRankOrdersQuery constructor")
)

// RankOrdersQuery ranks a caller-supplied batch of records without touching storage.
type RankOrdersQuery struct {
	records []order.Record
	guard   guard.ConstructorGuard
}

// NewRankOrdersQuery creates the query over a copy of records.
func NewRankOrdersQuery(records []order.Record) RankOrdersQuery {
	return RankOrdersQuery{
		records: slices.Clone(records),
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q RankOrdersQuery) Validate() error {
	return q.guard.Validate(ErrRankOrdersQueryIsNotConstructed)
}

func (q RankOrdersQuery) Records() []order.Record {
	return q.records
}
