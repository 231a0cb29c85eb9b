// Package queries contains read operations over orders.
// Implements the Query pattern for read operations in the CQRS architecture.
// Query handlers read straight from the database and never modify state.
package queries

import (
	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/core/domain/model/ranking"
)

// Ranker orders regions by their average order value.
type Ranker interface {
	Rank(records []order.Record) ([]ranking.RegionAverage, error)
}
