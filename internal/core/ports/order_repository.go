// Package ports defines the contracts between the orderstats core and its
// infrastructure: persistence of cleaned orders, transaction boundaries and the
// landing/staging file store.
package ports

import (
	"context"

	"orderstats/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderRepository defines the persistence contract for cleaned orders.
type OrderRepository interface {
	// AddBatch persists the orders of one import run.
	// Every order must be valid; an empty batch is a no-op.
	AddBatch(ctx context.Context, importID uuid.UUID, orders []*order.Order) error
}
