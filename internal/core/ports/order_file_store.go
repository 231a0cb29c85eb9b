package ports

import (
	"context"

	"orderstats/internal/core/domain/model/order"
)

// OrderFileStore gives access to the landing area that receives raw order files
// and the staging area that receives cleaned ones. File names are bare names,
// never paths.
type OrderFileStore interface {
	// List returns the names of landing files waiting to be imported, sorted.
	List(ctx context.Context) ([]string, error)

	// Read parses a landing file into raw rows.
	// Returns an ObjectNotFoundError when the file does not exist.
	Read(ctx context.Context, name string) ([]order.RawOrder, error)

	// Write stores cleaned orders under name in the staging area, replacing
	// any previous file of that name.
	Write(ctx context.Context, name string, orders []*order.Order) error

	// Archive moves a processed landing file out of the landing area.
	Archive(ctx context.Context, name string) error
}
