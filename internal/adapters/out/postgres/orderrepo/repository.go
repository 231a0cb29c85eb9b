package orderrepo

import (
	"context"

	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// insertBatchSize bounds the number of rows per INSERT statement.
const insertBatchSize = 500

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker batchTracker
}

// batchTracker defines the interface for tracking stored import batches.
type batchTracker interface {
	TrackBatch(importID uuid.UUID, orders int)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker batchTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddBatch inserts the orders of one import run.
func (r *GormOrderRepository) AddBatch(ctx context.Context, importID uuid.UUID, orders []*order.Order) error {
	if importID == uuid.Nil {
		return errs.NewValueIsRequiredError("importID")
	}

	if len(orders) == 0 {
		return nil
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(importID, o))
	}

	if err := r.db.WithContext(ctx).CreateInBatches(&dtos, insertBatchSize).Error; err != nil {
		return err
	}

	r.tracker.TrackBatch(importID, len(dtos))
	return nil
}

// GetByImport returns the orders loaded by one import run, in insertion order.
func (r *GormOrderRepository) GetByImport(ctx context.Context, importID uuid.UUID) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "import_id = ?", importID).Error; err != nil {
		return nil, err
	}

	if len(dtos) == 0 {
		return nil, errs.NewObjectNotFoundError("import", importID.String())
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
