// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// A unit of work wraps the inserts of one import run in a single transaction, so a
// landing file is either fully loaded into the orders table or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().AddBatch(ctx, importID, orders); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction; goroutines must not share
// an instance.
package postgres

import (
	"context"

	"orderstats/internal/adapters/out/postgres/orderrepo"
	"orderstats/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackedBatch is one import batch written during the unit of work.
type TrackedBatch struct {
	ImportID uuid.UUID
	Orders   int
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:             f.db,
		trackedBatches: make([]TrackedBatch, 0),
	}
}

// GormUnitOfWork coordinates the transaction of one import and records the
// batches written through its repositories.
type GormUnitOfWork struct {
	db             *gorm.DB
	tx             *gorm.DB
	trackedBatches []TrackedBatch
}

// Begin starts a transaction. Calling Begin on an active unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction and forgets the batches tracked in it.
// Returns gorm.ErrInvalidTransaction when none is active, which makes a deferred
// Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedBatches = uow.trackedBatches[:0]
	return err
}

// OrderRepository returns a repository bound to the active transaction, or to the
// plain connection when no transaction is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackBatch registers a batch written within this unit of work.
func (uow *GormUnitOfWork) TrackBatch(importID uuid.UUID, orders int) {
	uow.trackedBatches = append(uow.trackedBatches, TrackedBatch{
		ImportID: importID,
		Orders:   orders,
	})
}

// TrackedBatches returns the batches written so far.
func (uow *GormUnitOfWork) TrackedBatches() []TrackedBatch {
	return uow.trackedBatches
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
