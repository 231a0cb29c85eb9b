package commands

import (
	"context"
	"fmt"
	"log/slog"

	"orderstats/internal/core/ports"

	"github.com/google/uuid"
)

// ImportOrdersResult summarizes one import run.
type ImportOrdersResult struct {
	ImportID   uuid.UUID
	File       string
	Rows       int
	Duplicates int
	Loaded     int
}

// ImportOrdersCommandHandler runs the landing → staging → warehouse pipeline for one file:
// read the raw rows, clean them, write the cleaned file to staging, insert the
// orders in a single transaction, and archive the landing file.
//
// Example:
//
//	handler := NewImportOrdersCommandHandler(store, services.NewOrderCleaner(), uowFactory, logger)
//	cmd, _ := NewImportOrdersCommand(uuid.New(), "order.csv")
//
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("import failed: %w", err)
//	}
type ImportOrdersCommandHandler struct {
	store      ports.OrderFileStore
	cleaner    OrderCleaner
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewImportOrdersCommandHandler creates a handler for import operations.
func NewImportOrdersCommandHandler(
	store ports.OrderFileStore,
	cleaner OrderCleaner,
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) ImportOrdersCommandHandler {
	return ImportOrdersCommandHandler{
		store:      store,
		cleaner:    cleaner,
		uowFactory: uowFactory,
		logger:     logger.With("component", "import_orders_handler"),
	}
}

// Handle processes the import command.
// The landing file is archived only after the transaction commits, so a failed
// run leaves it in place for the next attempt.
func (h *ImportOrdersCommandHandler) Handle(ctx context.Context, cmd ImportOrdersCommand) (ImportOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return ImportOrdersResult{}, err
	}

	rows, err := h.store.Read(ctx, cmd.File())
	if err != nil {
		return ImportOrdersResult{}, fmt.Errorf("read %s: %w", cmd.File(), err)
	}

	cleaned, err := h.cleaner.Clean(rows)
	if err != nil {
		return ImportOrdersResult{}, fmt.Errorf("clean %s: %w", cmd.File(), err)
	}

	if err = h.store.Write(ctx, cmd.File(), cleaned.Orders); err != nil {
		return ImportOrdersResult{}, fmt.Errorf("write staging %s: %w", cmd.File(), err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ImportOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().AddBatch(ctx, cmd.ImportID(), cleaned.Orders); err != nil {
		return ImportOrdersResult{}, fmt.Errorf("store orders: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return ImportOrdersResult{}, err
	}

	if err = h.store.Archive(ctx, cmd.File()); err != nil {
		return ImportOrdersResult{}, fmt.Errorf("archive %s: %w", cmd.File(), err)
	}

	result := ImportOrdersResult{
		ImportID:   cmd.ImportID(),
		File:       cmd.File(),
		Rows:       cleaned.Rows,
		Duplicates: cleaned.Duplicates,
		Loaded:     len(cleaned.Orders),
	}

	h.logger.InfoContext(ctx, "Orders imported",
		"import_id", result.ImportID.String(),
		"file", result.File,
		"rows", result.Rows,
		"duplicates", result.Duplicates,
		"loaded", result.Loaded,
	)

	return result, nil
}
