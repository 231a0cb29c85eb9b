package commands

import (
	"errors"
	"path/filepath"

	"orderstats/internal/pkg/errs"
	"orderstats/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrImportOrdersCommandIsNotConstructed = errors.New(
		"ImportOrdersCommand must be created via NewImportOrdersCommand constructor",
	)
	ErrImportIDIsRequired = errors.New("import ID is required")
	ErrFileIsRequired     = errors.New("file is required")
)

// ImportOrdersCommand represents a request to load one landing file into the
// orders table. The import ID tags every stored row of the run.
//
// Example:
//
//	cmd, err := NewImportOrdersCommand(uuid.New(), "order.csv")
//	if err != nil {
//	    return fmt.Errorf("invalid import request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("import failed: %w", err)
//	}
//	fmt.Printf("Loaded %d of %d rows\n", result.Loaded, result.Rows)
type ImportOrdersCommand struct { //nolint:recvcheck //using for validation
	importID uuid.UUID
	file     string

	guard guard.ConstructorGuard
}

// NewImportOrdersCommand creates an import command.
// The file must be a bare file name inside the landing area.
func NewImportOrdersCommand(importID uuid.UUID, file string) (ImportOrdersCommand, error) {
	cmd := ImportOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setImportID(importID),
		cmd.setFile(file),
	); err != nil {
		return ImportOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ImportOrdersCommand) Validate() error {
	return c.guard.Validate(ErrImportOrdersCommandIsNotConstructed)
}

// ImportID returns the identifier of this import run.
func (c ImportOrdersCommand) ImportID() uuid.UUID {
	return c.importID
}

// File returns the landing file name.
func (c ImportOrdersCommand) File() string {
	return c.file
}

func (c *ImportOrdersCommand) setImportID(importID uuid.UUID) error {
	if importID == uuid.Nil {
		return ErrImportIDIsRequired
	}

	c.importID = importID
	return nil
}

func (c *ImportOrdersCommand) setFile(file string) error {
	if file == "" {
		return ErrFileIsRequired
	}
	if filepath.Base(file) != file || file == "." || file == ".." {
		return errs.NewValueIsInvalidError("file")
	}

	c.file = file
	return nil
}
