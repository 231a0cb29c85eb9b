// Package csvfile stores order files on the local filesystem.
//
// A Store manages three directories: landing receives raw order files, staging
// receives the cleaned files, and landing/archive keeps landing files that were
// imported.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/pkg/errs"
)

const (
	archiveDirName = "archive"
	fileExt        = ".csv"
	dirPerm        = 0o755
)

// Store implements ports.OrderFileStore on local directories.
type Store struct {
	landingDir string
	stagingDir string
	archiveDir string
}

// NewStore creates the landing, staging and archive directories when missing.
func NewStore(landingDir, stagingDir string) (*Store, error) {
	if landingDir == "" {
		return nil, errs.NewValueIsRequiredError("landingDir")
	}
	if stagingDir == "" {
		return nil, errs.NewValueIsRequiredError("stagingDir")
	}

	s := &Store{
		landingDir: landingDir,
		stagingDir: stagingDir,
		archiveDir: filepath.Join(landingDir, archiveDirName),
	}

	for _, dir := range []string{s.landingDir, s.stagingDir, s.archiveDir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	return s, nil
}

// List returns the .csv files waiting in the landing directory, sorted by name.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.landingDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), fileExt) {
			names = append(names, e.Name())
		}
	}

	return names, nil
}

// Read parses a landing file into raw rows keyed by its header.
func (s *Store) Read(ctx context.Context, name string) ([]order.RawOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.path(s.landingDir, name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.NewObjectNotFoundErrorWithCause("file", name, err)
		}
		return nil, err
	}
	defer f.Close()

	return ReadRawOrders(f)
}

// Write replaces the staging file name with the cleaned orders. The file is
// written under a temporary name and renamed, so readers never see a partial file.
func (s *Store) Write(ctx context.Context, name string, orders []*order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(s.stagingDir, name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.stagingDir, "."+name+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err = WriteOrders(tmp, orders); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Archive moves a landing file into the archive directory, replacing an older
// archived file of the same name.
func (s *Store) Archive(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := s.path(s.landingDir, name)
	if err != nil {
		return err
	}

	dst, err := s.path(s.archiveDir, name)
	if err != nil {
		return err
	}

	if err = os.Rename(src, dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.NewObjectNotFoundErrorWithCause("file", name, err)
		}
		return err
	}

	return nil
}

func (s *Store) path(dir, name string) (string, error) {
	if name == "" {
		return "", errs.NewValueIsRequiredError("name")
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", errs.NewValueIsInvalidError("name")
	}
	return filepath.Join(dir, name), nil
}

// ReadRawOrders parses a CSV with a header row. Line endings may be "\n", "\r\n"
// or a lone "\r"; rows may be shorter or longer than the header.
func ReadRawOrders(r io.Reader) ([]order.RawOrder, error) {
	reader, err := newReader(r)
	if err != nil {
		return nil, err
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []order.RawOrder{}, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	rows := make([]order.RawOrder, 0)
	for {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
		rows = append(rows, order.NewRawOrder(header, row))
	}

	return rows, nil
}

// WriteOrders writes cleaned orders as CSV with the staging header.
// Missing identifiers are written as empty cells.
func WriteOrders(w io.Writer, orders []*order.Order) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(order.StagingColumns); err != nil {
		return err
	}

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}

		if err := writer.Write([]string{
			formatID(o.OrderID()),
			formatID(o.CustomerID()),
			strconv.FormatInt(o.ProductID(), 10),
			o.Region(),
			o.OrderDate().Format(time.DateOnly),
			o.Amount().String(),
			strconv.Itoa(o.Quantity()),
			o.Value().String(),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func newReader(r io.Reader) (*csv.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	return reader, nil
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
