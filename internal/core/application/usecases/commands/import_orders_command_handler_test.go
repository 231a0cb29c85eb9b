package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderstats/internal/core/application/usecases/commands"
	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/core/domain/services"
	"orderstats/internal/core/ports"
	"orderstats/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) AddBatch(ctx context.Context, importID uuid.UUID, orders []*order.Order) error {
	args := m.Called(ctx, importID, orders)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderFileStore struct{ mock.Mock }

func (m *MockOrderFileStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockOrderFileStore) Read(ctx context.Context, name string) ([]order.RawOrder, error) {
	args := m.Called(ctx, name)
	rows, _ := args.Get(0).([]order.RawOrder)
	return rows, args.Error(1)
}
func (m *MockOrderFileStore) Write(ctx context.Context, name string, orders []*order.Order) error {
	args := m.Called(ctx, name, orders)
	return args.Error(0)
}
func (m *MockOrderFileStore) Archive(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

var landingHeader = []string{"OrderID", "CustomerId", "ProductID", "Region", "OrderDate", "OrderAmount", "Quantity"}

func landingRows() []order.RawOrder {
	return []order.RawOrder{
		order.NewRawOrder(landingHeader, []string{"1", "10", "5", "West", "2024-01-01", "100", "1"}),
		order.NewRawOrder(landingHeader, []string{"1", "10", "5", "West", "2024-01-01", "100", "1"}),
		order.NewRawOrder(landingHeader, []string{"2", "11", "", "East", "", "One Hundred Pounds", "Three"}),
	}
}

func newHandler(store *MockOrderFileStore, factory *MockOrderUoWFactory) commands.ImportOrdersCommandHandler {
	cleaner := services.NewOrderCleaner(services.WithClock(func() time.Time {
		return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	}))
	return commands.NewImportOrdersCommandHandler(store, cleaner, factory, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestImportOrdersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := uuid.New()
	cmd, _ := commands.NewImportOrdersCommand(id, "order.csv")

	store := new(MockOrderFileStore)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	twoOrders := mock.MatchedBy(func(orders []*order.Order) bool { return len(orders) == 2 })
	mock.InOrder(
		store.On("Read", ctx, "order.csv").Return(landingRows(), nil).Once(),
		store.On("Write", ctx, "order.csv", twoOrders).Return(nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("AddBatch", ctx, id, twoOrders).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		store.On("Archive", ctx, "order.csv").Return(nil).Once(),
	)
	uow.On("Rollback", ctx).Return(nil).Once()

	h := newHandler(store, factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, id, result.ImportID)
	assert.Equal(t, 3, result.Rows)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 2, result.Loaded)
	store.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestImportOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	h := newHandler(new(MockOrderFileStore), new(MockOrderUoWFactory))

	_, err := h.Handle(t.Context(), commands.ImportOrdersCommand{})

	require.ErrorIs(t, err, commands.ErrImportOrdersCommandIsNotConstructed)
}

func TestImportOrdersCommandHandler_Handle_FileNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewImportOrdersCommand(uuid.New(), "missing.csv")

	store := new(MockOrderFileStore)
	store.On("Read", ctx, "missing.csv").Return(nil, errs.NewObjectNotFoundError("file", "missing.csv")).Once()
	factory := new(MockOrderUoWFactory)

	h := newHandler(store, factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
	store.AssertExpectations(t)
}

func TestImportOrdersCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewImportOrdersCommand(uuid.New(), "order.csv")

	store := new(MockOrderFileStore)
	store.On("Read", ctx, "order.csv").Return(landingRows(), nil).Once()
	store.On("Write", ctx, "order.csv", mock.Anything).Return(nil).Once()
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := newHandler(store, factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	store.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything)
}

func TestImportOrdersCommandHandler_Handle_AddBatchError_RollsBackAndKeepsFile(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewImportOrdersCommand(uuid.New(), "order.csv")

	store := new(MockOrderFileStore)
	store.On("Read", ctx, "order.csv").Return(landingRows(), nil).Once()
	store.On("Write", ctx, "order.csv", mock.Anything).Return(nil).Once()
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("AddBatch", ctx, mock.Anything, mock.Anything).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := newHandler(store, factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store orders")
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	store.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything)
}

func TestImportOrdersCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewImportOrdersCommand(uuid.New(), "order.csv")

	store := new(MockOrderFileStore)
	store.On("Read", ctx, "order.csv").Return(landingRows(), nil).Once()
	store.On("Write", ctx, "order.csv", mock.Anything).Return(nil).Once()
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("AddBatch", ctx, mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := newHandler(store, factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
	store.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything)
}

func TestImportOrdersCommandHandler_Handle_WriteStagingError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewImportOrdersCommand(uuid.New(), "order.csv")

	store := new(MockOrderFileStore)
	store.On("Read", ctx, "order.csv").Return(landingRows(), nil).Once()
	store.On("Write", ctx, "order.csv", mock.Anything).Return(errors.New("disk full")).Once()
	factory := new(MockOrderUoWFactory)

	h := newHandler(store, factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write staging")
	factory.AssertNotCalled(t, "Create")
}
