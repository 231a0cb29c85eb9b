// Package http exposes the region ranking and import use cases over HTTP with echo.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orderstats/internal/core/application/usecases/commands"
	"orderstats/internal/core/application/usecases/queries"
	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/core/domain/model/ranking"
	"orderstats/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type (
	// RegionAverageSpendingHandler ranks the stored orders.
	RegionAverageSpendingHandler interface {
		Handle(ctx context.Context, query queries.GetRegionAverageSpendingQuery) ([]ranking.RegionAverage, error)
	}

	// RankOrdersHandler ranks records supplied by the caller.
	RankOrdersHandler interface {
		Handle(ctx context.Context, query queries.RankOrdersQuery) ([]ranking.RegionAverage, error)
	}

	// ImportOrdersHandler imports one landing file.
	ImportOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.ImportOrdersCommand) (commands.ImportOrdersResult, error)
	}
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	importOrdersHandler ImportOrdersHandler

	// Query handlers
	regionAverageSpendingHandler RegionAverageSpendingHandler
	rankOrdersHandler            RankOrdersHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	importOrdersHandler ImportOrdersHandler,
	regionAverageSpendingHandler RegionAverageSpendingHandler,
	rankOrdersHandler RankOrdersHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		importOrdersHandler:          importOrdersHandler,
		regionAverageSpendingHandler: regionAverageSpendingHandler,
		rankOrdersHandler:            rankOrdersHandler,
		logger:                       logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts the API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/regions/average-spending", s.GetRegionAverageSpending)
	api.POST("/rankings", s.RankOrders)
	api.POST("/imports", s.ImportOrders)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetRegionAverageSpending handles GET /api/v1/regions/average-spending - ranks stored orders.
func (s *Server) GetRegionAverageSpending(ctx echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid limit",
		})
	}

	query, err := queries.NewGetRegionAverageSpendingQuery(limit)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	regions, err := s.regionAverageSpendingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRegionAverages(regions))
}

// RankOrders handles POST /api/v1/rankings - ranks the posted records.
func (s *Server) RankOrders(ctx echo.Context) error {
	var body []OrderRecord
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	records, err := toRecords(body)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	regions, err := s.rankOrdersHandler.Handle(ctx.Request().Context(), queries.NewRankOrdersQuery(records))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRegionAverages(regions))
}

// ImportOrders handles POST /api/v1/imports - imports one landing file now.
func (s *Server) ImportOrders(ctx echo.Context) error {
	var body NewImport
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewImportOrdersCommand(uuid.New(), body.File)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid import data: " + err.Error(),
		})
	}

	result, err := s.importOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Import{
		ID:         result.ImportID,
		File:       result.File,
		Rows:       result.Rows,
		Duplicates: result.Duplicates,
		Loaded:     result.Loaded,
	})
}

func (s *Server) errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, errs.ErrInvalidInput),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		code, message = http.StatusNotFound, err.Error()
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

var jsonNull = []byte("null")

func toRecords(body []OrderRecord) ([]order.Record, error) {
	records := make([]order.Record, 0, len(body))
	for i, r := range body {
		value, err := parseOrderValue(r.OrderValue)
		if err != nil {
			return nil, fmt.Errorf("orders[%d]: %w", i, err)
		}
		records = append(records, order.NewRecord(r.Region, value))
	}
	return records, nil
}

func parseOrderValue(raw json.RawMessage) (decimal.NullDecimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return decimal.NullDecimal{}, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.NullDecimal{}, errs.NewInvalidInputErrorWithCause("orderValue", string(raw), err)
		}
		return order.ParseValue(s)
	}

	return order.ParseValue(string(raw))
}

func toRegionAverages(regions []ranking.RegionAverage) []RegionAverage {
	response := make([]RegionAverage, len(regions))
	for i, r := range regions {
		response[i] = RegionAverage{
			Region:     r.Region,
			OrderCount: r.OrderCount,
		}
		if r.AverageSpending.Valid {
			n := json.Number(r.AverageSpending.Decimal.String())
			response[i].AverageSpending = &n
		}
	}
	return response
}
