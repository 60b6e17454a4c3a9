// Package http exposes the order-dispatch use cases over HTTP using echo.
// It translates the error taxonomy into status codes: validation failures
// map to 400, unknown objects to 404, lost take races to 412 and everything
// else, including gateway failures, to 500.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler commands.CreateOrderCommandHandler
	takeOrderHandler   commands.TakeOrderCommandHandler

	getOrdersHandler queries.GetOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	takeOrderHandler commands.TakeOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		createOrderHandler: createOrderHandler,
		takeOrderHandler:   takeOrderHandler,
		getOrdersHandler:   getOrdersHandler,
		logger:             logger,
	}
}

// RegisterRoutes attaches all handlers to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.GetOrders)
	e.PATCH("/orders/:id", s.TakeOrder)
	e.GET("/health", s.Health)
}

// CreateOrder handles POST /orders - resolves both coordinate pairs through
// the geocoder and persists a new unassigned order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.renderError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewCreateOrderCommand(request.Origin, request.Destination)
	if err != nil {
		return s.renderError(ctx, err)
	}

	createdOrder, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(createdOrder))
}

// GetOrders handles GET /orders - returns one page of orders, oldest first.
// Both page and limit are required and must be at least 1.
func (s *Server) GetOrders(ctx echo.Context) error {
	page, err := queryParamInt(ctx, "page")
	if err != nil {
		return s.renderError(ctx, err)
	}

	limit, err := queryParamInt(ctx, "limit")
	if err != nil {
		return s.renderError(ctx, err)
	}

	query, err := queries.NewGetOrdersQuery(page, limit)
	if err != nil {
		return s.renderError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderListResponse(orders))
}

// TakeOrder handles PATCH /orders/:id - claims an unassigned order for the
// calling worker. A second take on the same order answers 412.
func (s *Server) TakeOrder(ctx echo.Context) error {
	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return s.renderError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var request TakeOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return s.renderError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewTakeOrderCommand(orderID, request.Status)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if _, err = s.takeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TakeOrderResponse{Status: "SUCCESS"})
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// renderError maps taxonomy errors onto HTTP answers with a stable
// machine-readable identifier. Unrecognized errors are logged and reported
// as internal without leaking details to the client.
func (s *Server) renderError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Error:   errorCodeValidation,
			Message: err.Error(),
		})

	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Error:   errorCodeNotFound,
			Message: err.Error(),
		})

	case errors.Is(err, errs.ErrPreconditionFailed):
		return ctx.JSON(http.StatusPreconditionFailed, ErrorResponse{
			Code:    http.StatusPreconditionFailed,
			Error:   errorCodePreconditionFailed,
			Message: err.Error(),
		})

	default:
		s.logger.Error("request failed",
			"method", ctx.Request().Method,
			"path", ctx.Request().URL.Path,
			"error", err)

		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Error:   errorCodeInternal,
			Message: "internal error",
		})
	}
}

// queryParamInt reads a required positive integer query parameter. An absent
// parameter is a validation failure, not a default.
func queryParamInt(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, errs.NewValueIsRequiredError(name)
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	return value, nil
}
