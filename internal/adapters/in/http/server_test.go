package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of ports.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) TryTransition(
	ctx context.Context, id int64, from order.Status, to order.Status,
) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

// MockOrderUoW is a mock implementation of commands.OrderUoW.
type MockOrderUoW struct {
	mock.Mock
}

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

// MockOrderUoWFactory is a mock implementation of commands.OrderUoWFactory.
type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// MockGeocoder is a mock implementation of ports.Geocoder.
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Resolve(
	ctx context.Context, origin kernel.Coordinates, destination kernel.Coordinates,
) (ports.ResolvedRoute, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(ports.ResolvedRoute), args.Error(1)
}

type serverMocks struct {
	uowFactory *MockOrderUoWFactory
	uow        *MockOrderUoW
	repository *MockOrderRepository
	geocoder   *MockGeocoder
}

func newTestServer(t *testing.T) (*echo.Echo, *serverMocks) {
	t.Helper()

	mocks := &serverMocks{
		uowFactory: new(MockOrderUoWFactory),
		uow:        new(MockOrderUoW),
		repository: new(MockOrderRepository),
		geocoder:   new(MockGeocoder),
	}

	server := dispatchhttp.NewServer(
		commands.NewCreateOrderCommandHandler(mocks.uowFactory, mocks.geocoder),
		commands.NewTakeOrderCommandHandler(mocks.uowFactory),
		queries.GetOrdersQueryHandler{},
		nil,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return e, mocks
}

func (m *serverMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.uowFactory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.repository.AssertExpectations(t)
	m.geocoder.AssertExpectations(t)
}

func testRoute(t *testing.T) ports.ResolvedRoute {
	t.Helper()

	origin, err := kernel.NewLocation("48.8566", "2.3522", "Paris")
	require.NoError(t, err)
	destination, err := kernel.NewLocation("45.7640", "4.8357", "Lyon")
	require.NoError(t, err)

	return ports.ResolvedRoute{Origin: origin, Destination: destination}
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dispatchhttp.ErrorResponse {
	t.Helper()
	var body dispatchhttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateOrder_Success(t *testing.T) {
	e, mocks := newTestServer(t)
	route := testRoute(t)

	mocks.geocoder.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(route, nil).Once()
	mocks.uowFactory.On("Create").Return(mocks.uow).Once()
	mocks.uow.On("Begin", mock.Anything).Return(nil).Once()
	mocks.uow.On("OrderRepository").Return(mocks.repository).Once()
	mocks.repository.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			aggregate := args.Get(1).(*order.Order)
			require.NoError(t, aggregate.AssignID(42))
		}).
		Return(nil).Once()
	mocks.uow.On("Commit", mock.Anything).Return(nil).Once()
	mocks.uow.On("Rollback", mock.Anything).Return(nil).Once()

	rec := doJSON(e, http.MethodPost, "/orders",
		`{"origin": ["48.8566", "2.3522"], "destination": ["45.7640", "4.8357"]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body dispatchhttp.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "UNASSIGNED", body.Status)
	assert.Equal(t, "Paris", body.Origin.Address)
	assert.Equal(t, "Lyon", body.Destination.Address)

	mocks.assertExpectations(t)
}

func TestCreateOrder_InvalidCoordinates_ReturnsValidationError(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "missing_origin", body: `{"destination": ["45.7640", "4.8357"]}`},
		{name: "one_element_origin", body: `{"origin": ["48.8566"], "destination": ["45.7640", "4.8357"]}`},
		{
			name: "three_element_destination",
			body: `{"origin": ["48.8566", "2.3522"], "destination": ["1", "2", "3"]}`,
		},
		{name: "blank_element", body: `{"origin": ["48.8566", "  "], "destination": ["45.7640", "4.8357"]}`},
		{name: "malformed_json", body: `{"origin": [`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, mocks := newTestServer(t)

			rec := doJSON(e, http.MethodPost, "/orders", tc.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, http.StatusBadRequest, body.Code)
			assert.Equal(t, "validation_error", body.Error)

			// Nothing was resolved or persisted
			mocks.assertExpectations(t)
		})
	}
}

func TestCreateOrder_CoordinatesNotFound_Returns404(t *testing.T) {
	e, mocks := newTestServer(t)

	mocks.geocoder.On("Resolve", mock.Anything, mock.Anything, mock.Anything).
		Return(ports.ResolvedRoute{}, errs.NewObjectNotFoundError("coordinates", "0.0,0.0")).Once()

	rec := doJSON(e, http.MethodPost, "/orders",
		`{"origin": ["0.0", "0.0"], "destination": ["45.7640", "4.8357"]}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "not_found", body.Error)

	mocks.assertExpectations(t)
}

func TestCreateOrder_GatewayFailure_Returns500(t *testing.T) {
	e, mocks := newTestServer(t)

	mocks.geocoder.On("Resolve", mock.Anything, mock.Anything, mock.Anything).
		Return(ports.ResolvedRoute{},
			errs.NewGatewayFailureErrorWithCause("geocoder", errors.New("connection refused"))).Once()

	rec := doJSON(e, http.MethodPost, "/orders",
		`{"origin": ["48.8566", "2.3522"], "destination": ["45.7640", "4.8357"]}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal_error", body.Error)
	assert.Equal(t, "internal error", body.Message)

	mocks.assertExpectations(t)
}

func TestGetOrders_InvalidWindow_ReturnsValidationError(t *testing.T) {
	testCases := []struct {
		name   string
		target string
	}{
		{name: "missing_page", target: "/orders?limit=10"},
		{name: "missing_limit", target: "/orders?page=1"},
		{name: "missing_both", target: "/orders"},
		{name: "zero_page", target: "/orders?page=0&limit=10"},
		{name: "negative_limit", target: "/orders?page=1&limit=-1"},
		{name: "non_numeric_page", target: "/orders?page=abc&limit=10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, mocks := newTestServer(t)

			rec := doJSON(e, http.MethodGet, tc.target, "")

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "validation_error", body.Error)

			mocks.assertExpectations(t)
		})
	}
}

func TestTakeOrder_Success(t *testing.T) {
	e, mocks := newTestServer(t)

	mocks.uowFactory.On("Create").Return(mocks.uow).Once()
	mocks.uow.On("Begin", mock.Anything).Return(nil).Once()
	mocks.uow.On("OrderRepository").Return(mocks.repository).Once()
	mocks.repository.On("TryTransition", mock.Anything, int64(42), order.Unassigned, order.Taken).
		Return(true, nil).Once()
	mocks.uow.On("Commit", mock.Anything).Return(nil).Once()
	mocks.uow.On("Rollback", mock.Anything).Return(nil).Once()

	rec := doJSON(e, http.MethodPatch, "/orders/42", `{"status": "TAKEN"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body dispatchhttp.TakeOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SUCCESS", body.Status)

	mocks.assertExpectations(t)
}

func TestTakeOrder_AlreadyTaken_Returns412(t *testing.T) {
	e, mocks := newTestServer(t)

	origin, err := kernel.NewLocation("48.8566", "2.3522", "Paris")
	require.NoError(t, err)
	destination, err := kernel.NewLocation("45.7640", "4.8357", "Lyon")
	require.NoError(t, err)
	takenOrder, err := order.RestoreOrder(42, origin, destination, order.Taken, time.Now().UTC())
	require.NoError(t, err)

	mocks.uowFactory.On("Create").Return(mocks.uow).Once()
	mocks.uow.On("Begin", mock.Anything).Return(nil).Once()
	mocks.uow.On("OrderRepository").Return(mocks.repository).Once()
	mocks.repository.On("TryTransition", mock.Anything, int64(42), order.Unassigned, order.Taken).
		Return(false, nil).Once()
	mocks.repository.On("Get", mock.Anything, int64(42)).Return(takenOrder, nil).Once()
	mocks.uow.On("Rollback", mock.Anything).Return(nil).Once()

	rec := doJSON(e, http.MethodPatch, "/orders/42", `{"status": "TAKEN"}`)

	require.Equal(t, http.StatusPreconditionFailed, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, http.StatusPreconditionFailed, body.Code)
	assert.Equal(t, "precondition_failed", body.Error)

	mocks.assertExpectations(t)
}

func TestTakeOrder_UnknownOrder_Returns404(t *testing.T) {
	e, mocks := newTestServer(t)

	mocks.uowFactory.On("Create").Return(mocks.uow).Once()
	mocks.uow.On("Begin", mock.Anything).Return(nil).Once()
	mocks.uow.On("OrderRepository").Return(mocks.repository).Once()
	mocks.repository.On("TryTransition", mock.Anything, int64(999), order.Unassigned, order.Taken).
		Return(false, nil).Once()
	mocks.repository.On("Get", mock.Anything, int64(999)).
		Return(nil, errs.NewObjectNotFoundError("order", int64(999))).Once()
	mocks.uow.On("Rollback", mock.Anything).Return(nil).Once()

	rec := doJSON(e, http.MethodPatch, "/orders/999", `{"status": "TAKEN"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "not_found", body.Error)

	mocks.assertExpectations(t)
}

func TestTakeOrder_InvalidRequest_ReturnsValidationError(t *testing.T) {
	testCases := []struct {
		name   string
		target string
		body   string
	}{
		{name: "non_numeric_id", target: "/orders/abc", body: `{"status": "TAKEN"}`},
		{name: "missing_status", target: "/orders/42", body: `{}`},
		{name: "unassigned_requested", target: "/orders/42", body: `{"status": "UNASSIGNED"}`},
		{name: "unknown_status", target: "/orders/42", body: `{"status": "DONE"}`},
		{name: "lowercase_status", target: "/orders/42", body: `{"status": "taken"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, mocks := newTestServer(t)

			rec := doJSON(e, http.MethodPatch, tc.target, tc.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "validation_error", body.Error)

			mocks.assertExpectations(t)
		})
	}
}

func TestTakeOrder_StoreFailure_Returns500(t *testing.T) {
	e, mocks := newTestServer(t)

	mocks.uowFactory.On("Create").Return(mocks.uow).Once()
	mocks.uow.On("Begin", mock.Anything).Return(nil).Once()
	mocks.uow.On("OrderRepository").Return(mocks.repository).Once()
	mocks.repository.On("TryTransition", mock.Anything, int64(42), order.Unassigned, order.Taken).
		Return(false, errors.New("connection reset")).Once()
	mocks.uow.On("Rollback", mock.Anything).Return(nil).Once()

	rec := doJSON(e, http.MethodPatch, "/orders/42", `{"status": "TAKEN"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal_error", body.Error)

	mocks.assertExpectations(t)
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates_request_id", func(t *testing.T) {
		e, _ := newTestServer(t)
		e.Use(dispatchhttp.RequestID(nil))

		rec := doJSON(e, http.MethodGet, "/health", "")

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("keeps_client_request_id", func(t *testing.T) {
		e, _ := newTestServer(t)
		e.Use(dispatchhttp.RequestID(nil))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "client-supplied")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "client-supplied", rec.Header().Get("X-Request-ID"))
	})
}
