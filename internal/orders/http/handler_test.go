package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/cart"
	usersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/users"
	"github.com/anshmittal0811/Royal-Commerce/internal/orders/domain"
	"github.com/anshmittal0811/Royal-Commerce/internal/orders/repository"
	"github.com/anshmittal0811/Royal-Commerce/internal/orders/service"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
)

type stubRepo struct {
	orders map[int64]*domain.Order
}

func (s *stubRepo) CreateOrder(ctx context.Context, order *domain.Order, beforeCommit func(context.Context) error) error {
	if beforeCommit != nil {
		if err := beforeCommit(ctx); err != nil {
			return err
		}
	}
	order.ID = int64(len(s.orders) + 1)
	s.orders[order.ID] = order
	return nil
}

func (s *stubRepo) GetOrderByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return o, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id int64, status domain.Status) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	o.Status = status
	return o, nil
}

func (s *stubRepo) ListOrdersByEmail(_ context.Context, email string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range s.orders {
		if o.Email == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubRepo) ListAllOrders(context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *stubRepo) RunMigrations(*repository.Credentials) error { return nil }
func (s *stubRepo) Close() error                                { return nil }

type stubCarts struct{}

func (stubCarts) SendCart(context.Context, int64) (*cartclient.Cart, error) {
	return &cartclient.Cart{
		UserID: 7,
		Items:  []cartclient.CartItem{{ProductID: 1, ProductName: "Wireless Mouse", Quantity: 2, UnitPrice: 24.99}},
		Total:  49.98,
	}, nil
}
func (stubCarts) ClearCart(context.Context, int64) error { return nil }

type stubUsers struct{}

func (stubUsers) GetUser(context.Context, int64) (*usersclient.User, error) {
	return &usersclient.User{ID: 7, Name: "Jane", Email: "jane@example.com"}, nil
}

func newTestHandler(repo *stubRepo) *Handler {
	svc := service.NewOrderService(repo, stubCarts{}, stubUsers{}, zap.NewNop())
	return NewHandler(svc, zap.NewNop())
}

func decodeOrder(t *testing.T, rec *httptest.ResponseRecorder) domain.Order {
	t.Helper()
	var env api.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.IsSuccess())
	var order domain.Order
	require.NoError(t, env.DecodeData(&order))
	return order
}

func TestCreateOrder_Endpoint(t *testing.T) {
	repo := &stubRepo{orders: map[int64]*domain.Order{}}
	router := newTestHandler(repo).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/7", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	order := decodeOrder(t, rec)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, 49.98, order.TotalAmount)
}

func TestBringOrder_GetWithSideEffect(t *testing.T) {
	repo := &stubRepo{orders: map[int64]*domain.Order{
		5: {ID: 5, Status: domain.StatusPending},
	}}
	router := newTestHandler(repo).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/5/bring", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	order := decodeOrder(t, rec)
	assert.Equal(t, domain.StatusProcessing, order.Status)
	assert.Equal(t, domain.StatusProcessing, repo.orders[5].Status, "the read persists the transition")
}

func TestCompleteOrder_Endpoint(t *testing.T) {
	repo := &stubRepo{orders: map[int64]*domain.Order{
		5: {ID: 5, Status: domain.StatusPending},
	}}
	router := newTestHandler(repo).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/5/complete", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	order := decodeOrder(t, rec)
	assert.Equal(t, domain.StatusCompleted, order.Status)
}

func TestGetOrder_NotFound(t *testing.T) {
	repo := &stubRepo{orders: map[int64]*domain.Order{}}
	router := newTestHandler(repo).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrders_ByEmail(t *testing.T) {
	repo := &stubRepo{orders: map[int64]*domain.Order{
		1: {ID: 1, Email: "jane@example.com"},
		2: {ID: 2, Email: "other@example.com"},
	}}
	router := newTestHandler(repo).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?email=jane%40example.com", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var env api.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var orders []domain.Order
	require.NoError(t, env.DecodeData(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1), orders[0].ID)
}

func TestCreateOrder_BadUserID(t *testing.T) {
	repo := &stubRepo{orders: map[int64]*domain.Order{}}
	router := newTestHandler(repo).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
