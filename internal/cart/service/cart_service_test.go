package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/cart/cache"
	"github.com/anshmittal0811/Royal-Commerce/internal/cart/domain"
	"github.com/anshmittal0811/Royal-Commerce/internal/cart/repository"
	catalogclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/catalog"
	usersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/users"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

type mockRepository struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockRepository) GetCart(context.Context, int64) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, repository.ErrCartNotFound
	}
	return m.cart, nil
}

func (m *mockRepository) UpsertCart(_ context.Context, c *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.cart = c
	return nil
}

type mockCache struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCache) Get(context.Context, int64) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCache) Set(_ context.Context, _ int64, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return m.err
}

func (m *mockCache) Delete(context.Context, int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	return m.err
}

type mockProducts struct {
	m            sync.Mutex
	product      *catalogclient.Product
	getErr       error
	decrementErr error
	restoreErr   error
	decremented  int // total quantity decremented
	restored     int // total quantity restored
}

func (m *mockProducts) GetProduct(context.Context, int64) (*catalogclient.Product, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.product, nil
}

func (m *mockProducts) DecrementStock(_ context.Context, _ int64, quantity int) (*catalogclient.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.decrementErr != nil {
		return nil, m.decrementErr
	}
	m.decremented += quantity
	m.product.Stock -= quantity
	return m.product, nil
}

func (m *mockProducts) RestoreStock(_ context.Context, _ int64, quantity int) (*catalogclient.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.restoreErr != nil {
		return nil, m.restoreErr
	}
	m.restored += quantity
	m.product.Stock += quantity
	return m.product, nil
}

type mockUsers struct {
	user *usersclient.User
	err  error
}

func (m *mockUsers) GetUser(context.Context, int64) (*usersclient.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func mouse() *catalogclient.Product {
	return &catalogclient.Product{ID: 1, Name: "Wireless Mouse", Price: 24.99, Stock: 10}
}

func jane() *usersclient.User {
	return &usersclient.User{ID: 7, Name: "Jane", Email: "jane@example.com"}
}

func newService(repo *mockRepository, c *mockCache, p *mockProducts, u *mockUsers) *CartService {
	return NewCartService(repo, c, p, u, zap.NewNop())
}

func cartWith(items ...domain.CartItem) *domain.Cart {
	c := &domain.Cart{UserID: 7, Email: "jane@example.com", Items: items}
	c.RecalculateTotal()
	return c
}

func TestAddToCart_CreatesCartAndReservesStock(t *testing.T) {
	repo := &mockRepository{}
	products := &mockProducts{product: mouse()}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	cart, err := svc.AddToCart(context.Background(), 7, 1, 2)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Wireless Mouse", cart.Items[0].ProductName)
	assert.Equal(t, 24.99, cart.Items[0].UnitPrice)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 49.98, cart.Total)
	assert.Equal(t, 2, products.decremented)
	require.NotNil(t, repo.cart, "cart persisted after successful reservation")
}

func TestAddToCart_MergesLineKeepsPriceSnapshot(t *testing.T) {
	existing := cartWith(domain.CartItem{
		ProductID: 1, ProductName: "Wireless Mouse", Quantity: 1, UnitPrice: 19.99, AddedAt: time.Now(),
	})
	repo := &mockRepository{cart: existing}
	// The catalog price has gone up since the first add.
	products := &mockProducts{product: mouse()}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	cart, err := svc.AddToCart(context.Background(), 7, 1, 2)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 19.99, cart.Items[0].UnitPrice, "unit price stays at the add-time snapshot")
	assert.InDelta(t, 59.97, cart.Total, 1e-9)
}

func TestAddToCart_InsufficientDisplayedStock(t *testing.T) {
	repo := &mockRepository{}
	products := &mockProducts{product: &catalogclient.Product{ID: 1, Name: "Wireless Mouse", Price: 24.99, Stock: 1}}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	_, err := svc.AddToCart(context.Background(), 7, 1, 5)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 0, products.decremented, "no reservation attempted")
	assert.Nil(t, repo.cart, "nothing persisted")
}

func TestAddToCart_DecrementConflictAborts(t *testing.T) {
	repo := &mockRepository{}
	products := &mockProducts{
		product:      mouse(),
		decrementErr: fmt.Errorf("%w: insufficient stock", rpc.ErrConflict),
	}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	_, err := svc.AddToCart(context.Background(), 7, 1, 2)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Nil(t, repo.cart, "a rejected reservation leaves the stored cart untouched")
}

func TestAddToCart_DecrementTransportFailureAborts(t *testing.T) {
	repo := &mockRepository{}
	products := &mockProducts{
		product:      mouse(),
		decrementErr: &rpc.CallError{Service: "catalog", Op: "DecrementStock", Err: errors.New("connection refused")},
	}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	_, err := svc.AddToCart(context.Background(), 7, 1, 2)

	var callErr *rpc.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Nil(t, repo.cart)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	products := &mockProducts{getErr: fmt.Errorf("%w: no product", rpc.ErrNotFound)}
	svc := newService(&mockRepository{}, &mockCache{}, products, &mockUsers{user: jane()})

	_, err := svc.AddToCart(context.Background(), 7, 999, 1)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddToCart_UnknownUser(t *testing.T) {
	products := &mockProducts{product: mouse()}
	svc := newService(&mockRepository{}, &mockCache{}, products, &mockUsers{err: usersclient.ErrUserNotFound})

	_, err := svc.AddToCart(context.Background(), 7, 1, 1)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveFromCart_RestoresStock(t *testing.T) {
	repo := &mockRepository{cart: cartWith(
		domain.CartItem{ProductID: 1, ProductName: "Wireless Mouse", Quantity: 2, UnitPrice: 24.99},
		domain.CartItem{ProductID: 2, ProductName: "Desk Lamp", Quantity: 1, UnitPrice: 31.25},
	)}
	products := &mockProducts{product: mouse()}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	cart, err := svc.RemoveFromCart(context.Background(), 7, 1)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].ProductID)
	assert.Equal(t, 31.25, cart.Total)
	assert.Equal(t, 2, products.restored, "the whole line's quantity goes back")
}

func TestRemoveFromCart_RestoreFailureStillRemoves(t *testing.T) {
	repo := &mockRepository{cart: cartWith(
		domain.CartItem{ProductID: 1, ProductName: "Wireless Mouse", Quantity: 2, UnitPrice: 24.99},
	)}
	products := &mockProducts{product: mouse(), restoreErr: errors.New("catalog down")}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	cart, err := svc.RemoveFromCart(context.Background(), 7, 1)

	require.NoError(t, err, "restore is compensating, not required")
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestRemoveFromCart_ItemNotInCart(t *testing.T) {
	repo := &mockRepository{cart: cartWith(
		domain.CartItem{ProductID: 2, ProductName: "Desk Lamp", Quantity: 1, UnitPrice: 31.25},
	)}
	svc := newService(repo, &mockCache{}, &mockProducts{product: mouse()}, &mockUsers{user: jane()})

	_, err := svc.RemoveFromCart(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrItemNotInCart)
}

func TestRemoveFromCart_NoCart(t *testing.T) {
	svc := newService(&mockRepository{}, &mockCache{}, &mockProducts{product: mouse()}, &mockUsers{user: jane()})

	_, err := svc.RemoveFromCart(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestSendCart_CacheHitSkipsRepository(t *testing.T) {
	cached := cartWith(domain.CartItem{ProductID: 1, Quantity: 1, UnitPrice: 24.99})
	repo := &mockRepository{err: errors.New("repo must not be called")}
	svc := newService(repo, &mockCache{cart: cached}, &mockProducts{product: mouse()}, &mockUsers{user: jane()})

	cart, err := svc.SendCart(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, cached.Total, cart.Total)
}

func TestSendCart_CacheMissFallsThrough(t *testing.T) {
	stored := cartWith(domain.CartItem{ProductID: 1, Quantity: 2, UnitPrice: 24.99})
	repo := &mockRepository{cart: stored}
	svc := newService(repo, &mockCache{}, &mockProducts{product: mouse()}, &mockUsers{user: jane()})

	cart, err := svc.SendCart(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 49.98, cart.Total)
}

func TestSendCart_NoCart(t *testing.T) {
	svc := newService(&mockRepository{}, &mockCache{}, &mockProducts{product: mouse()}, &mockUsers{user: jane()})

	_, err := svc.SendCart(context.Background(), 7)

	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestClearCart_RestoresEveryLine(t *testing.T) {
	repo := &mockRepository{cart: cartWith(
		domain.CartItem{ProductID: 1, ProductName: "Wireless Mouse", Quantity: 2, UnitPrice: 24.99},
		domain.CartItem{ProductID: 2, ProductName: "Desk Lamp", Quantity: 3, UnitPrice: 31.25},
	)}
	products := &mockProducts{product: mouse()}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	err := svc.ClearCart(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 5, products.restored)
	assert.Empty(t, repo.cart.Items)
	assert.Zero(t, repo.cart.Total)
}

func TestClearCart_EmptyCartIsNoOp(t *testing.T) {
	repo := &mockRepository{cart: cartWith()}
	products := &mockProducts{product: mouse()}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	err := svc.ClearCart(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 0, products.restored)
}

func TestClearCart_RestoreFailuresDoNotBlock(t *testing.T) {
	repo := &mockRepository{cart: cartWith(
		domain.CartItem{ProductID: 1, ProductName: "Wireless Mouse", Quantity: 2, UnitPrice: 24.99},
	)}
	products := &mockProducts{product: mouse(), restoreErr: errors.New("catalog down")}
	svc := newService(repo, &mockCache{}, products, &mockUsers{user: jane()})

	err := svc.ClearCart(context.Background(), 7)

	require.NoError(t, err)
	assert.Empty(t, repo.cart.Items)
}
