package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/anshmittal0811/Royal-Commerce/internal/cart/cache"
	"github.com/anshmittal0811/Royal-Commerce/internal/cart/domain"
	"github.com/anshmittal0811/Royal-Commerce/internal/cart/repository"
	catalogclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/catalog"
	usersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/users"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/saga"
)

var (
	ErrCartNotFound      = repository.ErrCartNotFound
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrItemNotInCart     = errors.New("product is not in the cart")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductGateway is the slice of the catalog service the cart needs.
// GetProduct/DecrementStock are required calls; RestoreStock is only ever
// invoked as a compensating action.
type ProductGateway interface {
	GetProduct(ctx context.Context, id int64) (*catalogclient.Product, error)
	DecrementStock(ctx context.Context, id int64, quantity int) (*catalogclient.Product, error)
	RestoreStock(ctx context.Context, id int64, quantity int) (*catalogclient.Product, error)
}

type UserGateway interface {
	GetUser(ctx context.Context, id int64) (*usersclient.User, error)
}

type CartService struct {
	repo     repository.CartRepository
	cache    cache.CartCache
	products ProductGateway
	users    UserGateway
	log      *zap.Logger
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(
	repo repository.CartRepository,
	cartCache cache.CartCache,
	products ProductGateway,
	users UserGateway,
	log *zap.Logger,
) *CartService {
	return &CartService{
		repo:     repo,
		cache:    cartCache,
		products: products,
		users:    users,
		log:      log,
	}
}

// AddToCart reserves stock for the user: the catalog decrement happens at
// add time, not at order time. The stock decrement is the single required
// remote call; until it succeeds nothing is persisted, so a failed add
// leaves both the stored cart and the displayed stock untouched.
func (s *CartService) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*domain.Cart, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if product.Stock < quantity {
		return nil, fmt.Errorf("%w for product %q: available %d, requested %d",
			ErrInsufficientStock, product.Name, product.Stock, quantity)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, usersclient.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	cart, err := s.repo.GetCart(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		cart = &domain.Cart{UserID: userID, Email: user.Email}
	} else if err != nil {
		return nil, err
	}

	if i := cart.ItemIndex(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   product.Price, // price snapshot, fixed at add time
			AddedAt:     time.Now(),
		})
	}

	// Required call: if the ledger refuses or the call fails, abort before
	// the in-memory cart changes reach storage.
	if _, err := s.products.DecrementStock(ctx, productID, quantity); err != nil {
		switch {
		case errors.Is(err, rpc.ErrConflict):
			return nil, fmt.Errorf("%w for product %q: reservation rejected", ErrInsufficientStock, product.Name)
		case errors.Is(err, rpc.ErrNotFound):
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart.RecalculateTotal()

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("persist cart: %w", err)
	}

	s.log.Info("product added to cart",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Float64("total", cart.Total))

	s.invalidateCache(userID)
	return cart, nil
}

// RemoveFromCart drops the whole line item, whatever its quantity. The
// stock restore is compensating: a failed restore is logged and the removal
// still goes through.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.ItemIndex(productID)
	if i < 0 {
		return nil, fmt.Errorf("%w: product %d", ErrItemNotInCart, productID)
	}

	removed := cart.Items[i]
	saga.Compensate(s.log, "restore stock on remove", func() error {
		_, restoreErr := s.products.RestoreStock(ctx, removed.ProductID, removed.Quantity)
		return restoreErr
	})

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.RecalculateTotal()

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("persist cart: %w", err)
	}

	s.log.Info("product removed from cart",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
		zap.Float64("total", cart.Total))

	s.invalidateCache(userID)
	return cart, nil
}

// SendCart is the read path; it goes through the cache.
func (s *CartService) SendCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(fmt.Sprintf("%d", userID), func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("cache get error", zap.Error(err)) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			errSet := s.cache.Set(context.Background(), userID, cart)
			if errSet != nil {
				s.log.Warn("cache set error", zap.Error(errSet))
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// ClearCart releases every reservation individually, then empties the cart.
// Clearing an already-empty cart is a no-op that still succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	for _, item := range cart.Items {
		item := item
		saga.Compensate(s.log, "restore stock on clear", func() error {
			_, restoreErr := s.products.RestoreStock(ctx, item.ProductID, item.Quantity)
			return restoreErr
		})
	}

	itemCount := len(cart.Items)
	cart.Items = nil
	cart.Total = 0

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}

	s.log.Info("cart cleared",
		zap.Int64("user_id", userID),
		zap.Int("items_removed", itemCount))

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) invalidateCache(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn("cache invalidate error", zap.Error(err))
	}
}
