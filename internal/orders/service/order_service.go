package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	cartclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/cart"
	usersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/users"
	"github.com/anshmittal0811/Royal-Commerce/internal/orders/domain"
	"github.com/anshmittal0811/Royal-Commerce/internal/orders/repository"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

var (
	ErrOrderNotFound  = repository.ErrOrderNotFound
	ErrInvalidUserID  = errors.New("user id must be positive")
	ErrInvalidOrderID = errors.New("order id must be positive")
	ErrInvalidEmail   = errors.New("email is required")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrOrderCreation  = errors.New("could not create order")
)

// CartGateway is the slice of the cart service order creation needs. Both
// calls are required: a failed clear aborts the order.
type CartGateway interface {
	SendCart(ctx context.Context, userID int64) (*cartclient.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

type UserGateway interface {
	GetUser(ctx context.Context, id int64) (*usersclient.User, error)
}

type OrderService struct {
	repo  repository.OrderRepository
	carts CartGateway
	users UserGateway
	log   *zap.Logger
	now   func() time.Time
}

func NewOrderService(
	repo repository.OrderRepository,
	carts CartGateway,
	users UserGateway,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		repo:  repo,
		carts: carts,
		users: users,
		log:   log,
		now:   time.Now,
	}
}

// CreateOrder turns the user's cart into a PENDING order. The cart clear is
// part of the order's local transaction: the insert commits only after the
// remote clear succeeds, so a visible order always has an emptied cart
// behind it. Stock was already reserved when the items entered the cart, so
// creation touches no stock.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	cart, err := s.carts.SendCart(ctx, userID)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, usersclient.ErrUserNotFound) {
			return nil, ErrOrderCreation
		}
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  domain.Round2(float64(it.Quantity) * it.UnitPrice),
		})
	}

	order := &domain.Order{
		Name:        user.Name,
		LastName:    user.LastName,
		Email:       user.Email,
		Address:     user.Address,
		Phone:       user.Phone,
		Role:        user.Role,
		Items:       items,
		TotalAmount: domain.Round2(cart.Total),
		Status:      domain.StatusPending,
		OrderDate:   s.now(),
	}

	err = s.repo.CreateOrder(ctx, order, func(ctx context.Context) error {
		return s.carts.ClearCart(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Float64("total", order.TotalAmount))
	return order, nil
}

// BringOrder moves the order to PROCESSING and returns the updated snapshot.
func (s *OrderService) BringOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.setStatus(ctx, orderID, domain.StatusProcessing)
}

// CompleteOrder moves the order to COMPLETED. The transition is
// unconditional: a PENDING order completes directly and completing twice is
// a status no-op.
func (s *OrderService) CompleteOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.setStatus(ctx, orderID, domain.StatusCompleted)
}

func (s *OrderService) setStatus(ctx context.Context, orderID int64, status domain.Status) (*domain.Order, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	s.log.Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)))
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	return s.repo.GetOrderByID(ctx, orderID)
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, email string) ([]*domain.Order, error) {
	if email == "" {
		return nil, ErrInvalidEmail
	}
	orders, err := s.repo.ListOrdersByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.ListAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}
