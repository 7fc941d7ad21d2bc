package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	ordersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/orders"
	"github.com/anshmittal0811/Royal-Commerce/internal/payment/domain"
	"github.com/anshmittal0811/Royal-Commerce/internal/payment/publisher"
	"github.com/anshmittal0811/Royal-Commerce/internal/payment/repository"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

const publishTimeout = 10 * time.Second

var (
	ErrInvalidOrderID = errors.New("order id must be positive")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrOrderNotFound  = errors.New("order not found")
)

// OrderGateway is the slice of the order ledger the payment processor
// needs. CompleteOrder is the saga's required call; BringOrder backs the
// order-details proxy.
type OrderGateway interface {
	CompleteOrder(ctx context.Context, orderID int64) (*ordersclient.Order, error)
	BringOrder(ctx context.Context, orderID int64) (*ordersclient.Order, error)
}

type PaymentService struct {
	repo      repository.PaymentRepository
	orders    OrderGateway
	publisher publisher.NotificationPublisher
	log       *zap.Logger
	now       func() time.Time
}

func NewPaymentService(
	repo repository.PaymentRepository,
	orders OrderGateway,
	pub publisher.NotificationPublisher,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		repo:      repo,
		orders:    orders,
		publisher: pub,
		log:       log,
		now:       time.Now,
	}
}

// CreatePayment runs the completion saga: complete the order, persist the
// payment, publish the notification. Completion is the required step; once
// it succeeds the order stays COMPLETED even if persisting the payment
// fails afterwards. The notification is published asynchronously and
// fire-and-forget: a publish failure is logged and the payment still
// succeeds. No idempotency key is recorded,
// so paying the same order twice produces two payment rows and two
// notifications.
func (s *PaymentService) CreatePayment(ctx context.Context, orderID int64, amount float64, currency, method, description string) (*domain.Payment, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	order, err := s.orders.CompleteOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	payment := &domain.Payment{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		Total:       amount,
		Currency:    currency,
		Method:      method,
		Description: description,
		Status:      domain.StatusSuccess,
		CreatedAt:   s.now(),
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		// The order is already COMPLETED at this point and is not rolled
		// back; the caller sees the persistence error.
		return nil, err
	}

	notification := &domain.Notification{
		OrderID:     order.ID,
		UserName:    order.Name,
		UserEmail:   order.Email,
		UserAddress: order.Address,
		UserPhone:   order.Phone,
		OrderStatus: order.Status,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
	}
	// Published off the request path so a slow broker never delays the
	// payment response. A detached context outlives the request.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(pubCtx, notification); err != nil {
			s.log.Warn("payment notification publish failed",
				zap.Int64("order_id", orderID),
				zap.Error(err))
		}
	}()

	s.log.Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.Int64("order_id", orderID),
		zap.Float64("total", amount))
	return payment, nil
}

// ViewOrderDetails proxies the order ledger's bring call, which also moves
// the order to PROCESSING.
func (s *PaymentService) ViewOrderDetails(ctx context.Context, orderID int64) (*ordersclient.Order, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	order, err := s.orders.BringOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]*domain.Payment, error) {
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}
	return payments, nil
}
