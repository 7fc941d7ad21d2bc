package repository

import (
	"context"
	"errors"

	"github.com/anshmittal0811/Royal-Commerce/internal/orders/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type OrderRepository interface {
	// CreateOrder inserts the order inside a transaction and assigns its ID.
	// beforeCommit runs after the insert but before commit; if it fails the
	// insert is rolled back and no order exists.
	CreateOrder(ctx context.Context, order *domain.Order, beforeCommit func(context.Context) error) error
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]*domain.Order, error)
	ListAllOrders(ctx context.Context) ([]*domain.Order, error)
	RunMigrations(*Credentials) error
	Close() error
}
