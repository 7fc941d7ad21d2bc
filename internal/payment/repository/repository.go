package repository

import (
	"context"
	"errors"

	"github.com/anshmittal0811/Royal-Commerce/internal/payment/domain"
)

var ErrPaymentNotFound = errors.New("payment not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *domain.Payment) error
	GetPaymentByID(ctx context.Context, id string) (*domain.Payment, error)
	ListPayments(ctx context.Context) ([]*domain.Payment, error)
	RunMigrations(*Credentials) error
	Close() error
}
