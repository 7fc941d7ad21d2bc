// Package payment is the HTTP client for the payment processor, used by
// the gateway.
package payment

import (
	"context"
	"fmt"
	"time"

	ordersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/orders"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

type Payment struct {
	ID          string    `json:"payment_id"`
	OrderID     int64     `json:"order_id"`
	Total       float64   `json:"total"`
	Currency    string    `json:"currency"`
	Method      string    `json:"method"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreatePaymentRequest struct {
	OrderID     int64   `json:"order_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Method      string  `json:"method"`
	Description string  `json:"description"`
}

type Client struct {
	rpc *rpc.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rpc: rpc.NewClient("payment", baseURL, timeout)}
}

func (c *Client) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	var payment Payment
	if err := c.rpc.Post(ctx, "CreatePayment", "/api/payments/", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) ListPayments(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	if err := c.rpc.Get(ctx, "ListPayments", "/api/payments/", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ViewOrderDetails proxies the payment service's order lookup, which moves
// the order to PROCESSING.
func (c *Client) ViewOrderDetails(ctx context.Context, orderID int64) (*ordersclient.Order, error) {
	var order ordersclient.Order
	path := fmt.Sprintf("/api/payments/order/%d", orderID)
	if err := c.rpc.Get(ctx, "ViewOrderDetails", path, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
