// Package orders is the HTTP client for the order ledger, used by the
// payment service to drive completion and by the gateway for reads.
package orders

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Order mirrors the order ledger's wire shape, customer snapshot included.
type Order struct {
	ID          int64       `json:"order_id"`
	Name        string      `json:"name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone"`
	Role        string      `json:"role"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	OrderDate   time.Time   `json:"order_date"`
}

type Client struct {
	rpc *rpc.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rpc: rpc.NewClient("orders", baseURL, timeout)}
}

func (c *Client) CreateOrder(ctx context.Context, userID int64) (*Order, error) {
	var order Order
	if err := c.rpc.Post(ctx, "CreateOrder", fmt.Sprintf("/api/orders/%d", userID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	if err := c.rpc.Get(ctx, "GetOrder", fmt.Sprintf("/api/orders/%d", orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// BringOrder fetches the order and moves it to PROCESSING as a side effect.
func (c *Client) BringOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	if err := c.rpc.Get(ctx, "BringOrder", fmt.Sprintf("/api/orders/%d/bring", orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CompleteOrder moves the order to COMPLETED and returns the updated
// snapshot, which the payment saga uses to build its notification.
func (c *Client) CompleteOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	if err := c.rpc.Post(ctx, "CompleteOrder", fmt.Sprintf("/api/orders/%d/complete", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns all orders, or only those for email when it is set.
func (c *Client) ListOrders(ctx context.Context, email string) ([]Order, error) {
	path := "/api/orders/"
	if email != "" {
		path += "?email=" + url.QueryEscape(email)
	}
	var orders []Order
	if err := c.rpc.Get(ctx, "ListOrders", path, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
