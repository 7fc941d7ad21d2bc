// Package cart is the HTTP client other services use to read and clear
// a user's cart.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

type CartItem struct {
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	AddedAt     time.Time `json:"added_at"`
}

type Cart struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"user_id"`
	Email     string     `json:"email"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Client struct {
	rpc *rpc.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rpc: rpc.NewClient("cart", baseURL, timeout)}
}

// SendCart fetches the user's current cart. A missing cart surfaces as
// rpc.ErrNotFound.
func (c *Client) SendCart(ctx context.Context, userID int64) (*Cart, error) {
	var cart Cart
	if err := c.rpc.Get(ctx, "SendCart", fmt.Sprintf("/api/carts/%d", userID), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart empties the user's cart, restoring reserved stock on the
// catalog side best-effort.
func (c *Client) ClearCart(ctx context.Context, userID int64) error {
	return c.rpc.Delete(ctx, "ClearCart", fmt.Sprintf("/api/carts/%d", userID), nil)
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// AddItem puts quantity units of the product into the cart, reserving the
// stock as a side effect.
func (c *Client) AddItem(ctx context.Context, userID, productID int64, quantity int) (*Cart, error) {
	var cart Cart
	path := fmt.Sprintf("/api/carts/%d/items", userID)
	if err := c.rpc.Post(ctx, "AddItem", path, addItemRequest{ProductID: productID, Quantity: quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveItem removes the product's line entirely, restoring its stock
// best-effort.
func (c *Client) RemoveItem(ctx context.Context, userID, productID int64) (*Cart, error) {
	var cart Cart
	path := fmt.Sprintf("/api/carts/%d/items/%d", userID, productID)
	if err := c.rpc.Delete(ctx, "RemoveItem", path, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
