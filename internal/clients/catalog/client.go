// Package catalog is the client for the catalog service's product and stock
// ledger endpoints. Stock adjustments go through the envelope-aware rpc
// client so a failed decrement surfaces as a hard error to the caller.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

// Product mirrors the catalog service's product payload.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

type stockAdjustRequest struct {
	Quantity int `json:"quantity"`
}

type Client struct {
	rpc *rpc.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rpc: rpc.NewClient("catalog", baseURL, timeout)}
}

// ProductInput is the create/update payload.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.rpc.Get(ctx, "ListProducts", "/api/products/", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, in *ProductInput) (*Product, error) {
	var product Product
	if err := c.rpc.Post(ctx, "CreateProduct", "/api/products/", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in *ProductInput) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.rpc.Put(ctx, "UpdateProduct", path, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.rpc.Get(ctx, "GetProduct", path, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DecrementStock(ctx context.Context, id int64, quantity int) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/api/products/%d/stock/decrement", id)
	if err := c.rpc.Put(ctx, "DecrementStock", path, stockAdjustRequest{Quantity: quantity}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) RestoreStock(ctx context.Context, id int64, quantity int) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/api/products/%d/stock/restore", id)
	if err := c.rpc.Put(ctx, "RestoreStock", path, stockAdjustRequest{Quantity: quantity}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
