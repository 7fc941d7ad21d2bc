package domain

import "time"

// Cart holds one user's in-flight reservation. There is at most one cart
// per user and at most one line item per product; quantities merge.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    int64      `bson:"user_id" json:"user_id"`
	Email     string     `bson:"email" json:"email"`
	Items     []CartItem `bson:"items" json:"items"`
	Total     float64    `bson:"total" json:"total"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// CartItem snapshots the product name and unit price at add time. Later
// catalog price changes do not affect carts already holding the item.
type CartItem struct {
	ProductID   int64     `bson:"product_id" json:"product_id"`
	ProductName string    `bson:"product_name" json:"product_name"`
	Quantity    int       `bson:"quantity" json:"quantity"`
	UnitPrice   float64   `bson:"unit_price" json:"unit_price"`
	AddedAt     time.Time `bson:"added_at" json:"added_at"`
}

// ItemIndex returns the position of the line item for productID, or -1.
func (c *Cart) ItemIndex(productID int64) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// RecalculateTotal restores the invariant total = Σ(quantity × unit price).
// No rounding happens here; prices are carried as-is until order
// materialization.
func (c *Cart) RecalculateTotal() {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	c.Total = total
}
