package domain

import (
	"math"
	"time"
)

type Status string

// Lifecycle: PENDING is set at creation, PROCESSING by the bring operation,
// COMPLETED by the complete operation. Transitions overwrite the field
// unconditionally; nothing stops a PENDING order from being completed
// directly, and completing an already-COMPLETED order is a status no-op.
const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
)

type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Order carries a customer snapshot taken at creation time; later profile
// changes never touch existing orders.
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
	Status      Status      `json:"status"`
	OrderDate   time.Time   `json:"order_date"`
}

// Round2 rounds half away from zero to two decimals. It is applied
// independently to each order line and to the order total, so
// Σ(Round2(line)) and Round2(Σ) may legitimately differ by a cent.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
