package domain

import "time"

// StatusSuccess is the only payment status the processor records: there is
// no FAILED or PENDING state, a payment either persists as SUCCESS or the
// request errors out.
const StatusSuccess = "SUCCESS"

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

// Notification is the payment-notifications message shape. Field names are
// camelCase on the wire; the notifier decodes the same shape.
type Notification struct {
	OrderID     int64     `json:"orderId"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	UserAddress string    `json:"userAddress"`
	UserPhone   string    `json:"userPhone"`
	OrderStatus string    `json:"orderStatus"`
	OrderDate   time.Time `json:"orderDate"`
	TotalAmount float64   `json:"totalAmount"`
}
