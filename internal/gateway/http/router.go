// Package http is the public edge of the system: it forwards client
// traffic to the internal services and maps their envelope responses onto
// HTTP statuses.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/platform/identity"
)

type Handlers struct {
	Products *ProductHandler
	Carts    *CartHandler
	Orders   *OrdersHandler
	Payments *PaymentHandler
}

func NewRouter(h Handlers, log *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(identity.Middleware)
	r.Use(RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.Products.ListProducts)
		r.Post("/", h.Products.CreateProduct)
		r.Get("/{id}", h.Products.GetProduct)
		r.Put("/{id}", h.Products.UpdateProduct)
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Carts.GetCart)
		r.Delete("/", h.Carts.ClearCart)
		r.Post("/items", h.Carts.AddItem)
		r.Delete("/items/{productId}", h.Carts.RemoveItem)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.Orders.CreateOrder)
		r.Get("/", h.Orders.ListOrders)
		r.Get("/{id}", h.Orders.GetOrder)
	})

	r.Route("/api/payments", func(r chi.Router) {
		r.Post("/", h.Payments.CreatePayment)
		r.Get("/", h.Payments.ListPayments)
		r.Get("/order/{orderId}", h.Payments.ViewOrderDetails)
	})

	return r
}
