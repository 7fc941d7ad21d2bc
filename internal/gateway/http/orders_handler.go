package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	ordersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/orders"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/identity"
)

type OrdersHandler struct {
	orders *ordersclient.Client
	log    *zap.Logger
}

func NewOrdersHandler(orders *ordersclient.Client, log *zap.Logger) *OrdersHandler {
	return &OrdersHandler{orders: orders, log: log}
}

// CreateOrder places an order from the caller's cart. The user comes from
// the identity headers, never from the body.
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), userID)
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, "Order created successfully", order)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || orderID <= 0 {
		api.WriteError(w, http.StatusBadRequest, "order id must be a positive integer")
		return
	}

	order, errGet := h.orders.GetOrder(r.Context(), orderID)
	if errGet != nil {
		respondClientError(w, h.log, errGet)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Order retrieved successfully", order)
}

// ListOrders returns the caller's own orders; admins see every order.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	email := id.Email
	if id.Role == "ADMIN" {
		email = ""
	}

	orders, err := h.orders.ListOrders(r.Context(), email)
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Orders retrieved successfully", orders)
}
