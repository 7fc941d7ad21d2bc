package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/orders/service"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

type Handler struct {
	svc *service.OrderService
	log *zap.Logger
}

func NewHandler(svc *service.OrderService, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	// The create route's {id} is the user id; chi needs one param name per
	// segment position.
	r.Post("/{id}", h.CreateOrder)
	r.Get("/", h.ListOrders)
	r.Get("/{id}", h.GetOrder)
	// bring is a side-effecting GET kept for wire compatibility: it moves
	// the order to PROCESSING as part of returning it.
	r.Get("/{id}/bring", h.BringOrder)
	r.Post("/{id}/complete", h.CompleteOrder)
	return r
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "user id must be an integer")
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, "Order created successfully", order)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Order retrieved successfully", order)
}

func (h *Handler) BringOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.BringOrder(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Order is being processed", order)
}

func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.CompleteOrder(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Order completed successfully", order)
}

// ListOrders returns the orders for ?email=..., or every order when the
// query parameter is absent.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	var err error
	var orders interface{}
	if email != "" {
		orders, err = h.svc.GetOrdersByUser(r.Context(), email)
	} else {
		orders, err = h.svc.GetAllOrders(r.Context())
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var callErr *rpc.CallError
	switch {
	case errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidOrderID),
		errors.Is(err, service.ErrInvalidEmail):
		api.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		api.WriteError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, service.ErrEmptyCart):
		api.WriteError(w, http.StatusConflict, "cart is empty")
	case errors.Is(err, service.ErrOrderCreation):
		api.WriteError(w, http.StatusConflict, "could not create order")
	case errors.As(err, &callErr):
		h.log.Error("downstream call failed", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, "a dependent service is unavailable")
	default:
		h.log.Error("order service error", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseOrderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "order id must be a positive integer")
		return 0, false
	}
	return id, true
}
