package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/payment/service"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

type Handler struct {
	svc *service.PaymentService
	log *zap.Logger
}

func NewHandler(svc *service.PaymentService, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreatePayment)
	r.Get("/", h.ListPayments)
	r.Get("/order/{orderId}", h.ViewOrderDetails)
	return r
}

type createPaymentRequest struct {
	OrderID     int64   `json:"order_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Method      string  `json:"method"`
	Description string  `json:"description"`
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	if req.Method == "" {
		api.WriteError(w, http.StatusBadRequest, "method is required")
		return
	}

	payment, err := h.svc.CreatePayment(r.Context(), req.OrderID, req.Amount, req.Currency, req.Method, req.Description)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, "Payment processed successfully", payment)
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.ListPayments(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Payments retrieved successfully", payments)
}

func (h *Handler) ViewOrderDetails(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		api.WriteError(w, http.StatusBadRequest, "order id must be a positive integer")
		return
	}

	order, err := h.svc.ViewOrderDetails(r.Context(), orderID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Order retrieved successfully", order)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var callErr *rpc.CallError
	switch {
	case errors.Is(err, service.ErrInvalidOrderID),
		errors.Is(err, service.ErrInvalidAmount):
		api.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		api.WriteError(w, http.StatusNotFound, "order not found")
	case errors.As(err, &callErr):
		h.log.Error("downstream call failed", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, "a dependent service is unavailable")
	default:
		h.log.Error("payment service error", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
