package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	paymentclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/payment"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
)

type PaymentHandler struct {
	payments *paymentclient.Client
	log      *zap.Logger
}

func NewPaymentHandler(payments *paymentclient.Client, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, log: log}
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	var req paymentclient.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.OrderID <= 0 || req.Amount <= 0 {
		api.WriteError(w, http.StatusBadRequest, "order_id and amount must be positive")
		return
	}

	payment, err := h.payments.CreatePayment(r.Context(), &req)
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, "Payment processed successfully", payment)
}

func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	payments, err := h.payments.ListPayments(r.Context())
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Payments retrieved successfully", payments)
}

func (h *PaymentHandler) ViewOrderDetails(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		api.WriteError(w, http.StatusBadRequest, "order id must be a positive integer")
		return
	}

	order, errView := h.payments.ViewOrderDetails(r.Context(), orderID)
	if errView != nil {
		respondClientError(w, h.log, errView)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Order retrieved successfully", order)
}
