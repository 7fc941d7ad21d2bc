package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/cart/service"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

type Handler struct {
	service *service.CartService
	log     *zap.Logger
}

func NewHandler(svc *service.CartService, log *zap.Logger) *Handler {
	return &Handler{service: svc, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{userId}", h.SendCart)
	r.Delete("/{userId}", h.ClearCart)
	r.Post("/{userId}/items", h.AddItem)
	r.Delete("/{userId}/items/{productId}", h.RemoveItem)
	return r
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := parsePathID(w, r, "userId")
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		api.WriteError(w, http.StatusBadRequest, "product_id must be positive")
		return
	}
	if req.Quantity <= 0 {
		api.WriteError(w, http.StatusBadRequest, "quantity must be greater than 0")
		return
	}

	cart, err := h.service.AddToCart(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, "Product added to cart", cart)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := parsePathID(w, r, "userId")
	if !ok {
		return
	}
	productID, ok := parsePathID(w, r, "productId")
	if !ok {
		return
	}

	cart, err := h.service.RemoveFromCart(r.Context(), userID, productID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Product removed from cart", cart)
}

func (h *Handler) SendCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := parsePathID(w, r, "userId")
	if !ok {
		return
	}

	cart, err := h.service.SendCart(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Cart retrieved successfully", cart)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := parsePathID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.service.ClearCart(r.Context(), userID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Cart cleared successfully", nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var callErr *rpc.CallError
	switch {
	case errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrUserNotFound):
		api.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrItemNotInCart):
		api.WriteError(w, http.StatusConflict, err.Error())
	case errors.As(err, &callErr):
		h.log.Error("downstream call failed", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, "downstream service unavailable")
	default:
		h.log.Error("cart operation failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func parsePathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
