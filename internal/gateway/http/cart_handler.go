package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	cartclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/cart"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
)

type CartHandler struct {
	carts *cartclient.Client
	log   *zap.Logger
}

func NewCartHandler(carts *cartclient.Client, log *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

type addItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.SendCart(r.Context(), userID)
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Cart retrieved successfully", cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req addItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		api.WriteError(w, http.StatusBadRequest, "product_id must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		api.WriteError(w, http.StatusBadRequest, "quantity must be between 1 and 99")
		return
	}

	cart, err := h.carts.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, "Product added to cart", cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil || productID <= 0 {
		api.WriteError(w, http.StatusBadRequest, "product id must be a positive integer")
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Product removed from cart", cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Cart cleared successfully", nil)
}
