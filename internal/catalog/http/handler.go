package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/catalog/domain"
	"github.com/anshmittal0811/Royal-Commerce/internal/catalog/repository"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
)

type Handler struct {
	repo repository.RepoInterface
	log  *zap.Logger
}

func NewHandler(repo repository.RepoInterface, log *zap.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListProducts)
	r.Post("/", h.CreateProduct)
	r.Get("/{id}", h.GetProduct)
	r.Put("/{id}", h.UpdateProduct)
	r.Put("/{id}/stock/decrement", h.DecrementStock)
	r.Put("/{id}/stock/restore", h.RestoreStock)
	return r
}

type stockAdjustRequest struct {
	Quantity int `json:"quantity"`
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAllProducts(r.Context())
	if err != nil {
		h.respondRepoError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Products retrieved successfully", products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetProduct(r.Context(), id)
	if err != nil {
		h.respondRepoError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Product retrieved successfully", product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Price < 0 || req.Stock < 0 {
		api.WriteError(w, http.StatusBadRequest, "name is required; price and stock must not be negative")
		return
	}

	product, err := h.repo.CreateProduct(r.Context(), &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		h.respondRepoError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, "Product created successfully", product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Price < 0 || req.Stock < 0 {
		api.WriteError(w, http.StatusBadRequest, "name is required; price and stock must not be negative")
		return
	}

	product, err := h.repo.UpdateProduct(r.Context(), &domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		h.respondRepoError(w, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Product updated successfully", product)
}

func (h *Handler) DecrementStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	quantity, ok := parseQuantity(w, r)
	if !ok {
		return
	}

	product, err := h.repo.DecrementStock(r.Context(), id, quantity)
	if err != nil {
		h.respondRepoError(w, err)
		return
	}

	h.log.Info("stock decremented",
		zap.Int64("product_id", id),
		zap.Int("quantity", quantity),
		zap.Int("stock", product.Stock))
	api.WriteSuccess(w, http.StatusOK, "Stock updated successfully", product)
}

func (h *Handler) RestoreStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	quantity, ok := parseQuantity(w, r)
	if !ok {
		return
	}

	product, err := h.repo.RestoreStock(r.Context(), id, quantity)
	if err != nil {
		h.respondRepoError(w, err)
		return
	}

	h.log.Info("stock restored",
		zap.Int64("product_id", id),
		zap.Int("quantity", quantity),
		zap.Int("stock", product.Stock))
	api.WriteSuccess(w, http.StatusOK, "Stock restored successfully", product)
}

func (h *Handler) respondRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		api.WriteError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrInsufficientStock):
		api.WriteError(w, http.StatusConflict, "insufficient stock")
	default:
		h.log.Error("catalog repository error", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func parseQuantity(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req stockAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return 0, false
	}
	if req.Quantity <= 0 {
		api.WriteError(w, http.StatusBadRequest, "quantity must be greater than 0")
		return 0, false
	}
	return req.Quantity, true
}
