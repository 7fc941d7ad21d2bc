package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	catalogclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/catalog"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/identity"
)

type ProductHandler struct {
	catalog *catalogclient.Client
	log     *zap.Logger
}

func NewProductHandler(catalog *catalogclient.Client, log *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProductID(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	in, ok := decodeProductInput(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), in)
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, ok := parseProductID(w, r)
	if !ok {
		return
	}
	in, ok := decodeProductInput(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, in)
	if err != nil {
		respondClientError(w, h.log, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, "Product updated successfully", product)
}

// requireAdmin gates catalog writes on the forwarded role header. This is
// routing-level gating, not authentication; the auth layer in front of the
// gateway owns the credentials.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "missing user authentication")
		return false
	}
	if id.Role != "ADMIN" {
		api.WriteError(w, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}

func parseProductID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "product id must be a positive integer")
		return 0, false
	}
	return id, true
}

func decodeProductInput(w http.ResponseWriter, r *http.Request) (*catalogclient.ProductInput, bool) {
	var in catalogclient.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if in.Name == "" || in.Price < 0 || in.Stock < 0 {
		api.WriteError(w, http.StatusBadRequest, "name is required; price and stock must not be negative")
		return nil, false
	}
	return &in, true
}
