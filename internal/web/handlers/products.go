package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type productTypeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type productRequest struct {
	Code            string           `json:"code" validate:"required,max=50"`
	ProductTypeID   int64            `json:"product_type_id" validate:"required,gt=0"`
	Name            string           `json:"name" validate:"required,max=200"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	DiscountPercent int              `json:"discount_percent" validate:"gte=0,lte=100"`
}

// ListProductTypes handles GET /api/product-types
func (h *Handlers) ListProductTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.store.ListProductTypes(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, types)
}

// CreateProductType handles POST /api/product-types
func (h *Handlers) CreateProductType(w http.ResponseWriter, r *http.Request) {
	var req productTypeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.store.InsertProductType(r.Context(), req.Name); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DeleteProductType handles DELETE /api/product-types/{id}
func (h *Handlers) DeleteProductType(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteProductType(r.Context(), id); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListProducts handles GET /api/products
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /api/products
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Price.IsNegative() {
		h.jsonError(w, "Validation failed: Price must not be negative", http.StatusBadRequest)
		return
	}
	if err := h.store.InsertProduct(r.Context(), req.Code, req.ProductTypeID, req.Name, *req.Price, req.DiscountPercent); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DeleteProduct handles DELETE /api/products/{code}
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	code, err := codeParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteProduct(r.Context(), code); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
