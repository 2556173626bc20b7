package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type invoiceProductRequest struct {
	InvoiceCode string           `json:"invoice_code" validate:"required,max=50"`
	ProductCode string           `json:"product_code" validate:"required,max=50"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
}

// ListInvoiceProducts handles GET /api/invoice-products
func (h *Handlers) ListInvoiceProducts(w http.ResponseWriter, r *http.Request) {
	lines, err := h.store.ListInvoiceProducts(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, lines)
}

// CreateInvoiceProduct handles POST /api/invoice-products
func (h *Handlers) CreateInvoiceProduct(w http.ResponseWriter, r *http.Request) {
	var req invoiceProductRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Price.IsNegative() {
		h.jsonError(w, "Validation failed: Price must not be negative", http.StatusBadRequest)
		return
	}
	if err := h.store.InsertInvoiceProduct(r.Context(), req.InvoiceCode, req.ProductCode, *req.Price); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DeleteInvoiceProduct handles DELETE /api/invoice-products/{id}
func (h *Handlers) DeleteInvoiceProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteInvoiceProduct(r.Context(), id); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
