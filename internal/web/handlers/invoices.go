package handlers

import "net/http"

type invoiceRequest struct {
	Code       string `json:"code" validate:"required,max=50"`
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	TaxPercent *int   `json:"tax_percent" validate:"required,gte=0,lte=100"`
}

// ListInvoices handles GET /api/invoices
func (h *Handlers) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.store.ListInvoices(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, invoices)
}

// CreateInvoice handles POST /api/invoices
func (h *Handlers) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.store.InsertInvoice(r.Context(), req.Code, req.CustomerID, *req.TaxPercent); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DeleteInvoice handles DELETE /api/invoices/{code}
func (h *Handlers) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	code, err := codeParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteInvoice(r.Context(), code); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
