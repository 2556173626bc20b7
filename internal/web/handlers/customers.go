package handlers

import "net/http"

type customerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Sex       string `json:"sex" validate:"required,len=1"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email,max=255"`
}

// ListCustomers handles GET /api/customers
func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, customers)
}

// CreateCustomer handles POST /api/customers
func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.store.InsertCustomer(r.Context(), req.FirstName, req.LastName, req.Sex, req.Phone, req.Email); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// UpdateCustomer handles PUT /api/customers/{id}
func (h *Handlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req customerRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.store.UpdateCustomer(r.Context(), id, req.FirstName, req.LastName, req.Sex, req.Phone, req.Email); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCustomer handles DELETE /api/customers/{id}
func (h *Handlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteCustomer(r.Context(), id); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
