package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/saltyorg/inman/internal/database"
	"github.com/saltyorg/inman/internal/logging"
	"github.com/saltyorg/inman/internal/maintenance"
)

// maxBodyBytes caps request bodies; every payload is a handful of fields.
const maxBodyBytes = 1 << 20

// Store is the subset of *database.Store the API calls.
type Store interface {
	InsertCustomer(ctx context.Context, firstName, lastName, sex, phone, email string) error
	UpdateCustomer(ctx context.Context, id int64, firstName, lastName, sex, phone, email string) error
	DeleteCustomer(ctx context.Context, id int64) error
	ListCustomers(ctx context.Context) ([]database.Customer, error)

	InsertInvoice(ctx context.Context, code string, customerID int64, taxPercent int) error
	DeleteInvoice(ctx context.Context, code string) error
	ListInvoices(ctx context.Context) ([]database.Invoice, error)

	InsertProductType(ctx context.Context, name string) error
	DeleteProductType(ctx context.Context, id int64) error
	ListProductTypes(ctx context.Context) ([]database.ProductType, error)

	InsertProduct(ctx context.Context, code string, productTypeID int64, name string, price decimal.Decimal, discountPercent int) error
	DeleteProduct(ctx context.Context, code string) error
	ListProducts(ctx context.Context) ([]database.Product, error)

	InsertInvoiceProduct(ctx context.Context, invoiceCode, productCode string, price decimal.Decimal) error
	DeleteInvoiceProduct(ctx context.Context, id int64) error
	ListInvoiceProducts(ctx context.Context) ([]database.InvoiceProduct, error)
}

// Maintenance is the scheduler surface exposed over HTTP.
type Maintenance interface {
	Status() maintenance.Status
	RunNow(ctx context.Context) error
}

// Handlers contains all HTTP handlers
type Handlers struct {
	store       Store
	maintenance Maintenance
	validate    *validator.Validate
	log         zerolog.Logger
	version     string
}

// New creates a new Handlers instance. maint may be nil, in which case the
// maintenance endpoints answer 503.
func New(store Store, maint Maintenance, version string) *Handlers {
	return &Handlers{
		store:       store,
		maintenance: maint,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		log:         logging.For("api"),
		version:     version,
	}
}

// decode reads a JSON body into dst and runs its validate tags.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.jsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.jsonError(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return "Validation failed: " + strings.Join(parts, ", ")
}

// storeError maps a store error onto a status code.
func (h *Handlers) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		h.jsonError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, database.ErrDuplicate):
		h.jsonError(w, "Already exists", http.StatusConflict)
	case errors.Is(err, database.ErrReferenced):
		h.jsonError(w, "Conflicts with a related record", http.StatusConflict)
	case errors.Is(err, database.ErrRejected):
		h.jsonError(w, "Rejected by the database", http.StatusBadRequest)
	default:
		h.log.Error().Err(err).Msg("Store operation failed")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// codeParam returns the decoded {code} segment. chi matches on the raw path,
// so an escaped "/" in a code arrives still encoded.
func codeParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "code")
	code, err := url.PathUnescape(raw)
	if err != nil || code == "" {
		return "", fmt.Errorf("invalid code %q", raw)
	}
	return code, nil
}

// writeJSON sends v as a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Debug().Err(err).Msg("Failed to write response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
