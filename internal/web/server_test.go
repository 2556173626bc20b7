package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/saltyorg/inman/internal/auth"
	"github.com/saltyorg/inman/internal/database"
)

type emptyStore struct{}

func (emptyStore) InsertCustomer(context.Context, string, string, string, string, string) error {
	return nil
}

func (emptyStore) UpdateCustomer(context.Context, int64, string, string, string, string, string) error {
	return nil
}

func (emptyStore) DeleteCustomer(context.Context, int64) error {
	return nil
}

func (emptyStore) ListCustomers(context.Context) ([]database.Customer, error) {
	return []database.Customer{}, nil
}

func (emptyStore) InsertInvoice(context.Context, string, int64, int) error {
	return nil
}

func (emptyStore) DeleteInvoice(context.Context, string) error {
	return nil
}

func (emptyStore) ListInvoices(context.Context) ([]database.Invoice, error) {
	return []database.Invoice{}, nil
}

func (emptyStore) InsertProductType(context.Context, string) error {
	return nil
}

func (emptyStore) DeleteProductType(context.Context, int64) error {
	return nil
}

func (emptyStore) ListProductTypes(context.Context) ([]database.ProductType, error) {
	return []database.ProductType{}, nil
}

func (emptyStore) InsertProduct(context.Context, string, int64, string, decimal.Decimal, int) error {
	return nil
}

func (emptyStore) DeleteProduct(context.Context, string) error {
	return nil
}

func (emptyStore) ListProducts(context.Context) ([]database.Product, error) {
	return []database.Product{}, nil
}

func (emptyStore) InsertInvoiceProduct(context.Context, string, string, decimal.Decimal) error {
	return nil
}

func (emptyStore) DeleteInvoiceProduct(context.Context, int64) error {
	return nil
}

func (emptyStore) ListInvoiceProducts(context.Context) ([]database.InvoiceProduct, error) {
	return []database.InvoiceProduct{}, nil
}

func testCredentials(t *testing.T) auth.Credentials {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return auth.Credentials{Username: "admin", PasswordHash: string(hash)}
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_BasicAuthProtectsAPI(t *testing.T) {
	srv := NewServer(emptyStore{}, nil, Options{Credentials: testCredentials(t)})
	router := srv.Router()

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/customers", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("expected WWW-Authenticate header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.SetBasicAuth("admin", "wrong")
	if rec := serve(router, req); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong password, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.SetBasicAuth("admin", "secret")
	if rec := serve(router, req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid credentials, got %d", rec.Code)
	}
}

func TestServer_HealthIsPublic(t *testing.T) {
	srv := NewServer(emptyStore{}, nil, Options{Credentials: testCredentials(t), Version: "1.2.3"})
	rec := serve(srv.Router(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestServer_NoCredentialsConfigured(t *testing.T) {
	srv := NewServer(emptyStore{}, nil, Options{})
	rec := serve(srv.Router(), httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without auth configured, got %d", rec.Code)
	}
}

func TestServer_AllowSubnet(t *testing.T) {
	allowed, err := ParseAllowSubnet("10.0.0.0/8")
	if err != nil {
		t.Fatalf("ParseAllowSubnet returned error: %v", err)
	}
	srv := NewServer(emptyStore{}, nil, Options{AllowedNet: allowed})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.RemoteAddr = "192.168.1.10:5555"
	if rec := serve(router, req); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 outside subnet, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	if rec := serve(router, req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 inside subnet, got %d", rec.Code)
	}
}

func TestParseAllowSubnet(t *testing.T) {
	if n, err := ParseAllowSubnet(""); err != nil || n != nil {
		t.Fatalf("expected nil subnet for empty value, got %v %v", n, err)
	}
	if _, err := ParseAllowSubnet("10.0.0.1"); err == nil {
		t.Fatal("expected error for address without prefix length")
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := NewServer(emptyStore{}, nil, Options{})
	rec := serve(srv.Router(), httptest.NewRequest(http.MethodPatch, "/api/customers/1", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
