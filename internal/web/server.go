package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/saltyorg/inman/internal/auth"
	"github.com/saltyorg/inman/internal/config"
	"github.com/saltyorg/inman/internal/logging"
	"github.com/saltyorg/inman/internal/web/handlers"
	"github.com/saltyorg/inman/internal/web/middleware"
)

// Options configures the API server.
type Options struct {
	Bind        string
	Port        int
	AllowedNet  *net.IPNet
	Credentials auth.Credentials
	Version     string
}

// Server represents the API server
type Server struct {
	opts     Options
	router   *chi.Mux
	handlers *handlers.Handlers
	log      zerolog.Logger
}

// NewServer creates a new API server. maint may be nil.
func NewServer(store handlers.Store, maint handlers.Maintenance, opts Options) *Server {
	s := &Server{
		opts:     opts,
		router:   chi.NewRouter(),
		handlers: handlers.New(store, maint, opts.Version),
		log:      logging.For("http"),
	}
	s.setupRoutes()
	return s
}

// ParseAllowSubnet parses http.allow_subnet. An empty value allows every source.
func ParseAllowSubnet(subnet string) (*net.IPNet, error) {
	if subnet == "" {
		return nil, nil
	}
	_, allowedNet, err := net.ParseCIDR(subnet)
	if err != nil {
		return nil, fmt.Errorf("invalid allow subnet %q: %w", subnet, err)
	}
	return allowedNet, nil
}

// Router returns the configured handler, for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router
	h := s.handlers

	r.Use(chimiddleware.RequestID)
	// AllowSubnet must come BEFORE RealIP so we check the actual connection source
	r.Use(middleware.AllowSubnet(s.opts.AllowedNet))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.GetTimeouts().HTTPRequest))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.BasicAuth(s.opts.Credentials))

		r.Get("/customers", h.ListCustomers)
		r.Post("/customers", h.CreateCustomer)
		r.Put("/customers/{id}", h.UpdateCustomer)
		r.Delete("/customers/{id}", h.DeleteCustomer)

		r.Get("/invoices", h.ListInvoices)
		r.Post("/invoices", h.CreateInvoice)
		r.Delete("/invoices/{code}", h.DeleteInvoice)

		r.Get("/product-types", h.ListProductTypes)
		r.Post("/product-types", h.CreateProductType)
		r.Delete("/product-types/{id}", h.DeleteProductType)

		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Delete("/products/{code}", h.DeleteProduct)

		r.Get("/invoice-products", h.ListInvoiceProducts)
		r.Post("/invoice-products", h.CreateInvoiceProduct)
		r.Delete("/invoice-products/{id}", h.DeleteInvoiceProduct)

		r.Get("/maintenance", h.MaintenanceStatus)
		r.Post("/maintenance/run", h.RunMaintenance)
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.opts.Bind != "" {
		addr = net.JoinHostPort(s.opts.Bind, strconv.Itoa(s.opts.Port))
	} else {
		addr = fmt.Sprintf(":%d", s.opts.Port)
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: config.GetTimeouts().HTTPRequest + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Bool("auth", s.opts.Credentials.Enabled()).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetTimeouts().Shutdown)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
