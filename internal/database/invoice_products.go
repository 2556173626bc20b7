package database

import (
	"context"

	"github.com/shopspring/decimal"
)

// InvoiceProduct is a line item linking a product to an invoice.
// Discount is computed by insert_invoice_product from the product's discount percent.
type InvoiceProduct struct {
	ID          int64           `db:"id" json:"id"`
	InvoiceCode string          `db:"invoice_code" json:"invoice_code"`
	ProductCode string          `db:"product_code" json:"product_code"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Discount    decimal.Decimal `db:"discount" json:"discount"`
}

// InsertInvoiceProduct adds a line to an invoice through insert_invoice_product.
func (s *Store) InsertInvoiceProduct(ctx context.Context, invoiceCode, productCode string, price decimal.Decimal) error {
	if err := s.call(ctx, "insert invoice product", procInsertInvoiceProduct, invoiceCode, productCode, price); err != nil {
		return err
	}
	s.log.Info().
		Str("invoice_code", invoiceCode).
		Str("product_code", productCode).
		Stringer("price", price).
		Msg("Product added to invoice")
	return nil
}

// DeleteInvoiceProduct removes line id through delete_invoice_product.
func (s *Store) DeleteInvoiceProduct(ctx context.Context, id int64) error {
	if err := s.call(ctx, "delete invoice product", procDeleteInvoiceProduct, id); err != nil {
		return err
	}
	s.log.Info().Int64("invoice_product_id", id).Msg("Product removed from invoice")
	return nil
}

// ListInvoiceProducts returns every invoice line.
func (s *Store) ListInvoiceProducts(ctx context.Context) ([]InvoiceProduct, error) {
	lines := []InvoiceProduct{}
	if err := s.list(ctx, "list invoice products", procGetInvoiceProducts, &lines); err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(lines)).Msg("Invoice products listed")
	return lines, nil
}
