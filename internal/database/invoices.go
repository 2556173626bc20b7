package database

import (
	"context"

	"github.com/shopspring/decimal"
)

// Invoice is a row of get_invoices. The totals are maintained by the
// invoice product procedures.
type Invoice struct {
	Code          string          `db:"code" json:"code"`
	CustomerID    int64           `db:"customer_id" json:"customer_id"`
	TaxPercent    int             `db:"tax_percent" json:"tax_percent"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Total         decimal.Decimal `db:"total" json:"total"`
	TotalDiscount decimal.Decimal `db:"total_discount" json:"total_discount"`
	TotalTax      decimal.Decimal `db:"total_tax" json:"total_tax"`
}

// InsertInvoice opens an empty invoice for a customer through insert_invoice.
func (s *Store) InsertInvoice(ctx context.Context, code string, customerID int64, taxPercent int) error {
	if err := s.call(ctx, "insert invoice", procInsertInvoice, code, customerID, taxPercent); err != nil {
		return err
	}
	s.log.Info().Str("invoice_code", code).Int64("customer_id", customerID).Msg("Invoice inserted")
	return nil
}

// DeleteInvoice removes an invoice and its lines through delete_invoice.
func (s *Store) DeleteInvoice(ctx context.Context, code string) error {
	if err := s.call(ctx, "delete invoice", procDeleteInvoice, code); err != nil {
		return err
	}
	s.log.Info().Str("invoice_code", code).Msg("Invoice deleted")
	return nil
}

// ListInvoices returns every invoice with its current totals.
func (s *Store) ListInvoices(ctx context.Context) ([]Invoice, error) {
	invoices := []Invoice{}
	if err := s.list(ctx, "list invoices", procGetInvoices, &invoices); err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(invoices)).Msg("Invoices listed")
	return invoices, nil
}
