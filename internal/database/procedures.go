package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Stored procedure names, shared by both dialects' schema scripts.
const (
	procInsertCustomer       = "insert_customer"
	procUpdateCustomer       = "update_customer"
	procDeleteCustomer       = "delete_customer"
	procGetCustomers         = "get_customers"
	procInsertInvoice        = "insert_invoice"
	procDeleteInvoice        = "delete_invoice"
	procGetInvoices          = "get_invoices"
	procInsertProductType    = "insert_product_type"
	procDeleteProductType    = "delete_product_type"
	procGetProductTypes      = "get_product_types"
	procInsertProduct        = "insert_product"
	procDeleteProduct        = "delete_product"
	procGetProducts          = "get_products"
	procInsertInvoiceProduct = "insert_invoice_product"
	procDeleteInvoiceProduct = "delete_invoice_product"
	procGetInvoiceProducts   = "get_invoice_products"
)

// call executes one stored procedure inside its own transaction.
// Success is logged by the caller, which knows which fields matter.
func (s *Store) call(ctx context.Context, action, procedure string, args ...any) error {
	query := s.dialect.execCall(procedure, len(args))

	err := s.transaction(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		s.log.Error().Err(err).Str("procedure", procedure).Msg("Failed to " + action)
		return wrapError(action, err)
	}
	return nil
}

// list runs a read procedure and maps its rows into dest, a pointer to a slice.
func (s *Store) list(ctx context.Context, action, procedure string, dest any) error {
	if err := s.db.SelectContext(ctx, dest, s.dialect.queryCall(procedure, 0)); err != nil {
		s.log.Error().Err(err).Str("procedure", procedure).Msg("Failed to " + action)
		return wrapError(action, err)
	}
	return nil
}
