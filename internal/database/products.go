package database

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a row of get_products.
type Product struct {
	Code            string          `db:"code" json:"code"`
	ProductTypeID   int64           `db:"product_type_id" json:"product_type_id"`
	Name            string          `db:"name" json:"name"`
	Price           decimal.Decimal `db:"price" json:"price"`
	DiscountPercent int             `db:"discount_percent" json:"discount_percent"`
}

// InsertProduct creates a product through insert_product.
func (s *Store) InsertProduct(ctx context.Context, code string, productTypeID int64, name string, price decimal.Decimal, discountPercent int) error {
	if err := s.call(ctx, "insert product", procInsertProduct, code, productTypeID, name, price, discountPercent); err != nil {
		return err
	}
	s.log.Info().
		Str("product_code", code).
		Int64("product_type_id", productTypeID).
		Stringer("price", price).
		Msg("Product inserted")
	return nil
}

// DeleteProduct removes a product through delete_product.
func (s *Store) DeleteProduct(ctx context.Context, code string) error {
	if err := s.call(ctx, "delete product", procDeleteProduct, code); err != nil {
		return err
	}
	s.log.Info().Str("product_code", code).Msg("Product deleted")
	return nil
}

// ListProducts returns every product.
func (s *Store) ListProducts(ctx context.Context) ([]Product, error) {
	products := []Product{}
	if err := s.list(ctx, "list products", procGetProducts, &products); err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(products)).Msg("Products listed")
	return products, nil
}
