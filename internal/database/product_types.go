package database

import "context"

// ProductType is a row of get_product_types.
type ProductType struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// InsertProductType creates a product type through insert_product_type.
func (s *Store) InsertProductType(ctx context.Context, name string) error {
	if err := s.call(ctx, "insert product type", procInsertProductType, name); err != nil {
		return err
	}
	s.log.Info().Str("name", name).Msg("Product type inserted")
	return nil
}

// DeleteProductType removes product type id through delete_product_type.
func (s *Store) DeleteProductType(ctx context.Context, id int64) error {
	if err := s.call(ctx, "delete product type", procDeleteProductType, id); err != nil {
		return err
	}
	s.log.Info().Int64("product_type_id", id).Msg("Product type deleted")
	return nil
}

// ListProductTypes returns every product type.
func (s *Store) ListProductTypes(ctx context.Context) ([]ProductType, error) {
	types := []ProductType{}
	if err := s.list(ctx, "list product types", procGetProductTypes, &types); err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(types)).Msg("Product types listed")
	return types, nil
}
