package database

import "context"

// Customer is a row of get_customers.
type Customer struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Sex       string `db:"sex" json:"sex"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email"`
}

// InsertCustomer creates a customer through insert_customer.
func (s *Store) InsertCustomer(ctx context.Context, firstName, lastName, sex, phone, email string) error {
	if err := s.call(ctx, "insert customer", procInsertCustomer, firstName, lastName, sex, phone, email); err != nil {
		return err
	}
	s.log.Info().Str("first_name", firstName).Str("last_name", lastName).Msg("Customer inserted")
	return nil
}

// UpdateCustomer replaces every field of customer id through update_customer.
func (s *Store) UpdateCustomer(ctx context.Context, id int64, firstName, lastName, sex, phone, email string) error {
	if err := s.call(ctx, "update customer", procUpdateCustomer, id, firstName, lastName, sex, phone, email); err != nil {
		return err
	}
	s.log.Info().Int64("customer_id", id).Msg("Customer updated")
	return nil
}

// DeleteCustomer removes customer id through delete_customer.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.call(ctx, "delete customer", procDeleteCustomer, id); err != nil {
		return err
	}
	s.log.Info().Int64("customer_id", id).Msg("Customer deleted")
	return nil
}

// ListCustomers returns every customer.
func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	customers := []Customer{}
	if err := s.list(ctx, "list customers", procGetCustomers, &customers); err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(customers)).Msg("Customers listed")
	return customers, nil
}
