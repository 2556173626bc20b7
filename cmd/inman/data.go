package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/saltyorg/inman/internal/database"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parsePercent(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil || p < 0 || p > 100 {
		return 0, fmt.Errorf("invalid percentage %q: must be 0-100", s)
	}
	return p, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid price %q: must not be negative", s)
	}
	return price, nil
}

// parseSex accepts any single character, matching the CHAR(1) column.
func parseSex(s string) (string, error) {
	if utf8.RuneCountInString(s) != 1 {
		return "", fmt.Errorf("invalid sex %q: must be a single character", s)
	}
	return s, nil
}

// storeCommand builds a leaf command that runs fn against an open store.
func storeCommand(use, short string, args cobra.PositionalArgs, fn func(ctx context.Context, cmd *cobra.Command, store *database.Store, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *database.Store) error {
				return fn(ctx, cmd, store, args)
			})
		},
	}
}

func newCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "customers", Short: "Manage customers"}

	cmd.AddCommand(
		storeCommand("list", "List customers", cobra.NoArgs,
			func(ctx context.Context, cmd *cobra.Command, store *database.Store, _ []string) error {
				customers, err := store.ListCustomers(ctx)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME\tSEX\tPHONE\tEMAIL")
				for _, c := range customers {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.FirstName, c.LastName, c.Sex, c.Phone, c.Email)
				}
				return tw.Flush()
			}),
		storeCommand("add <first-name> <last-name> <sex> <phone> <email>", "Add a customer", cobra.ExactArgs(5),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				sex, err := parseSex(args[2])
				if err != nil {
					return err
				}
				return store.InsertCustomer(ctx, args[0], args[1], sex, args[3], args[4])
			}),
		storeCommand("update <id> <first-name> <last-name> <sex> <phone> <email>", "Replace a customer's details", cobra.ExactArgs(6),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				sex, err := parseSex(args[3])
				if err != nil {
					return err
				}
				return store.UpdateCustomer(ctx, id, args[1], args[2], sex, args[4], args[5])
			}),
		storeCommand("delete <id>", "Delete a customer", cobra.ExactArgs(1),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return store.DeleteCustomer(ctx, id)
			}),
	)
	return cmd
}

func newInvoicesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "invoices", Short: "Manage invoices"}

	cmd.AddCommand(
		storeCommand("list", "List invoices with their totals", cobra.NoArgs,
			func(ctx context.Context, cmd *cobra.Command, store *database.Store, _ []string) error {
				invoices, err := store.ListInvoices(ctx)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "CODE\tCUSTOMER\tTAX %\tSUBTOTAL\tDISCOUNT\tTAX\tTOTAL")
				for _, inv := range invoices {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
						inv.Code, inv.CustomerID, inv.TaxPercent,
						inv.Subtotal.StringFixed(2), inv.TotalDiscount.StringFixed(2),
						inv.TotalTax.StringFixed(2), inv.Total.StringFixed(2))
				}
				return tw.Flush()
			}),
		storeCommand("add <code> <customer-id> <tax-percent>", "Open an invoice", cobra.ExactArgs(3),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				customerID, err := parseID(args[1])
				if err != nil {
					return err
				}
				taxPercent, err := parsePercent(args[2])
				if err != nil {
					return err
				}
				return store.InsertInvoice(ctx, args[0], customerID, taxPercent)
			}),
		storeCommand("delete <code>", "Delete an invoice and its lines", cobra.ExactArgs(1),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				return store.DeleteInvoice(ctx, args[0])
			}),
	)
	return cmd
}

func newProductTypesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "product-types", Short: "Manage product types"}

	cmd.AddCommand(
		storeCommand("list", "List product types", cobra.NoArgs,
			func(ctx context.Context, cmd *cobra.Command, store *database.Store, _ []string) error {
				types, err := store.ListProductTypes(ctx)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME")
				for _, pt := range types {
					fmt.Fprintf(tw, "%d\t%s\n", pt.ID, pt.Name)
				}
				return tw.Flush()
			}),
		storeCommand("add <name>", "Add a product type", cobra.ExactArgs(1),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				return store.InsertProductType(ctx, args[0])
			}),
		storeCommand("delete <id>", "Delete a product type", cobra.ExactArgs(1),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return store.DeleteProductType(ctx, id)
			}),
	)
	return cmd
}

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Manage products"}

	cmd.AddCommand(
		storeCommand("list", "List products", cobra.NoArgs,
			func(ctx context.Context, cmd *cobra.Command, store *database.Store, _ []string) error {
				products, err := store.ListProducts(ctx)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "CODE\tTYPE\tNAME\tPRICE\tDISCOUNT %")
				for _, p := range products {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\n", p.Code, p.ProductTypeID, p.Name, p.Price.StringFixed(2), p.DiscountPercent)
				}
				return tw.Flush()
			}),
		storeCommand("add <code> <type-id> <name> <price> <discount-percent>", "Add a product", cobra.ExactArgs(5),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				typeID, err := parseID(args[1])
				if err != nil {
					return err
				}
				price, err := parsePrice(args[3])
				if err != nil {
					return err
				}
				discount, err := parsePercent(args[4])
				if err != nil {
					return err
				}
				return store.InsertProduct(ctx, args[0], typeID, args[2], price, discount)
			}),
		storeCommand("delete <code>", "Delete a product", cobra.ExactArgs(1),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				return store.DeleteProduct(ctx, args[0])
			}),
	)
	return cmd
}

func newInvoiceProductsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "invoice-products", Short: "Manage invoice lines"}

	cmd.AddCommand(
		storeCommand("list", "List invoice lines", cobra.NoArgs,
			func(ctx context.Context, cmd *cobra.Command, store *database.Store, _ []string) error {
				lines, err := store.ListInvoiceProducts(ctx)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tINVOICE\tPRODUCT\tPRICE\tDISCOUNT")
				for _, l := range lines {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", l.ID, l.InvoiceCode, l.ProductCode, l.Price.StringFixed(2), l.Discount.StringFixed(2))
				}
				return tw.Flush()
			}),
		storeCommand("add <invoice-code> <product-code> <price>", "Add a product to an invoice", cobra.ExactArgs(3),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				price, err := parsePrice(args[2])
				if err != nil {
					return err
				}
				return store.InsertInvoiceProduct(ctx, args[0], args[1], price)
			}),
		storeCommand("delete <id>", "Remove a line from its invoice", cobra.ExactArgs(1),
			func(ctx context.Context, _ *cobra.Command, store *database.Store, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return store.DeleteInvoiceProduct(ctx, id)
			}),
	)
	return cmd
}
