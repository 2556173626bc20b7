package database

var postgresMigrations = []migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
			CREATE TABLE customers (
				id SERIAL PRIMARY KEY,
				first_name VARCHAR(100) NOT NULL,
				last_name VARCHAR(100) NOT NULL,
				sex CHAR(1) NOT NULL,
				phone VARCHAR(30) NOT NULL,
				email VARCHAR(255) NOT NULL
			);

			CREATE TABLE product_types (
				id SERIAL PRIMARY KEY,
				name VARCHAR(100) NOT NULL,
				CONSTRAINT uq_product_types_name UNIQUE (name)
			);

			CREATE TABLE products (
				code VARCHAR(50) PRIMARY KEY,
				product_type_id INTEGER NOT NULL REFERENCES product_types (id),
				name VARCHAR(200) NOT NULL,
				price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
				discount_percent INTEGER NOT NULL DEFAULT 0 CHECK (discount_percent BETWEEN 0 AND 100)
			);

			CREATE TABLE invoices (
				code VARCHAR(50) PRIMARY KEY,
				customer_id INTEGER NOT NULL REFERENCES customers (id),
				tax_percent INTEGER NOT NULL CHECK (tax_percent BETWEEN 0 AND 100),
				subtotal NUMERIC(12,2) NOT NULL DEFAULT 0,
				total NUMERIC(12,2) NOT NULL DEFAULT 0,
				total_discount NUMERIC(12,2) NOT NULL DEFAULT 0,
				total_tax NUMERIC(12,2) NOT NULL DEFAULT 0
			);

			CREATE TABLE invoice_products (
				id SERIAL PRIMARY KEY,
				invoice_code VARCHAR(50) NOT NULL REFERENCES invoices (code),
				product_code VARCHAR(50) NOT NULL REFERENCES products (code),
				price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
				discount NUMERIC(12,2) NOT NULL DEFAULT 0
			);

			CREATE INDEX idx_invoices_customer ON invoices (customer_id);
			CREATE INDEX idx_invoice_products_invoice ON invoice_products (invoice_code);
		`,
	},
	{
		Version: 2,
		Name:    "customer_and_catalog_procedures",
		SQL: `
			CREATE PROCEDURE insert_customer(
				p_first_name VARCHAR,
				p_last_name VARCHAR,
				p_sex CHAR,
				p_phone VARCHAR,
				p_email VARCHAR
			)
			LANGUAGE plpgsql AS $$
			BEGIN
				INSERT INTO customers (first_name, last_name, sex, phone, email)
				VALUES (p_first_name, p_last_name, p_sex, p_phone, p_email);
			END;
			$$;

			CREATE PROCEDURE update_customer(
				p_id INTEGER,
				p_first_name VARCHAR,
				p_last_name VARCHAR,
				p_sex CHAR,
				p_phone VARCHAR,
				p_email VARCHAR
			)
			LANGUAGE plpgsql AS $$
			BEGIN
				UPDATE customers
				SET first_name = p_first_name,
					last_name = p_last_name,
					sex = p_sex,
					phone = p_phone,
					email = p_email
				WHERE id = p_id;
				IF NOT FOUND THEN
					RAISE EXCEPTION 'customer % not found', p_id USING ERRCODE = 'no_data_found';
				END IF;
			END;
			$$;

			CREATE PROCEDURE delete_customer(p_id INTEGER)
			LANGUAGE plpgsql AS $$
			BEGIN
				DELETE FROM customers WHERE id = p_id;
				IF NOT FOUND THEN
					RAISE EXCEPTION 'customer % not found', p_id USING ERRCODE = 'no_data_found';
				END IF;
			END;
			$$;

			CREATE FUNCTION get_customers()
			RETURNS TABLE (id INTEGER, first_name VARCHAR, last_name VARCHAR, sex CHAR, phone VARCHAR, email VARCHAR)
			LANGUAGE sql STABLE AS $$
				SELECT c.id, c.first_name, c.last_name, c.sex, c.phone, c.email
				FROM customers c
				ORDER BY c.id;
			$$;

			CREATE PROCEDURE insert_product_type(p_name VARCHAR)
			LANGUAGE plpgsql AS $$
			BEGIN
				INSERT INTO product_types (name) VALUES (p_name);
			END;
			$$;

			CREATE PROCEDURE delete_product_type(p_id INTEGER)
			LANGUAGE plpgsql AS $$
			BEGIN
				DELETE FROM product_types WHERE id = p_id;
				IF NOT FOUND THEN
					RAISE EXCEPTION 'product type % not found', p_id USING ERRCODE = 'no_data_found';
				END IF;
			END;
			$$;

			CREATE FUNCTION get_product_types()
			RETURNS TABLE (id INTEGER, name VARCHAR)
			LANGUAGE sql STABLE AS $$
				SELECT t.id, t.name FROM product_types t ORDER BY t.id;
			$$;

			CREATE PROCEDURE insert_product(
				p_code VARCHAR,
				p_product_type_id INTEGER,
				p_name VARCHAR,
				p_price NUMERIC,
				p_discount_percent INTEGER
			)
			LANGUAGE plpgsql AS $$
			BEGIN
				INSERT INTO products (code, product_type_id, name, price, discount_percent)
				VALUES (p_code, p_product_type_id, p_name, p_price, p_discount_percent);
			END;
			$$;

			CREATE PROCEDURE delete_product(p_code VARCHAR)
			LANGUAGE plpgsql AS $$
			BEGIN
				DELETE FROM products WHERE code = p_code;
				IF NOT FOUND THEN
					RAISE EXCEPTION 'product % not found', p_code USING ERRCODE = 'no_data_found';
				END IF;
			END;
			$$;

			CREATE FUNCTION get_products()
			RETURNS TABLE (code VARCHAR, product_type_id INTEGER, name VARCHAR, price NUMERIC, discount_percent INTEGER)
			LANGUAGE sql STABLE AS $$
				SELECT p.code, p.product_type_id, p.name, p.price, p.discount_percent
				FROM products p
				ORDER BY p.code;
			$$;
		`,
	},
	{
		Version: 3,
		Name:    "invoice_procedures",
		SQL: `
			CREATE PROCEDURE recalculate_invoice(p_code VARCHAR)
			LANGUAGE plpgsql AS $$
			DECLARE
				v_subtotal NUMERIC(12,2);
				v_discount NUMERIC(12,2);
				v_tax NUMERIC(12,2);
			BEGIN
				SELECT COALESCE(SUM(l.price), 0), COALESCE(SUM(l.discount), 0)
				INTO v_subtotal, v_discount
				FROM invoice_products l
				WHERE l.invoice_code = p_code;

				SELECT ROUND((v_subtotal - v_discount) * i.tax_percent / 100.0, 2)
				INTO v_tax
				FROM invoices i
				WHERE i.code = p_code;

				UPDATE invoices
				SET subtotal = v_subtotal,
					total_discount = v_discount,
					total_tax = v_tax,
					total = v_subtotal - v_discount + v_tax
				WHERE code = p_code;
			END;
			$$;

			CREATE PROCEDURE insert_invoice(p_code VARCHAR, p_customer_id INTEGER, p_tax_percent INTEGER)
			LANGUAGE plpgsql AS $$
			BEGIN
				INSERT INTO invoices (code, customer_id, tax_percent, subtotal, total, total_discount, total_tax)
				VALUES (p_code, p_customer_id, p_tax_percent, 0, 0, 0, 0);
			END;
			$$;

			CREATE PROCEDURE delete_invoice(p_code VARCHAR)
			LANGUAGE plpgsql AS $$
			BEGIN
				DELETE FROM invoice_products WHERE invoice_code = p_code;
				DELETE FROM invoices WHERE code = p_code;
				IF NOT FOUND THEN
					RAISE EXCEPTION 'invoice % not found', p_code USING ERRCODE = 'no_data_found';
				END IF;
			END;
			$$;

			CREATE FUNCTION get_invoices()
			RETURNS TABLE (
				code VARCHAR,
				customer_id INTEGER,
				tax_percent INTEGER,
				subtotal NUMERIC,
				total NUMERIC,
				total_discount NUMERIC,
				total_tax NUMERIC
			)
			LANGUAGE sql STABLE AS $$
				SELECT i.code, i.customer_id, i.tax_percent, i.subtotal, i.total, i.total_discount, i.total_tax
				FROM invoices i
				ORDER BY i.code;
			$$;

			CREATE PROCEDURE insert_invoice_product(p_invoice_code VARCHAR, p_product_code VARCHAR, p_price NUMERIC)
			LANGUAGE plpgsql AS $$
			DECLARE
				v_price NUMERIC(12,2) := ROUND(p_price, 2);
				v_discount_percent INTEGER;
			BEGIN
				SELECT p.discount_percent INTO v_discount_percent
				FROM products p
				WHERE p.code = p_product_code;
				IF NOT FOUND THEN
					RAISE EXCEPTION 'product % not found', p_product_code USING ERRCODE = 'no_data_found';
				END IF;

				INSERT INTO invoice_products (invoice_code, product_code, price, discount)
				VALUES (p_invoice_code, p_product_code, v_price, ROUND(v_price * v_discount_percent / 100.0, 2));

				CALL recalculate_invoice(p_invoice_code);
			END;
			$$;

			CREATE PROCEDURE delete_invoice_product(p_id INTEGER)
			LANGUAGE plpgsql AS $$
			DECLARE
				v_invoice_code VARCHAR;
			BEGIN
				DELETE FROM invoice_products WHERE id = p_id
				RETURNING invoice_code INTO v_invoice_code;
				IF NOT FOUND THEN
					RAISE EXCEPTION 'invoice product % not found', p_id USING ERRCODE = 'no_data_found';
				END IF;

				CALL recalculate_invoice(v_invoice_code);
			END;
			$$;

			CREATE FUNCTION get_invoice_products()
			RETURNS TABLE (id INTEGER, invoice_code VARCHAR, product_code VARCHAR, price NUMERIC, discount NUMERIC)
			LANGUAGE sql STABLE AS $$
				SELECT l.id, l.invoice_code, l.product_code, l.price, l.discount
				FROM invoice_products l
				ORDER BY l.id;
			$$;
		`,
	},
}
