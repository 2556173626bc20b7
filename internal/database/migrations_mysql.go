package database

var mysqlMigrations = []migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
			CREATE TABLE customers (
				id INT AUTO_INCREMENT PRIMARY KEY,
				first_name VARCHAR(100) NOT NULL,
				last_name VARCHAR(100) NOT NULL,
				sex CHAR(1) NOT NULL,
				phone VARCHAR(30) NOT NULL,
				email VARCHAR(255) NOT NULL
			);

			CREATE TABLE product_types (
				id INT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(100) NOT NULL,
				CONSTRAINT uq_product_types_name UNIQUE (name)
			);

			CREATE TABLE products (
				code VARCHAR(50) PRIMARY KEY,
				product_type_id INT NOT NULL,
				name VARCHAR(200) NOT NULL,
				price DECIMAL(12,2) NOT NULL,
				discount_percent INT NOT NULL DEFAULT 0,
				CONSTRAINT fk_products_product_type FOREIGN KEY (product_type_id) REFERENCES product_types (id),
				CONSTRAINT chk_products_price CHECK (price >= 0),
				CONSTRAINT chk_products_discount CHECK (discount_percent BETWEEN 0 AND 100)
			);

			CREATE TABLE invoices (
				code VARCHAR(50) PRIMARY KEY,
				customer_id INT NOT NULL,
				tax_percent INT NOT NULL,
				subtotal DECIMAL(12,2) NOT NULL DEFAULT 0,
				total DECIMAL(12,2) NOT NULL DEFAULT 0,
				total_discount DECIMAL(12,2) NOT NULL DEFAULT 0,
				total_tax DECIMAL(12,2) NOT NULL DEFAULT 0,
				CONSTRAINT fk_invoices_customer FOREIGN KEY (customer_id) REFERENCES customers (id),
				CONSTRAINT chk_invoices_tax CHECK (tax_percent BETWEEN 0 AND 100)
			);

			CREATE TABLE invoice_products (
				id INT AUTO_INCREMENT PRIMARY KEY,
				invoice_code VARCHAR(50) NOT NULL,
				product_code VARCHAR(50) NOT NULL,
				price DECIMAL(12,2) NOT NULL,
				discount DECIMAL(12,2) NOT NULL DEFAULT 0,
				CONSTRAINT fk_invoice_products_invoice FOREIGN KEY (invoice_code) REFERENCES invoices (code),
				CONSTRAINT fk_invoice_products_product FOREIGN KEY (product_code) REFERENCES products (code),
				CONSTRAINT chk_invoice_products_price CHECK (price >= 0)
			);

			CREATE INDEX idx_invoices_customer ON invoices (customer_id);
			CREATE INDEX idx_invoice_products_invoice ON invoice_products (invoice_code);
		`,
	},
	{
		Version: 2,
		Name:    "customer_and_catalog_procedures",
		SQL: `
			DELIMITER //

			CREATE PROCEDURE insert_customer(
				IN p_first_name VARCHAR(100),
				IN p_last_name VARCHAR(100),
				IN p_sex CHAR(1),
				IN p_phone VARCHAR(30),
				IN p_email VARCHAR(255)
			)
			BEGIN
				INSERT INTO customers (first_name, last_name, sex, phone, email)
				VALUES (p_first_name, p_last_name, p_sex, p_phone, p_email);
			END //

			CREATE PROCEDURE update_customer(
				IN p_id INT,
				IN p_first_name VARCHAR(100),
				IN p_last_name VARCHAR(100),
				IN p_sex CHAR(1),
				IN p_phone VARCHAR(30),
				IN p_email VARCHAR(255)
			)
			BEGIN
				IF NOT EXISTS (SELECT 1 FROM customers WHERE id = p_id) THEN
					SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'customer not found', MYSQL_ERRNO = 1643;
				END IF;
				UPDATE customers
				SET first_name = p_first_name,
					last_name = p_last_name,
					sex = p_sex,
					phone = p_phone,
					email = p_email
				WHERE id = p_id;
			END //

			CREATE PROCEDURE delete_customer(IN p_id INT)
			BEGIN
				DELETE FROM customers WHERE id = p_id;
				IF ROW_COUNT() = 0 THEN
					SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'customer not found', MYSQL_ERRNO = 1643;
				END IF;
			END //

			CREATE PROCEDURE get_customers()
			BEGIN
				SELECT id, first_name, last_name, sex, phone, email
				FROM customers
				ORDER BY id;
			END //

			CREATE PROCEDURE insert_product_type(IN p_name VARCHAR(100))
			BEGIN
				INSERT INTO product_types (name) VALUES (p_name);
			END //

			CREATE PROCEDURE delete_product_type(IN p_id INT)
			BEGIN
				DELETE FROM product_types WHERE id = p_id;
				IF ROW_COUNT() = 0 THEN
					SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'product type not found', MYSQL_ERRNO = 1643;
				END IF;
			END //

			CREATE PROCEDURE get_product_types()
			BEGIN
				SELECT id, name FROM product_types ORDER BY id;
			END //

			CREATE PROCEDURE insert_product(
				IN p_code VARCHAR(50),
				IN p_product_type_id INT,
				IN p_name VARCHAR(200),
				IN p_price DECIMAL(12,2),
				IN p_discount_percent INT
			)
			BEGIN
				INSERT INTO products (code, product_type_id, name, price, discount_percent)
				VALUES (p_code, p_product_type_id, p_name, p_price, p_discount_percent);
			END //

			CREATE PROCEDURE delete_product(IN p_code VARCHAR(50))
			BEGIN
				DELETE FROM products WHERE code = p_code;
				IF ROW_COUNT() = 0 THEN
					SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'product not found', MYSQL_ERRNO = 1643;
				END IF;
			END //

			CREATE PROCEDURE get_products()
			BEGIN
				SELECT code, product_type_id, name, price, discount_percent
				FROM products
				ORDER BY code;
			END //

			DELIMITER ;
		`,
	},
	{
		Version: 3,
		Name:    "invoice_procedures",
		SQL: `
			DELIMITER //

			CREATE PROCEDURE recalculate_invoice(IN p_code VARCHAR(50))
			BEGIN
				UPDATE invoices i
				LEFT JOIN (
					SELECT invoice_code,
						SUM(price) AS subtotal,
						SUM(discount) AS total_discount
					FROM invoice_products
					WHERE invoice_code = p_code
					GROUP BY invoice_code
				) l ON l.invoice_code = i.code
				SET i.subtotal = COALESCE(l.subtotal, 0),
					i.total_discount = COALESCE(l.total_discount, 0),
					i.total_tax = ROUND((COALESCE(l.subtotal, 0) - COALESCE(l.total_discount, 0)) * i.tax_percent / 100, 2),
					i.total = COALESCE(l.subtotal, 0) - COALESCE(l.total_discount, 0)
						+ ROUND((COALESCE(l.subtotal, 0) - COALESCE(l.total_discount, 0)) * i.tax_percent / 100, 2)
				WHERE i.code = p_code;
			END //

			CREATE PROCEDURE insert_invoice(
				IN p_code VARCHAR(50),
				IN p_customer_id INT,
				IN p_tax_percent INT
			)
			BEGIN
				INSERT INTO invoices (code, customer_id, tax_percent, subtotal, total, total_discount, total_tax)
				VALUES (p_code, p_customer_id, p_tax_percent, 0, 0, 0, 0);
			END //

			CREATE PROCEDURE delete_invoice(IN p_code VARCHAR(50))
			BEGIN
				IF NOT EXISTS (SELECT 1 FROM invoices WHERE code = p_code) THEN
					SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'invoice not found', MYSQL_ERRNO = 1643;
				END IF;
				DELETE FROM invoice_products WHERE invoice_code = p_code;
				DELETE FROM invoices WHERE code = p_code;
			END //

			CREATE PROCEDURE get_invoices()
			BEGIN
				SELECT code, customer_id, tax_percent, subtotal, total, total_discount, total_tax
				FROM invoices
				ORDER BY code;
			END //

			CREATE PROCEDURE insert_invoice_product(
				IN p_invoice_code VARCHAR(50),
				IN p_product_code VARCHAR(50),
				IN p_price DECIMAL(12,2)
			)
			BEGIN
				DECLARE v_discount_percent INT DEFAULT NULL;

				SELECT discount_percent INTO v_discount_percent
				FROM products
				WHERE code = p_product_code;

				IF v_discount_percent IS NULL THEN
					SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'product not found', MYSQL_ERRNO = 1643;
				END IF;

				INSERT INTO invoice_products (invoice_code, product_code, price, discount)
				VALUES (p_invoice_code, p_product_code, p_price, ROUND(p_price * v_discount_percent / 100, 2));

				CALL recalculate_invoice(p_invoice_code);
			END //

			CREATE PROCEDURE delete_invoice_product(IN p_id INT)
			BEGIN
				DECLARE v_invoice_code VARCHAR(50) DEFAULT NULL;

				SELECT invoice_code INTO v_invoice_code
				FROM invoice_products
				WHERE id = p_id;

				IF v_invoice_code IS NULL THEN
					SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'invoice product not found', MYSQL_ERRNO = 1643;
				END IF;

				DELETE FROM invoice_products WHERE id = p_id;
				CALL recalculate_invoice(v_invoice_code);
			END //

			CREATE PROCEDURE get_invoice_products()
			BEGIN
				SELECT id, invoice_code, product_code, price, discount
				FROM invoice_products
				ORDER BY id;
			END //

			DELIMITER ;
		`,
	},
}
