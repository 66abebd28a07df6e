package repository

import (
	"context"
	"testing"

	"github.com/fekuna/stockflow-console/internal/database/postgres/pgtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `
DROP TABLE IF EXISTS inventory;
DROP TABLE IF EXISTS warehouses;
DROP TABLE IF EXISTS suppliers;
DROP TABLE IF EXISTS products;
CREATE TABLE products (id SERIAL PRIMARY KEY, name VARCHAR(255) NOT NULL, sku VARCHAR(100) UNIQUE NOT NULL,
    price DECIMAL(10,2) NOT NULL, is_bundle BOOLEAN DEFAULT FALSE);
CREATE TABLE warehouses (id SERIAL PRIMARY KEY, company_id INTEGER NOT NULL, name VARCHAR(255) NOT NULL, address VARCHAR(255));
CREATE TABLE inventory (id SERIAL PRIMARY KEY, product_id INTEGER NOT NULL REFERENCES products(id),
    warehouse_id INTEGER NOT NULL REFERENCES warehouses(id), quantity INTEGER NOT NULL);
CREATE TABLE suppliers (id SERIAL PRIMARY KEY, name VARCHAR(255) NOT NULL, contact_email VARCHAR(255));
`

func TestLowStock(t *testing.T) {
	db := pgtest.Open(t, schema)

	_, err := db.Exec(`
        INSERT INTO products (name, sku, price) VALUES ('Widget A', 'WA1', 9.99), ('Gadget B', 'GB2', 4.50);
        INSERT INTO warehouses (company_id, name) VALUES (1, 'Main'), (2, 'Other');
        INSERT INTO inventory (product_id, warehouse_id, quantity) VALUES (1, 1, 5), (2, 1, 50), (1, 2, 1);
        INSERT INTO suppliers (name, contact_email) VALUES ('Acme', 'orders@acme.test');
    `)
	require.NoError(t, err)

	repo := NewPGRepository(db)
	report, err := repo.LowStock(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, 1, report.TotalAlerts)
	alert := report.Alerts[0]
	assert.Equal(t, "WA1", alert.SKU)
	assert.Equal(t, "Main", alert.WarehouseName)
	assert.Equal(t, 5, alert.CurrentStock)
	assert.Equal(t, DefaultThreshold, alert.Threshold)
	assert.Equal(t, DaysUntilStockout, alert.DaysUntilStockout)
	require.NotNil(t, alert.Supplier)
	assert.Equal(t, "Acme", alert.Supplier.Name)

	empty, err := repo.LowStock(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, empty.Alerts)
	assert.Zero(t, empty.TotalAlerts)
}
