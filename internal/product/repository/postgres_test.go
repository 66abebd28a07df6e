package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fekuna/stockflow-console/internal/apperr"
	"github.com/fekuna/stockflow-console/internal/database/postgres/pgtest"
	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `
DROP TABLE IF EXISTS inventory;
DROP TABLE IF EXISTS products;
CREATE TABLE products (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    sku VARCHAR(100) UNIQUE NOT NULL,
    price DECIMAL(10,2) NOT NULL,
    is_bundle BOOLEAN DEFAULT FALSE
);
CREATE TABLE inventory (
    id SERIAL PRIMARY KEY,
    product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    warehouse_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL
);
`

func TestWriteErrorMapsUniqueViolation(t *testing.T) {
	err := writeError("create product", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"}))
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "SKU must be unique", apperr.DetailOf(err))

	err = writeError("create product", &pgconn.PgError{Code: "23502"})
	assert.ErrorIs(t, err, apperr.ErrNetwork)

	err = writeError("update product", errors.New("connection reset"))
	assert.ErrorIs(t, err, apperr.ErrNetwork)
}

func TestPGRepositoryCRUD(t *testing.T) {
	db := pgtest.Open(t, schema)
	repo := NewPGRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.ProductInput{Name: "Widget A", SKU: "WA1", Price: 9.99}))
	require.NoError(t, repo.Create(ctx, &model.ProductInput{Name: "Kit", SKU: "K1", Price: 30, IsBundle: true}))
	_, err := db.Exec(`INSERT INTO inventory (product_id, warehouse_id, quantity) VALUES (1, 1, 3), (1, 2, 2)`)
	require.NoError(t, err)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget A", products[0].Name)
	assert.Equal(t, 5, products[0].Stock)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("9.99")))
	assert.True(t, products[1].IsBundle)
	assert.Equal(t, 0, products[1].Stock)

	err = repo.Create(ctx, &model.ProductInput{Name: "Dup", SKU: "WA1", Price: 1})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "SKU must be unique", apperr.DetailOf(err))

	require.NoError(t, repo.Update(ctx, products[0].ID, &model.ProductInput{Name: "Widget A", SKU: "WA1", Price: 12.5}))
	err = repo.Update(ctx, products[1].ID, &model.ProductInput{Name: "Kit", SKU: "WA1", Price: 30})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.ErrorIs(t, repo.Update(ctx, 999, &model.ProductInput{Name: "X", SKU: "X", Price: 1}), apperr.ErrNotFound)

	p, err := repo.FindByID(ctx, products[0].ID)
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("12.50")))

	require.NoError(t, repo.Delete(ctx, products[1].ID))
	assert.ErrorIs(t, repo.Delete(ctx, products[1].ID), apperr.ErrNotFound)

	products, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
