package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/stockflow-console/internal/apperr"
	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/fekuna/stockflow-console/internal/product"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const (
	detailSKUTaken = "SKU must be unique"
	detailNotFound = "Product not found"

	uniqueViolation = "23505"
)

var _ product.Client = (*PGRepository)(nil)

// PGRepository serves the product collection straight from the StockFlow
// database, with the same rules the REST backend enforces.
type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) List(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	query := `
        SELECT p.id, p.name, p.sku, p.price,
               COALESCE(p.is_bundle, FALSE) AS is_bundle,
               COALESCE(SUM(i.quantity), 0) AS stock
        FROM products p
        LEFT JOIN inventory i ON i.product_id = p.id
        GROUP BY p.id
        ORDER BY p.id
    `
	if err := r.DB.SelectContext(ctx, &products, query); err != nil {
		return nil, apperr.Network("list products", err)
	}
	return products, nil
}

func (r *PGRepository) Create(ctx context.Context, input *model.ProductInput) error {
	unique, err := r.IsSKUUnique(ctx, input.SKU, 0)
	if err != nil {
		return apperr.Network("create product", err)
	}
	if !unique {
		return apperr.Validation("create product", detailSKUTaken)
	}

	query := `
        INSERT INTO products (name, sku, price, is_bundle)
        VALUES (:name, :sku, :price, :is_bundle)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, input); err != nil {
		return writeError("create product", err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, id int64, input *model.ProductInput) error {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return apperr.Network("update product", err)
	}
	if current == nil {
		return apperr.NotFound("update product", detailNotFound)
	}

	if current.SKU != input.SKU {
		unique, err := r.IsSKUUnique(ctx, input.SKU, id)
		if err != nil {
			return apperr.Network("update product", err)
		}
		if !unique {
			return apperr.Validation("update product", detailSKUTaken)
		}
	}

	query := `
        UPDATE products
        SET name = :name,
            sku = :sku,
            price = :price,
            is_bundle = :is_bundle
        WHERE id = :id
    `
	args := map[string]interface{}{
		"id":        id,
		"name":      input.Name,
		"sku":       input.SKU,
		"price":     input.Price,
		"is_bundle": input.IsBundle,
	}
	if _, err := r.DB.NamedExecContext(ctx, query, args); err != nil {
		return writeError("update product", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return apperr.Network("delete product", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return apperr.Network("delete product", err)
	}
	if rows == 0 {
		return apperr.NotFound("delete product", detailNotFound)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	query := `SELECT id, name, sku, price, COALESCE(is_bundle, FALSE) AS is_bundle, 0 AS stock FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &p, nil
}

// IsSKUUnique reports whether no product other than excludeID uses sku.
func (r *PGRepository) IsSKUUnique(ctx context.Context, sku string, excludeID int64) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE sku = $1`
	args := []interface{}{sku}
	if excludeID != 0 {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

// writeError maps a failed INSERT/UPDATE. A concurrent writer can claim the
// SKU between IsSKUUnique and the write; the unique index catches it.
func writeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Validation(op, detailSKUTaken)
	}
	return apperr.Network(op, err)
}
