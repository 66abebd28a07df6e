package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/stockflow-console/internal/apperr"
	"github.com/fekuna/stockflow-console/internal/inventory"
	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	// DefaultThreshold applies while products carry no per-product reorder point.
	DefaultThreshold = 20
	// DaysUntilStockout is a fixed estimate until sales history is tracked.
	DaysUntilStockout = 12
)

var _ inventory.AlertSource = (*PGRepository)(nil)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) LowStock(ctx context.Context, companyID int64) (*model.LowStockReport, error) {
	alerts := []model.LowStockAlert{}
	query := `
        SELECT p.id   AS product_id,
               p.name AS product_name,
               p.sku,
               w.id   AS warehouse_id,
               w.name AS warehouse_name,
               i.quantity AS current_stock,
               $2::int AS threshold
        FROM warehouses w
        JOIN inventory i ON i.warehouse_id = w.id
        JOIN products p ON p.id = i.product_id
        WHERE w.company_id = $1 AND i.quantity < $2::int
        ORDER BY w.id, i.id
    `
	if err := r.DB.SelectContext(ctx, &alerts, query, companyID, DefaultThreshold); err != nil {
		return nil, apperr.Network("low-stock alerts", err)
	}

	if len(alerts) > 0 {
		supplier, err := r.firstSupplier(ctx)
		if err != nil {
			return nil, apperr.Network("low-stock alerts", fmt.Errorf("find supplier: %w", err))
		}
		for i := range alerts {
			alerts[i].DaysUntilStockout = DaysUntilStockout
			alerts[i].Supplier = supplier
		}
	}

	return &model.LowStockReport{Alerts: alerts, TotalAlerts: len(alerts)}, nil
}

func (r *PGRepository) firstSupplier(ctx context.Context) (*model.SupplierRef, error) {
	var s model.SupplierRef
	err := r.DB.GetContext(ctx, &s, `SELECT id, name, contact_email FROM suppliers ORDER BY id LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
