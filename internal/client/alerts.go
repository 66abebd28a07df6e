package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fekuna/stockflow-console/internal/inventory"
	"github.com/fekuna/stockflow-console/internal/model"
)

var _ inventory.AlertSource = (*Client)(nil)

func (c *Client) LowStock(ctx context.Context, companyID int64) (*model.LowStockReport, error) {
	var report model.LowStockReport
	path := fmt.Sprintf("/api/companies/%d/alerts/low-stock", companyID)
	if err := c.do(ctx, "low-stock alerts", http.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	if report.Alerts == nil {
		report.Alerts = []model.LowStockAlert{}
	}
	return &report, nil
}
