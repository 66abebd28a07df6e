package inventory

import (
	"context"

	"github.com/fekuna/stockflow-console/internal/model"
)

// AlertSource reports products whose stock in a company's warehouses has
// dropped below their reorder threshold.
type AlertSource interface {
	LowStock(ctx context.Context, companyID int64) (*model.LowStockReport, error)
}

type UseCase interface {
	LowStock(ctx context.Context, companyID int64) (*model.LowStockReport, error)
}

const MsgAlertsFailed = "Failed to fetch low-stock alerts."
