package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/stockflow-console/internal/inventory"
	"github.com/fekuna/stockflow-console/internal/logger"
	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/fekuna/stockflow-console/internal/notify"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	source inventory.AlertSource
	notify notify.Notifier
	logger logger.ZapLogger
}

func NewInventoryUseCase(source inventory.AlertSource, n notify.Notifier, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		source: source,
		notify: n,
		logger: log,
	}
}

func (uc *inventoryUseCase) LowStock(ctx context.Context, companyID int64) (*model.LowStockReport, error) {
	report, err := uc.source.LowStock(ctx, companyID)
	if err != nil {
		uc.logger.Error("failed to fetch low-stock alerts", zap.Int64("company_id", companyID), zap.Error(err))
		uc.notify.Error(inventory.MsgAlertsFailed)
		return nil, fmt.Errorf("low-stock alerts for company %d: %w", companyID, err)
	}
	return report, nil
}
