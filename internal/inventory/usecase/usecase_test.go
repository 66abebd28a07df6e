package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/stockflow-console/internal/apperr"
	"github.com/fekuna/stockflow-console/internal/inventory"
	"github.com/fekuna/stockflow-console/internal/logger"
	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/fekuna/stockflow-console/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	lowStockFunc func(ctx context.Context, companyID int64) (*model.LowStockReport, error)
}

func (m *mockSource) LowStock(ctx context.Context, companyID int64) (*model.LowStockReport, error) {
	return m.lowStockFunc(ctx, companyID)
}

func TestLowStockPassesReportThrough(t *testing.T) {
	want := &model.LowStockReport{
		Alerts:      []model.LowStockAlert{{ProductID: 1, SKU: "WA1", CurrentStock: 3, Threshold: 20}},
		TotalAlerts: 1,
	}
	var gotCompany int64
	src := &mockSource{lowStockFunc: func(_ context.Context, id int64) (*model.LowStockReport, error) {
		gotCompany = id
		return want, nil
	}}
	rec := &notify.Recorder{}
	uc := NewInventoryUseCase(src, rec, logger.NewNop())

	got, err := uc.LowStock(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, int64(7), gotCompany)
	assert.Empty(t, rec.Toasts())
}

func TestLowStockFailureNotifies(t *testing.T) {
	src := &mockSource{lowStockFunc: func(context.Context, int64) (*model.LowStockReport, error) {
		return nil, apperr.Network("low-stock alerts", errors.New("dial tcp: refused"))
	}}
	rec := &notify.Recorder{}
	uc := NewInventoryUseCase(src, rec, logger.NewNop())

	got, err := uc.LowStock(context.Background(), 1)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperr.ErrNetwork)
	assert.Equal(t, notify.Toast{Level: notify.LevelError, Message: inventory.MsgAlertsFailed}, rec.Last())
}
