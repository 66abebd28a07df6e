package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fekuna/stockflow-console/internal/apperr"
	"github.com/fekuna/stockflow-console/internal/logger"
	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/fekuna/stockflow-console/internal/notify"
	"github.com/fekuna/stockflow-console/internal/product"
	"github.com/fekuna/stockflow-console/internal/product/dto"
	"go.uber.org/zap"
)

var (
	// ErrSubmitInProgress rejects a Submit while the previous one is unresolved.
	ErrSubmitInProgress = errors.New("a submit is already in progress")
	// ErrNoForm is returned by SetForm and Submit when no draft is open.
	ErrNoForm = errors.New("no form is open")
)

// productUseCase owns the local list and the form draft. The mutex guards
// state only and is never held across a client call, so overlapping loads
// race and the last one to resolve wins.
type productUseCase struct {
	client  product.Client
	notify  notify.Notifier
	confirm product.ConfirmFunc
	logger  logger.ZapLogger

	mu         sync.Mutex
	products   []model.Product
	form       *dto.Form
	loading    int
	submitting bool
	errMsg     string
}

func NewProductUseCase(client product.Client, n notify.Notifier, confirm product.ConfirmFunc, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		client:   client,
		notify:   n,
		confirm:  confirm,
		logger:   log,
		products: []model.Product{},
	}
}

func (uc *productUseCase) LoadList(ctx context.Context) error {
	uc.mu.Lock()
	uc.loading++
	uc.mu.Unlock()

	products, err := uc.client.List(ctx)

	uc.mu.Lock()
	uc.loading--
	if err != nil {
		uc.errMsg = product.MsgFetchErrState
		uc.mu.Unlock()

		uc.logger.Error("failed to fetch products", zap.Error(err))
		uc.notify.Error(product.MsgFetchFailed)
		return fmt.Errorf("load products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	uc.products = products
	uc.errMsg = ""
	uc.mu.Unlock()

	uc.logger.Debug("products loaded", zap.Int("count", len(products)))
	return nil
}

func (uc *productUseCase) BeginCreate() {
	f := dto.NewCreateForm()

	uc.mu.Lock()
	uc.form = &f
	uc.mu.Unlock()
}

func (uc *productUseCase) BeginEdit(id int64) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for _, p := range uc.products {
		if p.ID == id {
			f := dto.NewEditForm(p)
			uc.form = &f
			return nil
		}
	}
	return apperr.NotFound("edit", fmt.Sprintf("product %d is not in the list", id))
}

func (uc *productUseCase) SetForm(fields dto.FormFields) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.form == nil {
		return ErrNoForm
	}
	uc.form.FormFields = fields
	return nil
}

func (uc *productUseCase) Submit(ctx context.Context) error {
	uc.mu.Lock()
	if uc.form == nil {
		uc.mu.Unlock()
		return ErrNoForm
	}
	if uc.submitting {
		uc.mu.Unlock()
		return ErrSubmitInProgress
	}
	draft := *uc.form
	input, problem := draft.Validate()
	if problem == "" {
		uc.submitting = true
	}
	uc.mu.Unlock()

	if problem != "" {
		uc.notify.Error(problem)
		return apperr.Validation("submit", problem)
	}

	var err error
	successMsg := product.MsgAdded
	if draft.Mode == dto.ModeEditing {
		successMsg = product.MsgUpdated
		err = uc.client.Update(ctx, draft.TargetID, input)
	} else {
		err = uc.client.Create(ctx, input)
	}

	uc.mu.Lock()
	uc.submitting = false
	if err == nil {
		uc.form = nil
	}
	uc.mu.Unlock()

	if err != nil {
		uc.logger.Error("failed to save product",
			zap.String("mode", draft.Mode.String()),
			zap.Int64("target_id", draft.TargetID),
			zap.Error(err),
		)
		msg := apperr.DetailOf(err)
		if msg == "" {
			msg = product.MsgSaveFailed
		}
		uc.notify.Error(msg)
		return fmt.Errorf("save product: %w", err)
	}

	uc.notify.Success(successMsg)
	// A failed refresh is already reported by LoadList; the save itself succeeded.
	_ = uc.LoadList(ctx)
	return nil
}

func (uc *productUseCase) Cancel() {
	uc.mu.Lock()
	uc.form = nil
	uc.mu.Unlock()
}

func (uc *productUseCase) Remove(ctx context.Context, id int64) error {
	if uc.confirm == nil || !uc.confirm(product.ConfirmDeletePrompt) {
		return nil
	}

	if err := uc.client.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete product", zap.Int64("id", id), zap.Error(err))
		uc.notify.Error(product.MsgDeleteFailed)
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	uc.notify.Success(product.MsgDeleted)
	_ = uc.LoadList(ctx)
	return nil
}

func (uc *productUseCase) Products() []model.Product {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]model.Product, len(uc.products))
	copy(out, uc.products)
	return out
}

func (uc *productUseCase) Form() (dto.Form, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.form == nil {
		return dto.Form{}, false
	}
	return *uc.form, true
}

func (uc *productUseCase) Loading() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.loading > 0
}

func (uc *productUseCase) Submitting() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.submitting
}

// Err is the error indicator shown above the list; empty after a successful load.
func (uc *productUseCase) Err() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.errMsg
}
