package product

import (
	"context"

	"github.com/fekuna/stockflow-console/internal/model"
)

// Client is the remote product collection. Implementations classify their
// failures with apperr kinds.
type Client interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, input *model.ProductInput) error
	Update(ctx context.Context, id int64, input *model.ProductInput) error
	Delete(ctx context.Context, id int64) error
}

// ConfirmFunc is the synchronous yes/no gate asked before destructive actions.
type ConfirmFunc func(prompt string) bool
