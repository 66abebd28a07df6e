package product

import (
	"context"

	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/fekuna/stockflow-console/internal/product/dto"
)

// UseCase keeps the local product list and the form draft in step with the
// remote collection.
type UseCase interface {
	LoadList(ctx context.Context) error
	BeginCreate()
	BeginEdit(id int64) error
	SetForm(fields dto.FormFields) error
	Submit(ctx context.Context) error
	Cancel()
	Remove(ctx context.Context, id int64) error

	Products() []model.Product
	Form() (dto.Form, bool)
	Loading() bool
	Submitting() bool
	Err() string
}
