package dto

import (
	"math"
	"strings"

	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/shopspring/decimal"
)

// MaxPrice is the largest value the products.price DECIMAL(10,2) column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

type Mode int

const (
	ModeCreating Mode = iota + 1
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return "closed"
	}
}

// FormFields are the user-editable fields of a draft. Price stays text until submit.
type FormFields struct {
	Name     string
	SKU      string
	Price    string
	IsBundle bool
}

type Form struct {
	FormFields
	Mode     Mode
	TargetID int64 // Only meaningful when Mode == ModeEditing
}

func NewCreateForm() Form {
	return Form{Mode: ModeCreating}
}

func NewEditForm(p model.Product) Form {
	return Form{
		FormFields: FormFields{
			Name:     p.Name,
			SKU:      p.SKU,
			Price:    p.Price.String(),
			IsBundle: p.IsBundle,
		},
		Mode:     ModeEditing,
		TargetID: p.ID,
	}
}

// Validate checks the draft and returns the payload to send.
func (f FormFields) Validate() (*model.ProductInput, string) {
	if strings.TrimSpace(f.Name) == "" {
		return nil, "Name is required."
	}
	if strings.TrimSpace(f.SKU) == "" {
		return nil, "SKU is required."
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return nil, "Price must be a number."
	}
	if price.IsNegative() {
		return nil, "Price must not be negative."
	}
	value, _ := price.Float64()
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return nil, "Price must be a number."
	}
	if price.GreaterThan(MaxPrice) {
		return nil, "Price is too large."
	}
	return &model.ProductInput{
		Name:     f.Name,
		SKU:      f.SKU,
		Price:    value,
		IsBundle: f.IsBundle,
	}, ""
}
