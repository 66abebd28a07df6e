package dto

import (
	"testing"

	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCoercesPrice(t *testing.T) {
	in, msg := FormFields{Name: "Widget", SKU: "W1", Price: " 19.99 "}.Validate()

	require.Empty(t, msg)
	assert.Equal(t, 19.99, in.Price)
	assert.Equal(t, "Widget", in.Name)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		fields FormFields
		want   string
	}{
		{"blank name", FormFields{Name: "  ", SKU: "W1", Price: "1"}, "Name is required."},
		{"blank sku", FormFields{Name: "W", SKU: "", Price: "1"}, "SKU is required."},
		{"price not a number", FormFields{Name: "W", SKU: "W1", Price: "abc"}, "Price must be a number."},
		{"empty price", FormFields{Name: "W", SKU: "W1", Price: ""}, "Price must be a number."},
		{"negative price", FormFields{Name: "W", SKU: "W1", Price: "-0.01"}, "Price must not be negative."},
		{"price overflows float", FormFields{Name: "W", SKU: "W1", Price: "1e400"}, "Price must be a number."},
		{"price above column limit", FormFields{Name: "W", SKU: "W1", Price: "100000000"}, "Price is too large."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, msg := tt.fields.Validate()
			assert.Nil(t, in)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestValidateAcceptsMaxPrice(t *testing.T) {
	in, msg := FormFields{Name: "W", SKU: "W1", Price: "99999999.99"}.Validate()

	require.Empty(t, msg)
	require.NotNil(t, in)
	assert.InDelta(t, 99999999.99, in.Price, 0.001)
}

func TestNewEditFormCopiesProduct(t *testing.T) {
	p := model.Product{ID: 3, Name: "Kit", SKU: "K3", Price: decimal.RequireFromString("9.99"), IsBundle: true}

	f := NewEditForm(p)

	assert.Equal(t, ModeEditing, f.Mode)
	assert.Equal(t, int64(3), f.TargetID)
	assert.Equal(t, FormFields{Name: "Kit", SKU: "K3", Price: "9.99", IsBundle: true}, f.FormFields)
}

func TestNewCreateFormIsEmpty(t *testing.T) {
	f := NewCreateForm()
	assert.Equal(t, ModeCreating, f.Mode)
	assert.Zero(t, f.FormFields)
	assert.Equal(t, "creating", f.Mode.String())
}
