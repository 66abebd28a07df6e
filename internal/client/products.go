package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/fekuna/stockflow-console/internal/product"
)

var _ product.Client = (*Client)(nil)

type listProductsResponse struct {
	Products []model.Product `json:"products"`
}

func (c *Client) List(ctx context.Context) ([]model.Product, error) {
	var res listProductsResponse
	if err := c.do(ctx, "list products", http.MethodGet, "/api/products", nil, &res); err != nil {
		return nil, err
	}
	if res.Products == nil {
		return []model.Product{}, nil
	}
	return res.Products, nil
}

func (c *Client) Create(ctx context.Context, input *model.ProductInput) error {
	return c.do(ctx, "create product", http.MethodPost, "/api/products", input, nil)
}

func (c *Client) Update(ctx context.Context, id int64, input *model.ProductInput) error {
	return c.do(ctx, "update product", http.MethodPut, fmt.Sprintf("/api/products/%d", id), input, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete product", http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
}
