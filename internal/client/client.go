// Package client talks to the StockFlow REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/stockflow-console/internal/apperr"
	"github.com/fekuna/stockflow-console/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.ZapLogger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client, e.g. with httptest's.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, log logger.ZapLogger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the FastAPI error shape. Detail is a string for HTTPException
// and a list of objects for request validation errors.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	reqID := uuid.New().String()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("request_id", reqID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return apperr.Network(op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Network(op, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return classify(op, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Network(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func classify(op string, status int, body []byte) error {
	e := &apperr.Error{Op: op, Status: status, Detail: detailOf(body)}
	switch {
	case status == http.StatusNotFound:
		e.Kind = apperr.KindNotFound
	case status >= http.StatusInternalServerError:
		e.Kind = apperr.KindNetwork
	default:
		e.Kind = apperr.KindValidation
	}
	return e
}

func detailOf(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err != nil {
		return ""
	}
	return s
}
