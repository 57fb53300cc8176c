package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"inventory-catalog/internal/config"
	"inventory-catalog/internal/domain"
	"inventory-catalog/pkg/errors"
	"inventory-catalog/pkg/middleware"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Outcome is the closed set of results the web layer branches on
type Outcome int

const (
	Success Outcome = iota
	NotFound
	Conflict
	Invalid
	TransportFailure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case NotFound:
		return "NotFound"
	case Conflict:
		return "Conflict"
	case Invalid:
		return "Invalid"
	case TransportFailure:
		return "TransportFailure"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// Result carries Value only on Success. Message holds the API's conflict or
// validation text, or a description of the transport failure.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	Message string
}

func (r Result[T]) OK() bool { return r.Outcome == Success }

// ItemPayload is the body sent on create and update
type ItemPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Client talks to the inventory API. It never returns raw errors; every
// failure is folded into a Result.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout}, logger)
}

// NewClientWithHTTP lets callers supply their own transport
func NewClientWithHTTP(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    config.NormalizeBaseURL(baseURL),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) ListItems(ctx context.Context) Result[[]domain.Item] {
	return doJSON[[]domain.Item](ctx, c, http.MethodGet, "/api/items", nil)
}

func (c *Client) SearchItems(ctx context.Context, query string) Result[[]domain.Item] {
	return doJSON[[]domain.Item](ctx, c, http.MethodGet, "/api/items/search?q="+url.QueryEscape(query), nil)
}

func (c *Client) GetItem(ctx context.Context, id int64) Result[domain.Item] {
	return doJSON[domain.Item](ctx, c, http.MethodGet, itemPath(id), nil)
}

func (c *Client) CreateItem(ctx context.Context, payload ItemPayload) Result[domain.Item] {
	return doJSON[domain.Item](ctx, c, http.MethodPost, "/api/items", payload)
}

func (c *Client) UpdateItem(ctx context.Context, id int64, payload ItemPayload) Result[domain.Item] {
	return doJSON[domain.Item](ctx, c, http.MethodPut, itemPath(id), payload)
}

func (c *Client) DeleteItem(ctx context.Context, id int64) Result[struct{}] {
	return doJSON[struct{}](ctx, c, http.MethodDelete, itemPath(id), nil)
}

func itemPath(id int64) string {
	return "/api/items/" + strconv.FormatInt(id, 10)
}

// doJSON sends one request and folds the response into a Result
func doJSON[T any](ctx context.Context, c *Client, method, path string, body interface{}) Result[T] {
	var result Result[T]

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return transportFailure[T](c, method, path, fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return transportFailure[T](c, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure[T](c, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure[T](c, method, path, fmt.Errorf("failed to read response: %w", err))
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		if err := json.Unmarshal(raw, &result.Value); err != nil {
			return transportFailure[T](c, method, path, fmt.Errorf("failed to decode response: %w", err))
		}
		result.Outcome = Success
	case http.StatusNoContent:
		result.Outcome = Success
	case http.StatusNotFound:
		result.Outcome = NotFound
		result.Message = errorMessage(raw)
	case http.StatusConflict:
		result.Outcome = Conflict
		result.Message = string(raw)
	case http.StatusBadRequest:
		result.Outcome = Invalid
		result.Message = errorMessage(raw)
	default:
		return transportFailure[T](c, method, path, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	c.logger.Debug("Inventory API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("outcome", result.Outcome.String()),
	)
	return result
}

func transportFailure[T any](c *Client, method, path string, err error) Result[T] {
	c.logger.Warn("Inventory API call failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Error(err),
	)
	return Result[T]{Outcome: TransportFailure, Message: "inventory service unavailable: " + err.Error()}
}

// errorMessage prefers the StandardError message and falls back to the raw body
func errorMessage(raw []byte) string {
	var stdErr errors.StandardError
	if err := json.Unmarshal(raw, &stdErr); err == nil && stdErr.Message != "" {
		return stdErr.Message
	}
	return strings.TrimSpace(string(raw))
}
