package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"foodbasket-be/internal/logger"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Creator persists a finished order. The storefront core treats it as
// an opaque remote collaborator: one call, success or failure.
type Creator interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
}

type httpCreator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*Order]
}

// NewHTTPCreator builds a Creator that POSTs orders to the platform's
// order endpoint. Repeated failures open the circuit so a degraded
// platform is not hammered by retrying users.
func NewHTTPCreator(baseURL, apiKey string) Creator {
	if baseURL == "" {
		logger.L().Warn("orders API base URL is empty")
	}

	breaker := gobreaker.NewCircuitBreaker[*Order](gobreaker.Settings{
		Name:    "orders-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &httpCreator{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		breaker: breaker,
	}
}

func (c *httpCreator) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", input.UserID),
		zap.Int("item_count", len(input.Items)),
		zap.Float64("total", input.Total),
	)

	log.Info("posting order to platform")

	result, err := c.breaker.Execute(func() (*Order, error) {
		return c.post(ctx, input)
	})
	if err != nil {
		log.Error("order creation failed", zap.Error(err))
		return nil, err
	}

	log.Info("order persisted",
		zap.String("order_id", result.ID),
		zap.String("order_number", result.OrderNumber),
	)

	return result, nil
}

func (c *httpCreator) post(ctx context.Context, input CreateOrderInput) (*Order, error) {
	jsonBody, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/v1/orders",
		bytes.NewBuffer(jsonBody),
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRemote, resp.StatusCode, string(body))
	}

	var created Order
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrRemote, err)
	}

	return &created, nil
}
