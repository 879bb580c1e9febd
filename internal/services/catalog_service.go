package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"items-admin-backend/config"
	itemServices "items-admin-backend/items/services"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// CatalogService creates items through the catalog REST API.
type CatalogService struct {
	baseURL     string
	apiToken    string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

var _ itemServices.ItemCreator = (*CatalogService)(nil)

type CatalogOptions struct {
	BaseURL       string
	APIToken      string
	Timeout       time.Duration
	RatePerSecond int
}

// catalogResponse covers the id shapes the catalog has returned over time.
type catalogResponse struct {
	Data *struct {
		ID  string `json:"id"`
		OID string `json:"_id"`
	} `json:"data"`
	ID      string `json:"id"`
	OID     string `json:"_id"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CatalogError is a non-2xx answer from the catalog.
type CatalogError struct {
	StatusCode int
	Message    string
}

func (e *CatalogError) Error() string {
	return e.Message
}

func NewCatalogService(opts CatalogOptions) (*CatalogService, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("catalog API URL is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	limit := rate.Inf
	burst := 1
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
		burst = opts.RatePerSecond
	}

	return &CatalogService{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		apiToken: opts.APIToken,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		rateLimiter: rate.NewLimiter(limit, burst),
	}, nil
}

// NewCatalogServiceFromEnv reads the CATALOG_* settings.
func NewCatalogServiceFromEnv() (*CatalogService, error) {
	return NewCatalogService(CatalogOptions{
		BaseURL:       config.GetEnv("CATALOG_API_URL"),
		APIToken:      config.GetEnv("CATALOG_API_TOKEN"),
		Timeout:       config.GetEnvDuration("CATALOG_TIMEOUT", 30*time.Second),
		RatePerSecond: config.GetEnvInt("CATALOG_RATE_PER_SECOND", 5),
	})
}

// CreateItem posts one product with all its sizes and returns the id the
// catalog assigned.
func (c *CatalogService) CreateItem(ctx context.Context, payload itemServices.CreateItemPayload) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit exceeded: %w", err)
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/items", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var response catalogResponse
	decodeErr := json.Unmarshal(body, &response)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := response.Message
		if message == "" {
			message = response.Error
		}
		if message == "" {
			message = strings.TrimSpace(string(body))
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		config.Logger.Debug("Catalog rejected item",
			zap.String("product_name", payload.ProductName),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return "", &CatalogError{StatusCode: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", decodeErr)
	}

	return response.remoteID(), nil
}

func (r catalogResponse) remoteID() string {
	if r.Data != nil {
		if r.Data.ID != "" {
			return r.Data.ID
		}
		if r.Data.OID != "" {
			return r.Data.OID
		}
	}
	if r.ID != "" {
		return r.ID
	}
	return r.OID
}
