package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/metrics"
	"storefront-api/internal/repositories"
)

// Client performs authenticated reads against the PostgREST endpoint of a
// hosted project. It never retries.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// NewClient creates a new PostgREST client
func NewClient(config *repositories.Config, httpClient *http.Client, logger logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(config.BaseURL), "/"),
		serviceKey: strings.TrimSpace(config.ServiceKey),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Configured reports whether both the URL and the service key are set
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.serviceKey != ""
}

// Get runs query and returns the raw JSON body of a 2xx response.
// Non-2xx responses become a RepositoryError carrying the upstream text.
func (c *Client) Get(ctx context.Context, op string, query *repositories.Query) ([]byte, error) {
	entity := query.Table()
	if !c.Configured() {
		return nil, repositories.NewRepositoryError(op, entity, repositories.ErrNotConfigured)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, entity, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, repositories.NewRepositoryError(op, entity, err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "error", start)
		c.logger.WithFields(logrus.Fields{
			"table":     entity,
			"operation": op,
			"error":     err.Error(),
		}).Error("Data API request failed")
		return nil, repositories.ConnectionError(op, entity, err)
	}
	defer resp.Body.Close()
	c.observe(op, strconv.Itoa(resp.StatusCode), start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, repositories.ConnectionError(op, entity, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"table":       entity,
			"operation":   op,
			"status_code": resp.StatusCode,
		}).Warn("Data API returned an error status")
		return nil, repositories.UpstreamError(op, entity, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// Close releases idle connections
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) observe(op, status string, start time.Time) {
	metrics.UpstreamRequestDuration.
		WithLabelValues(metrics.ServiceDatabase, op, status).
		Observe(time.Since(start).Seconds())
}
