package gotenberg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	convertPath = "/forms/chromium/convert/html"
	healthPath  = "/health"
	indexFile   = "index.html"
)

// A4 in inches with 20mm margins.
var paperFields = map[string]string{
	"paperWidth":      "8.27",
	"paperHeight":     "11.7",
	"marginTop":       "0.79",
	"marginBottom":    "0.79",
	"marginLeft":      "0.79",
	"marginRight":     "0.79",
	"printBackground": "true",
}

// Client converts HTML through a Gotenberg service.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a resty-backed Gotenberg client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("gotenberg base url must be provided")
	}

	restyClient := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout)

	return &Client{httpClient: restyClient}, nil
}

// Name identifies the converter.
func (c *Client) Name() string { return "gotenberg" }

// Check calls the service health endpoint.
func (c *Client) Check(ctx context.Context) error {
	resp, err := c.httpClient.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return fmt.Errorf("gotenberg health check: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("gotenberg health check: status=%d", resp.StatusCode())
	}
	return nil
}

// Convert posts the document as index.html and returns the PDF body.
func (c *Client) Convert(ctx context.Context, html []byte) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader("files", indexFile, bytes.NewReader(html)).
		SetFormData(paperFields).
		Post(convertPath)
	if err != nil {
		return nil, fmt.Errorf("gotenberg convert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("gotenberg api error: status=%d, message=%s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return resp.Body(), nil
}
