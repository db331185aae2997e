package tally

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
)

const (
	// DefaultDeliverTimeout bounds a voucher import call.
	DefaultDeliverTimeout = 30 * time.Second
	// DefaultProbeTimeout bounds a connection probe. Probes are interactive,
	// an operator is waiting on the result.
	DefaultProbeTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// Client posts Tally XML requests over HTTP. It performs exactly one request
// per call and never retries; retry policy lives in the sync orchestrator.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a transport around the given HTTP client, or a default
// one when nil. Per-call deadlines come from the caller's timeout, not the
// client.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

// Deliver posts the voucher import envelope for doc to the configured Tally
// endpoint. Any non-2xx status is a failed delivery.
func (c *Client) Deliver(ctx context.Context, doc domain.VoucherDocument, cfg domain.ResolvedSyncConfig, timeout time.Duration) (*DeliveryResult, error) {
	if timeout <= 0 {
		timeout = DefaultDeliverTimeout
	}
	return c.post(ctx, cfg, BuildImportEnvelope(doc, cfg.CompanyName), timeout)
}

// TestConnection sends the company info probe. A 2xx answer means the
// endpoint is a live Tally instance; the body is reported back verbatim for
// the operator.
func (c *Client) TestConnection(ctx context.Context, cfg domain.ResolvedSyncConfig, timeout time.Duration) (*DeliveryResult, error) {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return c.post(ctx, cfg, BuildCompanyInfoProbe(), timeout)
}

func (c *Client) post(ctx context.Context, cfg domain.ResolvedSyncConfig, payload string, timeout time.Duration) (*DeliveryResult, error) {
	if cfg.TallyURL == "" {
		return nil, fmt.Errorf("tally url is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TallyURL, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building tally request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml")
	if cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", cfg.APIKey)
	}
	if cfg.APISecret != "" {
		req.Header.Set("X-Api-Secret", cfg.APISecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting to tally: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading tally response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("tally returned status %d: %s", resp.StatusCode, snippet(body))
	}

	imported, note := parseImportResponse(body)
	return &DeliveryResult{
		StatusCode: resp.StatusCode,
		RawBody:    string(body),
		Import:     imported,
		ParseNote:  note,
	}, nil
}

// snippet trims a response body for inclusion in an error message.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	const max = 200
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
