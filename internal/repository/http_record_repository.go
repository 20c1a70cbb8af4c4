package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/yourusername/fund-report/internal/datasource"
	"github.com/yourusername/fund-report/internal/models"
)

const maxResponseBytes = 32 << 20

// HTTPRecordRepository fetches records from a remote JSON endpoint
type HTTPRecordRepository struct {
	client   *datasource.RateLimitedHTTPClient
	url      string
	token    string
	selector selector
}

// NewHTTPRecordRepository creates a record repository backed by a URL. A
// non-empty token is sent as a bearer Authorization header.
func NewHTTPRecordRepository(client *datasource.RateLimitedHTTPClient, url, token, recordsPath string) (*HTTPRecordRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}
	sel, err := compileSelector(recordsPath)
	if err != nil {
		return nil, err
	}
	return &HTTPRecordRepository{client: client, url: url, token: token, selector: sel}, nil
}

func (r *HTTPRecordRepository) fetch(ctx context.Context) ([]byte, error) {
	headers := map[string]string{"Accept": "application/json"}
	if r.token != "" {
		headers["Authorization"] = "Bearer " + r.token
	}

	resp, err := r.client.Get(ctx, r.url, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, r.url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

// LoadRecords fetches and decodes the remote document
func (r *HTTPRecordRepository) LoadRecords(ctx context.Context) ([]models.FundRecord, error) {
	data, err := r.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrSourceUnavailable, err)
	}
	records, err := decodeRecords(ctx, data, r.selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrSourceUnavailable, err)
	}
	return records, nil
}

// Ping checks that the endpoint answers with 200
func (r *HTTPRecordRepository) Ping(ctx context.Context) error {
	if _, err := r.fetch(ctx); err != nil {
		return fmt.Errorf("%w: %w", models.ErrSourceUnavailable, err)
	}
	return nil
}

// Name implements RecordRepository
func (r *HTTPRecordRepository) Name() string { return "http" }
