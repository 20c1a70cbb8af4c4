package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/yourusername/fund-report/internal/models"
)

// JSONRecordRepository reads records from a JSON file on disk
type JSONRecordRepository struct {
	path     string
	selector selector
}

// NewJSONRecordRepository creates a file-backed record repository. recordsPath
// is a JSONPath selecting the record array, "$.funds" by default.
func NewJSONRecordRepository(path, recordsPath string) (*JSONRecordRepository, error) {
	sel, err := compileSelector(recordsPath)
	if err != nil {
		return nil, err
	}
	return &JSONRecordRepository{path: path, selector: sel}, nil
}

// LoadRecords reads and decodes the file on every call
func (r *JSONRecordRepository) LoadRecords(ctx context.Context) ([]models.FundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrSourceUnavailable, err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", models.ErrSourceUnavailable, r.path, err)
	}

	records, err := decodeRecords(ctx, data, r.selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrSourceUnavailable, r.path, err)
	}
	return records, nil
}

// Ping checks that the file exists and is readable
func (r *JSONRecordRepository) Ping(ctx context.Context) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrSourceUnavailable, err)
	}
	return f.Close()
}

// Name implements RecordRepository
func (r *JSONRecordRepository) Name() string { return "json" }
