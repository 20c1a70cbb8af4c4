package repository

import (
	"context"

	"github.com/yourusername/fund-report/internal/models"
)

// RecordRepository defines the interface for loading fund records
type RecordRepository interface {
	// LoadRecords returns the full record collection in source order. Failures
	// wrap models.ErrSourceUnavailable.
	LoadRecords(ctx context.Context) ([]models.FundRecord, error)
	// Ping checks that the source is reachable
	Ping(ctx context.Context) error
	// Name identifies the source in logs and metrics
	Name() string
}
