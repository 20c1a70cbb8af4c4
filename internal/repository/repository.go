// Package repository provides the record sources a report can be built from.
package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/fund-report/internal/config"
	"github.com/yourusername/fund-report/internal/database"
	"github.com/yourusername/fund-report/internal/datasource"
)

// NewRecordRepository creates the record source selected by configuration,
// wrapped in a snapshot cache when a cache TTL is set. The returned close
// function releases the source's resources.
func NewRecordRepository(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (RecordRepository, func(), error) {
	var (
		repo    RecordRepository
		closeFn = func() {}
	)

	switch cfg.Source.Type {
	case config.SourceJSON:
		r, err := NewJSONRecordRepository(cfg.Source.Path, cfg.Source.RecordsPath)
		if err != nil {
			return nil, nil, err
		}
		repo = r

	case config.SourceHTTP:
		clientCfg := datasource.DefaultHTTPClientConfig()
		clientCfg.Timeout = cfg.SourceTimeout()
		clientCfg.MaxRetries = cfg.Source.MaxRetries
		clientCfg.RateLimit = cfg.Source.RequestsPerSecond
		clientCfg.Burst = cfg.Source.Burst
		clientCfg.CircuitCooldown = cfg.CircuitCooldown()
		client := datasource.NewRateLimitedHTTPClient(clientCfg, logger)

		r, err := NewHTTPRecordRepository(client, cfg.Source.URL, cfg.Source.APIToken, cfg.Source.RecordsPath)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		repo = r
		closeFn = func() { client.Close() }

	case config.SourcePostgres:
		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repo = NewPostgresRecordRepository(db, cfg.Source.Table)
		closeFn = db.Close

	default:
		return nil, nil, fmt.Errorf("unknown record source type: %s", cfg.Source.Type)
	}

	if ttl := cfg.CacheTTL(); ttl > 0 {
		repo = NewCachedRecordRepository(repo, ttl)
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"source":    repo.Name(),
			"cache_ttl": cfg.CacheTTL().String(),
		}).Info("Record source created")
	}

	return repo, closeFn, nil
}
