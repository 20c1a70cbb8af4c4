package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/fund-report/internal/database"
	"github.com/yourusername/fund-report/internal/models"
)

// PostgresRecordRepository reads records from a PostgreSQL table
type PostgresRecordRepository struct {
	db    *database.DB
	query string
}

// NewPostgresRecordRepository creates a record repository over table, which
// may be schema-qualified.
func NewPostgresRecordRepository(db *database.DB, table string) *PostgresRecordRepository {
	return &PostgresRecordRepository{db: db, query: recordsQuery(table)}
}

// recordsQuery selects every record column in record field order.
func recordsQuery(table string) string {
	columns := make([]string, len(models.RecordFields))
	for i, f := range models.RecordFields {
		columns[i] = pgx.Identifier{string(f)}.Sanitize()
	}
	return fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY position",
		strings.Join(columns, ", "),
		pgx.Identifier(strings.Split(table, ".")).Sanitize(),
	)
}

// LoadRecords retrieves all records ordered by their position column
func (r *PostgresRecordRepository) LoadRecords(ctx context.Context) ([]models.FundRecord, error) {
	rows, err := r.db.Query(ctx, r.query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query records: %w", models.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	records := []models.FundRecord{}
	for rows.Next() {
		values := make([]*string, len(models.RecordFields))
		dest := make([]interface{}, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: failed to scan record: %w", models.ErrSourceUnavailable, err)
		}
		records = append(records, recordFromColumns(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read records: %w", models.ErrSourceUnavailable, err)
	}
	return records, nil
}

// recordFromColumns maps nullable text columns in record field order onto a record.
func recordFromColumns(values []*string) models.FundRecord {
	text := func(i int) string {
		if values[i] == nil {
			return ""
		}
		return *values[i]
	}
	metric := func(i int) models.MetricValue {
		if values[i] == nil {
			return models.Absent()
		}
		return models.Text(*values[i])
	}
	return models.FundRecord{
		Manager:     text(0),
		ProductName: text(1),
		StartDate:   text(2),
		Strategy:    text(3),
		RecentWeek:  metric(4),
		MTD:         metric(5),
		YTD:         metric(6),
		Y2024:       metric(7),
		Y2023:       metric(8),
		Y2022:       metric(9),
		Y2021:       metric(10),
		Y2020:       metric(11),
		Y2019:       metric(12),
		MaxDrawdown: metric(13),
		Other:       metric(14),
	}
}

// Ping verifies database connectivity
func (r *PostgresRecordRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Name implements RecordRepository
func (r *PostgresRecordRepository) Name() string { return "postgres" }
