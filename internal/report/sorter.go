package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/fund-report/internal/models"
)

// SortDirection orders sort keys.
type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

// ParseSortDirection accepts "ascending"/"asc" and "descending"/"desc".
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return Ascending, nil
	case "descending", "desc":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

type keyedRecord struct {
	record models.FundRecord
	key    decimal.Decimal
	valid  bool
}

// Sort returns a new slice ordered by the numeric value of field. Records
// without a readable value go last in either direction. The sort is stable.
func Sort(records []models.FundRecord, field models.Field, direction SortDirection) []models.FundRecord {
	keyed := make([]keyedRecord, len(records))
	for i, r := range records {
		d, ok := NumericValue(r.Metric(field))
		keyed[i] = keyedRecord{record: r, key: d, valid: ok}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		a, b := keyed[i], keyed[j]
		if a.valid != b.valid {
			return a.valid
		}
		if !a.valid {
			return false
		}
		if direction == Ascending {
			return a.key.LessThan(b.key)
		}
		return a.key.GreaterThan(b.key)
	})

	out := make([]models.FundRecord, len(keyed))
	for i, k := range keyed {
		out[i] = k.record
	}
	return out
}
