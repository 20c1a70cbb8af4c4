package models

import (
	"fmt"
	"strings"
)

// Field names a FundRecord field by its JSON key.
type Field string

// Record fields in record order.
const (
	FieldManager     Field = "manager"
	FieldProductName Field = "product_name"
	FieldStartDate   Field = "start_date"
	FieldStrategy    Field = "strategy"
	FieldRecentWeek  Field = "recent_week"
	FieldMTD         Field = "mtd"
	FieldYTD         Field = "ytd"
	FieldY2024       Field = "y2024"
	FieldY2023       Field = "y2023"
	FieldY2022       Field = "y2022"
	FieldY2021       Field = "y2021"
	FieldY2020       Field = "y2020"
	FieldY2019       Field = "y2019"
	FieldMaxDrawdown Field = "max_drawdown"
	FieldOther       Field = "other"
)

// RecordFields lists every field in record order.
var RecordFields = []Field{
	FieldManager,
	FieldProductName,
	FieldStartDate,
	FieldStrategy,
	FieldRecentWeek,
	FieldMTD,
	FieldYTD,
	FieldY2024,
	FieldY2023,
	FieldY2022,
	FieldY2021,
	FieldY2020,
	FieldY2019,
	FieldMaxDrawdown,
	FieldOther,
}

// IsText reports whether the field holds free text rather than a metric.
func (f Field) IsText() bool {
	switch f {
	case FieldManager, FieldProductName, FieldStartDate, FieldStrategy:
		return true
	}
	return false
}

// IsMetric reports whether the field holds a percentage metric.
func (f Field) IsMetric() bool {
	return f.Valid() && !f.IsText()
}

// Valid reports whether f names a known record field.
func (f Field) Valid() bool {
	for _, known := range RecordFields {
		if f == known {
			return true
		}
	}
	return false
}

// ParseField resolves a field name, case-insensitively.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}
