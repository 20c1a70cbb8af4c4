package report

import (
	"errors"
	"fmt"

	"github.com/yourusername/fund-report/internal/models"
)

// Column declares one table column. Width is in millimetres.
type Column struct {
	Field      models.Field
	Label      string
	Kind       MetricKind
	Width      float64
	Emphasized bool
	Align      Align
}

// Schema is an ordered column layout.
type Schema struct {
	Name    string
	Columns []Column
}

// Schema names.
const (
	SchemaPerformance = "performance"
	SchemaExtended    = "extended"
)

func textColumn(f models.Field, label string, width float64, align Align) Column {
	return Column{Field: f, Label: label, Kind: KindText, Width: width, Align: align}
}

func returnColumn(f models.Field, label string, width float64) Column {
	return Column{Field: f, Label: label, Kind: KindReturn, Width: width, Align: AlignCenter}
}

// PerformanceSchema is the ten-column layout of the flat report.
var PerformanceSchema = Schema{
	Name: SchemaPerformance,
	Columns: []Column{
		textColumn(models.FieldManager, "Manager", 30, AlignLeft),
		textColumn(models.FieldProductName, "Product", 35, AlignLeft),
		textColumn(models.FieldStartDate, "NAV Start", 20, AlignCenter),
		returnColumn(models.FieldRecentWeek, "1 Week (%)", 15),
		returnColumn(models.FieldMTD, "MTD (%)", 15),
		{Field: models.FieldYTD, Label: "YTD (%)", Kind: KindReturn, Width: 18, Emphasized: true, Align: AlignCenter},
		returnColumn(models.FieldY2024, "2024 (%)", 15),
		returnColumn(models.FieldY2023, "2023 (%)", 15),
		returnColumn(models.FieldY2022, "2022 (%)", 15),
		{Field: models.FieldMaxDrawdown, Label: "Max DD (%)", Kind: KindDrawdown, Width: 20, Align: AlignCenter},
	},
}

// ExtendedSchema adds 2021-2019 and the catch-all metric for the grouped report.
var ExtendedSchema = Schema{
	Name: SchemaExtended,
	Columns: []Column{
		textColumn(models.FieldManager, "Manager", 28, AlignLeft),
		textColumn(models.FieldProductName, "Product", 32, AlignLeft),
		textColumn(models.FieldStartDate, "NAV Start", 18, AlignCenter),
		returnColumn(models.FieldRecentWeek, "1 Week (%)", 14),
		returnColumn(models.FieldMTD, "MTD (%)", 14),
		{Field: models.FieldYTD, Label: "YTD (%)", Kind: KindReturn, Width: 16, Emphasized: true, Align: AlignCenter},
		returnColumn(models.FieldY2024, "2024 (%)", 14),
		returnColumn(models.FieldY2023, "2023 (%)", 14),
		returnColumn(models.FieldY2022, "2022 (%)", 14),
		returnColumn(models.FieldY2021, "2021 (%)", 14),
		returnColumn(models.FieldY2020, "2020 (%)", 14),
		returnColumn(models.FieldY2019, "2019 (%)", 14),
		{Field: models.FieldMaxDrawdown, Label: "Max DD (%)", Kind: KindDrawdown, Width: 18, Align: AlignCenter},
		returnColumn(models.FieldOther, "Other (%)", 14),
	},
}

// SchemaByName returns a preset schema.
func SchemaByName(name string) (Schema, error) {
	switch name {
	case SchemaPerformance:
		return PerformanceSchema, nil
	case SchemaExtended:
		return ExtendedSchema, nil
	}
	return Schema{}, fmt.Errorf("unknown schema %q", name)
}

// Validate checks that the schema is usable by the table builder.
func (s Schema) Validate() error {
	if len(s.Columns) == 0 {
		return errors.New("schema has no columns")
	}
	emphasized := 0
	for i, c := range s.Columns {
		if !c.Field.Valid() {
			return fmt.Errorf("column %d: %w: %q", i, models.ErrUnknownField, c.Field)
		}
		if c.Kind != KindText && !c.Field.IsMetric() {
			return fmt.Errorf("column %d: field %q is not a metric", i, c.Field)
		}
		if c.Width <= 0 {
			return fmt.Errorf("column %d: width must be positive", i)
		}
		if c.Emphasized {
			emphasized++
		}
	}
	if emphasized > 1 {
		return errors.New("schema may emphasize at most one column")
	}
	return nil
}

// TotalWidth is the sum of column widths in millimetres.
func (s Schema) TotalWidth() float64 {
	total := 0.0
	for _, c := range s.Columns {
		total += c.Width
	}
	return total
}

// Labels returns the header labels in column order.
func (s Schema) Labels() []string {
	labels := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		labels[i] = c.Label
	}
	return labels
}
