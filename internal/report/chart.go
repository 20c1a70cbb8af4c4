package report

import "github.com/yourusername/fund-report/internal/models"

// ChartPoint is one bar of a summary chart.
type ChartPoint struct {
	Label string
	Value float64
	Color ColorTag
}

// ChartSeries picks field from each record, labelled by product name. Records
// without a readable value are skipped.
func ChartSeries(records []models.FundRecord, field models.Field, kind MetricKind) []ChartPoint {
	points := make([]ChartPoint, 0, len(records))
	for _, r := range records {
		d, ok := NumericValue(r.Metric(field))
		if !ok {
			continue
		}
		label := r.ProductName
		if label == "" {
			label = r.Manager
		}
		value, _ := d.Float64()
		points = append(points, ChartPoint{Label: label, Value: value, Color: tagFor(d, kind)})
	}
	return points
}
