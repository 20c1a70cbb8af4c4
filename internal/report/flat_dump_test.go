package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fund-report/internal/models"
)

func TestDumpRecords(t *testing.T) {
	records := []models.FundRecord{
		{Manager: "M", ProductName: "P", StartDate: "2021-06-30", MTD: models.Number(1.25), YTD: models.Text("3.4%")},
	}

	dump := DumpRecords(records)
	require.Len(t, dump.Header, len(models.RecordFields))
	assert.Equal(t, "manager", dump.Header[0])
	assert.Equal(t, "other", dump.Header[len(dump.Header)-1])

	require.Len(t, dump.Rows, 1)
	row := dump.Rows[0]
	assert.Equal(t, "M", row[0])
	assert.Equal(t, "", row[3])
	assert.Nil(t, row[4])
	assert.Equal(t, 1.25, row[5])
	assert.Equal(t, "3.4%", row[6])
}

func TestChartSeries(t *testing.T) {
	records := []models.FundRecord{
		fund("a", "", "4"),
		fund("b", "", "-"),
		fund("c", "", "-2.5"),
	}

	points := ChartSeries(records, models.FieldYTD, KindReturn)
	require.Len(t, points, 2)
	assert.Equal(t, ChartPoint{Label: "a", Value: 4, Color: Positive}, points[0])
	assert.Equal(t, ChartPoint{Label: "c", Value: -2.5, Color: Negative}, points[1])
}
