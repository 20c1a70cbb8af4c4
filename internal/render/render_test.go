package render

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/fund-report/internal/models"
	"github.com/yourusername/fund-report/internal/report"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func fund(name, strategy, ytd string) models.FundRecord {
	r := models.FundRecord{Manager: name + " Mgmt", ProductName: name, Strategy: strategy}
	if ytd != "" {
		r.YTD = models.Text(ytd)
	}
	return r
}

func testDocument(mode report.Mode, records ...models.FundRecord) report.Document {
	a := report.NewAssembler(report.Labels{}, report.GainGreen)
	a.Now = func() time.Time { return fixedNow }
	a.NewID = func() uuid.UUID { return uuid.MustParse("00000000-0000-0000-0000-000000000001") }
	return report.NewPipeline(a).Build(records, report.DefaultOptions(mode))
}

func sampleRecords() []models.FundRecord {
	return []models.FundRecord{
		fund("Alpha", "A", "9"),
		fund("Beta", "B", "-1.5"),
		fund("Gamma", "A", ""),
	}
}
