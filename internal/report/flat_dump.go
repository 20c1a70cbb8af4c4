package report

import (
	"strconv"

	"github.com/yourusername/fund-report/internal/models"
)

// FlatDump is the unformatted field-by-field export of records.
type FlatDump struct {
	Header []string
	// Rows hold string, float64 or nil (absent) values.
	Rows [][]interface{}
}

// DumpRecords lays out records in record field order without formatting.
// Metrics persisted as numbers stay numeric.
func DumpRecords(records []models.FundRecord) FlatDump {
	dump := FlatDump{
		Header: make([]string, len(models.RecordFields)),
		Rows:   make([][]interface{}, len(records)),
	}
	for i, f := range models.RecordFields {
		dump.Header[i] = string(f)
	}
	for i, r := range records {
		row := make([]interface{}, len(models.RecordFields))
		for j, f := range models.RecordFields {
			row[j] = rawValue(r, f)
		}
		dump.Rows[i] = row
	}
	return dump
}

func rawValue(r models.FundRecord, f models.Field) interface{} {
	if f.IsText() {
		return r.Text(f)
	}
	v := r.Metric(f)
	switch {
	case v.IsAbsent():
		return nil
	case v.IsNumber():
		if n, err := strconv.ParseFloat(v.Raw(), 64); err == nil {
			return n
		}
	}
	return v.Raw()
}
