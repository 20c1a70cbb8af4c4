package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/fund-report/internal/models"
	"github.com/yourusername/fund-report/internal/report"
)

func TestSpreadsheetWriter(t *testing.T) {
	records := sampleRecords()
	records[0].MTD = models.Number(1.25)

	var buf bytes.Buffer
	require.NoError(t, SpreadsheetWriter{SheetName: "Fund Performance"}.Write(report.DumpRecords(records), &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Fund Performance"}, f.GetSheetList())

	rows, err := f.GetRows("Fund Performance")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "manager", rows[0][0])
	assert.Equal(t, "Alpha Mgmt", rows[1][0])

	mtd, err := f.GetCellValue("Fund Performance", "F2")
	require.NoError(t, err)
	assert.Equal(t, "1.25", mtd)

	ytd, err := f.GetCellValue("Fund Performance", "G4")
	require.NoError(t, err)
	assert.Empty(t, ytd, "absent values stay empty")
}

func TestSpreadsheetWriterDefaultSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SpreadsheetWriter{}.Write(report.DumpRecords(nil), &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}
