package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fund-report/internal/models"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func testPipeline() *Pipeline {
	a := NewAssembler(Labels{}, GainGreen)
	a.Now = func() time.Time { return fixedNow }
	a.NewID = func() uuid.UUID { return uuid.MustParse("00000000-0000-0000-0000-000000000001") }
	return NewPipeline(a)
}

func TestBuildGroupedDocument(t *testing.T) {
	records := []models.FundRecord{
		fund("x", "A", "5"),
		fund("y", "B", "1"),
		fund("z", "A", "9"),
	}

	opts := DefaultOptions(ModeGrouped)
	opts.SortField = models.FieldYTD
	doc := testPipeline().Build(records, opts)

	require.NotNil(t, doc.TOC)
	assert.Equal(t, []TOCEntry{
		{Group: "A", Page: 2, Count: 2},
		{Group: "B", Page: 3, Count: 1},
	}, doc.TOC.Entries)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "A", doc.Sections[0].Title)
	assert.Equal(t, "9.00%", doc.Sections[0].Table.Rows[0].Cells[5].Text)
	assert.Equal(t, "5.00%", doc.Sections[0].Table.Rows[1].Cells[5].Text)
	assert.Contains(t, doc.Sections[0].Footnote, "2")
	assert.True(t, doc.Sections[0].PageBreakAfter)
	assert.False(t, doc.Sections[1].PageBreakAfter)
	assert.Equal(t, 3, doc.RecordCount())
	assert.Equal(t, ModeGrouped, doc.Mode)
	assert.Equal(t, SchemaExtended, doc.Schema.Name)

	assert.Equal(t, []string{"x", "y", "z"}, names(records), "input is never reordered")
}

func TestBuildGroupedSortsByRecentWeekMissingLast(t *testing.T) {
	records := []models.FundRecord{
		{ProductName: "five", Strategy: "A", RecentWeek: models.Text("5")},
		{ProductName: "dash", Strategy: "A", RecentWeek: models.Text("-")},
		{ProductName: "ten", Strategy: "B", RecentWeek: models.Text("10")},
	}

	opts := DefaultOptions(ModeGrouped)
	assert.Equal(t, models.FieldRecentWeek, opts.SortField)
	doc := testPipeline().Build(records, opts)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "A", doc.Sections[0].Title)
	require.Len(t, doc.Sections[0].Table.Rows, 2)
	assert.Equal(t, "five", doc.Sections[0].Table.Rows[0].Cells[1].Text)
	assert.Equal(t, "dash", doc.Sections[0].Table.Rows[1].Cells[1].Text)
	assert.Equal(t, "B", doc.Sections[1].Title)
	assert.Equal(t, "ten", doc.Sections[1].Table.Rows[0].Cells[1].Text)

	reversed := []models.FundRecord{records[1], records[0], records[2]}
	doc = testPipeline().Build(reversed, opts)
	assert.Equal(t, "five", doc.Sections[0].Table.Rows[0].Cells[1].Text, "missing value sorts last regardless of input order")
}

func TestBuildGroupedTOCPagesIncrease(t *testing.T) {
	var records []models.FundRecord
	for _, s := range []string{"Q", "R", "S", "Q", "", "T"} {
		records = append(records, fund("f", s, "1"))
	}

	doc := testPipeline().Build(records, DefaultOptions(ModeGrouped))
	require.NotNil(t, doc.TOC)
	require.Len(t, doc.TOC.Entries, 5)
	for i, e := range doc.TOC.Entries {
		assert.Equal(t, i+2, e.Page)
		assert.Equal(t, e.Page, doc.Sections[i].StartPage)
	}
	assert.Equal(t, DefaultGroupName, doc.TOC.Entries[3].Group)
}

func TestBuildFlatEmpty(t *testing.T) {
	doc := testPipeline().Build(nil, DefaultOptions(ModeFlat))

	assert.Nil(t, doc.TOC)
	require.Len(t, doc.Sections, 1)
	assert.True(t, doc.Sections[0].Table.IsEmpty())
	assert.Len(t, doc.Sections[0].Table.Header, 10)
	assert.Equal(t, "Generated: 2024-03-15 09:30", doc.Subtitle)
	assert.Equal(t, DefaultLabels.Title, doc.Title)
	assert.Equal(t, 0, doc.RecordCount())
}

func TestBuildFlatKeepsSourceOrderUnlessSorted(t *testing.T) {
	records := []models.FundRecord{fund("a", "", "1"), fund("b", "", "3"), fund("c", "", "2")}
	p := testPipeline()

	doc := p.Build(records, DefaultOptions(ModeFlat))
	assert.Equal(t, "a", doc.Sections[0].Table.Rows[0].Cells[1].Text)

	opts := DefaultOptions(ModeFlat)
	opts.SortField = models.FieldYTD
	opts.Direction = Ascending
	doc = p.Build(records, opts)
	rows := doc.Sections[0].Table.Rows
	assert.Equal(t, "a", rows[0].Cells[1].Text)
	assert.Equal(t, "c", rows[1].Cells[1].Text)
	assert.Equal(t, "b", rows[2].Cells[1].Text)
}

func TestBuildIsDeterministic(t *testing.T) {
	records := []models.FundRecord{fund("a", "A", "1"), fund("b", "B", "x")}
	p := testPipeline()

	assert.Equal(t, p.Build(records, DefaultOptions(ModeGrouped)), p.Build(records, DefaultOptions(ModeGrouped)))
}

func TestPageFooter(t *testing.T) {
	doc := testPipeline().Build(nil, DefaultOptions(ModeFlat))
	assert.Equal(t, "Page 3 | Generated 2024-03-15 09:30", doc.PageFooter(3))
}

type fixedPages []int

func (f fixedPages) Allocate(sections []Section) []int { return f[:len(sections)] }

func TestCustomPageAllocator(t *testing.T) {
	p := testPipeline()
	p.assembler.Pages = fixedPages{4, 9}

	doc := p.Build([]models.FundRecord{fund("a", "A", "1"), fund("b", "B", "2")}, DefaultOptions(ModeGrouped))
	assert.Equal(t, 4, doc.TOC.Entries[0].Page)
	assert.Equal(t, 9, doc.TOC.Entries[1].Page)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Grouped")
	require.NoError(t, err)
	assert.Equal(t, ModeGrouped, m)

	_, err = ParseMode("tree")
	assert.Error(t, err)
}
