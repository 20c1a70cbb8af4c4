package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fund-report/internal/models"
)

func fund(name, strategy, ytd string) models.FundRecord {
	r := models.FundRecord{Manager: name + " Mgmt", ProductName: name, Strategy: strategy}
	if ytd != "" {
		r.YTD = models.Text(ytd)
	}
	return r
}

func names(records []models.FundRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ProductName
	}
	return out
}

func TestGroupFirstOccurrenceOrder(t *testing.T) {
	records := []models.FundRecord{
		fund("f1", "B", "1"),
		fund("f2", "A", "2"),
		fund("f3", "", "3"),
		fund("f4", "B", "4"),
		fund("f5", "  ", "5"),
	}

	groups := Group(records, models.FieldStrategy)
	require.Len(t, groups, 3)
	assert.Equal(t, "B", groups[0].Name)
	assert.Equal(t, []string{"f1", "f4"}, names(groups[0].Records))
	assert.Equal(t, "A", groups[1].Name)
	assert.Equal(t, DefaultGroupName, groups[2].Name)
	assert.Equal(t, []string{"f3", "f5"}, names(groups[2].Records))

	total := 0
	for _, g := range groups {
		assert.NotEmpty(t, g.Records)
		total += len(g.Records)
	}
	assert.Equal(t, len(records), total)
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil, models.FieldStrategy))
}

func TestFilterByGroup(t *testing.T) {
	records := []models.FundRecord{fund("f1", "A", ""), fund("f2", "", ""), fund("f3", "A", "")}

	assert.Equal(t, []string{"f1", "f3"}, names(FilterByGroup(records, models.FieldStrategy, "A")))
	assert.Equal(t, []string{"f2"}, names(FilterByGroup(records, models.FieldStrategy, DefaultGroupName)))
	assert.Empty(t, FilterByGroup(records, models.FieldStrategy, "Z"))
}
