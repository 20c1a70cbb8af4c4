package report

import (
	"strings"

	"github.com/yourusername/fund-report/internal/models"
)

// DefaultGroupName collects records with an empty grouping key.
const DefaultGroupName = "Other"

// StrategyGroup is a named run of records sharing a grouping key.
type StrategyGroup struct {
	Name    string
	Records []models.FundRecord
}

// GroupName returns the group a record belongs to under key.
func GroupName(r models.FundRecord, key models.Field) string {
	name := strings.TrimSpace(r.Text(key))
	if name == "" {
		return DefaultGroupName
	}
	return name
}

// Group partitions records by key. Groups appear in the order their first
// record appears; records keep their relative order inside a group.
func Group(records []models.FundRecord, key models.Field) []StrategyGroup {
	index := make(map[string]int)
	var groups []StrategyGroup
	for _, r := range records {
		name := GroupName(r, key)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, StrategyGroup{Name: name})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// FilterByGroup keeps the records whose group under key equals name.
func FilterByGroup(records []models.FundRecord, key models.Field, name string) []models.FundRecord {
	out := make([]models.FundRecord, 0, len(records))
	for _, r := range records {
		if GroupName(r, key) == name {
			out = append(out, r)
		}
	}
	return out
}
