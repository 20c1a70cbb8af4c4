package report

import "github.com/yourusername/fund-report/internal/models"

// Options control a build.
type Options struct {
	Mode       Mode
	Schema     Schema
	GroupField models.Field
	// SortField is optional in flat mode; records keep source order when empty.
	SortField models.Field
	Direction SortDirection
}

// DefaultOptions returns the stock options for a mode: flat reports keep
// source order in the performance layout, grouped reports sort each group by
// recent week descending in the extended layout.
func DefaultOptions(mode Mode) Options {
	if mode == ModeGrouped {
		return Options{
			Mode:       ModeGrouped,
			Schema:     ExtendedSchema,
			GroupField: models.FieldStrategy,
			SortField:  models.FieldRecentWeek,
			Direction:  Descending,
		}
	}
	return Options{
		Mode:      ModeFlat,
		Schema:    PerformanceSchema,
		Direction: Descending,
	}
}

// Pipeline runs records through grouping, sorting, layout and assembly.
type Pipeline struct {
	assembler *Assembler
}

// NewPipeline creates a pipeline around an assembler.
func NewPipeline(assembler *Assembler) *Pipeline {
	return &Pipeline{assembler: assembler}
}

// Build produces a document. It does not fail on bad data: malformed values
// are shown verbatim and an empty input yields a header-only table.
func (p *Pipeline) Build(records []models.FundRecord, opts Options) Document {
	if len(opts.Schema.Columns) == 0 {
		opts.Schema = DefaultOptions(opts.Mode).Schema
	}
	if opts.Direction == "" {
		opts.Direction = Descending
	}

	if opts.Mode != ModeGrouped {
		ordered := records
		if opts.SortField != "" {
			ordered = Sort(records, opts.SortField, opts.Direction)
		}
		return p.assembler.Assemble([]StrategyGroup{{Records: ordered}}, ModeFlat, opts.Schema)
	}

	groupField := opts.GroupField
	if groupField == "" {
		groupField = models.FieldStrategy
	}
	groups := Group(records, groupField)
	for i := range groups {
		if opts.SortField != "" {
			groups[i].Records = Sort(groups[i].Records, opts.SortField, opts.Direction)
		}
	}
	return p.assembler.Assemble(groups, ModeGrouped, opts.Schema)
}

func flatten(groups []StrategyGroup) []models.FundRecord {
	var out []models.FundRecord
	for _, g := range groups {
		out = append(out, g.Records...)
	}
	return out
}
