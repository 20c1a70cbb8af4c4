package report

import "github.com/yourusername/fund-report/internal/models"

// HeaderCell is one header label.
type HeaderCell struct {
	Text  string
	Align Align
	Bold  bool
}

// Row is one table body row.
type Row struct {
	Cells   []FormattedCell
	Striped bool
}

// Table is a grid of formatted cells laid out by a schema.
type Table struct {
	Columns []Column
	Header  []HeaderCell
	Rows    []Row
	Style   TableStyle
}

// BuildTable formats records into rows. Text columns are copied verbatim,
// metric columns go through Format. Every second body row is striped.
func BuildTable(records []models.FundRecord, schema Schema) Table {
	t := Table{
		Columns: schema.Columns,
		Header:  make([]HeaderCell, len(schema.Columns)),
		Rows:    make([]Row, 0, len(records)),
		Style:   DefaultTableStyle,
	}
	for i, c := range schema.Columns {
		t.Header[i] = HeaderCell{Text: c.Label, Align: t.Style.HeaderAlign, Bold: t.Style.HeaderBold}
	}

	for i, r := range records {
		row := Row{Cells: make([]FormattedCell, len(schema.Columns)), Striped: i%2 == 1}
		for j, c := range schema.Columns {
			var cell FormattedCell
			if c.Kind == KindText {
				cell = FormattedCell{Text: r.Text(c.Field), Color: Neutral}
			} else {
				cell = Format(r.Metric(c.Field), c.Kind)
			}
			cell.Align = c.Align
			cell.Emphasis = c.Emphasized
			row.Cells[j] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// IsEmpty reports whether the table has no body rows.
func (t Table) IsEmpty() bool { return len(t.Rows) == 0 }

// Width is the total column width in millimetres.
func (t Table) Width() float64 {
	return Schema{Columns: t.Columns}.TotalWidth()
}
