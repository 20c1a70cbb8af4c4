package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode selects the document layout.
type Mode string

const (
	ModeFlat    Mode = "flat"
	ModeGrouped Mode = "grouped"
)

// ParseMode resolves "flat" or "grouped".
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFlat:
		return ModeFlat, nil
	case ModeGrouped:
		return ModeGrouped, nil
	}
	return "", fmt.Errorf("unknown report mode %q", s)
}

// TOCEntry points at one group's section.
type TOCEntry struct {
	Group string
	Page  int
	Count int
}

// TOC is the table of contents of a grouped document.
type TOC struct {
	Title   string
	Entries []TOCEntry
}

// Section is one titled table.
type Section struct {
	Title          string
	Table          Table
	Footnote       string
	RecordCount    int
	StartPage      int
	PageBreakAfter bool
}

// Footer is printed at the bottom of every page and once after the body.
type Footer struct {
	Disclaimer string
	PageFormat string
}

// Document is a renderer-agnostic report.
type Document struct {
	ID          uuid.UUID
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Mode        Mode
	Schema      Schema
	Policy      ColorPolicy
	TOC         *TOC
	Sections    []Section
	Footer      Footer
}

// PageFooter returns the footer line for a page number.
func (d Document) PageFooter(page int) string {
	return fmt.Sprintf(d.Footer.PageFormat, page, d.GeneratedAt.Format("2006-01-02 15:04"))
}

// RecordCount is the number of records across all sections.
func (d Document) RecordCount() int {
	n := 0
	for _, s := range d.Sections {
		n += s.RecordCount
	}
	return n
}

// PageAllocator assigns a starting page to each section.
type PageAllocator interface {
	Allocate(sections []Section) []int
}

// OnePagePerSection puts the title and TOC on page 1 and starts section i on
// page i+2. Sections that overflow a page shift later sections in the real
// output without the TOC reflecting it.
type OnePagePerSection struct{}

// Allocate implements PageAllocator.
func (OnePagePerSection) Allocate(sections []Section) []int {
	pages := make([]int, len(sections))
	for i := range sections {
		pages[i] = i + 2
	}
	return pages
}

// Labels holds the user-visible strings of a document.
type Labels struct {
	Title          string
	SubtitleFormat string
	TOCTitle       string
	FootnoteFormat string
	PageFormat     string
	Disclaimer     string
}

// DefaultLabels are used for any label left empty.
var DefaultLabels = Labels{
	Title:          "Equity Long/Short - Fund Performance",
	SubtitleFormat: "Generated: %s",
	TOCTitle:       "Contents",
	FootnoteFormat: "Funds in this section: %d",
	PageFormat:     "Page %d | Generated %s",
	Disclaimer:     "For reference only. Past performance does not guarantee future results.",
}

func (l Labels) withDefaults() Labels {
	if l.Title == "" {
		l.Title = DefaultLabels.Title
	}
	if l.SubtitleFormat == "" {
		l.SubtitleFormat = DefaultLabels.SubtitleFormat
	}
	if l.TOCTitle == "" {
		l.TOCTitle = DefaultLabels.TOCTitle
	}
	if l.FootnoteFormat == "" {
		l.FootnoteFormat = DefaultLabels.FootnoteFormat
	}
	if l.PageFormat == "" {
		l.PageFormat = DefaultLabels.PageFormat
	}
	if l.Disclaimer == "" {
		l.Disclaimer = DefaultLabels.Disclaimer
	}
	return l
}

// Assembler composes tables into a document.
type Assembler struct {
	Labels Labels
	Policy ColorPolicy
	Pages  PageAllocator
	Now    func() time.Time
	NewID  func() uuid.UUID
}

// NewAssembler returns an assembler with the default clock, IDs and pagination.
func NewAssembler(labels Labels, policy ColorPolicy) *Assembler {
	return &Assembler{
		Labels: labels,
		Policy: policy,
		Pages:  OnePagePerSection{},
		Now:    time.Now,
		NewID:  uuid.New,
	}
}

// Assemble lays out groups as one document. In flat mode all groups are
// merged into a single untitled section; in grouped mode each group gets a
// titled section, a footnote and a TOC entry.
func (a *Assembler) Assemble(groups []StrategyGroup, mode Mode, schema Schema) Document {
	labels := a.Labels.withDefaults()
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	newID := uuid.New
	if a.NewID != nil {
		newID = a.NewID
	}
	generated := now()

	doc := Document{
		ID:          newID(),
		Title:       labels.Title,
		Subtitle:    fmt.Sprintf(labels.SubtitleFormat, generated.Format("2006-01-02 15:04")),
		GeneratedAt: generated,
		Mode:        mode,
		Schema:      schema,
		Policy:      a.Policy,
		Footer:      Footer{Disclaimer: labels.Disclaimer, PageFormat: labels.PageFormat},
	}

	if mode != ModeGrouped {
		records := flatten(groups)
		doc.Sections = []Section{{
			Table:       BuildTable(records, schema),
			RecordCount: len(records),
			StartPage:   1,
		}}
		return doc
	}

	doc.Sections = make([]Section, len(groups))
	for i, g := range groups {
		doc.Sections[i] = Section{
			Title:          g.Name,
			Table:          BuildTable(g.Records, schema),
			Footnote:       fmt.Sprintf(labels.FootnoteFormat, len(g.Records)),
			RecordCount:    len(g.Records),
			PageBreakAfter: i < len(groups)-1,
		}
	}

	var alloc PageAllocator = OnePagePerSection{}
	if a.Pages != nil {
		alloc = a.Pages
	}
	pages := alloc.Allocate(doc.Sections)
	toc := &TOC{Title: labels.TOCTitle, Entries: make([]TOCEntry, len(groups))}
	for i := range doc.Sections {
		doc.Sections[i].StartPage = pages[i]
		toc.Entries[i] = TOCEntry{Group: groups[i].Name, Page: pages[i], Count: len(groups[i].Records)}
	}
	doc.TOC = toc
	return doc
}
