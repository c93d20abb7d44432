package bulletin

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/bulletin/pkg/models"
	"github.com/rs/zerolog/log"
)

// DefaultCategory is the case category whose tables are exported
const DefaultCategory = "Family"

// ExtractOptions controls table selection and row validation
type ExtractOptions struct {
	Category string
	// Strict turns a row of the wrong width into an error instead of a skipped row
	Strict bool
}

// Extract returns the category-qualifying tables of doc in document order.
//
// A table qualifies when any cell of its first row contains the category.
// Every later row becomes a models.Row with normalized cells. Tables that
// produce no rows are dropped; the rest are numbered by Ordinal.
func Extract(doc *goquery.Document, opts ExtractOptions) ([]models.Table, error) {
	category := opts.Category
	if category == "" {
		category = DefaultCategory
	}

	var (
		tables   []models.Table
		firstErr error
	)

	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		rows := ownRows(table)
		if rows.Length() == 0 || !qualifies(rows.First(), category) {
			log.Debug().Int("table", i).Msg("Skipping table without category header")
			return true
		}

		parsed := models.Table{Index: i, Category: category}
		rows.Slice(1, rows.Length()).EachWithBreak(func(j int, tr *goquery.Selection) bool {
			cells := rowCells(tr)
			row, err := models.NewRow(cells)
			if err != nil {
				if opts.Strict {
					firstErr = NewError(ErrCodeRowWidth, "malformed bulletin row", err).
						WithDetail("table", i).
						WithDetail("row", j+1)
					return false
				}
				parsed.Rejected++
				log.Warn().
					Int("table", i).
					Int("row", j+1).
					Int("cells", len(cells)).
					Msg("Rejecting row with unexpected width")
				return true
			}
			parsed.Rows = append(parsed.Rows, row)
			return true
		})
		if firstErr != nil {
			return false
		}

		if len(parsed.Rows) == 0 {
			log.Debug().Int("table", i).Msg("Qualifying table produced no rows")
			return true
		}

		parsed.Ordinal = len(tables)
		parsed.HTML, _ = goquery.OuterHtml(table)
		tables = append(tables, parsed)

		log.Debug().
			Int("table", i).
			Int("ordinal", parsed.Ordinal).
			Int("rows", len(parsed.Rows)).
			Int("rejected", parsed.Rejected).
			Msg("Extracted table")
		return true
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return tables, nil
}

// ownRows returns the rows belonging to table itself, not to tables nested inside it
func ownRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
}

func qualifies(header *goquery.Selection, category string) bool {
	found := false
	header.ChildrenFiltered("td, th").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if strings.Contains(cell.Text(), category) {
			found = true
			return false
		}
		return true
	})
	return found
}

func rowCells(tr *goquery.Selection) []string {
	var cells []string
	tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, CleanCell(cell.Text()))
	})
	return cells
}

// CleanCell trims surrounding whitespace, drops embedded newlines and normalizes dates
func CleanCell(text string) string {
	return NormalizeCell(strings.ReplaceAll(strings.TrimSpace(text), "\n", ""))
}
