package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Columns is the fixed CSV header of every exported table
var Columns = []string{"preference", "other", "china", "india", "mexico", "philippines"}

// RowWidth is the number of cells every bulletin row must carry
const RowWidth = 6

// Month identifies a single monthly bulletin
type Month struct {
	Year  int
	Month time.Month
}

// Current returns the bulletin month for the given instant
func Current(now time.Time) Month {
	return Month{Year: now.Year(), Month: now.Month()}
}

// ParseMonth parses a "YYYY-MM" string
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Slug returns the lowercase full month name used in bulletin URLs (e.g. "january")
func (m Month) Slug() string {
	return strings.ToLower(m.Month.String())
}

// String formats the month as YYYY-MM
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Next returns the following month
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Before reports whether m is earlier than o
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// Page is a fetched bulletin page. It only lives for the duration of one run.
type Page struct {
	URL          string
	Month        Month
	StatusCode   int
	FetchedAt    time.Time
	ResponseTime int64
	Doc          *goquery.Document
}

// Row is one parsed bulletin row, in Columns order
type Row struct {
	Preference  string `json:"preference"`
	Other       string `json:"other"`
	China       string `json:"china"`
	India       string `json:"india"`
	Mexico      string `json:"mexico"`
	Philippines string `json:"philippines"`
}

// NewRow builds a Row from exactly RowWidth cells
func NewRow(cells []string) (Row, error) {
	if len(cells) != RowWidth {
		return Row{}, fmt.Errorf("row has %d cells, want %d", len(cells), RowWidth)
	}
	return Row{
		Preference:  cells[0],
		Other:       cells[1],
		China:       cells[2],
		India:       cells[3],
		Mexico:      cells[4],
		Philippines: cells[5],
	}, nil
}

// Record returns the row as a CSV record in Columns order
func (r Row) Record() []string {
	return []string{r.Preference, r.Other, r.China, r.India, r.Mexico, r.Philippines}
}

// Table is a category-qualifying bulletin table
type Table struct {
	Index    int    // position among all tables on the page
	Ordinal  int    // position among qualifying tables that produced rows
	Category string // the matched category label
	Rows     []Row
	Rejected int    // source rows dropped for having the wrong width
	HTML     string // outer HTML of the source table
}

// OutputFile describes a CSV written by the exporter
type OutputFile struct {
	Destination string `json:"destination"`
	Path        string `json:"path"`
	Rows        int    `json:"rows"`
}
