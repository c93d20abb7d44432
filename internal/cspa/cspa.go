// Package cspa estimates Child Status Protection Act ages from exported
// family bulletin tables.
package cspa

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// AgeOut is the CSPA age at which a derivative beneficiary stops qualifying
const AgeOut = 21

// CurrentMarker is the bulletin value meaning every priority date is current
const CurrentMarker = "C"

var (
	ErrInvalidDates     = errors.New("invalid input dates")
	ErrNoBulletinDate   = errors.New("no bulletin date for preference and country")
	ErrMissingColumn    = errors.New("bulletin CSV is missing a required column")
	ErrUnknownCountry   = errors.New("unknown country column")
	ErrEmptyBulletinCSV = errors.New("bulletin CSV has no rows")
)

// Countries are the chargeability columns of an exported bulletin table
var Countries = []string{"other", "china", "india", "mexico", "philippines"}

// ResultType is the visa availability verdict
type ResultType string

const (
	Available   ResultType = "available"
	Unavailable ResultType = "unavailable"
)

// Result holds the computed ages and verdict
type Result struct {
	DaysPending int        `json:"days_pending"`
	DaysTotal   int        `json:"days_total"`
	CSPAAge     Age        `json:"cspa_age"`
	ActualAge   Age        `json:"actual_age"`
	Type        ResultType `json:"result"`
}

type entry struct {
	date    time.Time
	current bool
}

// Calculator looks up bulletin dates by preference and country
type Calculator struct {
	dates map[string]map[string]entry
}

// LoadFile reads an exported bulletin CSV from path
func LoadFile(path string) (*Calculator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bulletin CSV: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads an exported bulletin CSV (preference,other,china,india,mexico,philippines).
// Cells that are neither MM/DD/YYYY dates nor "C" (e.g. "U") are treated as unavailable.
func Load(r io.Reader) (*Calculator, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read bulletin CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrEmptyBulletinCSV
	}

	index := make(map[string]int)
	for i, name := range records[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range append([]string{"preference"}, Countries...) {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	c := &Calculator{dates: make(map[string]map[string]entry)}
	for _, rec := range records[1:] {
		pref := strings.ToUpper(strings.TrimSpace(rec[index["preference"]]))
		if pref == "" {
			continue
		}
		byCountry := make(map[string]entry)
		for _, country := range Countries {
			raw := strings.TrimSpace(rec[index[country]])
			if raw == CurrentMarker {
				byCountry[country] = entry{current: true}
				continue
			}
			if d, err := time.Parse("01/02/2006", raw); err == nil {
				byCountry[country] = entry{date: d}
			}
		}
		c.dates[pref] = byCountry
	}
	return c, nil
}

// Preferences returns the preference labels known to the calculator
func (c *Calculator) Preferences() []string {
	prefs := make([]string, 0, len(c.dates))
	for p := range c.dates {
		prefs = append(prefs, p)
	}
	return prefs
}

// Date returns the bulletin date for a preference and country. A current
// category resolves to on.
func (c *Calculator) Date(preference, country string, on time.Time) (time.Time, bool) {
	byCountry, ok := c.dates[strings.ToUpper(preference)]
	if !ok {
		return time.Time{}, false
	}
	e, ok := byCountry[strings.ToLower(country)]
	if !ok {
		return time.Time{}, false
	}
	if e.current {
		return dateOnly(on), true
	}
	return e.date, true
}

// Evaluate computes the CSPA result using the bulletin date for preference and country
func (c *Calculator) Evaluate(birth, priority, approval time.Time, preference, country string, on time.Time) (Result, error) {
	if !isCountry(country) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCountry, country)
	}
	bulletinDate, ok := c.Date(preference, country, on)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s/%s", ErrNoBulletinDate, preference, country)
	}
	return Calculate(birth, priority, approval, bulletinDate)
}

// Calculate computes the CSPA age on bulletinDate.
//
// The time the petition was pending (priority to approval) is subtracted
// from the applicant's age on the bulletin date.
func Calculate(birth, priority, approval, bulletinDate time.Time) (Result, error) {
	if birth.IsZero() || priority.IsZero() || approval.IsZero() || bulletinDate.IsZero() {
		return Result{}, ErrInvalidDates
	}
	if approval.Before(priority) || bulletinDate.Before(birth) {
		return Result{}, ErrInvalidDates
	}

	pending := DaysBetween(priority, approval)
	cspaDate := dateOnly(bulletinDate).AddDate(0, 0, -pending)

	res := Result{
		DaysPending: pending,
		DaysTotal:   DaysBetween(birth, bulletinDate),
		CSPAAge:     CalendarDiff(birth, cspaDate),
		ActualAge:   CalendarDiff(birth, bulletinDate),
		Type:        Available,
	}
	if res.CSPAAge.Years >= AgeOut {
		res.Type = Unavailable
	}
	return res, nil
}

func isCountry(country string) bool {
	for _, c := range Countries {
		if c == strings.ToLower(country) {
			return true
		}
	}
	return false
}
