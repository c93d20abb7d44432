package cspa

import (
	"fmt"
	"time"
)

// Age is a calendar difference expressed in whole years, months and days
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

func (a Age) String() string {
	return fmt.Sprintf("%dy %dm %dd", a.Years, a.Months, a.Days)
}

// CalendarDiff returns the years, months and days between start and end.
// Years are counted first, then months, then the remaining days. Month
// arithmetic clamps to the last day of shorter months (Jan 31 + 1 month is
// Feb 28/29). end before start yields a zero Age.
func CalendarDiff(start, end time.Time) Age {
	start, end = dateOnly(start), dateOnly(end)
	if end.Before(start) {
		return Age{}
	}

	cursor := start
	years := end.Year() - cursor.Year()
	if next := addMonths(cursor, years*12); next.After(end) {
		years--
	}
	cursor = addMonths(cursor, years*12)

	months := (end.Year()-cursor.Year())*12 + int(end.Month()-cursor.Month())
	if next := addMonths(cursor, months); next.After(end) {
		months--
	}
	cursor = addMonths(cursor, months)

	return Age{
		Years:  years,
		Months: months,
		Days:   DaysBetween(cursor, end),
	}
}

// DaysBetween returns the number of whole days from start to end (negative if end is earlier)
func DaysBetween(start, end time.Time) int {
	return int(dateOnly(end).Sub(dateOnly(start)).Hours() / 24)
}

// addMonths adds n months, clamping the day to the target month's length
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	day := t.Day()
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
