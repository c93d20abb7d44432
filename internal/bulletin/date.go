package bulletin

import (
	"fmt"
	"regexp"
	"time"
)

// months maps bulletin month abbreviations to their two-digit number
var months = map[string]string{
	"JAN": "01",
	"FEB": "02",
	"MAR": "03",
	"APR": "04",
	"MAY": "05",
	"JUN": "06",
	"JUL": "07",
	"AUG": "08",
	"SEP": "09",
	"OCT": "10",
	"NOV": "11",
	"DEC": "12",
}

var dateToken = regexp.MustCompile(`^(\d\d)([A-Z]{3})(\d\d)$`)

// ParseDateToken parses a bulletin date token such as "01JAN24".
// Two-digit years 69-99 land in the 1900s, 00-68 in the 2000s.
func ParseDateToken(raw string) (time.Time, bool) {
	m := dateToken.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := months[m[2]]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse("01/02/06", fmt.Sprintf("%s/%s/%s", month, m[1], m[3]))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeCell rewrites a date token to MM/DD/YYYY and returns any other value
// (e.g. "C" for current, "U" for unavailable) unchanged.
func NormalizeCell(raw string) string {
	if t, ok := ParseDateToken(raw); ok {
		return t.Format("01/02/2006")
	}
	return raw
}
