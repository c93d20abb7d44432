package bulletin

import (
	"fmt"
	"strings"
	"time"

	"github.com/law-makers/bulletin/pkg/models"
)

// DefaultBaseURL is the directory under which the State Department files bulletins
const DefaultBaseURL = "https://travel.state.gov/content/travel/en/legal/visa-law0/visa-bulletin"

// BuildURL returns the bulletin page URL for the given month.
//
// The directory segment is the calendar year unless fiscalYearPath is set, in
// which case October through December are filed under the following year.
func BuildURL(base string, m models.Month, fiscalYearPath bool) string {
	dirYear := m.Year
	if fiscalYearPath && m.Month >= time.October {
		dirYear++
	}
	return fmt.Sprintf("%s/%d/visa-bulletin-for-%s-%d.html",
		strings.TrimRight(base, "/"), dirYear, m.Slug(), m.Year)
}
