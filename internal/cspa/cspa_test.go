package cspa

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const csvData = `preference,other,china,india,mexico,philippines
F1,12/01/2014,12/01/2014,12/01/2014,04/01/2001,03/01/2012
F2A,C,C,C,11/01/2018,C
F2B,09/22/2015,09/22/2015,09/22/2015,06/01/2001,10/22/2011
F3,11/22/2008,11/22/2008,11/22/2008,11/01/1997,06/08/2002
F4,03/22/2007,03/22/2007,09/15/2005,08/01/2000,U`

func date(s string) time.Time {
	t, err := time.Parse("01-02-2006", s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustLoad(t *testing.T) *Calculator {
	t.Helper()
	c, err := Load(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func TestLoad(t *testing.T) {
	c := mustLoad(t)

	got, ok := c.Date("F4", "other", time.Now())
	if !ok {
		t.Fatal("Expected F4/other date")
	}
	if got.Format("1/2/2006") != "3/22/2007" {
		t.Errorf("Expected 3/22/2007, got %s", got.Format("1/2/2006"))
	}
	if len(c.Preferences()) != 5 {
		t.Errorf("Expected 5 preferences, got %d", len(c.Preferences()))
	}
}

func TestDate_CurrentAndUnavailable(t *testing.T) {
	c := mustLoad(t)
	on := date("03-15-2023")

	got, ok := c.Date("f2a", "INDIA", on)
	if !ok || !got.Equal(on) {
		t.Errorf("Expected current category to resolve to %v, got %v (%v)", on, got, ok)
	}
	if _, ok := c.Date("F4", "philippines", on); ok {
		t.Error("Expected U to have no date")
	}
	if _, ok := c.Date("F9", "other", on); ok {
		t.Error("Expected unknown preference to have no date")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(strings.NewReader("preference,other\n")); !errors.Is(err, ErrEmptyBulletinCSV) {
		t.Errorf("Expected ErrEmptyBulletinCSV, got %v", err)
	}
	if _, err := Load(strings.NewReader("preference,other\nF1,C\n")); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		priority string
		pending  int
		cspa     Age
	}{
		{"pending three years", "01-01-2020", 1096, Age{Years: 16, Months: 2, Days: 13}},
		{"pending from march", "03-22-2020", 1015, Age{Years: 16, Months: 5, Days: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(date("01-01-2004"), date(tt.priority), date("01-01-2023"), date("03-15-2023"))
			if err != nil {
				t.Fatalf("Calculate failed: %v", err)
			}
			if res.DaysPending != tt.pending {
				t.Errorf("Expected %d days pending, got %d", tt.pending, res.DaysPending)
			}
			if res.DaysTotal != 7013 {
				t.Errorf("Expected 7013 total days, got %d", res.DaysTotal)
			}
			if res.CSPAAge != tt.cspa {
				t.Errorf("Expected CSPA age %+v, got %+v", tt.cspa, res.CSPAAge)
			}
			if res.ActualAge != (Age{Years: 19, Months: 2, Days: 14}) {
				t.Errorf("Unexpected actual age %+v", res.ActualAge)
			}
			if res.Type != Available {
				t.Errorf("Expected available, got %s", res.Type)
			}
		})
	}
}

func TestCalculate_AgedOut(t *testing.T) {
	res, err := Calculate(date("01-01-1995"), date("01-01-2022"), date("06-01-2022"), date("03-15-2023"))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.Type != Unavailable {
		t.Errorf("Expected unavailable for CSPA age %+v", res.CSPAAge)
	}
}

func TestCalculate_InvalidDates(t *testing.T) {
	if _, err := Calculate(time.Time{}, date("01-01-2020"), date("01-01-2023"), date("03-15-2023")); !errors.Is(err, ErrInvalidDates) {
		t.Errorf("Expected ErrInvalidDates for zero birth date, got %v", err)
	}
	if _, err := Calculate(date("01-01-2004"), date("01-01-2023"), date("01-01-2020"), date("03-15-2023")); !errors.Is(err, ErrInvalidDates) {
		t.Errorf("Expected ErrInvalidDates for approval before priority, got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	c := mustLoad(t)

	res, err := c.Evaluate(date("01-01-2004"), date("01-01-2020"), date("01-01-2023"), "F2A", "other", date("03-15-2023"))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.CSPAAge != (Age{Years: 16, Months: 2, Days: 13}) {
		t.Errorf("Unexpected CSPA age %+v", res.CSPAAge)
	}

	if _, err := c.Evaluate(date("01-01-2004"), date("01-01-2020"), date("01-01-2023"), "F4", "philippines", time.Now()); !errors.Is(err, ErrNoBulletinDate) {
		t.Errorf("Expected ErrNoBulletinDate, got %v", err)
	}
	if _, err := c.Evaluate(date("01-01-2004"), date("01-01-2020"), date("01-01-2023"), "F1", "canada", time.Now()); !errors.Is(err, ErrUnknownCountry) {
		t.Errorf("Expected ErrUnknownCountry, got %v", err)
	}
}
