package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// isoLayouts are the ISO-8601 forms accepted for trip dates.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Stay is the parsed date range of a trip.
// Nights is never negative and Days is always at least 1.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
	Days     int
}

// NewStay parses both dates and computes nights and days.
//   - nights = whole days between the dates, clamped to 0
//   - days   = 1 for a zero-night stay, nights+1 otherwise
//   - identical input strings always give 0 nights and 1 day
//
// Returns domain.ErrValidation if either date cannot be parsed.
func NewStay(dateIn, dateOut string) (Stay, error) {
	in, err := ParseDate(dateIn)
	if err != nil {
		return Stay{}, fmt.Errorf("%w: dateIn: %v", domain.ErrValidation, err)
	}
	out, err := ParseDate(dateOut)
	if err != nil {
		return Stay{}, fmt.Errorf("%w: dateOut: %v", domain.ErrValidation, err)
	}

	s := Stay{CheckIn: in, CheckOut: out}
	if strings.TrimSpace(dateIn) == strings.TrimSpace(dateOut) {
		s.Nights, s.Days = 0, 1
		return s, nil
	}

	nights := int(math.Floor(out.Sub(in).Hours() / 24))
	if nights < 0 {
		nights = 0
	}
	s.Nights = nights
	if nights == 0 {
		s.Days = 1
	} else {
		s.Days = nights + 1
	}
	return s, nil
}

// Contains reports whether t falls inside the stay, counting the whole
// check-out day.
func (s Stay) Contains(t time.Time) bool {
	from, to := s.Window()
	t = t.UTC()
	return !t.Before(from) && t.Before(to)
}

// Window returns the half-open interval used to query events for the stay:
// from midnight UTC of the check-in day to midnight after the check-out day.
func (s Stay) Window() (from, to time.Time) {
	from = startOfDay(s.CheckIn)
	to = startOfDay(s.CheckOut).AddDate(0, 0, 1)
	if !to.After(from) {
		to = from.AddDate(0, 0, 1)
	}
	return from, to
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts ISO-8601 (YYYY-MM-DD or RFC 3339) and DD/MM/YY or
// DD/MM/YYYY. Two-digit years are read as 2000+year. The result is in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if strings.Contains(s, "/") {
		return parseDayMonthYear(s)
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// parseDayMonthYear handles the DD/MM/YY form by hand because the stdlib
// "06" layout maps 69-99 to the 1900s.
func parseDayMonthYear(s string) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("unrecognised date %q", s)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if year < 100 {
		year += 2000
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	return t, nil
}
