// Package biztime provides utilities for business timezone calculations.
// Storage and transport use UTC; the business timezone only decides calendar
// boundaries such as the agreement year or the day a visit is scheduled on.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Europe/Oslo"

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location, initializing the default on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// YearOf returns the calendar year of t in the business timezone.
func YearOf(t time.Time) int {
	return t.In(Location()).Year()
}

// StartOfDayUTC returns business-timezone midnight of t's day, converted to UTC.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// EndOfDayUTC returns the last instant of t's business day, converted to UTC.
func EndOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	endOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 23, 59, 59, 999999999, Location())
	return endOfDay.UTC()
}

// AddMonths adds months to t in the business timezone, keeping the wall-clock day.
// Month overflow normalizes the way time.AddDate does (Jan 31 + 1 month = Mar 3).
func AddMonths(t time.Time, months int) time.Time {
	return t.In(Location()).AddDate(0, months, 0).UTC()
}

// ParseDate parses a YYYY-MM-DD string as business timezone midnight, returned in UTC.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// FormatDate formats t as a calendar date in the business timezone.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// FormatInBizTimezone formats a UTC time in business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
