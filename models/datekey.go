package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateKey identifies a calendar day as "D_M_YYYY" (no zero padding,
// e.g. "26_8_2026"). It is the canonical map key for the booked-slot
// ledger and the bucketing key for dashboard aggregation, so every
// component must build it through NewDateKey rather than ad hoc
// string construction.
type DateKey string

// TimeLabel identifies a slot within a day as a zero-padded 12-hour
// clock label, e.g. "09:30 AM".
type TimeLabel string

const timeLabelLayout = "03:04 PM"

// NewDateKey derives the canonical key for t's calendar date.
func NewDateKey(t time.Time) DateKey {
	return DateKey(fmt.Sprintf("%d_%d_%d", t.Day(), int(t.Month()), t.Year()))
}

// Time converts the key back to midnight of that day in loc.
func (k DateKey) Time(loc *time.Location) (time.Time, error) {
	parts := strings.Split(string(k), "_")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed date key %q", k)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("malformed date key %q", k)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date key %q out of range", k)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

// Valid reports whether the key parses as a calendar date.
func (k DateKey) Valid() bool {
	_, err := k.Time(time.UTC)
	return err == nil
}

// NewTimeLabel formats t's wall-clock time as a canonical slot label.
func NewTimeLabel(t time.Time) TimeLabel {
	return TimeLabel(t.Format(timeLabelLayout))
}

// MinutesToLabel renders minutes-from-midnight (e.g. 570 for 9:30 AM)
// as a canonical slot label.
func MinutesToLabel(min int) TimeLabel {
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewTimeLabel(base.Add(time.Duration(min) * time.Minute))
}

// Minutes parses the label back into minutes from midnight.
func (l TimeLabel) Minutes() (int, error) {
	t, err := time.Parse(timeLabelLayout, string(l))
	if err != nil {
		return 0, fmt.Errorf("malformed time label %q: %w", l, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Instant combines a date key and time label into an absolute instant in loc.
func (l TimeLabel) Instant(k DateKey, loc *time.Location) (time.Time, error) {
	day, err := k.Time(loc)
	if err != nil {
		return time.Time{}, err
	}
	min, err := l.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(min) * time.Minute), nil
}
