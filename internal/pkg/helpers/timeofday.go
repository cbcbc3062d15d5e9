package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a clock time within a day, stored as minutes since midnight.
// Database time columns come back formatted in several ways ("08:00",
// "08:00:00", "08:00:00.0000000"); parsing into minutes makes comparisons
// immune to that drift.
type TimeOfDay struct {
	Minutes int
}

// NewTimeOfDay builds a TimeOfDay from an hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Minutes: hour*60 + minute}
}

// TimeOfDayFromTime extracts the clock time of t in UTC.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	u := t.UTC()
	return NewTimeOfDay(u.Hour(), u.Minute())
}

// ParseTimeOfDay parses strings like "8:00", "08:00", "08:00:00" and
// "08:00:00.0000000" into a TimeOfDay. Seconds and fractions are discarded.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}

	return NewTimeOfDay(hour, minute), nil
}

// Add returns the time of day d minutes later. The result may pass midnight;
// callers comparing intervals within one day should keep spans short.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return TimeOfDay{Minutes: t.Minutes + int(d.Minutes())}
}

// Before reports whether t is earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes < other.Minutes
}

// Equal reports whether t and other are the same minute.
func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.Minutes == other.Minutes
}

// Contains reports whether x falls in the half-open interval [t, t+span).
func (t TimeOfDay) Contains(x TimeOfDay, span time.Duration) bool {
	return x.Minutes >= t.Minutes && x.Minutes < t.Add(span).Minutes
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Minutes/60, t.Minutes%60)
}
