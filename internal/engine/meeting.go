package engine

import (
	"fmt"
	"strings"
	"time"
)

// DaySet is a bitmask over days of the week.
type DaySet uint8

const (
	Monday DaySet = 1 << iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const minutesPerDay = 24 * 60

var dayLetters = []struct {
	letter byte
	day    DaySet
}{
	{'M', Monday},
	{'T', Tuesday},
	{'W', Wednesday},
	{'R', Thursday},
	{'F', Friday},
	{'S', Saturday},
	{'U', Sunday},
}

// ParseDays converts an SIS day string such as "MWF" or "TR" into a DaySet.
func ParseDays(raw string) (DaySet, error) {
	var days DaySet
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == ' ' {
			continue
		}
		matched := false
		for _, entry := range dayLetters {
			if entry.letter == c {
				days |= entry.day
				matched = true
				break
			}
		}
		if !matched {
			return 0, fmt.Errorf("%w: unrecognised day code %q", ErrInvalidDays, string(c))
		}
	}
	if days == 0 {
		return 0, fmt.Errorf("%w: empty day string", ErrInvalidDays)
	}
	return days, nil
}

// Intersects reports whether two day sets share at least one day.
func (d DaySet) Intersects(other DaySet) bool {
	return d&other != 0
}

// String renders the set using SIS letter codes in week order.
func (d DaySet) String() string {
	var b strings.Builder
	for _, entry := range dayLetters {
		if d&entry.day != 0 {
			b.WriteByte(entry.letter)
		}
	}
	return b.String()
}

// ParseClock converts "HH:MM" (24h) into minutes since midnight.
func ParseClock(raw string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: clock value %q", ErrInvalidInterval, raw)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: clock value %q out of range", ErrInvalidInterval, raw)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DateRange is an inclusive span of calendar days bounding a meeting pattern.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) intersects(other DateRange) bool {
	return !r.End.Before(other.Start) && !other.End.Before(r.Start)
}

// Meeting is one recurring occurrence of a section: a set of weekdays with a
// same-day clock interval and an optional effective date range. Immutable
// value type; malformed values are rejected at construction.
type Meeting struct {
	Days     DaySet
	Start    int // minutes since midnight, inclusive
	End      int // minutes since midnight, exclusive
	Location string
	Dates    *DateRange
}

// NewMeeting builds a validated meeting.
func NewMeeting(days DaySet, startMinutes, endMinutes int) (Meeting, error) {
	if days == 0 {
		return Meeting{}, fmt.Errorf("%w: meeting requires at least one day", ErrInvalidDays)
	}
	if startMinutes < 0 || endMinutes > minutesPerDay {
		return Meeting{}, fmt.Errorf("%w: meeting outside 00:00-24:00", ErrInvalidInterval)
	}
	if endMinutes <= startMinutes {
		return Meeting{}, fmt.Errorf("%w: end %s not after start %s",
			ErrInvalidInterval, FormatClock(endMinutes), FormatClock(startMinutes))
	}
	return Meeting{Days: days, Start: startMinutes, End: endMinutes}, nil
}

// WithLocation returns a copy carrying the meeting location.
func (m Meeting) WithLocation(location string) Meeting {
	m.Location = location
	return m
}

// WithDates returns a copy bounded by an effective date range.
func (m Meeting) WithDates(start, end time.Time) (Meeting, error) {
	if end.Before(start) {
		return Meeting{}, fmt.Errorf("%w: date range ends before it starts", ErrInvalidDateRange)
	}
	m.Dates = &DateRange{Start: start, End: end}
	return m, nil
}

// Overlaps reports whether two meetings can occur at the same moment: their
// weekday sets intersect, their [start,end) clock intervals intersect, and,
// when both carry date ranges, those ranges intersect. A meeting ending
// exactly when another begins does not overlap.
func Overlaps(a, b Meeting) bool {
	if !a.Days.Intersects(b.Days) {
		return false
	}
	if a.End <= b.Start || b.End <= a.Start {
		return false
	}
	if a.Dates != nil && b.Dates != nil && !a.Dates.intersects(*b.Dates) {
		return false
	}
	return true
}
