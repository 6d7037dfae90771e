package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTime is returned for strings that are not a HH:MM wall-clock time.
var ErrInvalidTime = errors.New("invalid HH:MM time")

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

// Clock is a wall-clock time expressed in minutes since midnight.
type Clock int

// TimeToMinutes parses a "HH:MM" (or "H:MM") string into minutes since midnight.
// "24:00" is accepted to express the end of the day.
func TimeToMinutes(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if hours == 24 && minutes != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return hours*MinutesPerHour + minutes, nil
}

// MinutesToTime formats minutes since midnight as a zero-padded "HH:MM" string.
// Values past midnight keep counting hours ("24:10") rather than wrapping.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/MinutesPerHour, minutes%MinutesPerHour)
}

// Parse parses a "HH:MM" string into a Clock.
func Parse(s string) (Clock, error) {
	m, err := TimeToMinutes(s)
	if err != nil {
		return 0, err
	}
	return Clock(m), nil
}

// DeadlineOn maps an absolute due time onto the planned day. A due time on
// that day keeps its wall-clock time, an earlier one becomes 00:00 (overdue)
// and a later one yields nil.
func DeadlineOn(due, day time.Time) *Clock {
	loc := day.Location()
	due = due.In(loc)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var c Clock
	switch {
	case due.Before(dayStart):
		c = 0
	case due.Before(dayEnd):
		c = Clock(due.Hour()*MinutesPerHour + due.Minute())
	default:
		return nil
	}
	return &c
}

// MustParse is like Parse but panics on malformed input. Meant for constants and tests.
func MustParse(s string) Clock {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int { return int(c) }

// Hour returns the hour of day the clock falls in.
func (c Clock) Hour() int { return int(c) / MinutesPerHour }

// Add returns the clock shifted by the given number of minutes.
func (c Clock) Add(minutes int) Clock { return c + Clock(minutes) }

// Sub returns c-other in minutes.
func (c Clock) Sub(other Clock) int { return int(c - other) }

func (c Clock) String() string { return MinutesToTime(int(c)) }

// MarshalText implements encoding.TextMarshaler, which also covers JSON.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, which also covers JSON.
func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Clock) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Clock) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}
