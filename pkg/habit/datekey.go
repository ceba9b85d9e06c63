package habit

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the ISO calendar date layout used for DateKeys.
const Layout = "2006-01-02"

// ErrInvalidDateKey is returned when a string is not a YYYY-MM-DD date.
var ErrInvalidDateKey = errors.New("habit: invalid date key")

// DateKey is a calendar date serialized as YYYY-MM-DD. It addresses an entry
// within a habit. Keys compare correctly as strings.
type DateKey string

// KeyOf returns the DateKey of t's calendar day in t's own location.
func KeyOf(t time.Time) DateKey {
	return DateKey(t.Format(Layout))
}

// Today returns the DateKey for the local current day.
func Today() DateKey {
	return KeyOf(time.Now())
}

// ParseDateKey validates s and returns it as a DateKey.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrInvalidDateKey, s)
	}
	return KeyOf(t), nil
}

// MustDateKey parses s and panics on error. Intended for tests/fixtures.
func MustDateKey(s string) DateKey {
	k, err := ParseDateKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Time returns midnight UTC of the key's day. Day arithmetic is done in UTC
// so it never crosses a daylight saving change.
func (k DateKey) Time() time.Time {
	t, err := time.Parse(Layout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the key n days later (earlier for negative n).
func (k DateKey) AddDays(n int) DateKey {
	return KeyOf(k.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from k to other.
func (k DateKey) DaysUntil(other DateKey) int {
	return int(other.Time().Sub(k.Time()).Hours() / 24)
}

// Valid reports whether k parses as a date.
func (k DateKey) Valid() bool {
	_, err := time.Parse(Layout, string(k))
	return err == nil
}

// Weekday returns the day of the week.
func (k DateKey) Weekday() time.Weekday {
	return k.Time().Weekday()
}

// Day returns the day of the month.
func (k DateKey) Day() int {
	return k.Time().Day()
}

func (k DateKey) String() string {
	return string(k)
}
