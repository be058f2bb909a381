package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateKeyLayout is the YYYY-MM-DD layout of every date key
const DateKeyLayout = "2006-01-02"

var dateKeyRegex = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// ToDateKey formats t with its own location's year, month and day. Callers
// pass a time already in the property's zone; UTC fields are never used.
func ToDateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDateKey builds a midnight time in loc from a YYYY-MM-DD key.
// Returns false unless the key has three numeric parts naming a real day;
// 2025-02-30 is rejected, never rolled into March.
func ParseDateKey(key string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	if loc == nil {
		loc = time.Local
	}
	t := time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, loc)
	if y, m, d := t.Date(); y != nums[0] || int(m) != nums[1] || d != nums[2] {
		return time.Time{}, false
	}
	return t, true
}

// IsDateKey reports whether s is a YYYY-MM-DD key of a real calendar day
func IsDateKey(s string) bool {
	if !dateKeyRegex.MatchString(s) {
		return false
	}
	_, ok := ParseDateKey(s, time.UTC)
	return ok
}

// CanonicalDateKey rewrites a loosely written day such as 2025-6-6 as
// 2025-06-06. False when s names no real day.
func CanonicalDateKey(s string) (string, bool) {
	t, ok := ParseDateKey(s, time.UTC)
	if !ok {
		return "", false
	}
	return ToDateKey(t), true
}

// EnumerateRange returns every key from start to end inclusive. An inverted
// or unparseable range yields an empty slice.
func EnumerateRange(start, end string, loc *time.Location) []string {
	from, ok := ParseDateKey(start, loc)
	if !ok {
		return []string{}
	}
	to, ok := ParseDateKey(end, loc)
	if !ok {
		return []string{}
	}
	if to.Before(from) {
		return []string{}
	}

	keys := make([]string, 0, DaysBetween(from, to)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		keys = append(keys, ToDateKey(d))
	}
	return keys
}

// DaysBetween counts calendar days from one date to another, ignoring DST shifts
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// TodayKey returns the key of now as seen in loc
func TodayKey(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return ToDateKey(now.In(loc))
}

// MonthKeys lists every day of the month
func MonthKeys(year int, month time.Month, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return EnumerateRange(ToDateKey(first), ToDateKey(last), loc)
}
