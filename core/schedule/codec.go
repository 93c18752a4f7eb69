// Package schedule models weekly-recurring class slots.
//
// A schedule code is the canonical string "<Day> <HH:MM>", e.g. "Mon 09:00".
// Days are the 7 tokens Mon..Sun; bookable times are the hourly slots
// between FirstHour and LastHour inclusive.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	FirstHour = 8
	LastHour  = 20

	timeLayout = "15:04"
)

var (
	// Days is the fixed week ordering.
	Days = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	// Slots holds the bookable times of a day.
	Slots = makeSlots()

	dayIndex  = makeDayIndex()
	slotIndex = makeSlotIndex()
)

func makeSlots() []string {
	slots := make([]string, 0, LastHour-FirstHour+1)
	for h := FirstHour; h <= LastHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

func makeDayIndex() map[string]int {
	m := make(map[string]int, len(Days))
	for i, d := range Days {
		m[d] = i
	}
	return m
}

func makeSlotIndex() map[string]int {
	m := make(map[string]int, len(Slots))
	for i, s := range Slots {
		m[s] = i
	}
	return m
}

// IsDay reports whether `day` is one of the 7 day tokens.
func IsDay(day string) bool {
	_, ok := dayIndex[day]
	return ok
}

// IsSlot reports whether `tm` is one of the bookable hourly slots.
func IsSlot(tm string) bool {
	_, ok := slotIndex[tm]
	return ok
}

// Encode formats a schedule code.
// It panics if `day` or `tm` is out of set: callers validate user input first.
func Encode(day, tm string) string {
	if !IsDay(day) {
		panic(fmt.Sprintf("schedule: invalid day %q", day))
	}
	if !IsSlot(tm) {
		panic(fmt.Sprintf("schedule: invalid time slot %q", tm))
	}
	return day + " " + tm
}

// Decode splits a schedule code into its day and time components.
// ok is false when the day is not a day token or the time is not HH:MM.
func Decode(code string) (day, tm string, ok bool) {
	c, ok := Parse(code)
	if !ok {
		return "", "", false
	}
	return c.Day, c.Time(), true
}

// Code is a decoded schedule code.
type Code struct {
	Day    string
	Hour   int
	Minute int
}

// Parse decodes `code`, splitting on the first space.
func Parse(code string) (Code, bool) {
	parts := strings.SplitN(code, " ", 2)
	if len(parts) != 2 || !IsDay(parts[0]) {
		return Code{}, false
	}
	t, err := time.Parse(timeLayout, parts[1])
	if err != nil {
		return Code{}, false
	}
	return Code{Day: parts[0], Hour: t.Hour(), Minute: t.Minute()}, true
}

func (c Code) Time() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

func (c Code) String() string { return c.Day + " " + c.Time() }

// DayIndex is the position of the code's day in Days (Mon = 0).
func (c Code) DayIndex() int { return dayIndex[c.Day] }

// Key orders codes chronologically over a week.
type Key struct {
	Day    int
	Hour   int
	Minute int
}

func (k Key) Less(o Key) bool {
	if k.Day != o.Day {
		return k.Day < o.Day
	}
	if k.Hour != o.Hour {
		return k.Hour < o.Hour
	}
	return k.Minute < o.Minute
}

// SortKey returns (dayIndex, hour, minute) of `code`.
// Codes that fail to decode sort after every valid code.
func SortKey(code string) Key {
	c, ok := Parse(code)
	if !ok {
		return Key{Day: len(Days)}
	}
	return Key{Day: c.DayIndex(), Hour: c.Hour, Minute: c.Minute}
}

// Less reports whether code `a` comes before code `b` within a week.
func Less(a, b string) bool {
	return SortKey(a).Less(SortKey(b))
}

// Sort sorts codes chronologically, keeping the input order of equal keys.
func Sort(codes []string) {
	sort.SliceStable(codes, func(i, j int) bool { return Less(codes[i], codes[j]) })
}

// NextOccurrence returns the next instant at or after `ref` matching `code`'s
// weekday and clock time, in `ref`'s location. ok is false for invalid codes.
func NextOccurrence(code string, ref time.Time) (time.Time, bool) {
	c, ok := Parse(code)
	if !ok {
		return time.Time{}, false
	}
	refDay := (int(ref.Weekday()) + 6) % 7 // Mon = 0
	ahead := (c.DayIndex() - refDay + 7) % 7

	y, m, d := ref.Date()
	target := time.Date(y, m, d+ahead, c.Hour, c.Minute, 0, 0, ref.Location())
	if target.Before(ref) {
		target = target.AddDate(0, 0, 7)
	}
	return target, true
}
