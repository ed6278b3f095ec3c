package schedule

import (
	"slices"
	"sort"
	"strings"
	"time"
)

type Slot struct {
	Start time.Time
	Label string
}

func (s Slot) Key() int64 {
	return NormalizeSlot(s.Start)
}

// NormalizeSlot reduces an instant to UTC epoch milliseconds. Every slot
// comparison goes through this so offsets and monotonic readings never matter.
func NormalizeSlot(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func SameSlot(a, b time.Time) bool {
	return NormalizeSlot(a) == NormalizeSlot(b)
}

func ParseSlot(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidTimeSlot
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, ErrInvalidTimeSlot
	}
	return t.UTC(), nil
}

type Generator struct {
	loc *time.Location
}

func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{loc: loc}
}

func (g *Generator) Location() *time.Location { return g.loc }

func (g *Generator) ParseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), g.loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

// DateOf returns the studio-local calendar day of an instant.
func (g *Generator) DateOf(t time.Time) string {
	return t.In(g.loc).Format(DateLayout)
}

// Generate returns the ordered candidate slots for a studio-local date.
// A blocked date or a day type without templates yields an empty list.
func (g *Generator) Generate(date string, cfg SlotConfig, blocked []string) ([]Slot, error) {
	day, err := g.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if slices.Contains(blocked, day.Format(DateLayout)) {
		return []Slot{}, nil
	}

	templates := cfg[DayTypeOf(day.Weekday())]
	slots := make([]Slot, 0, len(templates))
	seen := make(map[int64]struct{}, len(templates))
	for _, t := range templates {
		if t.Validate() != nil {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, g.loc).UTC()
		key := NormalizeSlot(start)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		label := t.Label
		if label == "" {
			label = start.In(g.loc).Format("3:04 PM")
		}
		slots = append(slots, Slot{Start: start, Label: label})
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots, nil
}

// Find reports the candidate matching the given instant.
func Find(slots []Slot, at time.Time) (Slot, bool) {
	key := NormalizeSlot(at)
	for _, s := range slots {
		if s.Key() == key {
			return s, true
		}
	}
	return Slot{}, false
}
