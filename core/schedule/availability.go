package schedule

import (
	"sort"

	"github.com/pkg/errors"
)

var errInvalidSlot = errors.New("invalid time slot")

// Index is the per-day set of occupied times over the whole week grid.
// It is a derived view: rebuild it from the class table on every refresh.
type Index struct {
	occupied map[string]map[string]struct{} // {day: {time}}
}

// NewIndex builds the index from every schedule code in `codes`.
// When `carveOut` is a valid code (the slot of the class being edited),
// its time is removed from its own day's occupied set.
func NewIndex(codes []string, carveOut string) *Index {
	idx := &Index{occupied: make(map[string]map[string]struct{}, len(Days))}
	for _, day := range Days {
		idx.occupied[day] = make(map[string]struct{})
	}
	for _, code := range codes {
		if day, tm, ok := Decode(code); ok {
			idx.occupied[day][tm] = struct{}{}
		}
	}
	if day, tm, ok := Decode(carveOut); ok {
		delete(idx.occupied[day], tm)
	}
	return idx
}

// IsTaken reports whether `tm` is occupied on `day`.
func (idx *Index) IsTaken(day, tm string) bool {
	_, ok := idx.occupied[day][tm]
	return ok
}

// Occupied returns the occupied times of `day`, sorted.
func (idx *Index) Occupied(day string) []string {
	times := make([]string, 0, len(idx.occupied[day]))
	for tm := range idx.occupied[day] {
		times = append(times, tm)
	}
	sort.Strings(times)
	return times
}

// SlotState is the rendering state of one slot of the grid.
type SlotState struct {
	Time     string `json:"time"`
	Taken    bool   `json:"taken"`
	Selected bool   `json:"selected"`
}

// Picker holds the slot-picker state of a class form.
// The chosen slot survives day switches: coming back to its day restores it.
type Picker struct {
	index   *Index
	day     string
	chosen  Code
	hasPick bool
}

// NewPicker starts a picker on Days[0], or on the day of `editing`
// (the schedule of the class being edited) with its slot preselected.
func NewPicker(index *Index, editing string) *Picker {
	p := &Picker{index: index, day: Days[0]}
	if c, ok := Parse(editing); ok {
		p.day = c.Day
		p.chosen = c
		p.hasPick = true
	}
	return p
}

// Day returns the currently displayed day.
func (p *Picker) Day() string { return p.day }

// SelectDay switches the displayed day.
func (p *Picker) SelectDay(day string) error {
	if !IsDay(day) {
		return errors.Errorf("invalid day %q", day)
	}
	p.day = day
	return nil
}

// Choose picks `tm` on the displayed day.
func (p *Picker) Choose(tm string) error {
	if !IsSlot(tm) {
		return errors.Wrap(errInvalidSlot, tm)
	}
	c, _ := Parse(Encode(p.day, tm))
	p.chosen = c
	p.hasPick = true
	return nil
}

// Code returns the chosen schedule code; ok is false until a slot is chosen.
func (p *Picker) Code() (string, bool) {
	if !p.hasPick {
		return "", false
	}
	return p.chosen.String(), true
}

// Grid renders every slot of the displayed day.
func (p *Picker) Grid() []SlotState {
	grid := make([]SlotState, 0, len(Slots))
	for _, tm := range Slots {
		grid = append(grid, SlotState{
			Time:     tm,
			Taken:    p.index.IsTaken(p.day, tm),
			Selected: p.hasPick && p.chosen.Day == p.day && p.chosen.Time() == tm,
		})
	}
	return grid
}
