package routine

import (
	"fmt"
	"sort"

	"github.com/alem-hub/school-core/internal/domain/shared"
)

// Timetable is an immutable weekly routine: class -> day -> period cells.
type Timetable struct {
	classes map[string]map[string][]Cell
}

// NewTimetable parses a raw routine of encoded cell strings. Class and day
// names are cleaned before use; two raw names that clean to the same name
// are rejected with shared.ErrDuplicateSlotKey.
func NewTimetable(raw map[string]map[string][]string) (*Timetable, error) {
	t := &Timetable{classes: make(map[string]map[string][]Cell, len(raw))}
	for _, class := range sortedKeys(raw) {
		name := cleanName(class)
		if _, dup := t.classes[name]; dup {
			return nil, duplicateKey("class", name)
		}
		days := raw[class]
		byDay := make(map[string][]Cell, len(days))
		for _, day := range sortedKeys(days) {
			d := cleanName(day)
			if _, dup := byDay[d]; dup {
				return nil, duplicateKey("day", name+" "+d)
			}
			row := make([]Cell, len(days[day]))
			for i, c := range days[day] {
				row[i] = ParseCell(c)
			}
			byDay[d] = row
		}
		t.classes[name] = byDay
	}
	return t, nil
}

func duplicateKey(what, name string) error {
	return shared.WrapError("routine", "Parse", shared.ErrDuplicateSlotKey,
		fmt.Sprintf("%s %q appears twice", what, name), nil)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Classes returns the class names, sorted.
func (t *Timetable) Classes() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.classes))
	for c := range t.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Cell returns the cell at the slot; missing slots are empty.
func (t *Timetable) Cell(class, day string, period int) Cell {
	if t == nil || period < 0 {
		return Cell{}
	}
	row := t.classes[class][day]
	if period >= len(row) {
		return Cell{}
	}
	return row[period].clone()
}

// Row returns exactly periods cells for the class and day, padding missing
// ones with empty cells.
func (t *Timetable) Row(class, day string, periods int) []Cell {
	row := make([]Cell, periods)
	for p := range row {
		row[p] = t.Cell(class, day, p)
	}
	return row
}

// Len returns the number of classes.
func (t *Timetable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.classes)
}
