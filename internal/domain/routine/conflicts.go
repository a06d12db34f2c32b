package routine

import (
	"fmt"
	"sort"
)

// ConflictKind names one of the independent checks the analyzer runs.
type ConflictKind string

const (
	// TeacherClash - the same teacher is in two classes in one slot.
	TeacherClash ConflictKind = "teacher_clash"
	// ConsecutiveClassClash - a teacher takes two adjacent periods of one class.
	ConsecutiveClassClash ConflictKind = "consecutive_class_clash"
	// BreakClash - a teacher takes the periods either side of the break.
	BreakClash ConflictKind = "break_clash"
	// SubjectRepetitionClash - a subject appears twice in one class day.
	SubjectRepetitionClash ConflictKind = "subject_repetition_clash"
	// TeacherSubjectMismatch - a teacher is not allocated the cell's subject.
	TeacherSubjectMismatch ConflictKind = "teacher_subject_mismatch"
)

// ConflictKinds lists every kind in report order.
var ConflictKinds = []ConflictKind{
	TeacherClash,
	ConsecutiveClassClash,
	BreakClash,
	SubjectRepetitionClash,
	TeacherSubjectMismatch,
}

// SlotKey identifies one cell as "<class>-<day>-<periodIndex>".
type SlotKey string

// NewSlotKey builds the key for a slot.
func NewSlotKey(class, day string, period int) SlotKey {
	return SlotKey(fmt.Sprintf("%s-%s-%d", class, day, period))
}

// Conflicts holds one key set per ConflictKind. It is read-only once
// returned from the analyzer.
type Conflicts struct {
	sets map[ConflictKind]map[SlotKey]struct{}
}

func newConflicts() *Conflicts {
	c := &Conflicts{sets: make(map[ConflictKind]map[SlotKey]struct{}, len(ConflictKinds))}
	for _, k := range ConflictKinds {
		c.sets[k] = make(map[SlotKey]struct{})
	}
	return c
}

func (c *Conflicts) add(kind ConflictKind, keys ...SlotKey) {
	for _, k := range keys {
		c.sets[kind][k] = struct{}{}
	}
}

// Has reports whether the slot carries the conflict kind.
func (c *Conflicts) Has(kind ConflictKind, key SlotKey) bool {
	if c == nil {
		return false
	}
	_, ok := c.sets[kind][key]
	return ok
}

// Kinds returns every conflict kind flagged on the slot, in report order.
func (c *Conflicts) Kinds(key SlotKey) []ConflictKind {
	var out []ConflictKind
	for _, k := range ConflictKinds {
		if c.Has(k, key) {
			out = append(out, k)
		}
	}
	return out
}

// Keys returns the flagged slots of one kind, sorted.
func (c *Conflicts) Keys(kind ConflictKind) []SlotKey {
	if c == nil {
		return nil
	}
	out := make([]SlotKey, 0, len(c.sets[kind]))
	for k := range c.sets[kind] {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of slots flagged with the kind.
func (c *Conflicts) Len(kind ConflictKind) int {
	if c == nil {
		return 0
	}
	return len(c.sets[kind])
}

// Flagged returns the number of distinct slots carrying any conflict.
func (c *Conflicts) Flagged() int {
	if c == nil {
		return 0
	}
	all := make(map[SlotKey]struct{})
	for _, set := range c.sets {
		for k := range set {
			all[k] = struct{}{}
		}
	}
	return len(all)
}

// IsEmpty reports whether no conflict of any kind was found.
func (c *Conflicts) IsEmpty() bool {
	return c.Flagged() == 0
}
