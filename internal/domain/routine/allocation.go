package routine

import (
	"fmt"
	"sort"

	"github.com/alem-hub/school-core/internal/domain/shared"
)

// Allocation records which subjects each teacher may teach in which classes.
// It is advisory: the analyzer only uses it to flag mismatches.
//
// A nil *Allocation behaves as an empty table.
type Allocation struct {
	// teacher -> canonical subject -> class set
	teachers map[string]map[string]map[string]struct{}
}

// NewAllocation builds an allocation table from
// teacher -> subject -> classes. Subject names are normalized with n.
func NewAllocation(entries map[string]map[string][]string, n *SubjectNormalizer) (*Allocation, error) {
	a := &Allocation{teachers: make(map[string]map[string]map[string]struct{}, len(entries))}

	for teacher, subjects := range entries {
		t := cleanName(teacher)
		if t == "" {
			return nil, shared.ErrEmptyTeacherName
		}
		bySubject, ok := a.teachers[t]
		if !ok {
			bySubject = make(map[string]map[string]struct{}, len(subjects))
			a.teachers[t] = bySubject
		}
		for subject, classes := range subjects {
			s := n.Normalize(subject)
			if s == "" {
				return nil, shared.WrapError("reference", "Validate", shared.ErrReferenceFormat,
					fmt.Sprintf("teacher %q has an empty subject name", t), shared.ErrEmptyValue)
			}
			set, ok := bySubject[s]
			if !ok {
				set = make(map[string]struct{}, len(classes))
				bySubject[s] = set
			}
			for _, class := range classes {
				if c := cleanName(class); c != "" {
					set[c] = struct{}{}
				}
			}
		}
	}

	return a, nil
}

// Knows reports whether the teacher has an entry in the table.
func (a *Allocation) Knows(teacher string) bool {
	if a == nil {
		return false
	}
	_, ok := a.teachers[teacher]
	return ok
}

// Allows reports whether the teacher is allocated the canonical subject in
// the class.
func (a *Allocation) Allows(teacher, subject, class string) bool {
	if a == nil {
		return false
	}
	classes, ok := a.teachers[teacher][subject]
	if !ok {
		return false
	}
	_, ok = classes[class]
	return ok
}

// AllowsAny reports whether any of the subjects is allocated to the teacher
// in the class.
func (a *Allocation) AllowsAny(teacher string, subjects []string, class string) bool {
	for _, s := range subjects {
		if a.Allows(teacher, s, class) {
			return true
		}
	}
	return false
}

// Teachers returns all teacher names, sorted.
func (a *Allocation) Teachers() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.teachers))
	for t := range a.teachers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of teachers in the table.
func (a *Allocation) Len() int {
	if a == nil {
		return 0
	}
	return len(a.teachers)
}
