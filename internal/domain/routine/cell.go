package routine

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	teacherSeparator = " - "
	listSeparator    = "/"
)

// Cell is one period of one class on one day.
type Cell struct {
	Subjects []string `json:"subjects,omitempty"`
	Teachers []string `json:"teachers,omitempty"`
}

// ParseCell decodes a routine cell string of the form
// "<subject>[/<subject>...] - <teacher>[/<teacher>...]".
//
// The text after the last " - " is the teacher list and everything before it
// is the subject list. A string without " - " is subject only.
func ParseCell(raw string) Cell {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Cell{}
	}

	idx := strings.LastIndex(raw, teacherSeparator)
	if idx < 0 {
		return Cell{Subjects: splitList(raw)}
	}

	return Cell{
		Subjects: splitList(raw[:idx]),
		Teachers: splitList(raw[idx+len(teacherSeparator):]),
	}
}

// IsEmpty reports whether the cell has neither subject nor teacher.
func (c Cell) IsEmpty() bool {
	return len(c.Subjects) == 0 && len(c.Teachers) == 0
}

// HasTeacher reports whether at least one teacher is assigned.
func (c Cell) HasTeacher() bool {
	return len(c.Teachers) > 0
}

// SharesTeacher reports whether any teacher appears in both cells.
func (c Cell) SharesTeacher(other Cell) bool {
	for _, t := range c.Teachers {
		for _, o := range other.Teachers {
			if t == o {
				return true
			}
		}
	}
	return false
}

// String re-encodes the cell in routine notation.
func (c Cell) String() string {
	s := strings.Join(c.Subjects, listSeparator)
	if len(c.Teachers) == 0 {
		return s
	}
	return s + teacherSeparator + strings.Join(c.Teachers, listSeparator)
}

func (c Cell) clone() Cell {
	out := Cell{}
	if len(c.Subjects) > 0 {
		out.Subjects = append([]string(nil), c.Subjects...)
	}
	if len(c.Teachers) > 0 {
		out.Teachers = append([]string(nil), c.Teachers...)
	}
	return out
}

func splitList(s string) []string {
	parts := strings.Split(s, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = cleanName(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// cleanName trims, collapses inner whitespace and applies NFC so that the
// same Bengali name typed on different keyboards compares equal.
func cleanName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// uniqueStrings returns s without repeats, keeping first-seen order.
func uniqueStrings(s []string) []string {
	if len(s) < 2 {
		return s
	}
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
