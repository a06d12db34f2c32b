package routine

import (
	"fmt"

	"github.com/alem-hub/school-core/internal/domain/shared"
)

// SubjectNormalizer collapses spelling and abbreviation variants of subject
// names to one canonical name, e.g. "ধর্ম" → "ধর্ম ও নৈতিক শিক্ষা".
//
// A nil *SubjectNormalizer is valid and only cleans whitespace.
type SubjectNormalizer struct {
	aliases map[string]string
}

// NewSubjectNormalizer builds a normalizer from an alias → canonical table.
// Aliases must point directly at a canonical name, not at another alias.
func NewSubjectNormalizer(aliases map[string]string) (*SubjectNormalizer, error) {
	table := make(map[string]string, len(aliases))
	for alias, canonical := range aliases {
		a, c := cleanName(alias), cleanName(canonical)
		if a == "" || c == "" {
			return nil, shared.WrapError("reference", "Validate", shared.ErrReferenceFormat,
				fmt.Sprintf("empty subject alias %q → %q", alias, canonical), shared.ErrEmptyValue)
		}
		if a == c {
			continue
		}
		table[a] = c
	}

	for alias, canonical := range table {
		if _, chained := table[canonical]; chained {
			return nil, shared.WrapError("reference", "Validate", shared.ErrAliasCycle,
				fmt.Sprintf("%q → %q", alias, canonical), nil)
		}
	}

	return &SubjectNormalizer{aliases: table}, nil
}

// Normalize returns the canonical form of a subject name.
func (n *SubjectNormalizer) Normalize(name string) string {
	name = cleanName(name)
	if n == nil {
		return name
	}
	if canonical, ok := n.aliases[name]; ok {
		return canonical
	}
	return name
}

// NormalizeAll normalizes a list of subject names and drops repeats.
func (n *SubjectNormalizer) NormalizeAll(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if s := n.Normalize(name); s != "" {
			out = append(out, s)
		}
	}
	return uniqueStrings(out)
}

// Len returns the number of aliases.
func (n *SubjectNormalizer) Len() int {
	if n == nil {
		return 0
	}
	return len(n.aliases)
}
