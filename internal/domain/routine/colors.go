package routine

import "github.com/cespare/xxhash/v2"

// teacherPalette is the set of display colours handed out to teachers.
var teacherPalette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c",
	"#fabebe", "#008080", "#e6beff", "#9a6324",
	"#800000", "#aaffc3", "#808000", "#000075",
}

// AssignColors gives each known teacher a palette colour by position in the
// sorted teacher list, then gives any extra teacher a colour derived from a
// hash of the name. The same inputs always give the same colours.
func AssignColors(known []string, extra []string) map[string]string {
	out := make(map[string]string, len(known)+len(extra))
	for i, t := range known {
		out[t] = teacherPalette[i%len(teacherPalette)]
	}
	for _, t := range extra {
		if _, ok := out[t]; ok {
			continue
		}
		out[t] = ColorFor(t)
	}
	return out
}

// ColorFor returns a stable palette colour for a single name.
func ColorFor(name string) string {
	return teacherPalette[xxhash.Sum64String(name)%uint64(len(teacherPalette))]
}
