package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/school-core/internal/domain/shared"
)

func TestNewTimetable_CleansNames(t *testing.T) {
	raw := map[string]map[string][]string{}
	raw[" "+six+" "] = map[string][]string{sunday + " ": {cell(math, " "+anisur)}}
	raw[seven] = map[string][]string{" " + sunday: {cell(english, anisur+" ")}}
	tt := mustTimetable(t, raw)

	assert.Equal(t, []string{six, seven}, tt.Classes())
	assert.Equal(t, []string{anisur}, tt.Cell(six, sunday, 0).Teachers)

	got := Analyze(tt, nil, nil)
	assert.Equal(t, []SlotKey{
		NewSlotKey(six, sunday, 0),
		NewSlotKey(seven, sunday, 0),
	}, got.Conflicts.Keys(TeacherClash))
}

func TestNewTimetable_RejectsCollidingNames(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]map[string][]string
	}{
		{
			name: "class",
			raw: map[string]map[string][]string{
				six:       {sunday: {cell(math, anisur)}},
				" " + six: {monday: {cell(bangla, shanti)}},
			},
		},
		{
			name: "day",
			raw: map[string]map[string][]string{
				six: {
					sunday:        {cell(math, anisur)},
					sunday + "  ": {cell(bangla, shanti)},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimetable(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrDuplicateSlotKey)
			assert.True(t, shared.IsValidation(err))
		})
	}
}

func TestTimetable_MissingSlots(t *testing.T) {
	tt := mustTimetable(t, map[string]map[string][]string{
		six: {sunday: {cell(math, anisur)}},
	})

	assert.Equal(t, 1, tt.Len())
	assert.True(t, tt.Cell(six, monday, 0).IsEmpty())
	assert.True(t, tt.Cell(six, sunday, -1).IsEmpty())
	assert.Len(t, tt.Row(six, sunday, 3), 3)
	assert.Equal(t, 0, (*Timetable)(nil).Len())
}
