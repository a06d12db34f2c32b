package routine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alem-hub/school-core/internal/domain/shared"
)

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()

	assert.NoError(t, l.Validate())
	assert.Len(t, l.Days, 5)
	assert.Equal(t, 5, l.LastPeriod())
	assert.Equal(t, []PeriodPair{{0, 1}, {1, 2}, {3, 4}, {4, 5}}, l.ConsecutivePairs())

	pair, ok := l.BreakPair()
	assert.True(t, ok)
	assert.Equal(t, PeriodPair{2, 3}, pair)

	assert.True(t, l.BeforeBreak(2))
	assert.False(t, l.BeforeBreak(3))
}

func TestLayout_NoBreak(t *testing.T) {
	l := Layout{Days: []string{"A"}, Periods: 4, BreakAfter: 0}

	assert.NoError(t, l.Validate())
	assert.Equal(t, []PeriodPair{{0, 1}, {1, 2}, {2, 3}}, l.ConsecutivePairs())
	_, ok := l.BreakPair()
	assert.False(t, ok)
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   error
	}{
		{"no days", Layout{Periods: 6, BreakAfter: 3}, shared.ErrNoDays},
		{"duplicate day", Layout{Days: []string{"A", "A"}, Periods: 6, BreakAfter: 3}, shared.ErrDuplicateDayName},
		{"break past end", Layout{Days: []string{"A"}, Periods: 6, BreakAfter: 7}, shared.ErrBreakOutOfRange},
		{"no periods", Layout{Days: []string{"A"}, Periods: 0}, shared.ErrInvalidLayout},
		{"blank day", Layout{Days: []string{" "}, Periods: 6, BreakAfter: 3}, shared.ErrEmptyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, shared.IsValidation(err))
		})
	}
}
