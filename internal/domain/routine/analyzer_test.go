package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sunday  = DefaultDays[0]
	monday  = DefaultDays[1]
	six     = "ষষ্ঠ"
	seven   = "সপ্তম"
	eight   = "অষ্টম"
	anisur  = "আনিছুর"
	shanti  = "শান্তি"
	rashed  = "রাশেদ"
	jannat  = "জান্নাতুন"
	math    = "গণিত"
	bangla  = "বাংলা"
	english = "ইংরেজি"
	science = "বিজ্ঞান"
)

func cell(subject, teachers string) string {
	if teachers == "" {
		return subject
	}
	return subject + " - " + teachers
}

func newTestAllocation(t *testing.T, entries map[string]map[string][]string, n *SubjectNormalizer) *Allocation {
	t.Helper()
	a, err := NewAllocation(entries, n)
	require.NoError(t, err)
	return a
}

func mustTimetable(t *testing.T, raw map[string]map[string][]string) *Timetable {
	t.Helper()
	tt, err := NewTimetable(raw)
	require.NoError(t, err)
	return tt
}

func TestAnalyze_TeacherDoubleBooking(t *testing.T) {
	tt := mustTimetable(t, map[string]map[string][]string{
		six: {
			sunday: {cell(math, anisur), cell(bangla, shanti)},
		},
		seven: {
			sunday: {cell(english, anisur), cell(science, rashed)},
		},
		eight: {
			sunday: {cell(science, jannat), cell(math, jannat)},
		},
	})

	got := Analyze(tt, nil, nil)

	assert.True(t, got.Conflicts.Has(TeacherClash, NewSlotKey(six, sunday, 0)))
	assert.True(t, got.Conflicts.Has(TeacherClash, NewSlotKey(seven, sunday, 0)))
	assert.False(t, got.Conflicts.Has(TeacherClash, NewSlotKey(eight, sunday, 0)))
	assert.False(t, got.Conflicts.Has(TeacherClash, NewSlotKey(six, sunday, 1)))
	assert.Equal(t, 2, got.Conflicts.Len(TeacherClash))
}

func TestAnalyze_DoubleBookingWithCoTeachers(t *testing.T) {
	tt := mustTimetable(t, map[string]map[string][]string{
		six:   {monday: {"", "", "", cell(bangla, shanti)}},
		seven: {monday: {"", "", "", cell(science, rashed+"/"+shanti)}},
	})

	got := Analyze(tt, nil, nil)

	assert.Equal(t, []SlotKey{
		NewSlotKey(six, monday, 3),
		NewSlotKey(seven, monday, 3),
	}, got.Conflicts.Keys(TeacherClash))
}

func TestAnalyze_DistinctTeachersDoNotClash(t *testing.T) {
	tt := mustTimetable(t, map[string]map[string][]string{
		six:   {sunday: {cell(math, anisur+"/"+jannat)}},
		seven: {sunday: {cell(english, shanti+"/"+rashed)}},
	})

	got := Analyze(tt, nil, nil)

	assert.Equal(t, 0, got.Conflicts.Len(TeacherClash))
	assert.True(t, got.Conflicts.IsEmpty())
}

func TestAnalyze_ConsecutiveAndBreakClashes(t *testing.T) {
	tt := mustTimetable(t, map[string]map[string][]string{
		six: {
			sunday: {
				cell(math, anisur),
				cell(bangla, anisur),
				cell(english, shanti),
				cell(science, shanti),
				"",
				"",
			},
		},
	})

	got := Analyze(tt, nil, nil)
	c := got.Conflicts

	assert.True(t, c.Has(ConsecutiveClassClash, NewSlotKey(six, sunday, 0)))
	assert.True(t, c.Has(ConsecutiveClassClash, NewSlotKey(six, sunday, 1)))
	assert.False(t, c.Has(ConsecutiveClassClash, NewSlotKey(six, sunday, 2)))
	assert.False(t, c.Has(ConsecutiveClassClash, NewSlotKey(six, sunday, 3)))

	assert.Equal(t, []SlotKey{
		NewSlotKey(six, sunday, 2),
		NewSlotKey(six, sunday, 3),
	}, c.Keys(BreakClash))
}

func TestAnalyze_ConsecutiveAfterBreak(t *testing.T) {
	tt := mustTimetable(t, map[string]map[string][]string{
		six: {
			sunday: {"", "", "", "", cell(math, rashed), cell(science, jannat+"/"+rashed)},
		},
	})

	got := Analyze(tt, nil, nil)

	assert.Equal(t, []SlotKey{
		NewSlotKey(six, sunday, 4),
		NewSlotKey(six, sunday, 5),
	}, got.Conflicts.Keys(ConsecutiveClassClash))
	assert.Equal(t, 0, got.Conflicts.Len(BreakClash))
}

func TestAnalyze_SubjectRepetition(t *testing.T) {
	n, err := NewSubjectNormalizer(map[string]string{"ধর্ম": "ধর্ম ও নৈতিক শিক্ষা"})
	require.NoError(t, err)

	tt := mustTimetable(t, map[string]map[string][]string{
		six: {
			sunday: {
				cell(math, anisur),
				cell(bangla, shanti),
				cell(math, rashed),
				cell("ধর্ম", jannat),
				cell(english, shanti),
				cell("ধর্ম ও নৈতিক শিক্ষা", anisur),
			},
			monday: {
				cell(bangla+"/"+english, shanti),
				cell(science, rashed),
				cell(english, anisur),
			},
		},
	})

	got := Analyzer{layout: DefaultLayout(), normalizer: n}
	c := got.Analyze(tt).Conflicts

	for _, p := range []int{0, 2, 3, 5} {
		assert.True(t, c.Has(SubjectRepetitionClash, NewSlotKey(six, sunday, p)), "period %d", p)
	}
	for _, p := range []int{1, 4} {
		assert.False(t, c.Has(SubjectRepetitionClash, NewSlotKey(six, sunday, p)), "period %d", p)
	}

	assert.True(t, c.Has(SubjectRepetitionClash, NewSlotKey(six, monday, 0)))
	assert.True(t, c.Has(SubjectRepetitionClash, NewSlotKey(six, monday, 2)))
	assert.False(t, c.Has(SubjectRepetitionClash, NewSlotKey(six, monday, 1)))
}

func TestAnalyze_TeacherSubjectMismatch(t *testing.T) {
	n, err := NewSubjectNormalizer(map[string]string{"ধর্ম": "ধর্ম ও নৈতিক শিক্ষা"})
	require.NoError(t, err)
	alloc := newTestAllocation(t, map[string]map[string][]string{
		anisur: {
			math:   {six},
			"ধর্ম": {six, seven},
		},
	}, n)

	tt := mustTimetable(t, map[string]map[string][]string{
		six: {
			sunday: {
				cell(math, anisur),
				cell(bangla, anisur),
				cell("ধর্ম ও নৈতিক শিক্ষা", anisur),
				cell(bangla, "অজানা"),
				cell(math, ""),
				cell(bangla+"/"+math, anisur),
			},
		},
		seven: {
			sunday: {cell(math, anisur), cell(math, shanti+"/"+anisur)},
		},
	})

	a, err := NewAnalyzer(DefaultLayout(), alloc, n)
	require.NoError(t, err)
	c := a.Analyze(tt).Conflicts

	assert.Equal(t, []SlotKey{
		NewSlotKey(six, sunday, 1),
		NewSlotKey(seven, sunday, 0),
		NewSlotKey(seven, sunday, 1),
	}, c.Keys(TeacherSubjectMismatch))
}

func TestAnalyze_Statistics(t *testing.T) {
	alloc := newTestAllocation(t, map[string]map[string][]string{
		anisur: {math: {six}, bangla: {six}},
		shanti: {english: {seven}},
	}, nil)

	tt := mustTimetable(t, map[string]map[string][]string{
		six: {
			sunday: {cell(math, anisur), "", "", cell(math, anisur), "", cell(bangla, anisur+"/অজানা")},
			monday: {"", cell(math, anisur)},
		},
		seven: {},
	})

	got := Analyze(tt, alloc, nil)

	require.Contains(t, got.TeacherStats, anisur)
	load := got.TeacherStats[anisur]
	assert.Equal(t, 4, load.TotalPeriods)
	assert.Equal(t, 1, load.BeforeBreakByDay[sunday])
	assert.Equal(t, 2, load.AfterBreakByDay[sunday])
	assert.Equal(t, 1, load.LastPeriodByDay[sunday])
	assert.Equal(t, 1, load.BeforeBreakByDay[monday])
	assert.Equal(t, 0, load.AfterBreakByDay[monday])
	assert.Equal(t, 1, load.LastPeriods())
	assert.Equal(t, 3, load.Daily(sunday))

	day, n := load.BusiestDay(DefaultDays)
	assert.Equal(t, sunday, day)
	assert.Equal(t, 3, n)

	require.Contains(t, got.TeacherStats, shanti)
	idle := got.TeacherStats[shanti]
	assert.Equal(t, 0, idle.TotalPeriods)
	assert.Len(t, idle.BeforeBreakByDay, len(DefaultDays))

	assert.NotContains(t, got.TeacherStats, "অজানা")
	assert.Equal(t, []string{"অজানা"}, got.UnknownTeachers)

	assert.Equal(t, SubjectFrequency{math: 3, bangla: 1}, got.ClassStats[six])
	assert.Equal(t, 4, got.ClassStats[six].Total())
	assert.Equal(t, SubjectFrequency{}, got.ClassStats[seven])
}

func TestAnalyze_MissingCellsAndUnknownDays(t *testing.T) {
	tt := mustTimetable(t, map[string]map[string][]string{
		six: {
			sunday:     {cell(math, anisur)},
			"শুক্রবার": {cell(math, anisur), cell(math, anisur)},
		},
		seven: {
			"শুক্রবার": {cell(math, anisur)},
		},
	})

	got := Analyze(tt, nil, nil)

	assert.True(t, got.Conflicts.IsEmpty())
	assert.Equal(t, SubjectFrequency{math: 1}, got.ClassStats[six])
	assert.Equal(t, []string{anisur}, got.UnknownTeachers)
}

func TestAnalyze_Colors(t *testing.T) {
	alloc := newTestAllocation(t, map[string]map[string][]string{
		anisur: {math: {six}},
		shanti: {bangla: {six}},
	}, nil)
	tt := mustTimetable(t, map[string]map[string][]string{
		six: {sunday: {cell(math, rashed)}},
	})

	got := Analyze(tt, alloc, nil)

	known := alloc.Teachers()
	assert.Equal(t, teacherPalette[0], got.TeacherColors[known[0]])
	assert.Equal(t, teacherPalette[1], got.TeacherColors[known[1]])
	assert.Equal(t, ColorFor(rashed), got.TeacherColors[rashed])
	assert.Len(t, got.TeacherColors, 3)
}

func TestAnalyze_Idempotent(t *testing.T) {
	alloc := newTestAllocation(t, map[string]map[string][]string{
		anisur: {math: {six}},
		shanti: {bangla: {seven}},
	}, nil)
	tt := mustTimetable(t, map[string]map[string][]string{
		six: {
			sunday: {cell(math, anisur), cell(math, anisur), cell(bangla, shanti), cell(english, shanti)},
		},
		seven: {
			sunday: {cell(bangla, anisur), cell(bangla, shanti)},
		},
	})

	first := Analyze(tt, alloc, nil)
	second := Analyze(tt, alloc, nil)

	assert.Equal(t, first, second)
	assert.False(t, first.Conflicts.IsEmpty())
}

func TestNewAnalyzer_InvalidLayout(t *testing.T) {
	_, err := NewAnalyzer(Layout{}, nil, nil)
	assert.Error(t, err)
}
