package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStep1FlagsEveryBadNumericField(t *testing.T) {
	s := NewStore()
	errs := CollectStep1(s, Step1Form{
		Days:           "0",
		MorningHours:   "abc",
		AfternoonHours: "-1",
		NumProfessors:  "",
		NumClasses:     "2",
	})

	assert.Contains(t, errs, FieldDays)
	assert.Contains(t, errs, FieldMorningHours)
	assert.Contains(t, errs, FieldAfternoonHours)
	assert.Contains(t, errs, FieldNumProfessors)
	assert.NotContains(t, errs, FieldNumClasses)

	// Nothing committed.
	assert.Equal(t, 0, s.Config().Days)
}

func TestCollectStep1DefaultNames(t *testing.T) {
	s := NewStore()
	errs := CollectStep1(s, Step1Form{
		Days:           "5",
		MorningHours:   "4",
		AfternoonHours: "0",
		NumProfessors:  "2",
		NumClasses:     "3",
	})
	require.Empty(t, errs)

	cfg := s.Config()
	assert.Equal(t, []string{"Prof 1", "Prof 2"}, cfg.ProfessorNames)
	assert.Equal(t, []string{"Classe 1", "Classe 2", "Classe 3"}, cfg.ClassNames)
	assert.Equal(t, 4, cfg.DailyHours)
}

func TestCollectStep1NameCountMustMatch(t *testing.T) {
	s := NewStore()
	errs := CollectStep1(s, Step1Form{
		Days:           "5",
		MorningHours:   "4",
		AfternoonHours: "2",
		NumProfessors:  "3",
		NumClasses:     "2",
		ProfessorNames: "Bruno, anna",
	})
	require.Contains(t, errs, FieldProfessorNames)
	assert.Equal(t, 0, s.Config().Days)
}

func TestCollectStep1FlagsEveryBadList(t *testing.T) {
	s := NewStore()
	errs := CollectStep1(s, Step1Form{
		Days:                 "5",
		MorningHours:         "4",
		AfternoonHours:       "2",
		NumProfessors:        "3",
		NumClasses:           "2",
		ProfessorNames:       "Bruno, anna",
		ClassNames:           "1A, 2B, 3C",
		DayNames:             "Lunedì",
		HourNames:            "Prima",
		FreeAfternoonEnabled: true,
		FreeAfternoonDay:     "9",
	})

	assert.Contains(t, errs, FieldProfessorNames)
	assert.Contains(t, errs, FieldClassNames)
	assert.Contains(t, errs, FieldDayNames)
	assert.Contains(t, errs, FieldHourNames)
	assert.Contains(t, errs, FieldFreeAfternoonDay)
	assert.Equal(t, 0, s.Config().Days)
}

func TestCollectStep1NameListsTrimBlanks(t *testing.T) {
	s := NewStore()
	errs := CollectStep1(s, Step1Form{
		Days:           "5",
		MorningHours:   "4",
		AfternoonHours: "2",
		NumProfessors:  "2",
		NumClasses:     "2",
		ProfessorNames: " Bruno ,, anna , ",
		ClassNames:     "1A,2B",
	})
	require.Empty(t, errs)
	assert.Equal(t, []string{"Bruno", "anna"}, s.Config().ProfessorNames)
}

func TestCollectStep1OptionalLabelLists(t *testing.T) {
	s := NewStore()
	errs := CollectStep1(s, Step1Form{
		Days:           "2",
		MorningHours:   "2",
		AfternoonHours: "1",
		NumProfessors:  "1",
		NumClasses:     "1",
		DayNames:       "Lunedì, Martedì",
		HourNames:      "Prima, Seconda, Quinta",
	})
	require.Empty(t, errs)
	assert.Equal(t, []string{"Lunedì", "Martedì"}, s.Config().DayNames)
	assert.Equal(t, []string{"Prima", "Seconda", "Quinta"}, s.Config().HourNames)

	errs = CollectStep1(s, Step1Form{
		Days:           "2",
		MorningHours:   "2",
		AfternoonHours: "1",
		NumProfessors:  "1",
		NumClasses:     "1",
		HourNames:      "Prima, Seconda",
	})
	assert.Contains(t, errs, FieldHourNames)
}

func TestCollectStep1FreeAfternoonDayRange(t *testing.T) {
	s := NewStore()
	form := Step1Form{
		Days:                 "5",
		MorningHours:         "4",
		AfternoonHours:       "2",
		NumProfessors:        "1",
		NumClasses:           "1",
		FreeAfternoonEnabled: true,
		FreeAfternoonDay:     "6",
	}
	errs := CollectStep1(s, form)
	require.Contains(t, errs, FieldFreeAfternoonDay)
	assert.Equal(t, 0, s.Config().Days)

	form.FreeAfternoonDay = "5"
	errs = CollectStep1(s, form)
	require.Empty(t, errs)
	require.NotNil(t, s.Config().FreeAfternoonDay)
	assert.Equal(t, 5, *s.Config().FreeAfternoonDay)
}
