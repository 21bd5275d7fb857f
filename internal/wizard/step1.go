package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// Field keys used for field-scoped validation flags. They follow the form
// field names of the wizard's first step.
const (
	FieldDays             = "days"
	FieldMorningHours     = "morning_hours"
	FieldAfternoonHours   = "afternoon_hours"
	FieldNumProfessors    = "num_professors"
	FieldNumClasses       = "num_classes"
	FieldFreeAfternoonDay = "free_afternoon_day"
	FieldProfessorNames   = "professor_names"
	FieldClassNames       = "class_names"
	FieldDayNames         = "day_names"
	FieldHourNames        = "hour_names"
)

// FieldErrors maps a form field to its validation message. Empty means the
// collection succeeded.
type FieldErrors map[string]string

// Step1Form carries the raw values of the first step, exactly as the user
// typed them. Numeric fields stay strings so the collector owns the parsing.
type Step1Form struct {
	Days           string
	MorningHours   string
	AfternoonHours string
	NumProfessors  string
	NumClasses     string

	FreeAfternoonEnabled bool
	FreeAfternoonDay     string

	ProfessorNames string
	ClassNames     string
	DayNames       string
	HourNames      string
}

// CollectStep1 validates the form and, only if every check passes, commits the
// normalized values to the Store in one atomic Apply. On failure the Store is
// left untouched and the returned FieldErrors flags each offending field.
func CollectStep1(store *Store, form Step1Form) FieldErrors {
	errs := FieldErrors{}

	days, ok := parsePositive(form.Days, 1)
	if !ok {
		errs[FieldDays] = "enter a whole number of at least 1"
	}
	morning, ok := parsePositive(form.MorningHours, 1)
	if !ok {
		errs[FieldMorningHours] = "enter a whole number of at least 1"
	}
	afternoon, ok := parsePositive(form.AfternoonHours, 0)
	if !ok {
		errs[FieldAfternoonHours] = "enter a whole number of at least 0"
	}
	numProf, ok := parsePositive(form.NumProfessors, 1)
	if !ok {
		errs[FieldNumProfessors] = "enter a whole number of at least 1"
	}
	numClass, ok := parsePositive(form.NumClasses, 1)
	if !ok {
		errs[FieldNumClasses] = "enter a whole number of at least 1"
	}
	if len(errs) > 0 {
		return errs
	}

	// List checks flag each field individually: one bad list must not mask
	// another.
	professorNames, ok := collectNames(form.ProfessorNames, numProf, DefaultProfessorName)
	if !ok {
		errs[FieldProfessorNames] = fmt.Sprintf("enter exactly %d names separated by commas", numProf)
	}
	classNames, ok := collectNames(form.ClassNames, numClass, DefaultClassName)
	if !ok {
		errs[FieldClassNames] = fmt.Sprintf("enter exactly %d names separated by commas", numClass)
	}

	dayNames := splitNames(form.DayNames)
	if len(dayNames) > 0 && len(dayNames) != days {
		errs[FieldDayNames] = fmt.Sprintf("enter exactly %d names separated by commas", days)
	}

	dailyHours := morning + afternoon
	hourNames := splitNames(form.HourNames)
	if len(hourNames) > 0 && len(hourNames) != dailyHours {
		errs[FieldHourNames] = fmt.Sprintf("enter exactly %d labels separated by commas", dailyHours)
	}

	var freeDay *int
	if form.FreeAfternoonEnabled {
		day, ok := parsePositive(form.FreeAfternoonDay, 1)
		if !ok || day > days {
			errs[FieldFreeAfternoonDay] = fmt.Sprintf("enter a day between 1 and %d", days)
		} else {
			freeDay = &day
		}
	}
	if len(errs) > 0 {
		return errs
	}

	values := Step1Values{
		Days:           days,
		MorningHours:   morning,
		AfternoonHours: afternoon,
		NumProf:        numProf,
		NumClass:       numClass,
		ProfessorNames: professorNames,
		ClassNames:     classNames,
		DayNames:       dayNames,
		HourNames:      hourNames,
	}
	if freeDay != nil {
		values.FreeAfternoonEnabled = true
		values.FreeAfternoonDay = freeDay
	}

	store.Apply(values)
	return nil
}

func parsePositive(raw string, min int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return 0, false
	}
	return n, true
}

// splitNames splits a comma-separated list, trimming blanks and dropping
// empty entries. Empty input yields an empty list.
func splitNames(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// collectNames applies the name-list rule: empty input generates defaults,
// non-empty input must match the expected count exactly.
func collectNames(raw string, count int, fallback func(int) string) ([]string, bool) {
	names := splitNames(raw)
	if len(names) == 0 {
		names = make([]string, count)
		for i := range names {
			names[i] = fallback(i + 1)
		}
		return names, true
	}
	if len(names) != count {
		return nil, false
	}
	return names, true
}
