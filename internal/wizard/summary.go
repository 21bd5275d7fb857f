package wizard

// Summary is the read-only recap shown on the final step. Professor rows
// follow the display order so the list lines up with the grids.
type Summary struct {
	Days           int      `json:"days"`
	DayNames       []string `json:"dayNames"`
	MorningHours   int      `json:"morningHours"`
	AfternoonHours int      `json:"afternoonHours"`
	DailyHours     int      `json:"dailyHours"`
	HourNames      []string `json:"hourNames"`

	FreeAfternoon    bool `json:"freeAfternoon"`
	FreeAfternoonDay *int `json:"freeAfternoonDay"`

	NumProfessors int             `json:"numProfessors"`
	NumClasses    int             `json:"numClasses"`
	Professors    []SummaryRow    `json:"professors"`
	Classes       []SummaryColumn `json:"classes"`
	TotalHours    int             `json:"totalHours"`

	Method      string `json:"method"`
	SeedEnabled bool   `json:"seedEnabled"`
	Seed        *int   `json:"seed,omitempty"`
}

// SummaryRow recaps one professor: assigned workload next to how much of the
// week they marked as available.
type SummaryRow struct {
	Name                string `json:"name"`
	TotalHours          int    `json:"totalHours"`
	AvailabilityPercent int    `json:"availabilityPercent"`
}

// SummaryColumn recaps one class with its total scheduled hours.
type SummaryColumn struct {
	Name       string `json:"name"`
	TotalHours int    `json:"totalHours"`
}

// BuildSummary recomputes the recap from the live configuration and
// matrices. A free afternoon only counts when afternoon hours exist to skip.
func BuildSummary(s *Store) Summary {
	cfg := s.Config()
	hours := s.Hours()
	availability := s.Availability()

	order := NewDisplayOrder(cfg.ProfessorNames)
	rowTotals := RowTotals(hours)
	colTotals := ColumnTotals(hours)
	percents := AvailabilityPercents(availability)

	summary := Summary{
		Days:             cfg.Days,
		DayNames:         cfg.DayNames,
		MorningHours:     cfg.MorningHours,
		AfternoonHours:   cfg.AfternoonHours,
		DailyHours:       cfg.DailyHours,
		HourNames:        cfg.HourNames,
		FreeAfternoon:    cfg.FreeAfternoonEnabled && cfg.AfternoonHours > 0,
		FreeAfternoonDay: cfg.FreeAfternoonDay,
		NumProfessors:    cfg.NumProf,
		NumClasses:       cfg.NumClass,
		Method:           cfg.Method,
		SeedEnabled:      cfg.SeedEnabled,
		Seed:             cfg.Seed,
	}
	if !summary.FreeAfternoon {
		summary.FreeAfternoonDay = nil
	}

	summary.Professors = make([]SummaryRow, order.Len())
	for i := 0; i < order.Len(); i++ {
		row := order.Canonical(i)
		total := 0
		percent := 0
		if row < len(rowTotals) {
			total = rowTotals[row]
		}
		if row < len(percents) {
			percent = percents[row]
		}
		summary.Professors[i] = SummaryRow{
			Name:                cfg.ProfessorNames[row],
			TotalHours:          total,
			AvailabilityPercent: percent,
		}
		summary.TotalHours += total
	}

	summary.Classes = make([]SummaryColumn, cfg.NumClass)
	for c := 0; c < cfg.NumClass; c++ {
		name := DefaultClassName(c + 1)
		if c < len(cfg.ClassNames) {
			name = cfg.ClassNames[c]
		}
		total := 0
		if c < len(colTotals) {
			total = colTotals[c]
		}
		summary.Classes[c] = SummaryColumn{Name: name, TotalHours: total}
	}

	return summary
}
