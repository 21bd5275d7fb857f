package wizard

// PersistedSnapshot is the serializable projection of the Store plus the
// current step, used for the durable local slot and for the shareable
// fragment. Field names are part of the stored format and must not change.
type PersistedSnapshot struct {
	CurrentStep      int                `json:"currentStep"`
	Days             int                `json:"days"`
	MorningHours     int                `json:"morningHours"`
	AfternoonHours   int                `json:"afternoonHours"`
	DailyHours       int                `json:"dailyHours"`
	LastMorningHour  int                `json:"lastMorningHour"`
	NumProf          int                `json:"numProf"`
	NumClass         int                `json:"numClass"`
	FreeAfternoonDay *int               `json:"freeAfternoonDay"`
	DayNames         []string           `json:"dayNames"`
	ProfessorNames   []string           `json:"professorNames"`
	ClassNames       []string           `json:"classNames"`
	HourNames        []string           `json:"hourNames"`
	HoursMatrix      HoursMatrix        `json:"hoursMatrix"`
	Availability     AvailabilityMatrix `json:"availability"`
	Method           string             `json:"method"`
	SeedEnabled      bool               `json:"seedEnabled"`
	Seed             *int               `json:"seed"`
}

// Serialize captures the Store and step into a snapshot.
func Serialize(s *Store, step Step) PersistedSnapshot {
	cfg := s.Config()
	return PersistedSnapshot{
		CurrentStep:      int(step),
		Days:             cfg.Days,
		MorningHours:     cfg.MorningHours,
		AfternoonHours:   cfg.AfternoonHours,
		DailyHours:       cfg.DailyHours,
		LastMorningHour:  cfg.LastMorningHour,
		NumProf:          cfg.NumProf,
		NumClass:         cfg.NumClass,
		FreeAfternoonDay: cfg.FreeAfternoonDay,
		DayNames:         cfg.DayNames,
		ProfessorNames:   cfg.ProfessorNames,
		ClassNames:       cfg.ClassNames,
		HourNames:        cfg.HourNames,
		HoursMatrix:      s.Hours(),
		Availability:     s.Availability(),
		Method:           cfg.Method,
		SeedEnabled:      cfg.SeedEnabled,
		Seed:             cfg.Seed,
	}
}

// Hydrate populates the Store from a snapshot: every configuration field is
// restored, both matrices are rebuilt to the snapshot's dimensions (legacy
// availability cells normalize on decode) and the snapshot's step is
// returned, defaulting to step 1. A locked seed without a value mints one.
func Hydrate(s *Store, snap PersistedSnapshot, mint func() int) Step {
	s.ResetConfig()

	s.cfg.Days = clampNonNegative(snap.Days)
	s.cfg.MorningHours = clampNonNegative(snap.MorningHours)
	s.cfg.AfternoonHours = clampNonNegative(snap.AfternoonHours)
	s.cfg.DailyHours = s.cfg.MorningHours + s.cfg.AfternoonHours
	s.cfg.LastMorningHour = s.cfg.MorningHours
	s.cfg.NumProf = clampNonNegative(snap.NumProf)
	s.cfg.NumClass = clampNonNegative(snap.NumClass)
	s.cfg.DayNames = append([]string(nil), snap.DayNames...)
	s.cfg.ProfessorNames = append([]string(nil), snap.ProfessorNames...)
	s.cfg.ClassNames = append([]string(nil), snap.ClassNames...)
	s.cfg.HourNames = append([]string(nil), snap.HourNames...)

	if snap.FreeAfternoonDay != nil && *snap.FreeAfternoonDay >= 1 {
		day := *snap.FreeAfternoonDay
		s.cfg.FreeAfternoonEnabled = true
		s.cfg.FreeAfternoonDay = &day
		s.cfg.WedFree = day == DefaultFreeAfternoonDay
	} else {
		s.cfg.FreeAfternoonEnabled = false
		s.cfg.FreeAfternoonDay = nil
		s.cfg.WedFree = false
	}

	s.SetMethod(snap.Method)

	s.cfg.SeedEnabled = snap.SeedEnabled
	if snap.Seed != nil {
		seed := ClampSeed(*snap.Seed)
		s.cfg.Seed = &seed
	} else if snap.SeedEnabled {
		seed := ClampSeed(mint())
		s.cfg.Seed = &seed
	}

	s.hours = snap.HoursMatrix.Resize(s.cfg.NumProf, s.cfg.NumClass)
	s.availability = snap.Availability.Resize(s.cfg.NumProf, s.cfg.Days)

	step := Step(snap.CurrentStep)
	if !step.Valid() {
		step = Step1
	}
	return step
}

// HasDimensions reports whether the snapshot carries enough shape to rebuild
// both grids.
func (p PersistedSnapshot) HasDimensions() bool {
	return p.NumProf > 0 && p.NumClass > 0 && p.Days > 0
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
