package wizard

// Store owns the canonical wizard state: the PlannerConfig plus the two
// matrices. Mutations happen only through the collector, the cell-edit
// operations and hydration; every mutation re-establishes the invariants
// (matrix dimensions match the counts, dailyHours is the sum of its parts,
// freeAfternoonDay is nil or within [1, days]).
//
// The Store itself is not goroutine-safe: callers serialize access per
// session, mirroring the single event loop of the interactive client.
type Store struct {
	cfg          PlannerConfig
	hours        HoursMatrix
	availability AvailabilityMatrix
}

// NewStore returns a Store at factory defaults: no dimensions yet, free
// afternoon enabled on the default day, seed unlocked, MIP method.
func NewStore() *Store {
	s := &Store{}
	s.ResetConfig()
	return s
}

// ResetConfig restores the factory defaults, dropping both matrices.
func (s *Store) ResetConfig() {
	day := DefaultFreeAfternoonDay
	s.cfg = PlannerConfig{
		FreeAfternoonEnabled: true,
		FreeAfternoonDay:     &day,
		WedFree:              true,
		Method:               MethodMIP,
	}
	s.hours = nil
	s.availability = nil
}

// Config returns a copy of the canonical configuration.
func (s *Store) Config() PlannerConfig {
	cfg := s.cfg
	cfg.ProfessorNames = append([]string(nil), s.cfg.ProfessorNames...)
	cfg.ClassNames = append([]string(nil), s.cfg.ClassNames...)
	cfg.DayNames = append([]string(nil), s.cfg.DayNames...)
	cfg.HourNames = append([]string(nil), s.cfg.HourNames...)
	if s.cfg.FreeAfternoonDay != nil {
		day := *s.cfg.FreeAfternoonDay
		cfg.FreeAfternoonDay = &day
	}
	if s.cfg.Seed != nil {
		seed := *s.cfg.Seed
		cfg.Seed = &seed
	}
	return cfg
}

// Hours returns a copy of the workload matrix.
func (s *Store) Hours() HoursMatrix {
	return s.hours.Clone()
}

// Availability returns a copy of the availability matrix.
func (s *Store) Availability() AvailabilityMatrix {
	return s.availability.Clone()
}

// Step1Values is the validated outcome of a step-1 collection, merged into the
// Store in one atomic Apply.
type Step1Values struct {
	Days           int
	MorningHours   int
	AfternoonHours int
	NumProf        int
	NumClass       int

	ProfessorNames []string
	ClassNames     []string
	DayNames       []string
	HourNames      []string

	FreeAfternoonEnabled bool
	FreeAfternoonDay     *int
}

// Apply merges validated step-1 values, recomputes every derived field and
// resizes the matrices to the new counts.
func (s *Store) Apply(v Step1Values) {
	s.cfg.Days = v.Days
	s.cfg.MorningHours = v.MorningHours
	s.cfg.AfternoonHours = v.AfternoonHours
	s.cfg.DailyHours = v.MorningHours + v.AfternoonHours
	s.cfg.LastMorningHour = v.MorningHours
	s.cfg.NumProf = v.NumProf
	s.cfg.NumClass = v.NumClass
	s.cfg.ProfessorNames = v.ProfessorNames
	s.cfg.ClassNames = v.ClassNames
	s.cfg.DayNames = v.DayNames
	s.cfg.HourNames = v.HourNames

	if v.FreeAfternoonEnabled && v.FreeAfternoonDay != nil {
		day := *v.FreeAfternoonDay
		s.cfg.FreeAfternoonEnabled = true
		s.cfg.FreeAfternoonDay = &day
		s.cfg.WedFree = day == DefaultFreeAfternoonDay
	} else {
		s.cfg.FreeAfternoonEnabled = false
		s.cfg.FreeAfternoonDay = nil
		s.cfg.WedFree = false
	}

	s.ResizeMatrices()
}

// ResizeMatrices reconciles both matrices with the current counts. It is
// idempotent: surviving cells keep their values, new workload cells are
// zero-filled and new availability cells default to available.
func (s *Store) ResizeMatrices() {
	s.hours = s.hours.Resize(s.cfg.NumProf, s.cfg.NumClass)
	s.availability = s.availability.Resize(s.cfg.NumProf, s.cfg.Days)
}

// SetHoursCell writes one workload value by canonical indices and returns the
// recomputed row total.
func (s *Store) SetHoursCell(prof, class, value int) (int, bool) {
	if prof < 0 || prof >= len(s.hours) {
		return 0, false
	}
	if class < 0 || class >= len(s.hours[prof]) {
		return 0, false
	}
	if value < 0 {
		value = 0
	}
	s.hours[prof][class] = value
	return s.hours.RowTotal(prof), true
}

// SetAvailabilityCell writes one availability flag by canonical indices and
// returns the professor's recomputed percentage.
func (s *Store) SetAvailabilityCell(prof, day, part int, value bool) (int, bool) {
	if prof < 0 || prof >= len(s.availability) {
		return 0, false
	}
	if day < 0 || day >= len(s.availability[prof]) {
		return 0, false
	}
	if part < 0 || part >= DayParts {
		return 0, false
	}
	s.availability[prof][day][part] = value
	return AvailabilityPercent(s.availability, prof), true
}

// SetHours replaces the whole workload matrix, normalizing negatives to zero
// and forcing the dimensions to the current counts.
func (s *Store) SetHours(m HoursMatrix) {
	s.hours = m.Resize(s.cfg.NumProf, s.cfg.NumClass)
}

// SetAvailability replaces the whole availability matrix, forcing the
// dimensions to the current counts.
func (s *Store) SetAvailability(m AvailabilityMatrix) {
	s.availability = m.Resize(s.cfg.NumProf, s.cfg.Days)
}

// ResetHours zeroes the workload matrix, keeping dimensions.
func (s *Store) ResetHours() {
	s.hours = HoursMatrix(nil).Resize(s.cfg.NumProf, s.cfg.NumClass)
}

// ResetAvailability restores the all-available matrix, keeping dimensions.
func (s *Store) ResetAvailability() {
	s.availability = AvailabilityMatrix(nil).Resize(s.cfg.NumProf, s.cfg.Days)
}

// SetSeedLock toggles the seed lock. Locking adopts the clamped candidate
// value when one is supplied, otherwise keeps the stored seed, otherwise mints
// one. Unlocking keeps the stored value but stops pinning it.
func (s *Store) SetSeedLock(locked bool, candidate *int, mint func() int) {
	s.cfg.SeedEnabled = locked
	if !locked {
		return
	}
	switch {
	case candidate != nil:
		seed := ClampSeed(*candidate)
		s.cfg.Seed = &seed
	case s.cfg.Seed != nil:
		seed := ClampSeed(*s.cfg.Seed)
		s.cfg.Seed = &seed
	default:
		seed := ClampSeed(mint())
		s.cfg.Seed = &seed
	}
}

// SetMethod switches the generation method; unknown values fall back to MIP.
func (s *Store) SetMethod(method string) {
	if method == MethodRandom {
		s.cfg.Method = MethodRandom
		return
	}
	s.cfg.Method = MethodMIP
}
