package wizard

import "errors"

// ErrPayloadIncomplete signals that the Store is missing fields the planner
// service requires; it can only happen when steps were skipped.
var ErrPayloadIncomplete = errors.New("planner payload incomplete: finish steps 1 and 2 first")

// PlanRequest is the wire shape of the planner service's generate-plan
// request. Document requests reuse it with Plan set.
type PlanRequest struct {
	Days                   int                  `json:"days"`
	DailyHours             int                  `json:"daily_hours"`
	ClassNames             []string             `json:"class_names"`
	ProfessorNames         []string             `json:"professor_names"`
	HoursMatrix            [][]int              `json:"hours_matrix"`
	Availability           [][]AvailabilityCell `json:"availability"`
	WednesdayAfternoonFree bool                 `json:"wednesday_afternoon_free"`
	FreeAfternoonDay       *int                 `json:"free_afternoon_day"`
	LastMorningHour        int                  `json:"last_morning_hour"`
	Method                 string               `json:"method"`
	Seed                   *int                 `json:"seed,omitempty"`
	HourNames              []string             `json:"hour_names,omitempty"`
	Plan                   [][][]int            `json:"plan,omitempty"`
}

// AssemblePayload projects the Store into the planner request shape. The
// navigation gates should make the defensive check unreachable, but it stays:
// a payload is never assembled from a half-filled Store.
func AssemblePayload(s *Store) (*PlanRequest, error) {
	cfg := s.Config()
	hours := s.Hours()

	if cfg.Days == 0 || cfg.DailyHours == 0 || cfg.NumProf == 0 || cfg.NumClass == 0 || len(hours) == 0 {
		return nil, ErrPayloadIncomplete
	}

	req := &PlanRequest{
		Days:                   cfg.Days,
		DailyHours:             cfg.DailyHours,
		ClassNames:             cfg.ClassNames,
		ProfessorNames:         cfg.ProfessorNames,
		HoursMatrix:            hours,
		Availability:           s.Availability(),
		WednesdayAfternoonFree: cfg.WedFree,
		FreeAfternoonDay:       cfg.FreeAfternoonDay,
		LastMorningHour:        cfg.LastMorningHour,
		Method:                 cfg.Method,
	}
	if len(cfg.HourNames) > 0 {
		req.HourNames = cfg.HourNames
	}
	return req, nil
}

// ResolveSeed picks the seed for one generation run. With the lock enabled the
// clamped stored value is reused (minting and persisting one only when
// absent); with the lock disabled a fresh seed is minted every run. Either
// way the minted value is remembered as the last-used seed.
func ResolveSeed(s *Store, mint func() int) int {
	if s.cfg.SeedEnabled {
		if s.cfg.Seed != nil {
			seed := ClampSeed(*s.cfg.Seed)
			s.cfg.Seed = &seed
			return seed
		}
		seed := ClampSeed(mint())
		s.cfg.Seed = &seed
		return seed
	}

	seed := ClampSeed(mint())
	s.cfg.Seed = &seed
	return seed
}
