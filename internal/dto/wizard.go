package dto

import "github.com/orariofacile/planner-wizard-api/internal/wizard"

// OpenSessionRequest starts or resumes a wizard session. ID resumes an
// existing in-memory session; Fragment seeds a new one from a shared link.
type OpenSessionRequest struct {
	ID       string `json:"id" validate:"omitempty,uuid4"`
	Fragment string `json:"fragment"`
}

// Step1Request carries the raw first-step form. Numeric fields stay strings
// so validation messages mirror what the user typed.
type Step1Request struct {
	Days           string `json:"days"`
	MorningHours   string `json:"morning_hours"`
	AfternoonHours string `json:"afternoon_hours"`
	NumProfessors  string `json:"num_professors"`
	NumClasses     string `json:"num_classes"`

	FreeAfternoonEnabled bool   `json:"free_afternoon_enabled"`
	FreeAfternoonDay     string `json:"free_afternoon_day"`

	ProfessorNames string `json:"professor_names"`
	ClassNames     string `json:"class_names"`
	DayNames       string `json:"day_names"`
	HourNames      string `json:"hour_names"`
}

// NavigateRequest asks for a step change, either relative or absolute.
// Exactly one of Direction and Target must be set.
type NavigateRequest struct {
	Direction string `json:"direction" validate:"omitempty,oneof=next back"`
	Target    int    `json:"target" validate:"omitempty,min=1,max=4"`
}

// HoursEditRequest writes one workload cell, addressed by canonical indices.
type HoursEditRequest struct {
	Professor int    `json:"professor" validate:"min=0"`
	Class     int    `json:"class" validate:"min=0"`
	Value     string `json:"value"`
}

// HoursEditResponse echoes the edit with the recomputed row total.
type HoursEditResponse struct {
	Professor int `json:"professor"`
	Class     int `json:"class"`
	Value     int `json:"value"`
	RowTotal  int `json:"rowTotal"`
}

// AvailabilityEditRequest flips one availability checkbox.
type AvailabilityEditRequest struct {
	Professor int   `json:"professor" validate:"min=0"`
	Day       int   `json:"day" validate:"min=0"`
	Part      int   `json:"part" validate:"min=0,max=1"`
	Value     *bool `json:"value" validate:"required"`
}

// AvailabilityEditResponse echoes the edit with the recomputed percentage.
type AvailabilityEditResponse struct {
	Professor int `json:"professor"`
	Day       int `json:"day"`
	Part      int `json:"part"`
	Percent   int `json:"percent"`
}

// SeedRequest toggles the seed lock, optionally pinning a value.
type SeedRequest struct {
	Enabled bool `json:"enabled"`
	Seed    *int `json:"seed" validate:"omitempty,min=0"`
}

// MethodRequest switches the generation method.
type MethodRequest struct {
	Method string `json:"method" validate:"required,oneof=mip random"`
}

// SessionView is the full session state returned after every mutation. The
// grids appear once their step has been entered; the summary only on step 4.
type SessionView struct {
	ID                string                   `json:"id"`
	Step              int                      `json:"step"`
	HoursBuilt        bool                     `json:"hoursBuilt"`
	AvailabilityBuilt bool                     `json:"availabilityBuilt"`
	Config            wizard.PlannerConfig     `json:"config"`
	Hours             *wizard.HoursGrid        `json:"hours,omitempty"`
	Availability      *wizard.AvailabilityGrid `json:"availability,omitempty"`
	Summary           *wizard.Summary          `json:"summary,omitempty"`
	Generating        bool                     `json:"generating"`
}

// NavigateResponse reports a completed transition plus the refreshed session.
type NavigateResponse struct {
	Transition wizard.Transition `json:"transition"`
	Session    SessionView       `json:"session"`
}

// ShareLinkView carries the encoded state fragment and a ready-to-share URL.
type ShareLinkView struct {
	Fragment string `json:"fragment"`
	URL      string `json:"url"`
}

// ResetRequest clears the state owned by one wizard step: 1 restores the
// factory first-step fields, 2 zeroes the workload matrix, 3 restores full
// availability, 4 drops the last plan and resets the method.
type ResetRequest struct {
	Step int `json:"step" validate:"required,min=1,max=4"`
}

// PlanView wraps the planner's reply with the gap statistics.
type PlanView struct {
	Result *wizard.PlanResponse  `json:"result"`
	Seed   int                   `json:"seed"`
	Holes  *wizard.PlanHoleStats `json:"holes,omitempty"`
}

// ProgressView reports how far along the running generation is.
type ProgressView struct {
	Running   bool  `json:"running"`
	Percent   int   `json:"percent"`
	Visible   bool  `json:"visible"`
	ElapsedMs int64 `json:"elapsedMs"`
}
