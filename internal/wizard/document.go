package wizard

import (
	"errors"
	"strconv"
	"strings"
)

// ErrDocumentMismatch rejects an imported document whose declared dimensions
// do not match the live configuration. Nothing is applied.
var ErrDocumentMismatch = errors.New("document dimensions do not match the current configuration")

// ErrDocumentInvalid rejects a document missing its required payload.
var ErrDocumentInvalid = errors.New("document is missing required fields")

// Step1Document is the standalone save/load format for the initial
// parameters. The two free-afternoon fields coexist for backward
// compatibility: free_afternoon_day wins when present, otherwise a true
// wednesday_afternoon_free implies day 3.
type Step1Document struct {
	Days                   int      `json:"days"`
	MorningHours           int      `json:"morning_hours"`
	AfternoonHours         int      `json:"afternoon_hours"`
	NumProfessors          int      `json:"num_professors"`
	NumClasses             int      `json:"num_classes"`
	WednesdayAfternoonFree *bool    `json:"wednesday_afternoon_free,omitempty"`
	FreeAfternoonDay       *int     `json:"free_afternoon_day"`
	FreeAfternoonEnabled   *bool    `json:"free_afternoon_enabled,omitempty"`
	ProfessorNames         []string `json:"professor_names"`
	ClassNames             []string `json:"class_names"`
	DayNames               []string `json:"day_names"`
	HourNames              []string `json:"hour_names"`
}

// ExportStep1 projects the current parameters into the document format.
func ExportStep1(s *Store) Step1Document {
	cfg := s.Config()
	enabled := cfg.FreeAfternoonEnabled
	wedFree := cfg.WedFree
	return Step1Document{
		Days:                   cfg.Days,
		MorningHours:           cfg.MorningHours,
		AfternoonHours:         cfg.AfternoonHours,
		NumProfessors:          cfg.NumProf,
		NumClasses:             cfg.NumClass,
		WednesdayAfternoonFree: &wedFree,
		FreeAfternoonDay:       cfg.FreeAfternoonDay,
		FreeAfternoonEnabled:   &enabled,
		ProfessorNames:         cfg.ProfessorNames,
		ClassNames:             cfg.ClassNames,
		DayNames:               cfg.DayNames,
		HourNames:              cfg.HourNames,
	}
}

// ImportStep1 feeds a document through the step-1 collector, so the usual
// all-or-nothing validation applies. On failure the Store keeps its prior
// value and the field flags explain what was rejected.
func ImportStep1(s *Store, doc Step1Document) FieldErrors {
	form := Step1Form{
		Days:           itoaNonZero(doc.Days),
		MorningHours:   itoaNonZero(doc.MorningHours),
		AfternoonHours: itoaIfSet(doc.AfternoonHours, doc.MorningHours != 0),
		NumProfessors:  itoaNonZero(doc.NumProfessors),
		NumClasses:     itoaNonZero(doc.NumClasses),
		ProfessorNames: strings.Join(doc.ProfessorNames, ", "),
		ClassNames:     strings.Join(doc.ClassNames, ", "),
		DayNames:       strings.Join(doc.DayNames, ", "),
		HourNames:      strings.Join(doc.HourNames, ", "),
	}

	// Legacy precedence: the explicit day wins, then the Wednesday flag.
	enabled := doc.FreeAfternoonEnabled == nil || *doc.FreeAfternoonEnabled
	day := 0
	switch {
	case doc.FreeAfternoonDay != nil && *doc.FreeAfternoonDay >= 1:
		day = *doc.FreeAfternoonDay
	case doc.WednesdayAfternoonFree != nil && *doc.WednesdayAfternoonFree:
		day = DefaultFreeAfternoonDay
	case doc.WednesdayAfternoonFree == nil && doc.FreeAfternoonDay == nil:
		day = DefaultFreeAfternoonDay
	default:
		enabled = false
	}
	if enabled && day >= 1 {
		form.FreeAfternoonEnabled = true
		form.FreeAfternoonDay = strconv.Itoa(day)
	}

	return CollectStep1(s, form)
}

// HoursDocument is the standalone save/load format for the workload matrix.
type HoursDocument struct {
	NumProfessors int         `json:"num_professors"`
	NumClasses    int         `json:"num_classes"`
	HoursMatrix   HoursMatrix `json:"hours_matrix"`
}

// ExportHours projects the workload matrix into the document format.
func ExportHours(s *Store) HoursDocument {
	cfg := s.Config()
	return HoursDocument{
		NumProfessors: cfg.NumProf,
		NumClasses:    cfg.NumClass,
		HoursMatrix:   s.Hours(),
	}
}

// ImportHours replaces the workload matrix from a document. The declared
// dimensions must match the live configuration exactly or nothing is applied.
func ImportHours(s *Store, doc HoursDocument) error {
	if doc.HoursMatrix == nil {
		return ErrDocumentInvalid
	}
	cfg := s.Config()
	if doc.NumProfessors != cfg.NumProf || doc.NumClasses != cfg.NumClass {
		return ErrDocumentMismatch
	}
	s.SetHours(doc.HoursMatrix)
	return nil
}

// AvailabilityDocument is the standalone save/load format for the
// availability matrix. Legacy single-boolean cells normalize on decode.
type AvailabilityDocument struct {
	NumProfessors int                `json:"num_professors"`
	Days          int                `json:"days"`
	Availability  AvailabilityMatrix `json:"availability"`
}

// ExportAvailability projects the availability matrix into the document
// format.
func ExportAvailability(s *Store) AvailabilityDocument {
	cfg := s.Config()
	return AvailabilityDocument{
		NumProfessors: cfg.NumProf,
		Days:          cfg.Days,
		Availability:  s.Availability(),
	}
}

// ImportAvailability replaces the availability matrix from a document, with
// the same wholesale dimension check as ImportHours.
func ImportAvailability(s *Store, doc AvailabilityDocument) error {
	if doc.Availability == nil {
		return ErrDocumentInvalid
	}
	cfg := s.Config()
	if doc.NumProfessors != cfg.NumProf || doc.Days != cfg.Days {
		return ErrDocumentMismatch
	}
	s.SetAvailability(doc.Availability)
	return nil
}

func itoaNonZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// itoaIfSet keeps a zero value when the document is otherwise populated:
// afternoon_hours is legitimately 0 for a morning-only week.
func itoaIfSet(n int, populated bool) string {
	if n == 0 && !populated {
		return ""
	}
	return strconv.Itoa(n)
}
