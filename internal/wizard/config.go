package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// MethodMIP and MethodRandom are the two generation methods the planner
	// service understands. New stores always start on MIP.
	MethodMIP    = "mip"
	MethodRandom = "random"

	// DayParts is the number of parts a day splits into (morning, afternoon).
	DayParts = 2

	// SeedMax bounds the reproducibility seed. Values are clamped into
	// [0, SeedMax].
	SeedMax = 9_999_999

	// DefaultFreeAfternoonDay is the day the free afternoon lands on when the
	// toggle is enabled without an explicit choice (Wednesday).
	DefaultFreeAfternoonDay = 3
)

// PlannerConfig is the canonical record of wizard parameters. It is owned
// exclusively by the Store; everything else reads copies.
type PlannerConfig struct {
	Days            int `json:"days"`
	MorningHours    int `json:"morningHours"`
	AfternoonHours  int `json:"afternoonHours"`
	DailyHours      int `json:"dailyHours"`
	LastMorningHour int `json:"lastMorningHour"`

	NumProf  int `json:"numProf"`
	NumClass int `json:"numClass"`

	ProfessorNames []string `json:"professorNames"`
	ClassNames     []string `json:"classNames"`
	DayNames       []string `json:"dayNames"`
	HourNames      []string `json:"hourNames"`

	FreeAfternoonEnabled bool `json:"freeAfternoonEnabled"`
	// FreeAfternoonDay is 1-based and nil while the toggle is disabled.
	FreeAfternoonDay *int `json:"freeAfternoonDay"`
	// WedFree is the legacy flag kept for the wire contract; it is derived
	// (day == 3) and forced false whenever the toggle is disabled.
	WedFree bool `json:"wedFree"`

	SeedEnabled bool   `json:"seedEnabled"`
	Seed        *int   `json:"seed"`
	Method      string `json:"method"`
}

// HoursMatrix is the professor × class workload table, keyed by canonical
// indices. Values are nonnegative.
type HoursMatrix [][]int

// Resize returns a matrix with the requested dimensions, preserving values at
// indices that still exist and zero-filling new cells.
func (m HoursMatrix) Resize(numProf, numClass int) HoursMatrix {
	if numProf < 0 {
		numProf = 0
	}
	if numClass < 0 {
		numClass = 0
	}
	out := make(HoursMatrix, numProf)
	for p := 0; p < numProf; p++ {
		out[p] = make([]int, numClass)
		if p >= len(m) {
			continue
		}
		for c := 0; c < numClass && c < len(m[p]); c++ {
			v := m[p][c]
			if v < 0 {
				v = 0
			}
			out[p][c] = v
		}
	}
	return out
}

// RowTotal sums the workload of a single professor row.
func (m HoursMatrix) RowTotal(p int) int {
	if p < 0 || p >= len(m) {
		return 0
	}
	total := 0
	for _, v := range m[p] {
		total += v
	}
	return total
}

// ColumnTotals sums the workload column by column.
func (m HoursMatrix) ColumnTotals() []int {
	if len(m) == 0 {
		return nil
	}
	totals := make([]int, len(m[0]))
	for _, row := range m {
		for c, v := range row {
			if c < len(totals) {
				totals[c] += v
			}
		}
	}
	return totals
}

// Clone deep-copies the matrix.
func (m HoursMatrix) Clone() HoursMatrix {
	if m == nil {
		return nil
	}
	out := make(HoursMatrix, len(m))
	for p, row := range m {
		out[p] = append([]int(nil), row...)
	}
	return out
}

// AvailabilityCell is the (morning, afternoon) pair for one professor-day.
// It unmarshals from the current two-element array as well as from the legacy
// shapes: a bare boolean, or a one-element array, both meaning "same value for
// the whole day".
type AvailabilityCell [2]bool

// FullDay is the default cell: available morning and afternoon.
var FullDay = AvailabilityCell{true, true}

// UnmarshalJSON normalizes legacy cell encodings to the two-part shape.
func (c *AvailabilityCell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*c = FullDay
		return nil
	}
	if data[0] != '[' {
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("availability cell: %w", err)
		}
		*c = AvailabilityCell{b, b}
		return nil
	}

	var parts []bool
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("availability cell: %w", err)
	}
	switch len(parts) {
	case 0:
		*c = FullDay
	case 1:
		*c = AvailabilityCell{parts[0], parts[0]}
	default:
		*c = AvailabilityCell{parts[0], parts[1]}
	}
	return nil
}

// AvailabilityMatrix is the professor × day × part boolean table, keyed by
// canonical indices. Every cell defaults to available.
type AvailabilityMatrix [][]AvailabilityCell

// Resize returns a matrix with the requested dimensions, preserving surviving
// cells and filling new ones with FullDay.
func (m AvailabilityMatrix) Resize(numProf, days int) AvailabilityMatrix {
	if numProf < 0 {
		numProf = 0
	}
	if days < 0 {
		days = 0
	}
	out := make(AvailabilityMatrix, numProf)
	for p := 0; p < numProf; p++ {
		out[p] = make([]AvailabilityCell, days)
		for d := 0; d < days; d++ {
			if p < len(m) && d < len(m[p]) {
				out[p][d] = m[p][d]
			} else {
				out[p][d] = FullDay
			}
		}
	}
	return out
}

// TrueCount counts the available parts for one professor across all days.
func (m AvailabilityMatrix) TrueCount(p int) int {
	if p < 0 || p >= len(m) {
		return 0
	}
	count := 0
	for _, cell := range m[p] {
		for _, v := range cell {
			if v {
				count++
			}
		}
	}
	return count
}

// Clone deep-copies the matrix.
func (m AvailabilityMatrix) Clone() AvailabilityMatrix {
	if m == nil {
		return nil
	}
	out := make(AvailabilityMatrix, len(m))
	for p, row := range m {
		out[p] = append([]AvailabilityCell(nil), row...)
	}
	return out
}

// DefaultProfessorName returns the deterministic fallback name for the
// 1-indexed professor i.
func DefaultProfessorName(i int) string {
	return fmt.Sprintf("Prof %d", i)
}

// DefaultClassName returns the deterministic fallback name for the 1-indexed
// class i.
func DefaultClassName(i int) string {
	return fmt.Sprintf("Classe %d", i)
}

// ClampSeed forces a seed into [0, SeedMax].
func ClampSeed(n int) int {
	if n < 0 {
		return 0
	}
	if n > SeedMax {
		return SeedMax
	}
	return n
}
