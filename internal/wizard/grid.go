package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// defaultDayLabels are the fallback day headers, Monday first.
var defaultDayLabels = []string{"Lun", "Mar", "Mer", "Gio", "Ven", "Sab", "Dom"}

// dayPartLabels name the two parts of a day.
var dayPartLabels = [DayParts]string{"Mattina", "Pomeriggio"}

// DayLabel returns the header for a 0-based day index: the configured name if
// present, else the weekday abbreviation, else a numbered fallback.
func DayLabel(cfg PlannerConfig, index int) string {
	if index >= 0 && index < len(cfg.DayNames) && cfg.DayNames[index] != "" {
		return cfg.DayNames[index]
	}
	if index >= 0 && index < len(defaultDayLabels) {
		return defaultDayLabels[index]
	}
	return fmt.Sprintf("G%d", index+1)
}

// HourLabel returns the header for a 0-based hour index.
func HourLabel(cfg PlannerConfig, index int) string {
	if index >= 0 && index < len(cfg.HourNames) && cfg.HourNames[index] != "" {
		return cfg.HourNames[index]
	}
	return fmt.Sprintf("Ora %d", index+1)
}

// HoursCell is one editable workload cell. Value renders blank for zero so an
// empty grid stays visually quiet.
type HoursCell struct {
	Class int    `json:"class"`
	Value string `json:"value"`
}

// HoursRow is one professor row of the workload grid. Professor carries the
// canonical index: edits bind to it regardless of the row's sorted position.
type HoursRow struct {
	Professor int         `json:"professor"`
	Name      string      `json:"name"`
	Cells     []HoursCell `json:"cells"`
	Total     int         `json:"total"`
}

// HoursGrid is the workload table projected from the Store, one row per
// professor in display order and one column per class.
type HoursGrid struct {
	ClassNames []string   `json:"classNames"`
	Rows       []HoursRow `json:"rows"`
}

// BuildHoursGrid projects the Store's workload matrix into an editable grid.
func BuildHoursGrid(s *Store) HoursGrid {
	cfg := s.Config()
	hours := s.Hours()
	order := NewDisplayOrder(cfg.ProfessorNames)

	grid := HoursGrid{
		ClassNames: cfg.ClassNames,
		Rows:       make([]HoursRow, 0, order.Len()),
	}
	for row := 0; row < order.Len(); row++ {
		p := order.Canonical(row)
		cells := make([]HoursCell, cfg.NumClass)
		for c := 0; c < cfg.NumClass; c++ {
			value := ""
			if p < len(hours) && c < len(hours[p]) && hours[p][c] > 0 {
				value = strconv.Itoa(hours[p][c])
			}
			cells[c] = HoursCell{Class: c, Value: value}
		}
		grid.Rows = append(grid.Rows, HoursRow{
			Professor: p,
			Name:      cfg.ProfessorNames[p],
			Cells:     cells,
			Total:     hours.RowTotal(p),
		})
	}
	return grid
}

// AvailabilityRow is one professor row of the availability grid, in display
// order with the canonical index attached.
type AvailabilityRow struct {
	Professor int                `json:"professor"`
	Name      string             `json:"name"`
	Days      []AvailabilityCell `json:"days"`
	Percent   int                `json:"percent"`
}

// AvailabilityGrid is the availability table projected from the Store.
type AvailabilityGrid struct {
	DayLabels  []string          `json:"dayLabels"`
	PartLabels []string          `json:"partLabels"`
	Rows       []AvailabilityRow `json:"rows"`
}

// BuildAvailabilityGrid projects the Store's availability matrix into an
// editable grid.
func BuildAvailabilityGrid(s *Store) AvailabilityGrid {
	cfg := s.Config()
	availability := s.Availability()
	order := NewDisplayOrder(cfg.ProfessorNames)

	labels := make([]string, cfg.Days)
	for d := range labels {
		labels[d] = DayLabel(cfg, d)
	}

	grid := AvailabilityGrid{
		DayLabels:  labels,
		PartLabels: dayPartLabels[:],
		Rows:       make([]AvailabilityRow, 0, order.Len()),
	}
	for row := 0; row < order.Len(); row++ {
		p := order.Canonical(row)
		days := make([]AvailabilityCell, cfg.Days)
		for d := 0; d < cfg.Days; d++ {
			if p < len(availability) && d < len(availability[p]) {
				days[d] = availability[p][d]
			} else {
				days[d] = FullDay
			}
		}
		grid.Rows = append(grid.Rows, AvailabilityRow{
			Professor: p,
			Name:      cfg.ProfessorNames[p],
			Days:      days,
			Percent:   AvailabilityPercent(availability, p),
		})
	}
	return grid
}

// ApplyHoursEdit parses a raw cell value (blank or unparseable input counts as
// zero), writes it back to the matrix at the canonical indices and returns the
// recomputed row total.
func ApplyHoursEdit(s *Store, prof, class int, raw string) (int, bool) {
	value := 0
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
		value = n
	}
	return s.SetHoursCell(prof, class, value)
}

// ApplyAvailabilityEdit writes one checkbox state back to the matrix and
// returns the professor's recomputed availability percentage.
func ApplyAvailabilityEdit(s *Store, prof, day, part int, value bool) (int, bool) {
	return s.SetAvailabilityCell(prof, day, part, value)
}
