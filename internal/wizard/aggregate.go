package wizard

// Aggregates are pure projections over the Store's matrices. Callers trigger
// recomputation after any matrix mutation; nothing here mutates state.

// RowTotals returns the workload total per professor, canonical order.
func RowTotals(m HoursMatrix) []int {
	totals := make([]int, len(m))
	for p := range m {
		totals[p] = m.RowTotal(p)
	}
	return totals
}

// ColumnTotals returns the workload total per class, canonical order.
func ColumnTotals(m HoursMatrix) []int {
	return m.ColumnTotals()
}

// AvailabilityPercent computes a professor's availability percentage: every
// available part contributes exactly 10 points. The value is deliberately not
// clamped to 100 and exceeds it for weeks longer than five days.
func AvailabilityPercent(m AvailabilityMatrix, p int) int {
	return 10 * m.TrueCount(p)
}

// AvailabilityPercents computes the percentage for every professor.
func AvailabilityPercents(m AvailabilityMatrix) []int {
	out := make([]int, len(m))
	for p := range m {
		out[p] = AvailabilityPercent(m, p)
	}
	return out
}
