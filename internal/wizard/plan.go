package wizard

// PlanResponse is the planner service's reply. Plan is indexed
// [day][hour][class]; 0 means unassigned, otherwise a 1-indexed professor id.
type PlanResponse struct {
	OK             bool      `json:"ok"`
	Message        string    `json:"message,omitempty"`
	BestScore      float64   `json:"best_score,omitempty"`
	Plan           [][][]int `json:"plan,omitempty"`
	Days           int       `json:"days,omitempty"`
	DailyHours     int       `json:"daily_hours,omitempty"`
	NumProfessors  int       `json:"num_professors,omitempty"`
	NumClasses     int       `json:"num_classes,omitempty"`
	ProfessorNames []string  `json:"professor_names,omitempty"`
	ClassNames     []string  `json:"class_names,omitempty"`
	HourNames      []string  `json:"hour_names,omitempty"`
}

// countHoles counts the idle gaps between the first and the last busy slot of
// a single day.
func countHoles(busy []bool) int {
	first, last := -1, -1
	for i, b := range busy {
		if b {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 || first == last {
		return 0
	}

	holes := 0
	inGap := false
	for i := first; i <= last; i++ {
		switch {
		case !busy[i] && !inGap:
			inGap = true
		case busy[i] && inGap:
			holes++
			inGap = false
		}
	}
	return holes
}

// ProfessorHoles counts, summed over all days, a professor's gaps between
// teaching slots. prof is the 0-based canonical index.
func ProfessorHoles(resp *PlanResponse, prof int) int {
	total := 0
	for d := 0; d < resp.Days && d < len(resp.Plan); d++ {
		busy := make([]bool, 0, resp.DailyHours)
		for h := 0; h < resp.DailyHours && h < len(resp.Plan[d]); h++ {
			assigned := false
			for c := 0; c < len(resp.Plan[d][h]); c++ {
				if resp.Plan[d][h][c] == prof+1 {
					assigned = true
					break
				}
			}
			busy = append(busy, assigned)
		}
		total += countHoles(busy)
	}
	return total
}

// ClassHoles counts, summed over all days, a class's gaps between lessons.
func ClassHoles(resp *PlanResponse, class int) int {
	total := 0
	for d := 0; d < resp.Days && d < len(resp.Plan); d++ {
		busy := make([]bool, 0, resp.DailyHours)
		for h := 0; h < resp.DailyHours && h < len(resp.Plan[d]); h++ {
			occupied := class < len(resp.Plan[d][h]) && resp.Plan[d][h][class] != 0
			busy = append(busy, occupied)
		}
		total += countHoles(busy)
	}
	return total
}

// PlanHoleStats aggregates the gap counts for every professor and class.
type PlanHoleStats struct {
	PerProfessor []int `json:"perProfessor"`
	PerClass     []int `json:"perClass"`
	Professors   int   `json:"professors"`
	Classes      int   `json:"classes"`
}

// AnalyzeHoles computes the gap statistics shown next to a rendered plan.
func AnalyzeHoles(resp *PlanResponse) PlanHoleStats {
	stats := PlanHoleStats{
		PerProfessor: make([]int, resp.NumProfessors),
		PerClass:     make([]int, resp.NumClasses),
	}
	for p := range stats.PerProfessor {
		stats.PerProfessor[p] = ProfessorHoles(resp, p)
		stats.Professors += stats.PerProfessor[p]
	}
	for c := range stats.PerClass {
		stats.PerClass[c] = ClassHoles(resp, c)
		stats.Classes += stats.PerClass[c]
	}
	return stats
}
