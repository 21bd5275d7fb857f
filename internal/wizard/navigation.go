package wizard

// Step is the wizard position. Step4 is a steady state, re-enterable.
type Step int

const (
	Step1 Step = iota + 1
	Step2
	Step3
	Step4
)

// Valid reports whether the step is one of the four wizard steps.
func (s Step) Valid() bool {
	return s >= Step1 && s <= Step4
}

// Gates supplies the collection callbacks guarding forward transitions. Each
// returns whether the corresponding collection succeeded.
type Gates struct {
	CollectStep1        func() bool
	CollectHours        func() bool
	CollectAvailability func() bool
}

// Transition describes a completed step change and its side effects.
type Transition struct {
	From                Step `json:"from"`
	To                  Step `json:"to"`
	RebuiltHours        bool `json:"rebuiltHours"`
	RebuiltAvailability bool `json:"rebuiltAvailability"`
	SummaryRecomputed   bool `json:"summaryRecomputed"`
}

// Machine governs step navigation. Forward transitions are validation-gated
// and move one step at a time; backward transitions are unconditional but
// first save the current grid best-effort so edits are not lost.
type Machine struct {
	step              Step
	hoursBuilt        bool
	availabilityBuilt bool
}

// NewMachine starts at step 1 with no grids built.
func NewMachine() *Machine {
	return &Machine{step: Step1}
}

// Step returns the current step.
func (m *Machine) Step() Step {
	return m.step
}

// HoursBuilt reports whether the workload grid has been rendered.
func (m *Machine) HoursBuilt() bool {
	return m.hoursBuilt
}

// AvailabilityBuilt reports whether the availability grid has been rendered.
func (m *Machine) AvailabilityBuilt() bool {
	return m.availabilityBuilt
}

// Restore positions the machine from a rehydrated snapshot. Out-of-range
// steps fall back to step 1.
func (m *Machine) Restore(step Step, hoursBuilt, availabilityBuilt bool) {
	if !step.Valid() {
		step = Step1
	}
	m.step = step
	m.hoursBuilt = hoursBuilt
	m.availabilityBuilt = availabilityBuilt
}

// ToStep attempts a transition to the target step. It returns the transition
// and whether it happened; a refused forward gate leaves the machine where it
// was.
func (m *Machine) ToStep(target Step, g Gates) (Transition, bool) {
	if !target.Valid() {
		return Transition{}, false
	}

	t := Transition{From: m.step, To: target}

	switch {
	case target == m.step:
		// Re-entering the current step is a no-op apart from the summary.
	case target < m.step:
		// Backward is unconditional; save the grid being left, ignoring
		// collection failures.
		switch m.step {
		case Step2:
			if g.CollectHours != nil {
				_ = g.CollectHours()
			}
		case Step3:
			if g.CollectAvailability != nil {
				_ = g.CollectAvailability()
			}
		}
		m.step = target
	case target == m.step+1:
		switch m.step {
		case Step1:
			if g.CollectStep1 == nil || !g.CollectStep1() {
				return Transition{}, false
			}
			m.hoursBuilt = true
			t.RebuiltHours = true
		case Step2:
			if !m.hoursBuilt || g.CollectHours == nil || !g.CollectHours() {
				return Transition{}, false
			}
			m.availabilityBuilt = true
			t.RebuiltAvailability = true
		case Step3:
			if !m.availabilityBuilt || g.CollectAvailability == nil || !g.CollectAvailability() {
				return Transition{}, false
			}
		}
		m.step = target
	default:
		// Skipping steps forward is never allowed.
		return Transition{}, false
	}

	if m.step == Step4 {
		t.SummaryRecomputed = true
	}
	t.To = m.step
	return t, true
}
