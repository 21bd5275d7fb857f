package wizard

import (
	"math"
	"time"
)

const (
	// randomWorkMs is the flat estimate for the random method, which does not
	// scale with the problem size the way the solver does.
	randomWorkMs = 10000

	// minTarget90Ms keeps the bar from racing to 90% on tiny instances.
	minTarget90Ms = 800

	// progressLinger keeps the completed bar on screen long enough for the
	// snap to 100 to register before it is hidden.
	progressLinger = 250 * time.Millisecond
)

// EstimateWorkMs predicts the generation runtime in milliseconds from the
// instance shape. The solver estimate grows quadratically with professors and
// classes and linearly with the average workload; the random method gets a
// flat figure.
func EstimateWorkMs(s *Store) float64 {
	cfg := s.Config()
	if cfg.Method == MethodRandom {
		return randomWorkMs
	}

	total := 0
	for _, t := range RowTotals(s.Hours()) {
		total += t
	}
	avgHoursPerProf := 0.0
	if cfg.NumProf > 0 {
		avgHoursPerProf = float64(total) / float64(cfg.NumProf)
	}

	return (float64(cfg.Days) / 2.5) *
		(float64(cfg.DailyHours) / 5) *
		float64(cfg.NumProf) * float64(cfg.NumProf) *
		float64(cfg.NumClass) * float64(cfg.NumClass) *
		(1 + avgHoursPerProf) * 0.5
}

// ProgressTracker projects a running generation onto a 0-100 scale. The
// first 90 points are spread over 85% of the estimated runtime; the bar then
// parks at 90 until the run actually finishes, when it snaps to 100.
type ProgressTracker struct {
	start    time.Time
	finished time.Time
	target90 time.Duration
	now      func() time.Time
	done     bool
}

// StartProgress begins tracking a run with the given estimate. The clock is
// injectable for tests; nil means time.Now.
func StartProgress(estimateMs float64, now func() time.Time) *ProgressTracker {
	if now == nil {
		now = time.Now
	}
	targetMs := math.Max(minTarget90Ms, estimateMs*0.85)
	return &ProgressTracker{
		start:    now(),
		target90: time.Duration(targetMs * float64(time.Millisecond)),
		now:      now,
	}
}

// Finish marks the run complete; Percent reports 100 from then on.
func (t *ProgressTracker) Finish() {
	t.done = true
	t.finished = t.now()
}

// Done reports whether Finish has been called.
func (t *ProgressTracker) Done() bool {
	return t.done
}

// Percent returns the projected completion percentage.
func (t *ProgressTracker) Percent() int {
	if t.done {
		return 100
	}
	elapsed := t.now().Sub(t.start)
	projected := float64(elapsed) / float64(t.target90) * 90
	if projected > 90 {
		projected = 90
	}
	if projected < 0 {
		projected = 0
	}
	return int(projected)
}

// Visible reports whether the bar should be shown. The bar appears for the
// whole run and lingers briefly after completion so the snap to 100 is
// observable before it disappears.
func (t *ProgressTracker) Visible() bool {
	if !t.done {
		return true
	}
	return t.now().Sub(t.finished) < progressLinger
}

// Elapsed returns the time since the run started.
func (t *ProgressTracker) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}
