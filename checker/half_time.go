package checker

import "github.com/lguibr/vssref/timer"

// HalfTime tracks the elapsed time of the current half. Run is called
// unconditionally every tick by the Referee Engine, independent of the
// priority-ordered checker list in §4.6 step 2 — it must observe time
// passing even while a foul transition is in progress.
//
// The original source holds a back-reference to the engine so it can
// call back into it directly when the half ends; here that becomes an
// onHalfPassed callback supplied at construction, since the engine
// outlives every checker by construction and a checker should never own
// a reference back to it.
type HalfTime struct {
	halfTimeSeconds float64
	onHalfPassed    func()

	timer *timer.Timer
}

// NewHalfTime constructs the checker. onHalfPassed is invoked once each
// time elapsed reaches halfTimeSeconds, after which the internal timer
// resets.
func NewHalfTime(halfTimeSeconds float64, onHalfPassed func()) *HalfTime {
	h := &HalfTime{halfTimeSeconds: halfTimeSeconds, onHalfPassed: onHalfPassed}
	h.Configure()
	return h
}

func (h *HalfTime) Name() string { return "HalfTime" }

func (h *HalfTime) Configure() {
	h.timer = timer.New()
}

// Run advances the clock and fires onHalfPassed exactly once when the
// half's duration elapses.
func (h *HalfTime) Run() {
	h.timer.Stop()
	if h.timer.ElapsedSeconds() >= h.halfTimeSeconds {
		h.Configure()
		if h.onHalfPassed != nil {
			h.onHalfPassed()
		}
	}
}

// ElapsedSeconds exposes the current timestamp for the engine to stamp
// outbound commands with.
func (h *HalfTime) ElapsedSeconds() float64 {
	return h.timer.ElapsedSeconds()
}
