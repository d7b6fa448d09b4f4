package dutchauction

import "fmt"

// AuctionPhase describes where the bucketed evaluation time sits relative to
// the auction window. It exists for observability; the evaluation itself
// only distinguishes expired from not-expired.
type AuctionPhase int

const (
	// PhasePending means the bucketed time precedes the start timestamp.
	// Pending evaluations are not rejected: they price at zero elapsed time.
	PhasePending AuctionPhase = iota

	// PhaseActive means elapsed time is within [0, duration]
	PhaseActive

	// PhaseExpired means the window has lapsed. Terminal; there is no
	// transition back to active.
	PhaseExpired
)

// String returns the phase name for logging
func (p AuctionPhase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseActive:
		return "active"
	case PhaseExpired:
		return "expired"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Window is the resolved validity state for one evaluation
type Window struct {
	// BucketedNow is the evaluation time floored onto the step grid
	BucketedNow uint64

	// Elapsed is the whole number of seconds since StartTs, quantized to the
	// step grid and clamped to zero before the start. Always a multiple of
	// the time step, never exceeding the duration for a successful window.
	Elapsed uint64

	// ValidTo is the next grid boundary. Every produced order expires there,
	// forcing pollers to re-evaluate each step.
	ValidTo uint64

	// Phase is the conceptual state the window resolved to
	Phase AuctionPhase
}

// ComputeWindow resolves the validity window for an evaluation at time now.
//
// Evaluations before StartTs succeed with Elapsed clamped to zero: probing
// early returns the day-zero price rather than an error. That clamp is
// load-bearing product behavior, not an accident; do not turn it into a
// rejection without sign-off.
func ComputeWindow(now uint64, startTs uint32, duration, timeStep uint32) (*Window, error) {
	if timeStep == 0 {
		return nil, &InvalidParamError{Message: "timeStep must be greater than zero"}
	}

	step := uint64(timeStep)
	bucketedNow := BucketTimestamp(now, step)

	w := &Window{
		BucketedNow: bucketedNow,
		ValidTo:     bucketedNow + step,
	}

	if bucketedNow < uint64(startTs) {
		w.Elapsed = 0
		w.Phase = PhasePending
		return w, nil
	}

	w.Elapsed = BucketTimestamp(bucketedNow-uint64(startTs), step)
	if w.Elapsed > uint64(duration) {
		return nil, &OrderNotValidError{Reason: "auction ended"}
	}

	w.Phase = PhaseActive
	return w, nil
}
