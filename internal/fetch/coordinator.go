package fetch

import (
	"fmt"

	"github.com/studiowebux/resters/internal/types"
)

// Ticket identifies one started fetch
type Ticket struct {
	Gen     uint64
	Request types.FetchRequest
}

// Coordinator tracks the fetch lifecycle on the UI loop.
// It is not safe for concurrent use; workers never touch it.
type Coordinator struct {
	gen      uint64
	inFlight bool
	current  types.FetchRequest
	progress Counter
}

// NewCoordinator creates an idle coordinator with the given progress counter
func NewCoordinator(progress Counter) *Coordinator {
	if progress.Max-progress.Min < 2 {
		progress = NewCounter(DefaultMin, DefaultMax)
	}
	progress.Reset()
	return &Coordinator{progress: progress}
}

// Begin starts a fetch. Any fetch already in flight is superseded:
// its worker still runs, but Finish will reject its result.
func (c *Coordinator) Begin(req types.FetchRequest) Ticket {
	c.gen++
	c.inFlight = true
	c.current = req
	c.progress.Reset()
	return Ticket{Gen: c.gen, Request: req}
}

// Tick advances progress for the current fetch.
// It reports whether another tick should be scheduled.
func (c *Coordinator) Tick(gen uint64) bool {
	if !c.inFlight || gen != c.gen {
		return false
	}
	c.progress.Advance()
	return true
}

// Finish accepts the outcome of a fetch. Results from superseded
// generations return false and leave state untouched.
func (c *Coordinator) Finish(gen uint64, outcome types.Outcome) (types.Outcome, bool) {
	if !c.inFlight || gen != c.gen {
		return nil, false
	}
	c.inFlight = false
	c.progress.Reset()
	return outcome, true
}

// InFlight reports whether a fetch is waiting for its result
func (c *Coordinator) InFlight() bool { return c.inFlight }

// Generation returns the generation of the most recent Begin
func (c *Coordinator) Generation() uint64 { return c.gen }

// Current returns the request of the most recent Begin
func (c *Coordinator) Current() types.FetchRequest { return c.current }

// Progress returns a copy of the progress counter
func (c *Coordinator) Progress() Counter { return c.progress }

// Doer performs the blocking part of a fetch
type Doer func(req types.FetchRequest) types.Outcome

// Perform runs do exactly once on the calling goroutine.
// A panic in do becomes a TransportError so the loop always gets an outcome.
func Perform(do Doer, req types.FetchRequest) (outcome types.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = types.TransportError{
				Message: fmt.Sprintf("fetch worker exited without a result: %v", r),
			}
		}
	}()

	outcome = do(req)
	if outcome == nil {
		outcome = types.TransportError{Message: "fetch worker exited without a result"}
	}
	return outcome
}
