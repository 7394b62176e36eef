package kinetic

import (
	"fmt"
	"time"
)

// IntentSink receives every intent a surface emits, in emission order. It
// complements per-intent callbacks for consumers that route all intents
// through a single queue, such as a compositor event loop.
type IntentSink interface {
	EmitIntent(Intent)
}

// Intent is the uniform representation of a recognized gesture delivered to
// an IntentSink. Which fields are meaningful depends on Kind; the rest stay
// zero.
type Intent struct {
	Kind IntentKind

	// Position the intent refers to. Taps use the release position,
	// long-presses the press origin, drags the current contact position,
	// scroll and settle the fling's release position.
	X float64
	Y float64

	// Drag fields. DeltaX and DeltaY double as the displacement of a
	// kinetic scroll step.
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64

	// Release velocity in surface units per tick, drag end only.
	VelX float64
	VelY float64

	// Accumulated tap count, 1 to 3.
	TapCount int

	// Time the intent logically occurred, on the surface clock.
	Time time.Duration
}

// Surface interprets one input region's raw contact events as gesture
// intents. All methods must be called from a single goroutine; the surface
// performs no locking of its own.
//
// A surface never reads a wall clock. Event timestamps and Tick drive every
// time-based decision, which keeps replays and tests deterministic.
type Surface struct {
	tracker    *Tracker
	seq        gestureSequence
	velocity   velocityEstimator
	fling      flingState
	thresholds Thresholds
	handlers   handlerRegistry
	sink       IntentSink
	debug      bool

	// Latest time passed to Tick. Ticks running backwards are ignored.
	now time.Duration
}

// NewSurface creates a surface with the given thresholds.
func NewSurface(th Thresholds) (*Surface, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	return &Surface{
		tracker:    NewTracker(),
		thresholds: th,
	}, nil
}

// SetThresholds swaps the surface's thresholds. The new values take effect
// from the next evaluation; open sequences and running simulations are not
// re-classified retroactively.
func (s *Surface) SetThresholds(th Thresholds) error {
	if err := th.Validate(); err != nil {
		return err
	}
	s.thresholds = th
	s.debugf("thresholds updated: %+v", th)
	return nil
}

// Thresholds returns the surface's current thresholds.
func (s *Surface) Thresholds() Thresholds {
	return s.thresholds
}

// SetIntentSink routes every emitted intent to sink, in addition to any
// registered callbacks. A nil sink disables routing.
func (s *Surface) SetIntentSink(sink IntentSink) {
	s.sink = sink
}

// Contact returns the live contact with the given id, or nil.
func (s *Surface) Contact(id ContactID) *Contact {
	return s.tracker.Get(id)
}

// ContactCount returns the number of live contacts.
func (s *Surface) ContactCount() int {
	return s.tracker.Len()
}

// Press begins tracking a contact and runs the press transition. A press
// while a fling is running absorbs the fling.
func (s *Surface) Press(id ContactID, x, y float64, t time.Duration) error {
	c, err := s.tracker.Press(id, x, y, t)
	if err != nil {
		return err
	}
	s.classifyPress(c)
	return nil
}

// Move updates a contact's position and runs the move transition. Samples
// older than the contact's latest are dropped without classification.
func (s *Surface) Move(id ContactID, x, y float64, t time.Duration) error {
	c, recorded, err := s.tracker.Move(id, x, y, t)
	if err != nil {
		return err
	}
	if !recorded {
		s.debugf("move for %d at t=%v dropped, contact at t=%v", id, t, c.Time)
		return nil
	}
	s.classifyMove(c)
	return nil
}

// Release finalizes a contact at its last known position and runs the
// release transition.
func (s *Surface) Release(id ContactID, t time.Duration) error {
	c, err := s.tracker.Release(id, t)
	if err != nil {
		return err
	}
	s.classifyRelease(c)
	return nil
}

// Cancel drops a contact without a terminal intent. Cancelling the primary
// contact abandons the live sequence, accumulated taps included.
func (s *Surface) Cancel(id ContactID) error {
	c, err := s.tracker.Cancel(id)
	if err != nil {
		return err
	}
	s.classifyCancel(c.ID)
	return nil
}

// CancelAll drops every tracked contact and abandons the live sequence. A
// running fling is left alone; it belongs to a gesture that already ended.
func (s *Surface) CancelAll() {
	s.tracker.CancelAll()
	s.velocity.stop()
	s.seq.reset()
}

// HandleEvent dispatches a wire-form event to the matching entry point.
func (s *Surface) HandleEvent(ev Event) error {
	switch ev.Kind {
	case EventPress:
		return s.Press(ev.ID, ev.X, ev.Y, ev.Time)
	case EventMove:
		return s.Move(ev.ID, ev.X, ev.Y, ev.Time)
	case EventRelease:
		return s.Release(ev.ID, ev.Time)
	case EventCancel:
		return s.Cancel(ev.ID)
	default:
		return fmt.Errorf("kinetic: unknown event kind %d", ev.Kind)
	}
}

// Tick advances the surface clock and runs every time-driven evaluation due
// at or before now: long-press deadlines, tap window expiry, velocity
// samples and fling steps. Ticks arriving out of order are ignored.
//
// Callers deliver pending events before ticking, so a qualifying move and a
// deadline landing on the same instant resolve in the move's favor.
func (s *Surface) Tick(now time.Duration) {
	if now < s.now {
		s.debugf("tick at t=%v ignored, clock at t=%v", now, s.now)
		return
	}
	s.now = now
	s.evaluateDeadlines(now)
	if s.seq.phase == phaseDragging {
		if c := s.tracker.Get(s.seq.contact); c != nil {
			s.velocity.step(c.X, c.Y, now, s.thresholds)
		}
	}
	s.stepFling(now)
}

// NextDeadline returns the earliest future instant at which Tick must run
// for the surface to make progress, and whether one exists. Event-driven
// callers sleep until the deadline instead of polling.
//
// The deadline is derived from current state on every call, so threshold
// changes and new events shift it naturally.
func (s *Surface) NextDeadline() (time.Duration, bool) {
	var d time.Duration
	var ok bool
	closer := func(t time.Duration) {
		if !ok || t < d {
			d, ok = t, true
		}
	}
	switch s.seq.phase {
	case phasePressed:
		if c := s.tracker.Get(s.seq.contact); c != nil {
			closer(c.StartTime + s.thresholds.LongPress)
		}
	case phaseTapWait:
		closer(s.seq.lastTapEnd + s.thresholds.MaxMultiTap)
	}
	if s.velocity.active {
		closer(s.velocity.nextSample)
	}
	if s.fling.active {
		closer(s.fling.nextTick)
	}
	return d, ok
}

func (s *Surface) emitIntent(in Intent) {
	if s.sink == nil {
		return
	}
	s.sink.EmitIntent(in)
}
