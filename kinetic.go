package kinetic

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Sentinel errors returned by event entry points and threshold application.
// All of them are local and recoverable: the offending event or update is
// dropped and in-flight state is untouched.
var (
	// ErrUnknownContact reports an event referencing a contact id that is
	// not currently tracked.
	ErrUnknownContact = errors.New("kinetic: unknown contact")
	// ErrDuplicateContact reports a press for a contact id that is already
	// tracked. This indicates an upstream protocol violation.
	ErrDuplicateContact = errors.New("kinetic: duplicate contact")
	// ErrInvalidThreshold reports a threshold set with a non-positive
	// distance or duration, or an out-of-range friction value.
	ErrInvalidThreshold = errors.New("kinetic: invalid threshold")
)

// ContactID identifies one finger contact. Ids are opaque, assigned by the
// input layer, and unique only while the finger is down; they may be reused
// after release.
type ContactID int64

// EventKind identifies a kind of raw contact event.
type EventKind uint8

const (
	EventPress   EventKind = iota // finger made contact with the surface
	EventMove                     // tracked finger changed position
	EventRelease                  // tracked finger left the surface
	EventCancel                   // contact aborted by the system; not a gesture
)

func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is one raw contact event as delivered by the input layer.
// Positions are surface-local. Timestamps are offsets on a monotonic clock
// and must be non-decreasing per contact.
type Event struct {
	ID   ContactID
	Kind EventKind
	X, Y float64
	Time time.Duration
}

// IntentKind identifies a kind of interaction intent.
type IntentKind uint8

const (
	IntentTap       IntentKind = iota // tap sequence settled; count in the context
	IntentLongPress                   // stationary hold crossed the long-press threshold
	IntentDragStart                   // movement exceeded the tap distance threshold
	IntentDrag                        // drag position update
	IntentDragEnd                     // dragging finger released
	IntentScroll                      // kinetic scroll displacement for one tick
	IntentSettle                      // fling velocity decayed below the stop threshold
)

func (k IntentKind) String() string {
	switch k {
	case IntentTap:
		return "tap"
	case IntentLongPress:
		return "long-press"
	case IntentDragStart:
		return "drag-start"
	case IntentDrag:
		return "drag"
	case IntentDragEnd:
		return "drag-end"
	case IntentScroll:
		return "scroll"
	case IntentSettle:
		return "settle"
	default:
		return "unknown"
	}
}

// TapContext carries tap intent data.
type TapContext struct {
	X, Y  float64 // position of the final tap in the sequence
	Count int     // 1 = single, 2 = double, 3 = triple
	Time  time.Duration
}

// LongPressContext carries long-press intent data.
type LongPressContext struct {
	X, Y float64 // origin position of the held contact
	Time time.Duration
}

// DragContext carries drag intent data.
type DragContext struct {
	X, Y           float64 // current contact position
	StartX, StartY float64 // origin position of the drag contact
	DeltaX, DeltaY float64 // movement since the previous drag intent
	VelX, VelY     float64 // smoothed velocity in units/tick; drag end only
	Time           time.Duration
}

// ScrollContext carries kinetic scroll intent data. One Scroll intent is
// emitted per simulation tick while a fling is active.
type ScrollContext struct {
	X, Y           float64 // position the fling originated from
	DeltaX, DeltaY float64 // scroll displacement for this tick
	Time           time.Duration
}

// SettleContext carries fling settle data.
type SettleContext struct {
	X, Y float64 // position the fling originated from
	Time time.Duration
}

// Thresholds holds the tuning values that drive gesture classification and
// kinetic scrolling. The zero value is not usable; start from
// [DefaultThresholds] and adjust.
type Thresholds struct {
	// MaxTapDistance is the maximum movement, as a squared distance in
	// surface units², for a press/release pair to still count as a tap.
	// Movement beyond it reclassifies the sequence as a drag.
	MaxTapDistance float64

	// MaxMultiTap is the maximum gap between the end of one tap and the
	// next press for the taps to chain into a multi-tap.
	MaxMultiTap time.Duration

	// LongPress is the minimum hold time before a stationary contact
	// becomes a long-press.
	LongPress time.Duration

	// VelocityInterval is the tick period for velocity sampling and for
	// kinetic scroll steps.
	VelocityInterval time.Duration

	// VelocityFriction is the fraction of velocity retained per tick,
	// in (0, 1). Higher values mean smoother estimates and longer flings.
	VelocityFriction float64
}

// DefaultThresholds returns the stock tuning: taps may wander up to 20
// surface units (400 squared), multi-tap and long-press windows of 300ms,
// 30ms velocity ticks, and 85% velocity retention per tick.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxTapDistance:   400.0,
		MaxMultiTap:      300 * time.Millisecond,
		LongPress:        300 * time.Millisecond,
		VelocityInterval: 30 * time.Millisecond,
		VelocityFriction: 0.85,
	}
}

// Validate reports whether every threshold is usable. Errors wrap
// [ErrInvalidThreshold] and name the offending field.
func (t Thresholds) Validate() error {
	switch {
	case t.MaxTapDistance <= 0 || math.IsNaN(t.MaxTapDistance):
		return fmt.Errorf("%w: max_tap_distance %g (want > 0)", ErrInvalidThreshold, t.MaxTapDistance)
	case t.MaxMultiTap <= 0:
		return fmt.Errorf("%w: max_multi_tap %v (want > 0)", ErrInvalidThreshold, t.MaxMultiTap)
	case t.LongPress <= 0:
		return fmt.Errorf("%w: long_press %v (want > 0)", ErrInvalidThreshold, t.LongPress)
	case t.VelocityInterval <= 0:
		return fmt.Errorf("%w: velocity_interval %v (want > 0)", ErrInvalidThreshold, t.VelocityInterval)
	case t.VelocityFriction <= 0 || t.VelocityFriction >= 1 || math.IsNaN(t.VelocityFriction):
		return fmt.Errorf("%w: velocity_friction %g (want in (0, 1))", ErrInvalidThreshold, t.VelocityFriction)
	}
	return nil
}
