package kinetic

import (
	"math"
	"time"
)

// stopVelocity is the settle threshold in surface units per tick. Velocity
// magnitudes below it end the simulation; without a floor the exponential
// decay would never reach zero and the fling would tick forever.
const stopVelocity = 0.05

// flingState is the kinetic scroll simulation for one surface. It is created
// on release with sufficient velocity and destroyed on settle, on a new
// press, or by CancelFling.
type flingState struct {
	velX float64
	velY float64

	// Release position, carried on every Scroll intent.
	x float64
	y float64

	// Absolute time the next simulation step is due.
	nextTick time.Duration

	active bool
}

// start begins a fling at the release position with the drag's final
// velocity estimate. The first scroll step lands one interval after now.
func (fl *flingState) start(velX, velY, x, y float64, now, interval time.Duration) {
	fl.velX, fl.velY = velX, velY
	fl.x, fl.y = x, y
	fl.nextTick = now + interval
	fl.active = true
}

// cancel stops the simulation without a settle intent.
func (fl *flingState) cancel() {
	fl.active = false
}

// stepFling runs every fling step due at or before now. Each step emits a
// scroll displacement equal to the current velocity, then decays the
// velocity by the friction factor. The step that decays the magnitude below
// stopVelocity also emits the settle intent; no scroll follows it.
func (s *Surface) stepFling(now time.Duration) {
	fl := &s.fling
	f := s.thresholds.VelocityFriction
	interval := s.thresholds.VelocityInterval
	for fl.active && now >= fl.nextTick {
		t := fl.nextTick
		s.fireScroll(fl.x, fl.y, fl.velX, fl.velY, t)
		fl.velX *= f
		fl.velY *= f
		fl.nextTick += interval
		if math.Hypot(fl.velX, fl.velY) < stopVelocity {
			fl.active = false
			s.fireSettle(fl.x, fl.y, t)
		}
	}
}

// Flinging reports whether a kinetic scroll simulation is running.
func (s *Surface) Flinging() bool {
	return s.fling.active
}

// FlingVelocity returns the simulation's current velocity in surface units
// per tick, or zeros when no fling is running.
func (s *Surface) FlingVelocity() (velX, velY float64) {
	if !s.fling.active {
		return 0, 0
	}
	return s.fling.velX, s.fling.velY
}

// CancelFling stops a running fling without emitting a settle intent.
// Consumers clamping the scroll position at a limit use this to cut the
// simulation short. Calling it with no fling running is a no-op.
func (s *Surface) CancelFling() {
	if s.fling.active {
		s.fling.cancel()
		s.debugf("fling cancelled")
	}
}
