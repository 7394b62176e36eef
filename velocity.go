package kinetic

import "time"

// velocityEstimator samples the dragging contact's position on a fixed
// interval and keeps a friction-weighted velocity estimate, in surface units
// per tick. It is live exactly as long as a drag is.
type velocityEstimator struct {
	velX float64
	velY float64

	// Position at the previous sample.
	lastX float64
	lastY float64

	// Absolute time the next sample is due.
	nextSample time.Duration

	active bool
}

// start zeroes the estimate and schedules the first sample one interval
// after now. Each drag begins with a fresh estimator state.
func (e *velocityEstimator) start(x, y float64, now, interval time.Duration) {
	e.velX, e.velY = 0, 0
	e.lastX, e.lastY = x, y
	e.nextSample = now + interval
	e.active = true
}

// step runs every sample due at or before now against the contact's current
// position. When multiple intervals elapsed since the last step, the
// displacement is split evenly across them so the estimate stays
// deterministic under frame hitches.
//
// Each sample folds the interval's displacement into the estimate as
// v = v*friction + d*(1-friction).
func (e *velocityEstimator) step(x, y float64, now time.Duration, th Thresholds) {
	if !e.active || now < e.nextSample {
		return
	}
	n := 1 + int((now-e.nextSample)/th.VelocityInterval)
	dx := (x - e.lastX) / float64(n)
	dy := (y - e.lastY) / float64(n)
	f := th.VelocityFriction
	for i := 0; i < n; i++ {
		e.velX = e.velX*f + dx*(1-f)
		e.velY = e.velY*f + dy*(1-f)
	}
	e.lastX, e.lastY = x, y
	e.nextSample += time.Duration(n) * th.VelocityInterval
}

// stop ends sampling. The final estimate stays readable for the fling
// hand-off.
func (e *velocityEstimator) stop() {
	e.active = false
}
