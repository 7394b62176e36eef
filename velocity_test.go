package kinetic

import (
	"math"
	"testing"
	"time"
)

func TestVelocityEstimatorRecurrence(t *testing.T) {
	th := DefaultThresholds()
	f := th.VelocityFriction
	var e velocityEstimator

	e.start(0, 0, 0, th.VelocityInterval)
	if e.velX != 0 || e.velY != 0 {
		t.Fatalf("initial velocity = (%v, %v), want zeros", e.velX, e.velY)
	}

	// Nothing is sampled before the first interval elapses.
	e.step(6, 0, 10*time.Millisecond, th)
	if e.velX != 0 {
		t.Fatalf("velocity sampled before the interval: %v", e.velX)
	}

	// One interval, 12 units of travel.
	e.step(12, 0, 30*time.Millisecond, th)
	want := 12 * (1 - f)
	if math.Abs(e.velX-want) > 1e-12 {
		t.Errorf("velX = %v, want %v", e.velX, want)
	}

	// A second interval with another 12 units folds into the estimate.
	e.step(24, 0, 60*time.Millisecond, th)
	want = want*f + 12*(1-f)
	if math.Abs(e.velX-want) > 1e-12 {
		t.Errorf("velX = %v, want %v", e.velX, want)
	}
}

func TestVelocityEstimatorCatchUp(t *testing.T) {
	th := DefaultThresholds()
	var a, b velocityEstimator

	// Sampled every interval.
	a.start(0, 0, 0, th.VelocityInterval)
	a.step(10, 0, 30*time.Millisecond, th)
	a.step(20, 0, 60*time.Millisecond, th)
	a.step(30, 0, 90*time.Millisecond, th)

	// Same motion sampled once after a hitch: the displacement is split
	// evenly across the missed intervals, giving the same estimate.
	b.start(0, 0, 0, th.VelocityInterval)
	b.step(30, 0, 90*time.Millisecond, th)

	if math.Abs(a.velX-b.velX) > 1e-12 {
		t.Errorf("hitched velX = %v, want %v", b.velX, a.velX)
	}
	if a.nextSample != b.nextSample {
		t.Errorf("hitched nextSample = %v, want %v", b.nextSample, a.nextSample)
	}
}

func TestVelocityEstimatorPartialInterval(t *testing.T) {
	th := DefaultThresholds()
	var e velocityEstimator

	// A sample landing mid-interval counts as one tick; the schedule stays
	// aligned to the interval grid.
	e.start(0, 0, 0, th.VelocityInterval)
	e.step(10, 0, 45*time.Millisecond, th)
	if want := 10 * (1 - th.VelocityFriction); math.Abs(e.velX-want) > 1e-12 {
		t.Errorf("velX = %v, want %v", e.velX, want)
	}
	if e.nextSample != 60*time.Millisecond {
		t.Errorf("nextSample = %v, want 60ms", e.nextSample)
	}
}

func TestVelocityEstimatorStartResets(t *testing.T) {
	th := DefaultThresholds()
	var e velocityEstimator

	e.start(0, 0, 0, th.VelocityInterval)
	e.step(10, 0, 30*time.Millisecond, th)
	if e.velX == 0 {
		t.Fatal("expected a nonzero estimate before the reset")
	}

	e.start(5, 5, 200*time.Millisecond, th.VelocityInterval)
	if e.velX != 0 || e.velY != 0 {
		t.Errorf("velocity after restart = (%v, %v), want zeros", e.velX, e.velY)
	}
	if e.nextSample != 230*time.Millisecond {
		t.Errorf("nextSample = %v, want 230ms", e.nextSample)
	}
}

func TestVelocityEstimatorStopped(t *testing.T) {
	th := DefaultThresholds()
	var e velocityEstimator

	e.start(0, 0, 0, th.VelocityInterval)
	e.step(10, 0, 30*time.Millisecond, th)
	got := e.velX

	// A stopped estimator keeps its final value for the fling hand-off.
	e.stop()
	e.step(50, 0, 90*time.Millisecond, th)
	if e.velX != got {
		t.Errorf("velX after stop = %v, want %v", e.velX, got)
	}
}
