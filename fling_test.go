package kinetic

import (
	"math"
	"testing"
	"time"
)

func TestFlingDecaySequence(t *testing.T) {
	s := newTestSurface(t)
	th := s.Thresholds()
	var scrolls []ScrollContext
	var settles []SettleContext
	s.OnScroll(func(ctx ScrollContext) { scrolls = append(scrolls, ctx) })
	s.OnSettle(func(ctx SettleContext) { settles = append(settles, ctx) })

	// Velocity 10 with friction 0.85 crosses the 0.05 stop threshold on
	// the 33rd step.
	s.fling.start(10, 0, 0, 0, 0, th.VelocityInterval)
	runUntil(s, time.Minute)

	if len(scrolls) != 33 {
		t.Fatalf("scroll count = %d, want 33", len(scrolls))
	}
	if scrolls[0].DeltaX != 10 {
		t.Errorf("first scroll DeltaX = %v, want the initial velocity 10", scrolls[0].DeltaX)
	}
	if last := scrolls[32].DeltaX; last < stopVelocity {
		t.Errorf("last scroll DeltaX = %v, below the stop threshold", last)
	}

	// The total travel matches the geometric series of the decay.
	sum := 0.0
	for _, sc := range scrolls {
		sum += sc.DeltaX
	}
	want := 10 * (1 - math.Pow(0.85, 33)) / (1 - 0.85)
	if math.Abs(sum-want) > 1e-6 {
		t.Errorf("total travel = %v, want %v", sum, want)
	}

	if len(settles) != 1 {
		t.Fatalf("settle count = %d, want 1", len(settles))
	}
	if settles[0].Time != 990*time.Millisecond {
		t.Errorf("settle Time = %v, want 990ms on the 33rd tick", settles[0].Time)
	}
	if s.Flinging() {
		t.Error("Flinging() = true after settle")
	}
}

func TestFlingDiagonalPreservesDirection(t *testing.T) {
	s := newTestSurface(t)
	th := s.Thresholds()
	f := th.VelocityFriction
	var scrolls []ScrollContext
	s.OnScroll(func(ctx ScrollContext) { scrolls = append(scrolls, ctx) })

	s.fling.start(3, 4, 0, 0, 0, th.VelocityInterval)
	runUntil(s, time.Minute)

	// The settle check uses the magnitude, not the per-axis components.
	wantScrolls := 0
	for vx, vy := 3.0, 4.0; math.Hypot(vx, vy) >= stopVelocity; vx, vy = vx*f, vy*f {
		wantScrolls++
	}
	if len(scrolls) != wantScrolls {
		t.Fatalf("scroll count = %d, want %d", len(scrolls), wantScrolls)
	}
	for i, sc := range scrolls {
		if math.Abs(sc.DeltaY/sc.DeltaX-4.0/3.0) > 1e-9 {
			t.Fatalf("scroll %d direction = (%v, %v), want the 3:4 ratio", i, sc.DeltaX, sc.DeltaY)
		}
	}
}

func TestFlingVelocityDecays(t *testing.T) {
	s := newTestSurface(t)
	th := s.Thresholds()

	s.fling.start(10, 0, 0, 0, 0, th.VelocityInterval)
	s.Tick(th.VelocityInterval)

	vx, vy := s.FlingVelocity()
	if want := 10 * th.VelocityFriction; math.Abs(vx-want) > 1e-12 || vy != 0 {
		t.Errorf("FlingVelocity() after one tick = (%v, %v), want (%v, 0)", vx, vy, want)
	}
}

func TestSetThresholdsMidFling(t *testing.T) {
	s := newTestSurface(t)
	th := s.Thresholds()
	f0 := th.VelocityFriction
	var scrolls []ScrollContext
	s.OnScroll(func(ctx ScrollContext) { scrolls = append(scrolls, ctx) })

	s.fling.start(10, 0, 0, 0, 0, th.VelocityInterval)
	s.Tick(th.VelocityInterval)

	// Drop friction mid-fling; the change governs the next step.
	th.VelocityFriction = 0.5
	if err := s.SetThresholds(th); err != nil {
		t.Fatalf("SetThresholds() error = %v", err)
	}
	s.Tick(2 * th.VelocityInterval)

	if len(scrolls) != 2 {
		t.Fatalf("scroll count = %d, want 2", len(scrolls))
	}
	if want := 10 * f0; math.Abs(scrolls[1].DeltaX-want) > 1e-12 {
		t.Errorf("second scroll DeltaX = %v, want %v", scrolls[1].DeltaX, want)
	}
	vx, _ := s.FlingVelocity()
	if want := 10 * f0 * 0.5; math.Abs(vx-want) > 1e-12 {
		t.Errorf("FlingVelocity() = %v, want %v after the friction change", vx, want)
	}
}
