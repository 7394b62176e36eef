package kinetic

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the X and Y offsets.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Scroller binds a surface's drag and kinetic scroll intents to a 2D
// offset, with optional limits and animated jumps. It is the glue between
// the gesture layer and a scrollable view.
type Scroller struct {
	// X and Y are the current scroll offset in surface units.
	X, Y float64

	// Dirty is set whenever the offset changes. The consumer clears it
	// after redrawing.
	Dirty bool

	surface *Surface
	handles []CallbackHandle

	limited bool
	minX    float64
	minY    float64
	maxX    float64
	maxY    float64

	scrollTween *scrollAnim
}

// NewScroller creates a scroller driven by the surface's drag and kinetic
// scroll intents. Call Detach to stop receiving them.
func NewScroller(s *Surface) *Scroller {
	sc := &Scroller{surface: s}
	sc.handles = append(sc.handles,
		s.OnDrag(func(ctx DragContext) { sc.scrollBy(ctx.DeltaX, ctx.DeltaY) }),
		s.OnScroll(func(ctx ScrollContext) { sc.scrollBy(ctx.DeltaX, ctx.DeltaY) }),
		// A settle marks the offset dirty once more so the consumer draws
		// the resting frame.
		s.OnSettle(func(SettleContext) { sc.Dirty = true }),
	)
	return sc
}

// Detach unregisters the scroller from its surface. The offset keeps its
// last value.
func (sc *Scroller) Detach() {
	for _, h := range sc.handles {
		h.Remove()
	}
	sc.handles = nil
}

// SetLimits constrains the offset to [minX, maxX] by [minY, maxY] and
// clamps the current offset immediately. When the limits cross on an axis
// the offset centers between them.
func (sc *Scroller) SetLimits(minX, minY, maxX, maxY float64) {
	sc.limited = true
	sc.minX, sc.minY = minX, minY
	sc.maxX, sc.maxY = maxX, maxY
	if sc.clamp() {
		if sc.surface.Flinging() {
			sc.surface.CancelFling()
		}
		sc.Dirty = true
	}
}

// ClearLimits removes the offset constraints.
func (sc *Scroller) ClearLimits() {
	sc.limited = false
}

// ScrollTo animates the offset to (x, y) over duration seconds. The
// animation advances on Update; drag or kinetic scroll input cancels it.
func (sc *Scroller) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	sc.surface.CancelFling()
	sc.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(sc.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(sc.Y), float32(y), duration, easeFn),
	}
}

// Animating reports whether a scroll-to animation is in progress.
func (sc *Scroller) Animating() bool {
	return sc.scrollTween != nil
}

// Update advances the scroll-to animation by dt seconds. Call once per
// frame; without an active animation it is a no-op.
func (sc *Scroller) Update(dt float32) {
	if sc.scrollTween == nil {
		return
	}
	prevX, prevY := sc.X, sc.Y

	if !sc.scrollTween.doneX {
		val, done := sc.scrollTween.tweenX.Update(dt)
		sc.X = float64(val)
		sc.scrollTween.doneX = done
	}
	if !sc.scrollTween.doneY {
		val, done := sc.scrollTween.tweenY.Update(dt)
		sc.Y = float64(val)
		sc.scrollTween.doneY = done
	}
	if sc.scrollTween.doneX && sc.scrollTween.doneY {
		sc.scrollTween = nil
	}

	if sc.limited {
		sc.clamp()
	}
	if sc.X != prevX || sc.Y != prevY {
		sc.Dirty = true
	}
}

// scrollBy applies one displacement from the surface. Input overrides any
// scroll-to animation, and hitting a limit mid-fling cuts the fling short
// instead of letting it grind against the edge.
func (sc *Scroller) scrollBy(dx, dy float64) {
	sc.scrollTween = nil
	sc.X += dx
	sc.Y += dy
	if sc.limited && sc.clamp() && sc.surface.Flinging() {
		sc.surface.CancelFling()
	}
	sc.Dirty = true
}

// clamp restricts the offset to the limits and reports whether it changed.
func (sc *Scroller) clamp() bool {
	x, y := sc.X, sc.Y

	// Crossed limits pin the axis to their midpoint.
	if sc.minX > sc.maxX {
		x = (sc.minX + sc.maxX) / 2
	} else {
		x = math.Max(sc.minX, math.Min(x, sc.maxX))
	}
	if sc.minY > sc.maxY {
		y = (sc.minY + sc.maxY) / 2
	} else {
		y = math.Max(sc.minY, math.Min(y, sc.maxY))
	}

	if x == sc.X && y == sc.Y {
		return false
	}
	sc.X, sc.Y = x, y
	return true
}
