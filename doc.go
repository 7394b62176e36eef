// Package kinetic turns raw touch events into gesture intents.
//
// Kinetic tracks contacts, classifies presses into taps, multi-taps,
// long-presses, and drags, estimates drag velocity, and simulates the
// friction-governed scrolling that follows a fling. It has no opinion
// about rendering: feed it events and a clock, and wire callbacks to
// whatever should react.
//
// # Quick start
//
// Create a [Surface], register handlers, and drive it from your event
// loop:
//
//	surface, err := kinetic.NewSurface(kinetic.DefaultThresholds())
//	if err != nil {
//		log.Fatal(err)
//	}
//	surface.OnTap(func(ctx kinetic.TapContext) {
//		fmt.Println("tap", ctx.Count, "at", ctx.X, ctx.Y)
//	})
//	surface.OnScroll(func(ctx kinetic.ScrollContext) {
//		list.Y += ctx.DeltaY
//	})
//
// Deliver input with [Surface.Press], [Surface.Move], [Surface.Release],
// and [Surface.Cancel], and advance the clock with [Surface.Tick].
// Between events, [Surface.NextDeadline] names the instant the surface
// next needs a Tick, so idle loops can sleep instead of polling.
//
// # Ebitengine
//
// [Driver] feeds a Surface from [Ebitengine] mouse and touch state, one
// call per frame:
//
//	type Game struct {
//		surface *kinetic.Surface
//		driver  *kinetic.Driver
//	}
//
//	func (g *Game) Update() error { g.driver.Update(); return nil }
//
// [Scroller] accumulates drag and fling motion into a scroll offset,
// with optional limits and [Scroller.ScrollTo] animation (via [gween]).
//
// # Tuning
//
// Behavior is governed by [Thresholds]: tap slop, multi-tap and
// long-press timing, and the sampling interval and friction of the
// velocity model. The config subpackage loads thresholds from TOML and
// hot-reloads them when the file changes.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package kinetic
