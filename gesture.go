package kinetic

import (
	"math"
	"time"
)

// maxTapCount caps multi-tap accumulation. Reaching the cap emits the tap
// sequence immediately; the next press restarts counting at 1.
const maxTapCount = 3

// --- Sequence state ---

// gesturePhase is the classification state of the live sequence.
type gesturePhase uint8

const (
	phaseIdle      gesturePhase = iota // no sequence open
	phasePressed                       // contact down, still ambiguous
	phaseDragging                      // distance threshold crossed; never reverts
	phaseLongPress                     // long-press emitted, contact still down
	phaseTapWait                       // released within tap bounds, awaiting a chained press
)

// gestureSequence is the classifier's working state for one logical
// interaction, potentially spanning multiple contacts (multi-tap).
type gestureSequence struct {
	phase   gesturePhase
	contact ContactID // primary contact while one is down

	// Tap accumulation across chained presses.
	tapCount   int
	lastTapX   float64
	lastTapY   float64
	lastTapEnd time.Duration

	// Position of the last emitted drag intent, for deltas.
	lastX float64
	lastY float64
}

// primaryIs reports whether id is the sequence's live primary contact.
// Only phases with a finger down have one.
func (q *gestureSequence) primaryIs(id ContactID) bool {
	switch q.phase {
	case phasePressed, phaseDragging, phaseLongPress:
		return q.contact == id
	}
	return false
}

// reset returns the sequence to Idle, discarding all accumulated state.
func (q *gestureSequence) reset() {
	*q = gestureSequence{}
}

// --- Handler registry ---

type tapHandler struct {
	id uint32
	fn func(TapContext)
}

type longPressHandler struct {
	id uint32
	fn func(LongPressContext)
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type scrollHandler struct {
	id uint32
	fn func(ScrollContext)
}

type settleHandler struct {
	id uint32
	fn func(SettleContext)
}

type handlerRegistry struct {
	tap       []tapHandler
	longPress []longPressHandler
	dragStart []dragHandler
	drag      []dragHandler
	dragEnd   []dragHandler
	scroll    []scrollHandler
	settle    []settleHandler
	nextID    uint32
}

// CallbackHandle allows removing a registered surface-level callback.
type CallbackHandle struct {
	id     uint32
	reg    *handlerRegistry
	intent IntentKind
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.intent {
	case IntentTap:
		h.reg.tap = removeTapHandler(h.reg.tap, h.id)
	case IntentLongPress:
		h.reg.longPress = removeLongPressHandler(h.reg.longPress, h.id)
	case IntentDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case IntentDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case IntentDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	case IntentScroll:
		h.reg.scroll = removeScrollHandler(h.reg.scroll, h.id)
	case IntentSettle:
		h.reg.settle = removeSettleHandler(h.reg.settle, h.id)
	}
}

func removeTapHandler(s []tapHandler, id uint32) []tapHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = tapHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeLongPressHandler(s []longPressHandler, id uint32) []longPressHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = longPressHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeScrollHandler(s []scrollHandler, id uint32) []scrollHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = scrollHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSettleHandler(s []settleHandler, id uint32) []settleHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = settleHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Surface-level intent registration ---

// OnTap registers a surface-level callback for settled tap sequences.
// The context carries the accumulated count (1 = single, 2 = double, 3 = triple).
func (s *Surface) OnTap(fn func(TapContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.tap = append(s.handlers.tap, tapHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, intent: IntentTap}
}

// OnLongPress registers a surface-level callback for long-press intents.
func (s *Surface) OnLongPress(fn func(LongPressContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.longPress = append(s.handlers.longPress, longPressHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, intent: IntentLongPress}
}

// OnDragStart registers a surface-level callback for drag start intents.
func (s *Surface) OnDragStart(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.dragStart = append(s.handlers.dragStart, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, intent: IntentDragStart}
}

// OnDrag registers a surface-level callback for drag position updates.
func (s *Surface) OnDrag(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.drag = append(s.handlers.drag, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, intent: IntentDrag}
}

// OnDragEnd registers a surface-level callback for drag end intents.
// The context carries the release velocity in surface units per tick.
func (s *Surface) OnDragEnd(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.dragEnd = append(s.handlers.dragEnd, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, intent: IntentDragEnd}
}

// OnScroll registers a surface-level callback for kinetic scroll steps.
func (s *Surface) OnScroll(fn func(ScrollContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.scroll = append(s.handlers.scroll, scrollHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, intent: IntentScroll}
}

// OnSettle registers a surface-level callback for the end of a fling.
// Settle fires only when the velocity decays below the stop threshold;
// interrupted flings (new press, CancelFling) end silently.
func (s *Surface) OnSettle(fn func(SettleContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.settle = append(s.handlers.settle, settleHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, intent: IntentSettle}
}

// --- Classification ---

// classifyPress runs the press transition for a newly tracked contact.
func (s *Surface) classifyPress(c *Contact) {
	// A press is the expected hand-off out of a running fling.
	if s.fling.active {
		s.fling.cancel()
		s.debugf("fling interrupted by press %d", c.ID)
	}

	seq := &s.seq
	switch seq.phase {
	case phaseIdle:
		seq.phase = phasePressed
		seq.contact = c.ID
		seq.lastX, seq.lastY = c.X, c.Y
	case phaseTapWait:
		// A press close enough in time and space extends the tap sequence.
		// Otherwise the pending taps settle first and the new press starts
		// a fresh sequence at count 1.
		expiry := seq.lastTapEnd + s.thresholds.MaxMultiTap
		dx := c.X - seq.lastTapX
		dy := c.Y - seq.lastTapY
		switch {
		case c.StartTime > expiry:
			// The window lapsed without a tick running; the pending taps
			// still settle at their deadline.
			s.fireTap(seq.lastTapX, seq.lastTapY, seq.tapCount, expiry)
			seq.tapCount = 0
		case dx*dx+dy*dy > s.thresholds.MaxTapDistance:
			s.fireTap(seq.lastTapX, seq.lastTapY, seq.tapCount, c.StartTime)
			seq.tapCount = 0
		}
		seq.phase = phasePressed
		seq.contact = c.ID
		seq.lastX, seq.lastY = c.X, c.Y
	default:
		// A second finger during a live sequence is tracked but does not
		// take part in classification.
		s.debugf("press %d ignored, sequence on contact %d", c.ID, seq.contact)
	}
}

// classifyMove runs the move transition for a tracked contact.
func (s *Surface) classifyMove(c *Contact) {
	seq := &s.seq
	if !seq.primaryIs(c.ID) {
		return
	}
	switch seq.phase {
	case phasePressed:
		if c.DistanceSq() > s.thresholds.MaxTapDistance {
			// Once classified as a drag the sequence stays a drag, even if
			// later movement returns inside the threshold. Any accumulated
			// taps are abandoned.
			seq.phase = phaseDragging
			seq.tapCount = 0
			s.velocity.start(c.X, c.Y, c.Time, s.thresholds.VelocityInterval)
			s.fireDragStart(c.X, c.Y, c.StartX, c.StartY, c.X-c.StartX, c.Y-c.StartY, c.Time)
			s.fireDrag(c.X, c.Y, c.StartX, c.StartY, c.X-seq.lastX, c.Y-seq.lastY, c.Time)
		}
	case phaseDragging:
		if c.X != seq.lastX || c.Y != seq.lastY {
			s.fireDrag(c.X, c.Y, c.StartX, c.StartY, c.X-seq.lastX, c.Y-seq.lastY, c.Time)
		}
	case phaseLongPress:
		// Movement after a long-press neither drags nor cancels; the
		// sequence ends at release.
	}
	seq.lastX, seq.lastY = c.X, c.Y
}

// classifyRelease runs the release transition for a finalized contact.
func (s *Surface) classifyRelease(c *Contact) {
	seq := &s.seq
	if !seq.primaryIs(c.ID) {
		return
	}
	switch seq.phase {
	case phasePressed:
		elapsed := c.Time - c.StartTime
		if elapsed >= s.thresholds.LongPress {
			// The deadline passed without a tick running; the hold still
			// counts as a long-press, never a tap.
			s.fireLongPress(c.StartX, c.StartY, c.StartTime+s.thresholds.LongPress)
			seq.reset()
			return
		}
		seq.tapCount++
		seq.lastTapX, seq.lastTapY = c.X, c.Y
		seq.lastTapEnd = c.Time
		if seq.tapCount >= maxTapCount {
			// No further press can extend the sequence, so settle it now
			// instead of waiting out the multi-tap window.
			s.fireTap(c.X, c.Y, seq.tapCount, c.Time)
			seq.reset()
			return
		}
		seq.phase = phaseTapWait
		seq.contact = 0
	case phaseDragging:
		velX, velY := s.velocity.velX, s.velocity.velY
		s.velocity.stop()
		s.fireDragEnd(c.X, c.Y, c.StartX, c.StartY, c.X-seq.lastX, c.Y-seq.lastY, velX, velY, c.Time)
		if math.Hypot(velX, velY) > stopVelocity {
			s.fling.start(velX, velY, c.X, c.Y, c.Time, s.thresholds.VelocityInterval)
			s.debugf("fling started at %.3f units/tick", math.Hypot(velX, velY))
		}
		seq.reset()
	case phaseLongPress:
		// The sequence already produced its long-press intent.
		seq.reset()
	}
}

// classifyCancel abandons the live sequence if id is its primary contact.
// Aborted gestures emit no terminal intent and discard accumulated taps.
func (s *Surface) classifyCancel(id ContactID) {
	seq := &s.seq
	if !seq.primaryIs(id) {
		return
	}
	s.velocity.stop()
	seq.reset()
	s.debugf("sequence abandoned, contact %d cancelled", id)
}

// evaluateDeadlines fires time-driven transitions due at or before now.
// Callers drain pending events before ticking, so when a qualifying move and
// the long-press deadline land on the same instant the distance check wins.
func (s *Surface) evaluateDeadlines(now time.Duration) {
	seq := &s.seq
	switch seq.phase {
	case phasePressed:
		c := s.tracker.Get(seq.contact)
		if c == nil {
			return
		}
		deadline := c.StartTime + s.thresholds.LongPress
		if now >= deadline {
			seq.phase = phaseLongPress
			s.fireLongPress(c.StartX, c.StartY, deadline)
		}
	case phaseTapWait:
		deadline := seq.lastTapEnd + s.thresholds.MaxMultiTap
		if now >= deadline {
			s.fireTap(seq.lastTapX, seq.lastTapY, seq.tapCount, deadline)
			seq.reset()
		}
	}
}

// --- Intent dispatch ---

func (s *Surface) fireTap(x, y float64, count int, t time.Duration) {
	s.debugf("tap x%d at (%g, %g)", count, x, y)
	ctx := TapContext{X: x, Y: y, Count: count, Time: t}
	for _, h := range s.handlers.tap {
		h.fn(ctx)
	}
	s.emitIntent(Intent{Kind: IntentTap, X: x, Y: y, TapCount: count, Time: t})
}

func (s *Surface) fireLongPress(x, y float64, t time.Duration) {
	s.debugf("long-press at (%g, %g)", x, y)
	ctx := LongPressContext{X: x, Y: y, Time: t}
	for _, h := range s.handlers.longPress {
		h.fn(ctx)
	}
	s.emitIntent(Intent{Kind: IntentLongPress, X: x, Y: y, Time: t})
}

func (s *Surface) fireDragStart(x, y, startX, startY, deltaX, deltaY float64, t time.Duration) {
	s.debugf("drag start at (%g, %g)", startX, startY)
	ctx := DragContext{
		X: x, Y: y,
		StartX: startX, StartY: startY,
		DeltaX: deltaX, DeltaY: deltaY,
		Time: t,
	}
	for _, h := range s.handlers.dragStart {
		h.fn(ctx)
	}
	s.emitIntent(Intent{
		Kind: IntentDragStart,
		X:    x, Y: y,
		StartX: startX, StartY: startY,
		DeltaX: deltaX, DeltaY: deltaY,
		Time: t,
	})
}

func (s *Surface) fireDrag(x, y, startX, startY, deltaX, deltaY float64, t time.Duration) {
	ctx := DragContext{
		X: x, Y: y,
		StartX: startX, StartY: startY,
		DeltaX: deltaX, DeltaY: deltaY,
		Time: t,
	}
	for _, h := range s.handlers.drag {
		h.fn(ctx)
	}
	s.emitIntent(Intent{
		Kind: IntentDrag,
		X:    x, Y: y,
		StartX: startX, StartY: startY,
		DeltaX: deltaX, DeltaY: deltaY,
		Time: t,
	})
}

func (s *Surface) fireDragEnd(x, y, startX, startY, deltaX, deltaY, velX, velY float64, t time.Duration) {
	s.debugf("drag end at (%g, %g)", x, y)
	ctx := DragContext{
		X: x, Y: y,
		StartX: startX, StartY: startY,
		DeltaX: deltaX, DeltaY: deltaY,
		VelX: velX, VelY: velY,
		Time: t,
	}
	for _, h := range s.handlers.dragEnd {
		h.fn(ctx)
	}
	s.emitIntent(Intent{
		Kind: IntentDragEnd,
		X:    x, Y: y,
		StartX: startX, StartY: startY,
		DeltaX: deltaX, DeltaY: deltaY,
		VelX: velX, VelY: velY,
		Time: t,
	})
}

func (s *Surface) fireScroll(x, y, deltaX, deltaY float64, t time.Duration) {
	ctx := ScrollContext{
		X: x, Y: y,
		DeltaX: deltaX, DeltaY: deltaY,
		Time: t,
	}
	for _, h := range s.handlers.scroll {
		h.fn(ctx)
	}
	s.emitIntent(Intent{
		Kind: IntentScroll,
		X:    x, Y: y,
		DeltaX: deltaX, DeltaY: deltaY,
		Time: t,
	})
}

func (s *Surface) fireSettle(x, y float64, t time.Duration) {
	s.debugf("fling settled at (%g, %g)", x, y)
	ctx := SettleContext{X: x, Y: y, Time: t}
	for _, h := range s.handlers.settle {
		h.fn(ctx)
	}
	s.emitIntent(Intent{Kind: IntentSettle, X: x, Y: y, Time: t})
}
