package kinetic

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// MouseContactID is the contact id the driver reports mouse input under.
// Touch contacts use their non-negative ebiten ids, so -1 never collides.
const MouseContactID ContactID = -1

// Driver polls ebiten's mouse and touch state once per frame and feeds the
// changes to a surface as contact events, then ticks the surface on a
// virtual clock advancing at the game's tick rate. The left mouse button
// acts as one more finger under [MouseContactID].
type Driver struct {
	surface *Surface
	clock   time.Duration

	mouseDown bool
	touchIDs  []ebiten.TouchID
	touchDown map[ebiten.TouchID]bool
}

// NewDriver creates a driver feeding the given surface.
func NewDriver(s *Surface) *Driver {
	return &Driver{
		surface:   s,
		touchDown: make(map[ebiten.TouchID]bool),
	}
}

// Clock returns the driver's virtual time, the value the surface was last
// ticked with.
func (d *Driver) Clock() time.Duration {
	return d.clock
}

// Update advances the driver by one game tick. Call it at the top of the
// game's Update; events are delivered before the surface tick so same-frame
// input wins over expiring deadlines.
func (d *Driver) Update() {
	d.clock += time.Second / time.Duration(ebiten.TPS())
	d.pollMouse()
	d.pollTouches()
	d.surface.Tick(d.clock)
}

// pollMouse reports left-button state changes as press/move/release.
func (d *Driver) pollMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !d.mouseDown:
		d.mouseDown = true
		if err := d.surface.Press(MouseContactID, x, y, d.clock); err != nil {
			d.surface.debugf("driver: mouse press: %v", err)
		}
	case pressed:
		if err := d.surface.Move(MouseContactID, x, y, d.clock); err != nil {
			d.surface.debugf("driver: mouse move: %v", err)
		}
	case d.mouseDown:
		d.mouseDown = false
		if err := d.surface.Release(MouseContactID, d.clock); err != nil {
			d.surface.debugf("driver: mouse release: %v", err)
		}
	}
}

// pollTouches diffs the live touch set against the previous frame's:
// new ids press, surviving ids move, vanished ids release.
func (d *Driver) pollTouches() {
	d.touchIDs = ebiten.AppendTouchIDs(d.touchIDs[:0])

	for tid := range d.touchDown {
		d.touchDown[tid] = false
	}
	for _, tid := range d.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		if _, ok := d.touchDown[tid]; ok {
			if err := d.surface.Move(ContactID(tid), x, y, d.clock); err != nil {
				d.surface.debugf("driver: touch move: %v", err)
			}
		} else {
			if err := d.surface.Press(ContactID(tid), x, y, d.clock); err != nil {
				d.surface.debugf("driver: touch press: %v", err)
			}
		}
		d.touchDown[tid] = true
	}
	for tid, down := range d.touchDown {
		if !down {
			if err := d.surface.Release(ContactID(tid), d.clock); err != nil {
				d.surface.debugf("driver: touch release: %v", err)
			}
			delete(d.touchDown, tid)
		}
	}
}
