package kinetic

import (
	"fmt"
	"time"
)

// maxContactHistory bounds the per-contact sample history. The retained
// window only needs to cover velocity smoothing and classification, not the
// whole interaction.
const maxContactHistory = 32

// Sample is one recorded (position, timestamp) pair for a contact.
type Sample struct {
	X, Y float64
	Time time.Duration
}

// Contact is one tracked finger, from press to release or cancel.
// Fields are maintained by the Tracker and are read-only to consumers.
type Contact struct {
	ID ContactID

	// X and Y are the current position in surface-local units.
	X, Y float64
	// Time is the timestamp of the latest accepted sample.
	Time time.Duration

	// StartX, StartY, and StartTime record the press that created the
	// contact.
	StartX    float64
	StartY    float64
	StartTime time.Duration

	history []Sample
}

// DistanceSq returns the squared distance between the contact's current
// position and its origin.
func (c *Contact) DistanceSq() float64 {
	dx := c.X - c.StartX
	dy := c.Y - c.StartY
	return dx*dx + dy*dy
}

// History returns the contact's retained samples, oldest first. The returned
// slice MUST NOT be mutated.
func (c *Contact) History() []Sample {
	return c.history
}

// Tracker maintains the set of currently active contacts and their position
// history. Contacts are created on press, mutated on move, and destroyed on
// release or cancel; the Tracker owns them exclusively while they are down.
type Tracker struct {
	contacts map[ContactID]*Contact
	limit    int
}

// NewTracker creates an empty contact tracker.
func NewTracker() *Tracker {
	return &Tracker{
		contacts: make(map[ContactID]*Contact),
		limit:    maxContactHistory,
	}
}

// Press starts tracking a new contact at the given position and time.
// Returns ErrDuplicateContact if id is already tracked.
func (tr *Tracker) Press(id ContactID, x, y float64, t time.Duration) (*Contact, error) {
	if _, ok := tr.contacts[id]; ok {
		return nil, fmt.Errorf("%w: press for id %d", ErrDuplicateContact, id)
	}
	c := &Contact{
		ID: id,
		X:  x, Y: y, Time: t,
		StartX: x, StartY: y, StartTime: t,
		history: make([]Sample, 1, 8),
	}
	c.history[0] = Sample{X: x, Y: y, Time: t}
	tr.contacts[id] = c
	return c, nil
}

// Move appends a position sample to a tracked contact. A sample whose
// timestamp is earlier than the contact's latest is dropped silently; the
// second return value reports whether the sample was recorded. Returns
// ErrUnknownContact if id is not tracked.
func (tr *Tracker) Move(id ContactID, x, y float64, t time.Duration) (*Contact, bool, error) {
	c, ok := tr.contacts[id]
	if !ok {
		return nil, false, fmt.Errorf("%w: move for id %d", ErrUnknownContact, id)
	}
	if t < c.Time {
		return c, false, nil
	}
	c.X, c.Y, c.Time = x, y, t
	c.history = append(c.history, Sample{X: x, Y: y, Time: t})
	if len(c.history) > tr.limit {
		n := copy(c.history, c.history[len(c.history)-tr.limit:])
		c.history = c.history[:n]
	}
	return c, true, nil
}

// Release stops tracking a contact and returns it, with its retained
// history, for classification. The contact's current position is its release
// position; a release timestamp earlier than the latest sample is clamped
// forward to keep the history non-decreasing. Returns ErrUnknownContact if
// id is not tracked.
func (tr *Tracker) Release(id ContactID, t time.Duration) (*Contact, error) {
	c, ok := tr.contacts[id]
	if !ok {
		return nil, fmt.Errorf("%w: release for id %d", ErrUnknownContact, id)
	}
	if t > c.Time {
		c.Time = t
	}
	delete(tr.contacts, id)
	return c, nil
}

// Cancel stops tracking a contact without finalizing it. Returns
// ErrUnknownContact if id is not tracked.
func (tr *Tracker) Cancel(id ContactID) (*Contact, error) {
	c, ok := tr.contacts[id]
	if !ok {
		return nil, fmt.Errorf("%w: cancel for id %d", ErrUnknownContact, id)
	}
	delete(tr.contacts, id)
	return c, nil
}

// CancelAll drops every tracked contact at once. Used for system-level touch
// session cancellation where no per-contact cancel events arrive.
func (tr *Tracker) CancelAll() {
	clear(tr.contacts)
}

// Get returns the tracked contact for id, or nil.
func (tr *Tracker) Get(id ContactID) *Contact {
	return tr.contacts[id]
}

// Len returns the number of currently tracked contacts.
func (tr *Tracker) Len() int {
	return len(tr.contacts)
}
