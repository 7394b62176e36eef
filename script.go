package kinetic

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in a replay script.
type scriptStep struct {
	Action string  `json:"action"`
	ID     int64   `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Ms     int     `json:"ms,omitempty"`
	Moves  int     `json:"moves,omitempty"`
}

// scriptFile is the top-level JSON structure for a replay script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a sequence of contact events against a surface on a
// virtual clock, servicing every deadline along the way. Scripts make
// gesture scenarios reproducible in tests and demos without input hardware.
//
// Supported actions: "press", "move", "release" and "cancel" act on contact
// id at the current clock; "wait" advances the clock by ms; "drag" expands
// into a press at (fromX, fromY), moves interpolated over ms, and a release
// at (toX, toY).
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON replay script.
func LoadScript(jsonData []byte) (*Script, error) {
	var sf scriptFile
	if err := json.Unmarshal(jsonData, &sf); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sf.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	return &Script{steps: sf.Steps}, nil
}

// Run replays the script against the surface from t=0 and returns the final
// clock value. Steps execute in order; waits service the deadlines they
// cover, so pending taps, long-presses and flings resolve during them.
func (sc *Script) Run(s *Surface) (time.Duration, error) {
	var now time.Duration

	// settle services every deadline up to and including to, then leaves
	// the clock there.
	settle := func(to time.Duration) {
		for {
			d, ok := s.NextDeadline()
			if !ok || d > to {
				break
			}
			s.Tick(d)
		}
		s.Tick(to)
		now = to
	}

	for i, st := range sc.steps {
		var err error
		switch st.Action {
		case "press":
			err = s.Press(ContactID(st.ID), st.X, st.Y, now)
		case "move":
			err = s.Move(ContactID(st.ID), st.X, st.Y, now)
		case "release":
			err = s.Release(ContactID(st.ID), now)
		case "cancel":
			err = s.Cancel(ContactID(st.ID))
		case "wait":
			settle(now + time.Duration(st.Ms)*time.Millisecond)
		case "drag":
			err = runDragStep(s, st, settle, &now)
		default:
			err = fmt.Errorf("unknown action %q", st.Action)
		}
		if err != nil {
			return now, fmt.Errorf("script step %d: %w", i, err)
		}
	}
	return now, nil
}

// runDragStep expands a drag action into press, interpolated moves, a final
// move to the destination and a release.
func runDragStep(s *Surface, st scriptStep, settle func(time.Duration), now *time.Duration) error {
	moves := st.Moves
	if moves < 1 {
		moves = 8
	}
	total := time.Duration(st.Ms) * time.Millisecond
	if total <= 0 {
		total = 160 * time.Millisecond
	}

	id := ContactID(st.ID)
	if err := s.Press(id, st.FromX, st.FromY, *now); err != nil {
		return err
	}
	start := *now
	for i := 1; i <= moves; i++ {
		t := float64(i) / float64(moves+1)
		settle(start + time.Duration(t*float64(total)))
		x := st.FromX + (st.ToX-st.FromX)*t
		y := st.FromY + (st.ToY-st.FromY)*t
		if err := s.Move(id, x, y, *now); err != nil {
			return err
		}
	}
	settle(start + total)
	if err := s.Move(id, st.ToX, st.ToY, *now); err != nil {
		return err
	}
	return s.Release(id, *now)
}
