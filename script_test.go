package kinetic

import (
	"testing"
	"time"
)

func TestLoadScriptErrors(t *testing.T) {
	if _, err := LoadScript([]byte("{")); err == nil {
		t.Error("malformed JSON should error")
	}
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("empty script should error")
	}
}

func TestScriptDoubleTap(t *testing.T) {
	s := newTestSurface(t)
	rec := &intentRecorder{}
	s.SetIntentSink(rec)

	sc, err := LoadScript([]byte(`{
		"steps": [
			{"action": "press", "id": 1, "x": 0, "y": 0},
			{"action": "wait", "ms": 50},
			{"action": "move", "id": 1, "x": 5, "y": 5},
			{"action": "release", "id": 1},
			{"action": "wait", "ms": 150},
			{"action": "press", "id": 1, "x": 6, "y": 4},
			{"action": "wait", "ms": 30},
			{"action": "release", "id": 1},
			{"action": "wait", "ms": 600}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}

	end, err := sc.Run(s)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if end != 830*time.Millisecond {
		t.Errorf("final clock = %v, want 830ms", end)
	}
	if got := rec.kinds(); len(got) != 1 || got[0] != IntentTap {
		t.Fatalf("intents = %v, want a single tap", got)
	}
	in := rec.intents[0]
	if in.TapCount != 2 || in.Time != 530*time.Millisecond {
		t.Errorf("tap = x%d at %v, want x2 at 530ms", in.TapCount, in.Time)
	}
}

func TestScriptDragAndFling(t *testing.T) {
	s := newTestSurface(t)
	rec := &intentRecorder{}
	s.SetIntentSink(rec)

	sc, err := LoadScript([]byte(`{
		"steps": [
			{"action": "drag", "id": 1, "fromX": 0, "fromY": 0, "toX": 300, "toY": 0, "ms": 120, "moves": 3},
			{"action": "wait", "ms": 3000}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}
	if _, err := sc.Run(s); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	kinds := rec.kinds()
	if len(kinds) < 4 {
		t.Fatalf("intents = %v, want a full drag with momentum", kinds)
	}
	if kinds[0] != IntentDragStart || kinds[1] != IntentDrag {
		t.Errorf("leading intents = %v, want drag-start then drag", kinds[:2])
	}
	if kinds[len(kinds)-1] != IntentSettle {
		t.Errorf("trailing intent = %v, want settle", kinds[len(kinds)-1])
	}

	var ends, settles int
	for _, in := range rec.intents {
		switch in.Kind {
		case IntentDragEnd:
			ends++
			if in.X != 300 || in.Y != 0 {
				t.Errorf("drag end position = (%v, %v), want (300, 0)", in.X, in.Y)
			}
		case IntentSettle:
			settles++
		}
	}
	if ends != 1 || settles != 1 {
		t.Errorf("drag ends = %d, settles = %d, want 1 and 1", ends, settles)
	}
}

func TestScriptCancel(t *testing.T) {
	s := newTestSurface(t)
	rec := &intentRecorder{}
	s.SetIntentSink(rec)

	sc, err := LoadScript([]byte(`{
		"steps": [
			{"action": "press", "id": 1, "x": 10, "y": 10},
			{"action": "wait", "ms": 100},
			{"action": "cancel", "id": 1},
			{"action": "wait", "ms": 1000}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}
	if _, err := sc.Run(s); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(rec.intents) != 0 {
		t.Errorf("intents = %v, want none after cancel", rec.kinds())
	}
}

func TestScriptRejectsUnknownAction(t *testing.T) {
	sc, err := LoadScript([]byte(`{"steps": [{"action": "bogus"}]}`))
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}
	s := newTestSurface(t)
	if _, err := sc.Run(s); err == nil {
		t.Error("unknown action should error at run time")
	}
}

func TestScriptErrorNamesStep(t *testing.T) {
	// Releasing an id that was never pressed fails on the second step.
	sc, err := LoadScript([]byte(`{
		"steps": [
			{"action": "press", "id": 1, "x": 0, "y": 0},
			{"action": "release", "id": 2}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}
	s := newTestSurface(t)
	if _, err := sc.Run(s); err == nil {
		t.Error("release of an untracked id should error")
	}
}
