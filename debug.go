package kinetic

import (
	"fmt"
	"os"
)

// SetDebugMode enables or disables diagnostic logging. When enabled, the
// surface logs classifier transitions, dropped samples, ignored ticks and
// fling hand-offs to stderr.
func (s *Surface) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// debugf prints one diagnostic line to stderr. The hot paths skip all
// formatting while debug mode is off.
func (s *Surface) debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[kinetic] "+format+"\n", args...)
}
