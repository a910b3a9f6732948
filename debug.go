package ember

import (
	"fmt"
)

// debugf prints one prefixed line to the debug output.
func (w *World) debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.debugOut, "[ember] "+format+"\n", args...)
}

// debugLog prints per-frame timing and population stats.
func (w *World) debugLog() {
	if !w.debug {
		return
	}
	s := w.stats
	_, _ = fmt.Fprintf(w.debugOut,
		"[ember] update: %v | fixed: %v | objects: %d | particles: %d\n",
		s.LastUpdate, s.LastFixedUpdate, len(w.objects), w.countParticles())
	if s.CorruptRespawns > 0 {
		_, _ = fmt.Fprintf(w.debugOut, "[ember] corrupt respawns: %d\n", s.CorruptRespawns)
	}
}

// countParticles sums the live pool sizes of every particle system.
func (w *World) countParticles() int {
	n := 0
	for _, e := range w.objects {
		if ps, ok := e.(*ParticleSystem); ok {
			n += ps.Len()
		}
	}
	return n
}
