package ember

// HookFunc observes a tick. self is the entity that owns the hook, passed
// explicitly so observers never depend on captured variables to find it.
type HookFunc func(self Entity, f *Frame)

type hookEntry[F any] struct {
	id uint32
	fn F
	ok bool
}

// hooks is an ordered observer list. Entries removed while the list is
// firing are skipped and compacted once firing completes.
type hooks[F any] struct {
	entries []hookEntry[F]
	nextID  uint32
	firing  int
	dirty   bool
}

type hookRemover interface {
	remove(id uint32)
}

// HookHandle allows removing a registered observer.
type HookHandle struct {
	id  uint32
	reg hookRemover
}

// Remove unregisters the observer so it no longer fires. Safe to call from
// inside the observer itself and safe to call more than once.
func (h HookHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}

func (h *hooks[F]) add(fn F) HookHandle {
	h.nextID++
	h.entries = append(h.entries, hookEntry[F]{id: h.nextID, fn: fn, ok: true})
	return HookHandle{id: h.nextID, reg: h}
}

func (h *hooks[F]) remove(id uint32) {
	for i := range h.entries {
		if h.entries[i].id != id || !h.entries[i].ok {
			continue
		}
		if h.firing > 0 {
			h.entries[i].ok = false
			h.dirty = true
			return
		}
		copy(h.entries[i:], h.entries[i+1:])
		h.entries[len(h.entries)-1] = hookEntry[F]{}
		h.entries = h.entries[:len(h.entries)-1]
		return
	}
}

// each calls call for every live entry in registration order. Entries added
// during firing run starting with the next call.
func (h *hooks[F]) each(call func(F)) {
	if len(h.entries) == 0 {
		return
	}
	h.firing++
	n := len(h.entries)
	for i := 0; i < n; i++ {
		if e := h.entries[i]; e.ok {
			call(e.fn)
		}
	}
	h.firing--
	if h.firing == 0 && h.dirty {
		h.compact()
	}
}

func (h *hooks[F]) compact() {
	live := h.entries[:0]
	for _, e := range h.entries {
		if e.ok {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(h.entries); i++ {
		h.entries[i] = hookEntry[F]{}
	}
	h.entries = live
	h.dirty = false
}

func (h *hooks[F]) len() int {
	n := 0
	for _, e := range h.entries {
		if e.ok {
			n++
		}
	}
	return n
}

func (h *hooks[F]) clear() {
	if h.firing > 0 {
		for i := range h.entries {
			h.entries[i].ok = false
		}
		h.dirty = true
		return
	}
	h.entries = nil
	h.dirty = false
}
