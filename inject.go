package ember

// syntheticKeyEvent is a single injected key transition.
type syntheticKeyEvent struct {
	key     Key
	pressed bool
}

// InjectKeyDown queues a key press. Injected events are applied one per
// Update, in order.
func (in *Input) InjectKeyDown(key Key) {
	in.injectQueue = append(in.injectQueue, syntheticKeyEvent{key: key, pressed: true})
}

// InjectKeyUp queues a key release.
func (in *Input) InjectKeyUp(key Key) {
	in.injectQueue = append(in.injectQueue, syntheticKeyEvent{key: key})
}

// InjectKeyPress queues a press followed by a release held for frames
// updates. Minimum frames is 1 (release on the update after the press).
func (in *Input) InjectKeyPress(key Key, frames int) {
	if frames < 1 {
		frames = 1
	}
	in.InjectKeyDown(key)
	// Idle events keep the key held for the requested number of frames.
	for i := 1; i < frames; i++ {
		in.injectQueue = append(in.injectQueue, syntheticKeyEvent{key: -1})
	}
	in.InjectKeyUp(key)
}

// Pending returns the number of queued injected events.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// processInjected pops one event from the inject queue and applies it.
// Returns true if an event was consumed.
func (in *Input) processInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	if evt.key < 0 {
		return true
	}
	if evt.pressed {
		in.KeyDown(evt.key)
	} else {
		in.KeyUp(evt.key)
	}
	return true
}
