package ember

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/kamstrup/intmap"
)

// Key is a keyboard key code.
type Key = ebiten.Key

// Named keys.
const (
	KeyEnter = ebiten.KeyEnter
	KeyShift = ebiten.KeyShift
	KeyCtrl  = ebiten.KeyControl
	KeyEsc   = ebiten.KeyEscape
	KeySpace = ebiten.KeySpace
	KeyLeft  = ebiten.KeyArrowLeft
	KeyUp    = ebiten.KeyArrowUp
	KeyRight = ebiten.KeyArrowRight
	KeyDown  = ebiten.KeyArrowDown

	KeyA = ebiten.KeyA
	KeyB = ebiten.KeyB
	KeyC = ebiten.KeyC
	KeyD = ebiten.KeyD
	KeyE = ebiten.KeyE
	KeyF = ebiten.KeyF
	KeyG = ebiten.KeyG
	KeyH = ebiten.KeyH
	KeyI = ebiten.KeyI
	KeyJ = ebiten.KeyJ
	KeyK = ebiten.KeyK
	KeyL = ebiten.KeyL
	KeyM = ebiten.KeyM
	KeyN = ebiten.KeyN
	KeyO = ebiten.KeyO
	KeyP = ebiten.KeyP
	KeyQ = ebiten.KeyQ
	KeyR = ebiten.KeyR
	KeyS = ebiten.KeyS
	KeyT = ebiten.KeyT
	KeyU = ebiten.KeyU
	KeyV = ebiten.KeyV
	KeyW = ebiten.KeyW
	KeyX = ebiten.KeyX
	KeyY = ebiten.KeyY
	KeyZ = ebiten.KeyZ
)

// KeyFunc observes a key transition on in.
type KeyFunc func(in *Input, key Key)

// Input tracks which keys are held. The table is updated by key-down and
// key-up events, which come from polling Ebitengine each Update (when Poll
// is set) or from the Inject methods.
type Input struct {
	GameObject

	// Poll reads real keyboard transitions from Ebitengine every Update.
	Poll bool

	keys      *intmap.Map[Key, bool]
	downHooks hooks[KeyFunc]
	upHooks   hooks[KeyFunc]

	injectQueue []syntheticKeyEvent
	keyBuf      []ebiten.Key
}

// NewInput creates an Input that polls Ebitengine.
func NewInput(layers ...Layer[ObjectConfig]) *Input {
	in := &Input{
		Poll: true,
		keys: intmap.New[Key, bool](32),
	}
	cfg := Compose(DefaultObjectConfig(), WithName[ObjectConfig]("input"))
	Apply(&cfg, layers...)
	in.construct(in, cfg)
	return in
}

// OnKeyDown registers an observer for key presses.
func (in *Input) OnKeyDown(fn KeyFunc) HookHandle {
	return in.downHooks.add(fn)
}

// OnKeyUp registers an observer for key releases.
func (in *Input) OnKeyUp(fn KeyFunc) HookHandle {
	return in.upHooks.add(fn)
}

// IsDown reports whether key is held.
func (in *Input) IsDown(key Key) bool {
	down, _ := in.keys.Get(key)
	return down
}

// Held returns how many keys are held.
func (in *Input) Held() int {
	n := 0
	for k := Key(0); k <= ebiten.KeyMax; k++ {
		if in.IsDown(k) {
			n++
		}
	}
	return n
}

// KeyDown marks key as held and notifies observers.
func (in *Input) KeyDown(key Key) {
	in.keys.Put(key, true)
	in.downHooks.each(func(fn KeyFunc) { fn(in, key) })
}

// KeyUp marks key as released and notifies observers.
func (in *Input) KeyUp(key Key) {
	in.keys.Put(key, false)
	in.upHooks.each(func(fn KeyFunc) { fn(in, key) })
}

// Clear releases every key without notifying observers.
func (in *Input) Clear() {
	in.keys.Clear()
}

// Update applies one injected event, then polls Ebitengine when enabled.
func (in *Input) Update(f *Frame) {
	in.processInjected()
	if in.Poll {
		in.pollKeys()
	}
	in.fireUpdate(f)
}

func (in *Input) pollKeys() {
	in.keyBuf = inpututil.AppendJustPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		in.KeyDown(k)
	}
	in.keyBuf = inpututil.AppendJustReleasedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		in.KeyUp(k)
	}
}
