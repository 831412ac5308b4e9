// Package input tracks the state of the 16-key CHIP-8 keypad. The
// frontend reports key transitions from its own context; the
// interpreter polls key state and consumes press events for the
// blocking wait-for-key instruction.
package input

import "sync"

// NumKeys is the number of keys on the keypad, one per hex digit.
const NumKeys = 16

// pressBufferSize bounds the queue of unconsumed press events.
const pressBufferSize = 16

// Keypad is the shared key state. Safe for concurrent use by the
// frontend (writer) and the VM execution context (reader).
type Keypad struct {
	mu      sync.Mutex
	down    [NumKeys]bool
	presses []byte
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// Reset releases all keys and drops pending press events.
func (k *Keypad) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.down = [NumKeys]bool{}
	k.presses = nil
}

// SetKey records a key transition. A transition to pressed is queued as
// a press event for the wait-for-key instruction; repeated reports of a
// held key are ignored.
func (k *Keypad) SetKey(key byte, pressed bool) {
	key &= 0x0F

	k.mu.Lock()
	defer k.mu.Unlock()

	if pressed && !k.down[key] && len(k.presses) < pressBufferSize {
		k.presses = append(k.presses, key)
	}
	k.down[key] = pressed
}

// IsDown reports whether a key is currently held.
func (k *Keypad) IsDown(key byte) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.down[key&0x0F]
}

// Snapshot returns the current state of all keys.
func (k *Keypad) Snapshot() [NumKeys]bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.down
}

// TakePress consumes the oldest unconsumed press event. It reports
// false when no key was pressed since the last call.
func (k *Keypad) TakePress() (byte, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(k.presses) == 0 {
		return 0, false
	}

	key := k.presses[0]
	k.presses = k.presses[1:]
	return key, true
}

// DropPresses discards pending press events. The driver calls it before
// entering a key wait so that only presses arriving during the wait
// resume execution.
func (k *Keypad) DropPresses() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.presses = nil
}
