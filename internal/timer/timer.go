// Package timer implements the two CHIP-8 countdown timers. Both are
// decremented at a fixed 60 Hz rate by the execution driver, never by
// instruction execution, so their speed is independent of the
// configured CPU rate.
package timer

// Timers holds the delay and sound counters. The sound counter gates
// the audio collaborator's tone: the tone is audible exactly while the
// counter is nonzero.
//
// Timers is confined to the VM execution context; the tone callback is
// the only place where a value escapes it.
type Timers struct {
	delay byte
	sound byte

	toneActive bool
	onTone     func(active bool)
}

// New returns zeroed timers. onTone is invoked whenever the tone signal
// transitions between silent and audible; it may be nil.
func New(onTone func(active bool)) *Timers {
	return &Timers{onTone: onTone}
}

// Reset clears both counters and silences the tone.
func (t *Timers) Reset() {
	t.delay = 0
	t.sound = 0
	t.updateTone()
}

// Tick applies one 60 Hz decrement to both counters. Counters stop at
// zero, they never underflow.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
	t.updateTone()
}

// Delay returns the current delay counter value.
func (t *Timers) Delay() byte {
	return t.delay
}

// SetDelay sets the delay counter.
func (t *Timers) SetDelay(value byte) {
	t.delay = value
}

// Sound returns the current sound counter value.
func (t *Timers) Sound() byte {
	return t.sound
}

// SetSound sets the sound counter. Setting a nonzero value starts the
// tone immediately.
func (t *Timers) SetSound(value byte) {
	t.sound = value
	t.updateTone()
}

// ToneActive reports whether the tone is currently audible.
func (t *Timers) ToneActive() bool {
	return t.toneActive
}

func (t *Timers) updateTone() {
	active := t.sound > 0
	if active == t.toneActive {
		return
	}

	t.toneActive = active
	if t.onTone != nil {
		t.onTone(active)
	}
}
