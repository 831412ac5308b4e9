package sdl

import (
	"sync/atomic"

	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 44100
	toneHz     = 440
	volume     = 40

	// samples queued per service call, one display frame worth
	frameSamples = sampleRate / emulator.FrameRate
)

// Beeper plays the single fixed tone of the machine while the sound
// timer is running. The tone flag is the only state shared with the VM
// goroutine; all SDL audio calls happen in the frontend loop.
type Beeper struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	active atomic.Bool
	wave   []byte
}

// NewBeeper opens the audio device and precomputes one frame of the
// square wave tone.
func NewBeeper() (*Beeper, error) {
	b := &Beeper{}

	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  uint16(frameSamples),
	}

	var err error
	b.id, err = sdl.OpenAudioDevice("", false, spec, &b.spec, 0)
	if err != nil {
		return nil, err
	}

	b.wave = make([]byte, frameSamples)
	period := sampleRate / toneHz
	for i := range b.wave {
		if i%period < period/2 {
			b.wave[i] = b.spec.Silence + volume
		} else {
			b.wave[i] = b.spec.Silence - volume
		}
	}

	sdl.PauseAudioDevice(b.id, false)
	return b, nil
}

// SetTone starts or stops the tone. Safe to call from the VM goroutine,
// it matches the timer tone callback signature.
func (b *Beeper) SetTone(active bool) {
	b.active.Store(active)
}

// service keeps the audio queue filled while the tone is active. Called
// once per frame from the frontend loop.
func (b *Beeper) service() {
	if !b.active.Load() {
		sdl.ClearQueuedAudio(b.id)
		return
	}

	// keep two frames queued to bridge frame jitter
	if sdl.GetQueuedAudioSize(b.id) < uint32(2*len(b.wave)) {
		_ = sdl.QueueAudio(b.id, b.wave)
	}
}

// Close stops playback and releases the audio device.
func (b *Beeper) Close() {
	sdl.ClearQueuedAudio(b.id)
	sdl.CloseAudioDevice(b.id)
}
