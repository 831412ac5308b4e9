package emulator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/input"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/chip8emu/internal/quirks"
	"github.com/retroenv/chip8emu/internal/timer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type machine struct {
	emu    *Emulator
	interp *chip8.Interpreter
	timers *timer.Timers
	keys   *input.Keypad
}

func newMachine(t *testing.T, cfg Config, program ...byte) *machine {
	t.Helper()

	mem := memory.New()
	screen := display.New(false)
	timers := timer.New(nil)
	keys := input.New()
	interp := chip8.New(mem, screen, timers, keys, quirks.Set{}, 1)
	assert.NoError(t, interp.LoadProgram(program))

	return &machine{
		emu:    New(log.NewTestLogger(t), interp, timers, keys, cfg),
		interp: interp,
		timers: timers,
		keys:   keys,
	}
}

// runFrames drives the machine with a simulated clock.
func (m *machine) runFrames(count int) error {
	frames := make(chan time.Time, count)
	for i := 0; i < count; i++ {
		frames <- time.Time{}
	}
	close(frames)

	return m.emu.RunFrames(context.Background(), frames)
}

// TestTimerRateIndependentOfCPURate verifies the dual-rate model: the
// timers decrement once per frame no matter how many instruction
// cycles a frame executes.
func TestTimerRateIndependentOfCPURate(t *testing.T) {
	for _, cpuHz := range []int{60, 700, 7000} {
		m := newMachine(t, Config{CPUHz: cpuHz},
			0x12, 0x00, // jp $200, spin forever
		)
		m.timers.SetDelay(200)

		assert.NoError(t, m.runFrames(60))

		assert.Equal(t, byte(140), m.timers.Delay(), "cpu rate %d", cpuHz)
	}
}

func TestCyclesPerFrame(t *testing.T) {
	// 700 Hz runs 11 instructions per frame
	m := newMachine(t, Config{CPUHz: 700},
		0x70, 0x01, // add V0, $01
		0x12, 0x00, // jp $200
	)

	assert.NoError(t, m.runFrames(1))

	// the add executes on every second cycle
	assert.Equal(t, byte(6), m.interp.V(0))
}

func TestRunStopsOnFault(t *testing.T) {
	m := newMachine(t, Config{CPUHz: 60},
		0x00, 0x00, // unsupported machine code routine
	)

	err := m.runFrames(1)
	assert.True(t, errors.Is(err, chip8.ErrUnknownInstruction))
}

func TestSkipUnknownContinues(t *testing.T) {
	m := newMachine(t, Config{CPUHz: 120, SkipUnknown: true},
		0x00, 0x00, // unsupported, skipped
		0x60, 0x2A, // ld V0, $2A
	)

	assert.NoError(t, m.runFrames(1))

	assert.Equal(t, byte(0x2A), m.interp.V(0))
}

func TestWaitKeySuspendsExecutionButNotTimers(t *testing.T) {
	m := newMachine(t, Config{CPUHz: 60},
		0xF0, 0x0A, // ld V0, K
		0x12, 0x02, // jp $202
	)
	m.timers.SetDelay(10)

	assert.NoError(t, m.runFrames(3))

	// still suspended, timers kept ticking
	assert.True(t, m.interp.AwaitingKey())
	assert.Equal(t, byte(7), m.timers.Delay())

	m.keys.SetKey(0x7, true)
	assert.NoError(t, m.runFrames(1))

	assert.False(t, m.interp.AwaitingKey())
	assert.Equal(t, byte(0x7), m.interp.V(0))
}

func TestRunHonorsContextCancellation(t *testing.T) {
	m := newMachine(t, Config{CPUHz: 60},
		0x12, 0x00,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.emu.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
