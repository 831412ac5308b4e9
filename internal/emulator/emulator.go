// Package emulator drives the interpreter core at its configured speed.
// It owns the dual-rate execution model: instructions run at the
// configurable CPU rate while the timers tick at a fixed 60 Hz,
// independent of how fast instructions execute.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/input"
	"github.com/retroenv/chip8emu/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the timer and display refresh rate in Hz, fixed by the
// original hardware.
const FrameRate = 60

// DefaultCPUHz is the default instruction rate, a comfortable speed for
// most historical programs.
const DefaultCPUHz = 700

// Config adjusts the execution behaviour of the driver.
type Config struct {
	// CPUHz is the instruction rate. Rates below FrameRate execute one
	// instruction per frame.
	CPUHz int

	// SkipUnknown logs unrecognized opcode words and continues instead
	// of stopping the machine.
	SkipUnknown bool
}

// Emulator runs an interpreter in frame-sized batches of instruction
// cycles, applying exactly one timer tick per frame.
type Emulator struct {
	logger *log.Logger
	cfg    Config

	interp *chip8.Interpreter
	timers *timer.Timers
	keys   *input.Keypad
}

// New returns a driver for the given machine.
func New(logger *log.Logger, interp *chip8.Interpreter, timers *timer.Timers,
	keys *input.Keypad, cfg Config) *Emulator {

	if cfg.CPUHz <= 0 {
		cfg.CPUHz = DefaultCPUHz
	}

	return &Emulator{
		logger: logger,
		cfg:    cfg,
		interp: interp,
		timers: timers,
		keys:   keys,
	}
}

// Run executes the machine paced by a real-time 60 Hz clock until the
// context is canceled or the machine faults.
func (e *Emulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	return e.RunFrames(ctx, ticker.C)
}

// RunFrames executes one frame per received tick until the context is
// canceled or the channel is closed. Separating the clock from the
// execution lets tests drive the machine with a simulated clock.
func (e *Emulator) RunFrames(ctx context.Context, frames <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case _, ok := <-frames:
			if !ok {
				return nil
			}
			if err := e.frame(); err != nil {
				return err
			}
		}
	}
}

// frame runs one batch of instruction cycles followed by exactly one
// timer tick. The timers advance even while the machine waits for a
// key, only instruction execution is suspended.
func (e *Emulator) frame() error {
	cycles := e.cfg.CPUHz / FrameRate
	if cycles < 1 {
		cycles = 1
	}

	for i := 0; i < cycles; i++ {
		if e.interp.AwaitingKey() {
			key, ok := e.keys.TakePress()
			if !ok {
				break
			}
			e.interp.ResumeKey(key)
		}

		if err := e.interp.Step(); err != nil {
			if e.cfg.SkipUnknown && errors.Is(err, chip8.ErrUnknownInstruction) {
				e.logger.Warn("Skipping unknown instruction",
					log.Err(err),
					log.Hex("pc", e.interp.PC()))
				continue
			}
			return fmt.Errorf("executing at %04X: %w", e.interp.PC(), err)
		}
	}

	e.timers.Tick()
	return nil
}
