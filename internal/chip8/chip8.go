// Package chip8 implements the CHIP-8 interpreter core: the register
// file, call stack and the fetch-decode-execute cycle, including the
// hardware-accurate behaviour quirks of the historical machines.
package chip8

import (
	"math/rand"
	"time"

	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/input"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/chip8emu/internal/quirks"
	"github.com/retroenv/chip8emu/internal/timer"
)

// StackSize is the call stack capacity of the original interpreter.
const StackSize = 16

// NumRegisters is the number of general purpose registers V0-VF.
const NumRegisters = 16

// flagRegister is VF, doubling as carry/borrow/collision flag.
const flagRegister = 0xF

// Interpreter is one CHIP-8 virtual machine instance. It owns the
// register file and call stack and mutates the shared memory, display,
// timer and keypad collaborators. All state lives on the instance, so
// independent machines can run side by side in tests.
//
// The interpreter is single-threaded: Step and the accessors must only
// be called from the execution driver's context.
type Interpreter struct {
	v     [NumRegisters]byte
	index uint16
	pc    uint16
	stack [StackSize]uint16
	sp    int

	// awaiting key is the only suspension state of the cycle; the
	// driver checks it before each step and resumes via ResumeKey.
	awaitingKey bool
	waitReg     byte

	mem    *memory.RAM
	screen *display.Screen
	timers *timer.Timers
	keys   *input.Keypad
	quirks quirks.Set
	rng    *rand.Rand
}

// New wires an interpreter to its collaborators. A seed of 0 selects
// time-based randomness; any other seed makes RND reproducible.
func New(mem *memory.RAM, screen *display.Screen, timers *timer.Timers,
	keys *input.Keypad, quirkSet quirks.Set, seed int64) *Interpreter {

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Interpreter{
		pc:     memory.ProgramStart,
		mem:    mem,
		screen: screen,
		timers: timers,
		keys:   keys,
		quirks: quirkSet,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Reset returns all machine state to its power-on values. Memory keeps
// its program region, matching a hardware reset.
func (in *Interpreter) Reset() {
	in.v = [NumRegisters]byte{}
	in.index = 0
	in.pc = memory.ProgramStart
	in.stack = [StackSize]uint16{}
	in.sp = 0
	in.awaitingKey = false
	in.waitReg = 0

	in.screen.Clear()
	in.timers.Reset()
	in.keys.Reset()
}

// LoadProgram writes a program into memory at the fixed origin and
// resets the machine. Core state is left untouched when the program
// does not fit.
func (in *Interpreter) LoadProgram(program []byte) error {
	if err := in.mem.LoadProgram(program); err != nil {
		return err
	}

	in.Reset()
	return nil
}

// Step runs one atomic fetch-decode-execute cycle. It must not be
// called while the interpreter is awaiting a key.
func (in *Interpreter) Step() error {
	word, err := in.fetch()
	if err != nil {
		return err
	}

	ins, err := Decode(word)
	if err != nil {
		return err
	}

	return in.execute(ins)
}

// fetch reads the big-endian opcode word at the program counter and
// advances it by 2. Branching handlers overwrite the advanced value.
func (in *Interpreter) fetch() (uint16, error) {
	hi := in.mem.Read(in.pc)
	lo := in.mem.Read(in.pc + 1)

	if err := in.advancePC(); err != nil {
		return 0, err
	}

	return uint16(hi)<<8 | uint16(lo), nil
}

// advancePC moves the program counter to the next instruction. Running
// past the end of memory wraps or faults depending on configuration.
func (in *Interpreter) advancePC() error {
	in.pc += 2
	if in.pc < memory.Size {
		return nil
	}

	if !in.quirks.PCWrap {
		return ErrOutOfBounds
	}
	in.pc &= memory.AddressMask
	return nil
}

// AwaitingKey reports whether the machine is suspended in the
// wait-for-key instruction.
func (in *Interpreter) AwaitingKey() bool {
	return in.awaitingKey
}

// ResumeKey completes a pending wait-for-key with the pressed key and
// leaves the machine ready for the next cycle.
func (in *Interpreter) ResumeKey(key byte) {
	if !in.awaitingKey {
		return
	}

	in.v[in.waitReg] = key & 0x0F
	in.awaitingKey = false
}

// V returns the value of a general purpose register.
func (in *Interpreter) V(reg byte) byte {
	return in.v[reg&0x0F]
}

// SetV sets a general purpose register.
func (in *Interpreter) SetV(reg, value byte) {
	in.v[reg&0x0F] = value
}

// PC returns the program counter.
func (in *Interpreter) PC() uint16 {
	return in.pc
}

// Index returns the address register.
func (in *Interpreter) Index() uint16 {
	return in.index
}

// StackDepth returns the number of return addresses on the call stack.
func (in *Interpreter) StackDepth() int {
	return in.sp
}
