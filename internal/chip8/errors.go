package chip8

import "errors"

// Fault conditions of the interpreter core. All of them halt the
// execution driver unless a policy decides otherwise; see the emulator
// package for the unknown-instruction policy.
var (
	// ErrOutOfBounds is returned when the program counter or a computed
	// address leaves the memory range in a configuration that does not
	// wrap.
	ErrOutOfBounds = errors.New("address out of bounds")

	// ErrStackOverflow is returned when a subroutine call exceeds the
	// call stack capacity.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when a return executes with an
	// empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrUnknownInstruction is returned when the fetched opcode word is
	// not part of the instruction set.
	ErrUnknownInstruction = errors.New("unknown instruction")
)
