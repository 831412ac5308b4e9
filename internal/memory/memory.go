// Package memory implements the CHIP-8 memory subsystem: a flat 4 KiB
// address space holding the builtin font and the loaded program.
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the total amount of addressable memory (4 KiB).
	Size = 0x1000

	// AddressMask masks a computed address to the addressable range.
	// The original hardware wrapped addresses instead of faulting,
	// so all pointer arithmetic is reduced modulo the memory size.
	AddressMask = Size - 1

	// ProgramStart is the address where programs are loaded and begin
	// execution. The area below it belonged to the interpreter on the
	// COSMAC VIP and holds the font data here.
	ProgramStart = 0x200

	// FontStart is the address of the builtin hexadecimal font.
	FontStart = 0x050

	// FontGlyphSize is the size in bytes of one font glyph.
	FontGlyphSize = 5
)

// ErrProgramTooLarge is returned when a program does not fit into the
// memory area above ProgramStart.
var ErrProgramTooLarge = errors.New("program too large")

// font contains the sprite data for the hexadecimal digits 0-F,
// 5 bytes per glyph.
var font = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// RAM is the flat memory of one machine instance. It is not safe for
// concurrent use; the execution driver is its only user during a run.
type RAM struct {
	data [Size]byte
}

// New returns memory with the font data resident at FontStart.
func New() *RAM {
	r := &RAM{}
	r.Reset()
	return r
}

// Reset clears all memory and rewrites the font data.
func (r *RAM) Reset() {
	r.data = [Size]byte{}
	copy(r.data[FontStart:], font[:])
}

// Read returns the byte at the given address. The address is masked to
// the addressable range.
func (r *RAM) Read(addr uint16) byte {
	return r.data[addr&AddressMask]
}

// Write stores a byte at the given address. The address is masked to
// the addressable range.
func (r *RAM) Write(addr uint16, value byte) {
	r.data[addr&AddressMask] = value
}

// ReadRange returns count bytes starting at addr. Each address is
// masked individually, so a range crossing the end of memory wraps
// around to the start.
func (r *RAM) ReadRange(addr, count uint16) []byte {
	buf := make([]byte, count)
	for i := uint16(0); i < count; i++ {
		buf[i] = r.data[(addr+i)&AddressMask]
	}
	return buf
}

// WriteRange stores the given bytes starting at addr, wrapping around
// at the end of memory.
func (r *RAM) WriteRange(addr uint16, values []byte) {
	for i, value := range values {
		r.data[(addr+uint16(i))&AddressMask] = value
	}
}

// LoadProgram copies a program into memory at ProgramStart. Memory
// below the program region is left untouched. A program that does not
// fit returns ErrProgramTooLarge and leaves memory unchanged.
func (r *RAM) LoadProgram(program []byte) error {
	if len(program) > Size-ProgramStart {
		return fmt.Errorf("%w: %d bytes, %d available",
			ErrProgramTooLarge, len(program), Size-ProgramStart)
	}

	copy(r.data[ProgramStart:], program)
	return nil
}

// FontAddress returns the address of the glyph for the given
// hexadecimal digit. Only the low nibble of the digit is used.
func FontAddress(digit byte) uint16 {
	return FontStart + FontGlyphSize*uint16(digit&0x0F)
}
