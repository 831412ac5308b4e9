// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a ROM file as raw buffer data and validates that it fits
// into the machine's program memory area.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	cart, err := cartridge.LoadBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	program := cart.PRG
	if max := memory.Size - memory.ProgramStart; len(program) > max {
		return nil, fmt.Errorf("%w: %s is %d bytes, %d available",
			memory.ErrProgramTooLarge, path, len(program), max)
	}

	return program, nil
}
