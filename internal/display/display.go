// Package display implements the 64x32 monochrome framebuffer that
// sprite drawing XORs pixels into. The interpreter mutates it from the
// VM execution context; the renderer reads consistent snapshots from
// its own context.
package display

import "sync"

// Screen dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Screen is the shared pixel grid. All methods are safe for use by one
// writer (the interpreter) and one reader (the renderer).
type Screen struct {
	mu     sync.Mutex
	pixels [Height][Width]bool
	dirty  bool

	wrap bool
}

// New returns a cleared screen. wrap selects whether sprite pixels wrap
// around the screen edges or clip.
func New(wrap bool) *Screen {
	return &Screen{wrap: wrap}
}

// Clear switches all pixels off.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pixels = [Height][Width]bool{}
	s.dirty = true
}

// Draw XORs a sprite into the framebuffer at the given coordinates and
// reports whether any pixel was erased by the blit. The sprite is up to
// 15 rows of 8 pixels, one byte per row, most significant bit leftmost.
//
// The origin is always reduced modulo the screen size, matching the
// original hardware. Pixels past the right or bottom edge wrap or clip
// depending on configuration.
func (s *Screen) Draw(sprite []byte, x, y byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	originX := int(x) % Width
	originY := int(y) % Height

	collision := false
	for row, bits := range sprite {
		py := originY + row
		if py >= Height {
			if !s.wrap {
				break
			}
			py %= Height
		}

		for bit := 0; bit < 8; bit++ {
			if bits&(0x80>>bit) == 0 {
				continue
			}

			px := originX + bit
			if px >= Width {
				if !s.wrap {
					continue
				}
				px %= Width
			}

			if s.pixels[py][px] {
				collision = true
			}
			s.pixels[py][px] = !s.pixels[py][px]
		}
	}

	s.dirty = true
	return collision
}

// Pixel reports the state of a single pixel, mainly for tests.
func (s *Screen) Pixel(x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pixels[y][x]
}

// Snapshot returns a copy of the current pixel grid, row-major.
func (s *Screen) Snapshot() [Height][Width]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pixels
}

// TakeDirty reports whether the framebuffer changed since the last call
// and resets the flag. The renderer uses it to redraw only on changes.
func (s *Screen) TakeDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirty := s.dirty
	s.dirty = false
	return dirty
}
