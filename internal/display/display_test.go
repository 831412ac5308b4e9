package display

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawAndCollision(t *testing.T) {
	s := New(false)

	// a single full row of pixels
	collision := s.Draw([]byte{0xFF}, 0, 0)
	assert.False(t, collision)
	for x := 0; x < 8; x++ {
		assert.True(t, s.Pixel(x, 0))
	}

	// overlapping draw erases pixels and reports the collision
	collision = s.Draw([]byte{0x80}, 0, 0)
	assert.True(t, collision)
	assert.False(t, s.Pixel(0, 0))
	assert.True(t, s.Pixel(1, 0))
}

func TestDoubleDrawRestoresScreen(t *testing.T) {
	s := New(false)
	sprite := []byte{0x3C, 0x42, 0x42, 0x3C}

	collision := s.Draw(sprite, 10, 5)
	assert.False(t, collision)

	// drawing the same sprite again XORs everything back off
	collision = s.Draw(sprite, 10, 5)
	assert.True(t, collision)

	snapshot := s.Snapshot()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			assert.False(t, snapshot[y][x])
		}
	}
}

func TestDrawClipsAtEdges(t *testing.T) {
	s := New(false)

	// 8 pixel row starting 4 pixels from the right edge
	s.Draw([]byte{0xFF}, Width-4, 0)

	for x := Width - 4; x < Width; x++ {
		assert.True(t, s.Pixel(x, 0))
	}
	// clipped pixels do not appear on the left side
	for x := 0; x < 4; x++ {
		assert.False(t, s.Pixel(x, 0))
	}

	// rows past the bottom edge are dropped
	s.Draw([]byte{0x80, 0x80}, 0, Height-1)
	assert.True(t, s.Pixel(0, Height-1))
	assert.False(t, s.Pixel(0, 0))
}

func TestDrawWrapsAtEdges(t *testing.T) {
	s := New(true)

	s.Draw([]byte{0xFF}, Width-4, 0)
	for x := Width - 4; x < Width; x++ {
		assert.True(t, s.Pixel(x, 0))
	}
	for x := 0; x < 4; x++ {
		assert.True(t, s.Pixel(x, 0))
	}

	s.Draw([]byte{0x80, 0x80}, 8, Height-1)
	assert.True(t, s.Pixel(8, Height-1))
	assert.True(t, s.Pixel(8, 0))
}

func TestDrawOriginIsReducedModuloScreen(t *testing.T) {
	s := New(false)

	s.Draw([]byte{0x80}, Width+2, Height+3)
	assert.True(t, s.Pixel(2, 3))
}

func TestClear(t *testing.T) {
	s := New(false)
	s.Draw([]byte{0xFF}, 0, 0)

	s.Clear()

	assert.False(t, s.Pixel(0, 0))
}

func TestTakeDirty(t *testing.T) {
	s := New(false)
	s.TakeDirty()

	assert.False(t, s.TakeDirty())

	s.Draw([]byte{0x01}, 0, 0)
	assert.True(t, s.TakeDirty())
	assert.False(t, s.TakeDirty())
}
