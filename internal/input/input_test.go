package input

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeyState(t *testing.T) {
	k := New()
	assert.False(t, k.IsDown(0x5))

	k.SetKey(0x5, true)
	assert.True(t, k.IsDown(0x5))

	k.SetKey(0x5, false)
	assert.False(t, k.IsDown(0x5))
}

func TestKeyIndexMasked(t *testing.T) {
	k := New()

	k.SetKey(0x15, true)
	assert.True(t, k.IsDown(0x5))
}

func TestSnapshot(t *testing.T) {
	k := New()
	k.SetKey(0x0, true)
	k.SetKey(0xF, true)

	snapshot := k.Snapshot()
	assert.True(t, snapshot[0x0])
	assert.True(t, snapshot[0xF])
	assert.False(t, snapshot[0x1])
}

func TestTakePressConsumesEdge(t *testing.T) {
	k := New()

	_, ok := k.TakePress()
	assert.False(t, ok)

	k.SetKey(0xA, true)
	// a held key reported again is not a new press
	k.SetKey(0xA, true)

	key, ok := k.TakePress()
	assert.True(t, ok)
	assert.Equal(t, byte(0xA), key)

	_, ok = k.TakePress()
	assert.False(t, ok)

	// release and press again produces a new event
	k.SetKey(0xA, false)
	k.SetKey(0xA, true)
	key, ok = k.TakePress()
	assert.True(t, ok)
	assert.Equal(t, byte(0xA), key)
}

func TestDropPresses(t *testing.T) {
	k := New()
	k.SetKey(0x1, true)
	k.SetKey(0x2, true)

	k.DropPresses()

	_, ok := k.TakePress()
	assert.False(t, ok)
	// key state itself is unaffected
	assert.True(t, k.IsDown(0x1))
}

func TestReset(t *testing.T) {
	k := New()
	k.SetKey(0x3, true)

	k.Reset()

	assert.False(t, k.IsDown(0x3))
	_, ok := k.TakePress()
	assert.False(t, ok)
}
