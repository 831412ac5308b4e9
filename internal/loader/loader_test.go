package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/retrogolib/assert"
)

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		path := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		program, err := New().Load(path)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, program)
	})

	t.Run("load nonexistent file", func(t *testing.T) {
		_, err := New().Load(filepath.Join(t.TempDir(), "missing.ch8"))
		assert.Error(t, err)
	})

	t.Run("load oversized ROM", func(t *testing.T) {
		path := createTempFile(t, make([]byte, memory.Size))

		_, err := New().Load(path)
		assert.True(t, errors.Is(err, memory.ErrProgramTooLarge))
	})
}
