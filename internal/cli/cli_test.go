package cli

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8emu/internal/quirks"
	"github.com/retroenv/retrogolib/assert"
)

func TestParsePresetDefaults(t *testing.T) {
	opts, set, err := parse("chip8emu", []string{"game.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, quirks.PresetCosmacVIP, opts.Preset)
	assert.Equal(t, 700, opts.CPUHz)
	assert.Equal(t, 10, opts.Scale)

	expected, err := quirks.Resolve(quirks.PresetCosmacVIP)
	assert.NoError(t, err)
	assert.Equal(t, expected, set)
}

func TestParsePresetOverride(t *testing.T) {
	_, set, err := parse("chip8emu", []string{
		"-preset", "schip",
		"-quirk-sprite-wrap",
		"game.ch8",
	})
	assert.NoError(t, err)

	// preset values with one switch overridden
	assert.True(t, set.ShiftSourceX)
	assert.True(t, set.JumpOffsetVX)
	assert.True(t, set.SpriteWrap)
	assert.False(t, set.PCWrap)
}

func TestParseCustomRequiresAllSwitches(t *testing.T) {
	_, _, err := parse("chip8emu", []string{
		"-preset", "custom",
		"-quirk-shift-vx",
		"game.ch8",
	})
	assert.Error(t, err)
	assert.ErrorContains(t, err, "quirk-jump-vx")

	_, set, err := parse("chip8emu", []string{
		"-preset", "custom",
		"-quirk-shift-vx=true",
		"-quirk-jump-vx=false",
		"-quirk-index-flag=true",
		"-quirk-index-advance=false",
		"-quirk-sprite-wrap=true",
		"-quirk-pc-wrap=false",
		"game.ch8",
	})
	assert.NoError(t, err)
	assert.Equal(t, quirks.Set{
		ShiftSourceX:      true,
		IndexOverflowFlag: true,
		SpriteWrap:        true,
	}, set)
}

func TestParseUnknownPreset(t *testing.T) {
	_, _, err := parse("chip8emu", []string{"-preset", "chip9", "game.ch8"})
	assert.Error(t, err)
	assert.ErrorContains(t, err, "unknown quirk preset")
}

func TestParseMissingROM(t *testing.T) {
	_, _, err := parse("chip8emu", []string{"-debug"})

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestParseArgumentAfterROM(t *testing.T) {
	_, _, err := parse("chip8emu", []string{"game.ch8", "-debug"})
	assert.Error(t, err)
	assert.ErrorContains(t, err, "last argument")
}
