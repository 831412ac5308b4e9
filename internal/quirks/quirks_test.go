package quirks

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestResolvePresets(t *testing.T) {
	tests := []struct {
		name     string
		expected Set
	}{
		{PresetCosmacVIP, Set{IndexAdvance: true}},
		{PresetSChip, Set{ShiftSourceX: true, JumpOffsetVX: true}},
		{PresetModern, Set{
			ShiftSourceX:      true,
			IndexOverflowFlag: true,
			IndexAdvance:      true,
			SpriteWrap:        true,
			PCWrap:            true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Resolve(tt.name)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, set)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("vip2000")
	assert.Error(t, err)

	// custom is not a preset, its switches have no defaults
	_, err = Resolve(Custom)
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{PresetCosmacVIP, PresetModern, PresetSChip}, Names())
}
