// Package quirks defines the behavioural switches that diverged between
// historical CHIP-8 machines. A Set is resolved once at startup, either
// from a preset matching a machine variant or from fully custom
// per-switch values, and stays immutable for the whole run.
package quirks

import (
	"fmt"
	"sort"
)

// Set holds all resolved switches. Opcode handlers read the individual
// switches they need instead of the whole set.
type Set struct {
	// ShiftSourceX selects the operand of the shift instructions:
	// true reads Vx (CHIP-48 and later), false reads Vy (COSMAC VIP).
	ShiftSourceX bool

	// JumpOffsetVX selects the offset register of jump-with-offset:
	// true uses the Vx register embedded in the opcode, false uses V0.
	JumpOffsetVX bool

	// IndexOverflowFlag sets VF when adding to the index register moves
	// it past the end of the address space.
	IndexOverflowFlag bool

	// IndexAdvance makes the bulk register transfers leave the index
	// register pointing past the transferred range, as the COSMAC VIP
	// interpreter did.
	IndexAdvance bool

	// SpriteWrap wraps sprite pixels around the screen edges instead of
	// clipping them.
	SpriteWrap bool

	// PCWrap wraps the program counter at the end of memory instead of
	// treating the overflow as a fault.
	PCWrap bool
}

// Preset names selectable on the command line. Custom is not a preset:
// it requires every switch to be given explicitly.
const (
	PresetCosmacVIP = "cosmac-vip"
	PresetSChip     = "schip"
	PresetModern    = "modern"
	Custom          = "custom"
)

var presets = map[string]Set{
	// The reference machine of the original instruction set.
	PresetCosmacVIP: {
		ShiftSourceX:      false,
		JumpOffsetVX:      false,
		IndexOverflowFlag: false,
		IndexAdvance:      true,
		SpriteWrap:        false,
		PCWrap:            false,
	},
	// SuperChip-era interpreters as found on HP-48 calculators.
	PresetSChip: {
		ShiftSourceX:      true,
		JumpOffsetVX:      true,
		IndexOverflowFlag: false,
		IndexAdvance:      false,
		SpriteWrap:        false,
		PCWrap:            false,
	},
	// Permissive settings common in contemporary interpreters.
	PresetModern: {
		ShiftSourceX:      true,
		JumpOffsetVX:      false,
		IndexOverflowFlag: true,
		IndexAdvance:      true,
		SpriteWrap:        true,
		PCWrap:            true,
	},
}

// Resolve returns the switch set for a preset name.
func Resolve(preset string) (Set, error) {
	set, ok := presets[preset]
	if !ok {
		return Set{}, fmt.Errorf("unknown quirk preset '%s'", preset)
	}
	return set, nil
}

// Names returns all preset names in stable order, for usage texts.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
