// Package options contains the program options.
package options

// Program options of the emulator.
type Program struct {
	Input string

	Preset      string // quirk preset name
	CPUHz       int    // instruction rate
	Seed        int64  // random number seed, 0 selects time-based
	SkipUnknown bool   // continue on unknown instructions

	Scale    int  // window scale factor
	Headless bool // run without window and audio

	Debug bool
	Quiet bool
}
