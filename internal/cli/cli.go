// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/quirks"
)

// Per-switch quirk flag names. Each one overrides its preset value when
// given explicitly; preset custom requires all of them.
const (
	flagShiftVX      = "quirk-shift-vx"
	flagJumpVX       = "quirk-jump-vx"
	flagIndexFlag    = "quirk-index-flag"
	flagIndexAdvance = "quirk-index-advance"
	flagSpriteWrap   = "quirk-sprite-wrap"
	flagPCWrap       = "quirk-pc-wrap"
)

// ParseFlags parses command line flags and returns the program options
// and the resolved quirk switch set.
func ParseFlags() (options.Program, quirks.Set, error) {
	return parse(os.Args[0], os.Args[1:])
}

func parse(name string, args []string) (options.Program, quirks.Set, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options.Program
	overrides := readOptionFlags(flags, &opts)

	err := flags.Parse(args)
	positional := flags.Args()
	if err != nil || len(positional) == 0 {
		return opts, quirks.Set{}, &UsageError{flags: flags}
	}

	if err := validateArgs(positional); err != nil {
		return opts, quirks.Set{}, err
	}

	opts.Input = positional[0]

	set, err := resolveQuirks(flags, opts.Preset, overrides)
	if err != nil {
		return opts, quirks.Set{}, err
	}

	return opts, set, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8emu [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) *quirks.Set {
	flags.StringVar(&opts.Preset, "preset", quirks.PresetCosmacVIP,
		fmt.Sprintf("quirk preset (%s)", strings.Join(append(quirks.Names(), quirks.Custom), "/")))
	flags.IntVar(&opts.CPUHz, "cpu-hz", emulator.DefaultCPUHz, "instructions executed per second")
	flags.Int64Var(&opts.Seed, "seed", 0, "random number seed, 0 uses the current time")
	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor")
	flags.BoolVar(&opts.SkipUnknown, "skip-unknown", false, "log unknown instructions and continue instead of stopping")
	flags.BoolVar(&opts.Headless, "headless", false, "run without window and audio output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	overrides := &quirks.Set{}
	flags.BoolVar(&overrides.ShiftSourceX, flagShiftVX, false, "shift instructions operate on Vx instead of Vy")
	flags.BoolVar(&overrides.JumpOffsetVX, flagJumpVX, false, "jump with offset uses Vx instead of V0")
	flags.BoolVar(&overrides.IndexOverflowFlag, flagIndexFlag, false, "set VF when the index register overflows the address space")
	flags.BoolVar(&overrides.IndexAdvance, flagIndexAdvance, false, "bulk register transfers advance the index register")
	flags.BoolVar(&overrides.SpriteWrap, flagSpriteWrap, false, "wrap sprites around the screen edges instead of clipping")
	flags.BoolVar(&overrides.PCWrap, flagPCWrap, false, "wrap the program counter at the end of memory instead of stopping")
	return overrides
}

// resolveQuirks combines the preset with explicitly given per-switch
// flags. The custom preset has no baseline, so every switch must be
// passed explicitly.
func resolveQuirks(flags *flag.FlagSet, preset string, overrides *quirks.Set) (quirks.Set, error) {
	explicit := map[string]bool{}
	flags.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	var set quirks.Set
	switches := []struct {
		name  string
		value bool
		dst   *bool
	}{
		{flagShiftVX, overrides.ShiftSourceX, &set.ShiftSourceX},
		{flagJumpVX, overrides.JumpOffsetVX, &set.JumpOffsetVX},
		{flagIndexFlag, overrides.IndexOverflowFlag, &set.IndexOverflowFlag},
		{flagIndexAdvance, overrides.IndexAdvance, &set.IndexAdvance},
		{flagSpriteWrap, overrides.SpriteWrap, &set.SpriteWrap},
		{flagPCWrap, overrides.PCWrap, &set.PCWrap},
	}

	if preset == quirks.Custom {
		for _, s := range switches {
			if !explicit[s.name] {
				return quirks.Set{}, fmt.Errorf("preset custom requires -%s to be given explicitly", s.name)
			}
		}
		return *overrides, nil
	}

	set, err := quirks.Resolve(preset)
	if err != nil {
		return quirks.Set{}, fmt.Errorf("%w, valid presets: %s",
			err, strings.Join(append(quirks.Names(), quirks.Custom), ", "))
	}

	for _, s := range switches {
		if explicit[s.name] {
			*s.dst = s.value
		}
	}
	return set, nil
}
