// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/cli"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/retroenv/chip8emu/internal/input"
	"github.com/retroenv/chip8emu/internal/loader"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/quirks"
	frontend "github.com/retroenv/chip8emu/internal/sdl"
	"github.com/retroenv/chip8emu/internal/timer"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	// SDL requires all rendering calls to happen on the main OS thread
	runtime.LockOSThread()
}

func main() {
	ctx := app.Context()

	opts, quirkSet, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts, quirkSet); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation stopped")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

// run builds the machine from the options and drives it until the
// window is closed, the context is canceled or the machine faults.
func run(ctx context.Context, logger *log.Logger, opts options.Program,
	quirkSet quirks.Set) error {

	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return err
	}

	mem := memory.New()
	screen := display.New(quirkSet.SpriteWrap)
	keys := input.New()

	var window *frontend.Frontend
	var onTone func(bool)
	if !opts.Headless {
		window, err = frontend.New(screen, keys, opts.Scale)
		if err != nil {
			return err
		}
		defer window.Close()
		onTone = window.Beeper().SetTone
	}

	timers := timer.New(onTone)
	interp := chip8.New(mem, screen, timers, keys, quirkSet, opts.Seed)
	if err := interp.LoadProgram(program); err != nil {
		return err
	}

	logger.Info("Starting emulation",
		log.String("rom", opts.Input),
		log.String("preset", opts.Preset),
		log.Int("cpu_hz", opts.CPUHz))

	emu := emulator.New(logger, interp, timers, keys, config.Emulation(opts))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- emu.Run(runCtx)
		cancel()
	}()

	if window != nil {
		// the frontend blocks the main thread until the window is
		// closed or the machine stops
		if err := window.Run(runCtx); err != nil {
			cancel()
			<-errCh
			return fmt.Errorf("running frontend: %w", err)
		}
		cancel()
	}

	return <-errCh
}

// printBanner prints application version information
func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8emu", log.String("version", buildinfo.Version(version, commit, date)))
}
