// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Emulation maps the program options to the execution driver settings.
func Emulation(opts options.Program) emulator.Config {
	return emulator.Config{
		CPUHz:       opts.CPUHz,
		SkipUnknown: opts.SkipUnknown,
	}
}
