// Package config handles application configuration and setup
package config

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
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

// RunnerOptions returns the pacing options of a run.
func RunnerOptions(opts options.Program) runner.Options {
	return runner.Options{
		Delay:     opts.Delay,
		MaxCycles: opts.Cycles,
	}
}

// Seed returns the seed for the random number source. A zero seed
// option selects a random seed.
func Seed(opts options.Program) uint64 {
	if opts.Seed != 0 {
		return opts.Seed
	}
	return rand.Uint64()
}

// ParseKeys converts a string of hex digits to key indexes.
func ParseKeys(s string) ([]byte, error) {
	keys := make([]byte, 0, len(s))
	for _, ch := range s {
		key, err := strconv.ParseUint(string(ch), 16, 8)
		if err != nil || key >= keypad.KeyCount {
			return nil, fmt.Errorf("invalid key %q: must be a hex digit", ch)
		}
		keys = append(keys, byte(key))
	}
	return keys, nil
}
