// Package options contains the program options.
package options

import (
	"time"
)

// DefaultDelay is the pause after every executed cycle.
const DefaultDelay = 70 * time.Millisecond

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"program image file"`
}

// Flags contains behavior options.
type Flags struct {
	Delay    time.Duration `flag:"delay" usage:"pause after every cycle" default:"70ms"`
	Cycles   uint64        `flag:"cycles" usage:"stop after this many cycles (0: unlimited)"`
	Seed     uint64        `flag:"seed" usage:"seed of the random number source (0: random)"`
	Headless bool          `flag:"headless" usage:"run without terminal output"`
	Dump     bool          `flag:"dump" usage:"print the last frame when a headless run ends"`
	Keys     string        `flag:"keys" usage:"hex keys answered to key waits in headless mode, e.g. 1a0f"`
	Debug    bool          `flag:"debug" usage:"enable debug logging"`
	Quiet    bool          `flag:"q" usage:"quiet mode"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
}
