// Package host contains the collaborators that present the framebuffer
// and deliver key input to the interpreter.
package host

import (
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
)

// Host is the environment the runner drives an interpreter in.
type Host interface {
	keypad.Input

	// Keys returns the current key snapshot. keypad.ErrQuit is returned
	// when the user requested to end the run.
	Keys() (keypad.State, error)
	// Present repaints the framebuffer.
	Present(fb *display.Framebuffer) error
	// Beep signals the end of a sound.
	Beep()
	// Close releases the host resources.
	Close() error
}
