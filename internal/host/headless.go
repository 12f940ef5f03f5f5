package host

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// Headless is a host without a terminal. Key waits are served from a
// fixed queue and the key snapshot never changes.
type Headless struct {
	logger *log.Logger
	queue  *keypad.Queue
	keys   keypad.State
	dump   io.Writer

	last   *display.Framebuffer
	frames int
	beeps  int
}

// NewHeadless returns a headless host that answers key waits with the
// given keys in order and requests to quit once they are used up.
func NewHeadless(logger *log.Logger, keys ...byte) *Headless {
	return &Headless{
		logger: logger,
		queue:  keypad.NewQueue(keys...),
	}
}

// WithKeys sets the key snapshot returned for every cycle.
func (h *Headless) WithKeys(keys keypad.State) *Headless {
	h.keys = keys
	return h
}

// WithDump makes Close write the last presented frame to w.
func (h *Headless) WithDump(w io.Writer) *Headless {
	h.dump = w
	return h
}

func (h *Headless) Keys() (keypad.State, error) {
	return h.keys, nil
}

func (h *Headless) WaitKey() (byte, error) {
	key, err := h.queue.WaitKey()
	if err != nil {
		h.logger.Info("No more keys queued, stopping")
		return 0, fmt.Errorf("waiting for key: %w", err)
	}
	return key, nil
}

// Present records a copy of the framebuffer as the last presented frame.
func (h *Headless) Present(fb *display.Framebuffer) error {
	frame := *fb
	h.last = &frame
	h.frames++
	return nil
}

func (h *Headless) Beep() {
	h.beeps++
	h.logger.Info("Beep")
}

// Frames returns the number of presented frames.
func (h *Headless) Frames() int {
	return h.frames
}

// Beeps returns the number of signaled sound ends.
func (h *Headless) Beeps() int {
	return h.beeps
}

// Close writes the last presented frame if a dump writer is set.
func (h *Headless) Close() error {
	if h.dump == nil || h.last == nil {
		return nil
	}
	if _, err := fmt.Fprintln(h.dump, h.last.String()); err != nil {
		return fmt.Errorf("writing frame dump: %w", err)
	}
	return nil
}
