package host

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// DefaultKeyHold is how long a key counts as pressed after its last
// press event. Terminals do not report key releases.
const DefaultKeyHold = 150 * time.Millisecond

const (
	pixelOn  = '█'
	pixelOff = ' '
	// cellsPerPixel widens pixels to get a roughly square aspect ratio.
	cellsPerPixel = 2
	eventBuffer   = 64
)

// Terminal is a host that renders to the terminal using termbox.
type Terminal struct {
	logger *log.Logger
	bell   io.Writer
	events chan termbox.Event
	done   chan struct{}

	hold    time.Duration
	now     func() time.Time
	pressed [keypad.KeyCount]time.Time
	quit    bool
}

// NewTerminal initializes the terminal and starts reading key events.
func NewTerminal(logger *log.Logger) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	t := newTerminal(logger, os.Stdout)
	go t.poll()
	return t, nil
}

func newTerminal(logger *log.Logger, bell io.Writer) *Terminal {
	return &Terminal{
		logger: logger,
		bell:   bell,
		events: make(chan termbox.Event, eventBuffer),
		done:   make(chan struct{}),
		hold:   DefaultKeyHold,
		now:    time.Now,
	}
}

// poll forwards terminal events until the terminal is closed. It runs in
// its own goroutine and does not touch any other state.
func (t *Terminal) poll() {
	defer close(t.done)

	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			return
		case termbox.EventError:
			t.logger.Error("Reading terminal event failed", log.Err(ev.Err))
			return
		}

		select {
		case t.events <- ev:
		default:
			// the interpreter is not reading input, drop the event
		}
	}
}

// handle applies a terminal event to the key state and returns the key
// index for a mapped key press.
func (t *Terminal) handle(ev termbox.Event) (byte, bool) {
	action, key := translateEvent(ev)
	switch action {
	case actionQuit:
		t.quit = true
	case actionKey:
		t.pressed[key] = t.now()
		return key, true
	case actionNone:
	}
	return 0, false
}

// Keys drains the pending events and returns the keys that were pressed
// within the hold duration.
func (t *Terminal) Keys() (keypad.State, error) {
	for pending := true; pending; {
		select {
		case ev := <-t.events:
			t.handle(ev)
		default:
			pending = false
		}
	}

	if t.quit {
		return keypad.State{}, keypad.ErrQuit
	}

	var state keypad.State
	now := t.now()
	for key, pressed := range t.pressed {
		if !pressed.IsZero() && now.Sub(pressed) < t.hold {
			state[key] = true
		}
	}
	return state, nil
}

// WaitKey blocks until a mapped key is pressed.
func (t *Terminal) WaitKey() (byte, error) {
	for !t.quit {
		select {
		case ev := <-t.events:
			if key, ok := t.handle(ev); ok {
				return key, nil
			}
		case <-t.done:
			return 0, keypad.ErrQuit
		}
	}
	return 0, keypad.ErrQuit
}

// Present renders the framebuffer and flushes it to the terminal.
func (t *Terminal) Present(fb *display.Framebuffer) error {
	for y := range display.Height {
		for x := range display.Width {
			ch := pixelOff
			if fb.Pixel(x, y) != 0 {
				ch = pixelOn
			}
			for i := range cellsPerPixel {
				termbox.SetCell(x*cellsPerPixel+i, y, ch, termbox.ColorDefault, termbox.ColorDefault)
			}
		}
	}

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	if _, err := io.WriteString(t.bell, "\a"); err != nil {
		t.logger.Debug("Ringing bell failed", log.Err(err))
	}
}

// Close stops the event reader and restores the terminal.
func (t *Terminal) Close() error {
	select {
	case <-t.done:
	default:
		termbox.Interrupt()
		<-t.done
	}
	termbox.Close()
	return nil
}
