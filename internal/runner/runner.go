// Package runner drives an interpreter inside a host.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// Options control the pacing and length of a run.
type Options struct {
	Delay     time.Duration // pause after every cycle, 0 runs unpaced
	MaxCycles uint64        // stop after this many cycles, 0 runs until quit
}

// Runner executes the cycle loop: cycle, repaint if the framebuffer is
// dirty, refresh the key snapshot and pace.
type Runner struct {
	logger *log.Logger
	in     *interpreter.Interpreter
	host   host.Host
	opts   Options
}

// New returns a runner for the interpreter and host.
func New(logger *log.Logger, in *interpreter.Interpreter, h host.Host, opts Options) *Runner {
	return &Runner{
		logger: logger,
		in:     in,
		host:   h,
		opts:   opts,
	}
}

// Run executes cycles until the context is canceled, the user quits, the
// cycle limit is reached or a cycle fails. Quitting is not an error.
func (r *Runner) Run(ctx context.Context) error {
	keys, err := r.host.Keys()
	if err != nil {
		return quitOrError(err)
	}
	r.in.SetKeys(keys)

	var pace <-chan time.Time
	if r.opts.Delay > 0 {
		ticker := time.NewTicker(r.opts.Delay)
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running: %w", err)
		}
		if r.opts.MaxCycles > 0 && r.in.Cycles() >= r.opts.MaxCycles {
			r.logger.Debug("Cycle limit reached", log.Int("cycles", int(r.in.Cycles())))
			return nil
		}

		done, err := r.step()
		if err != nil || done {
			return err
		}

		if pace != nil {
			select {
			case <-ctx.Done():
			case <-pace:
			}
		}
	}
}

// step executes one cycle and services the host. It returns true when
// the user requested to quit.
func (r *Runner) step() (bool, error) {
	event, err := r.in.Cycle()
	if err != nil {
		if errors.Is(err, keypad.ErrQuit) {
			r.logger.Info("Quit requested")
			return true, nil
		}
		r.logger.Debug("Machine state", log.Stringer("state", r.in))
		return false, fmt.Errorf("executing cycle %d: %w", r.in.Cycles()+1, err)
	}

	if r.in.DrawFlag() {
		if err := r.host.Present(r.in.Framebuffer()); err != nil {
			return false, fmt.Errorf("presenting frame: %w", err)
		}
		r.in.ClearDrawFlag()
	}

	if event.Has(interpreter.DelayExpired) {
		r.logger.Debug("Delay finished")
	}
	if event.Has(interpreter.SoundExpired) {
		r.host.Beep()
	}

	keys, err := r.host.Keys()
	if err != nil {
		if errors.Is(err, keypad.ErrQuit) {
			r.logger.Info("Quit requested")
			return true, nil
		}
		return false, fmt.Errorf("reading keys: %w", err)
	}
	r.in.SetKeys(keys)
	return false, nil
}

func quitOrError(err error) error {
	if errors.Is(err, keypad.ErrQuit) {
		return nil
	}
	return fmt.Errorf("reading keys: %w", err)
}
