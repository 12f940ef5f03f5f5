// Package app provides the main application helper for the interpreter.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Exit codes for failures that are not load failures.
const (
	ExitFailure    = 1
	ExitOutOfRange = 4
)

// PrintBanner prints the program name and version.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := buildinfo.Version(version, commit, "")
	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the program image and the run.
func PrintInfo(logger *log.Logger, opts options.Program, imageSize int) {
	if opts.Quiet {
		return
	}

	mode := "terminal"
	if opts.Headless {
		mode = "headless"
	}
	logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", imageSize),
		log.String("mode", mode),
	)
}

// Run loads the program image and executes it until the user quits, the
// cycle limit is reached or an error occurs. The last frame of a headless
// run is written to output if requested.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, output io.Writer) (err error) {
	image, err := loader.New().Load(opts.Input)
	if err != nil {
		return err //nolint:wrapcheck // the load error carries the exit code
	}
	if err := memory.CheckImage(image); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	h, err := newHost(logger, opts, output)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := h.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("closing host: %w", closeErr))
		}
	}()

	in := interpreter.New(logger, h)
	in.Seed(config.Seed(opts))
	if err := in.LoadProgram(image); err != nil {
		return err
	}
	PrintInfo(logger, opts, len(image))

	return runner.New(logger, in, h, config.RunnerOptions(opts)).Run(ctx)
}

func newHost(logger *log.Logger, opts options.Program, output io.Writer) (host.Host, error) {
	if !opts.Headless {
		t, err := host.NewTerminal(logger)
		if err != nil {
			return nil, fmt.Errorf("creating terminal host: %w", err)
		}
		return t, nil
	}

	keys, err := config.ParseKeys(opts.Keys)
	if err != nil {
		return nil, err
	}
	h := host.NewHeadless(logger, keys...)
	if opts.Dump {
		h = h.WithDump(output)
	}
	return h, nil
}

// ExitCode returns the process exit status for an error returned by Run.
func ExitCode(err error) int {
	var loadErr *loader.LoadError
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case errors.As(err, &loadErr):
		return loadErr.Kind.ExitCode()
	case errors.Is(err, memory.ErrImageTooLarge):
		return loader.AllocationFailed.ExitCode()
	case errors.Is(err, interpreter.ErrOutOfRange):
		return ExitOutOfRange
	default:
		return ExitFailure
	}
}
