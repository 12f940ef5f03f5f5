// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args)
}

func parseArgs(osArgs []string) (options.Program, error) {
	flags := flag.NewFlagSet(osArgs[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(osArgs[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}
	return opts, nil
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
	fmt.Printf("usage: retrochip8 [options] <program image>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program image, please pass the program image as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{msg: fmt.Sprintf("only one program image can be run, got %d", len(args))}
	}
	return nil
}

// validateOptions checks option values and combinations
func validateOptions(opts options.Program) error {
	if opts.Delay < 0 {
		return fmt.Errorf("invalid delay %s: must not be negative", opts.Delay)
	}
	if opts.Dump && !opts.Headless {
		return errors.New("option -dump requires -headless")
	}
	if opts.Keys != "" && !opts.Headless {
		return errors.New("option -keys requires -headless")
	}
	if _, err := config.ParseKeys(opts.Keys); err != nil {
		return err
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the program image file")
	flags.DurationVar(&opts.Delay, "delay", options.DefaultDelay, "pause after every cycle")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after this many cycles (0: unlimited)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number source (0: random)")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal output")
	flags.BoolVar(&opts.Dump, "dump", false, "print the last frame when a headless run ends")
	flags.StringVar(&opts.Keys, "keys", "", "hex keys answered to key waits in headless mode, e.g. 1a0f")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
