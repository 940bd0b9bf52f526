// Command dmg runs a Game Boy ROM headless, until the CPU stops,
// faults or reaches the configured cycle limit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/thelolagemann/dmg/internal/config"
	"github.com/thelolagemann/dmg/internal/gameboy"
	"github.com/thelolagemann/dmg/internal/trace"
	"github.com/thelolagemann/dmg/pkg/log"
	"github.com/thelolagemann/dmg/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, runs the emulator and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("dmg", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configFile := flags.String("config", "", "The TOML configuration file to load")
	romFile := flags.String("rom", "", "The rom file to load")
	logLevel := flags.String("log-level", "", "The log level (debug, info, warn, error)")
	traceFile := flags.String("trace", "", "Write an instruction trace to the given file")
	traceCompress := flags.Bool("trace-compress", false, "Compress the instruction trace with brotli")
	maxCycles := flags.Uint64("max-cycles", 0, "Stop after the given number of machine cycles")
	haltBug := flags.Bool("halt-bug", true, "Emulate the HALT bug")
	serialOut := flags.Bool("serial", false, "Copy serial output to stdout")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	// flags override the configuration file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rom":
			cfg.ROM = *romFile
		case "log-level":
			cfg.LogLevel = *logLevel
		case "trace":
			cfg.Trace = *traceFile
		case "trace-compress":
			cfg.TraceCompress = *traceCompress
		case "max-cycles":
			cfg.MaxCycles = *maxCycles
		case "halt-bug":
			cfg.HaltBug = *haltBug
		case "serial":
			cfg.SerialOut = *serialOut
		}
	})
	if cfg.ROM == "" && flags.NArg() > 0 {
		cfg.ROM = flags.Arg(0)
	}

	logger := log.NewWithLevel(cfg.LogLevel, stderr)
	if cfg.ROM == "" {
		logger.Errorf("no rom file given")
		flags.Usage()
		return 2
	}

	rom, err := utils.LoadFile(cfg.ROM)
	if err != nil {
		logger.Errorf("unable to load rom: %v", err)
		return 1
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithMaxCycles(cfg.MaxCycles),
		gameboy.WithHaltBug(cfg.HaltBug),
	}
	if cfg.SerialOut {
		opts = append(opts, gameboy.WithSerialWriter(stdout))
	}
	if cfg.Trace != "" {
		sink, err := trace.NewFileSink(cfg.Trace, cfg.TraceCompress)
		if err != nil {
			logger.Errorf("unable to open trace: %v", err)
			return 1
		}
		defer func() {
			if err := sink.Close(); err != nil {
				logger.Errorf("unable to write trace: %v", err)
			}
		}()
		opts = append(opts, gameboy.WithTracer(sink))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Errorf("unable to load cartridge: %v", err)
		return 1
	}

	switch err := gb.Run(ctx); {
	case err == nil, errors.Is(err, gameboy.ErrCycleLimit):
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
