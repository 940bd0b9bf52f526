// Package config loads the emulator configuration from a TOML
// file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the configuration of a single emulator run.
type Config struct {
	// ROM is the path of the ROM image to run.
	ROM string `toml:"rom"`
	// LogLevel is a logrus level name, such as "debug" or "info".
	LogLevel string `toml:"log_level"`
	// Trace is the path of the instruction trace. Empty disables
	// tracing.
	Trace string `toml:"trace"`
	// TraceCompress compresses the trace with brotli.
	TraceCompress bool `toml:"trace_compress"`
	// MaxCycles stops the run after the given number of machine
	// cycles. Zero runs until the CPU stops.
	MaxCycles uint64 `toml:"max_cycles"`
	// HaltBug enables emulation of the HALT bug.
	HaltBug bool `toml:"halt_bug"`
	// SerialOut copies bytes sent over the serial port to stdout.
	SerialOut bool `toml:"serial_out"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		HaltBug:  true,
	}
}

// Load reads the configuration file at path. Keys missing from
// the file keep their default value, unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
	}

	return cfg, nil
}
