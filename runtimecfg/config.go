// Package runtimecfg loads the settings a host uses to construct and drive
// a parser.Parser: debug tracing, the error-recovery policy knob, and the
// initial stack capacity hint. Configuration files are TOML, parsed with
// github.com/BurntSushi/toml, matching how the rest of this codebase's
// ancestry loads structured config and world data.
package runtimecfg

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/lalrrun/parser"
)

// RecoveryPolicy names a parser.RecoveryMode in config files, so hosts don't
// have to spell the numeric constant in TOML.
type RecoveryPolicy string

const (
	RecoveryConsume RecoveryPolicy = "consume"
	RecoveryPop     RecoveryPolicy = "pop"
)

// Mode converts rp to the parser.RecoveryMode it names. An empty or unknown
// RecoveryPolicy is treated as RecoveryConsume, the package default.
func (rp RecoveryPolicy) Mode() parser.RecoveryMode {
	switch strings.ToLower(string(rp)) {
	case string(RecoveryPop):
		return parser.PopErrorFrameOnRefailure
	default:
		return parser.ConsumeLookaheadPerAttempt
	}
}

// Validate returns an error if rp does not name a known recovery policy. An
// empty RecoveryPolicy is valid; it means "use the default".
func (rp RecoveryPolicy) Validate() error {
	switch rp {
	case "", RecoveryConsume, RecoveryPop:
		return nil
	default:
		return fmt.Errorf("recovery policy not one of 'consume' or 'pop': %q", rp)
	}
}

// Config is the configuration for a single running parser.Parser. The zero
// Config, once passed through FillDefaults, describes a parser with tracing
// off, the default recovery policy, and the package's default stack
// capacity hint; Validate still rejects it until TablePath is set.
type Config struct {
	// TablePath is the path to the compiled state-machine artifact to load,
	// either a TOML document (tablefmt.LoadTOML) or a rezi-encoded binary
	// (tablefmt.LoadBinary), selected by file extension.
	TablePath string

	// Debug enables SHIFT/REDUCE/error trace emission.
	Debug bool

	// Recovery selects the post-recovery lookahead policy. See
	// RecoveryPolicy.
	Recovery RecoveryPolicy

	// StackCapacityHint is the initial number of frames reserved on the
	// parser stack. Zero means "use the package default".
	StackCapacityHint int
}

// FillDefaults returns a copy of cfg with unset fields replaced by their
// defaults.
func (cfg Config) FillDefaults() Config {
	out := cfg
	if out.Recovery == "" {
		out.Recovery = RecoveryConsume
	}
	return out
}

// Validate returns an error if cfg has invalid field values. Call it after
// FillDefaults if defaults are intended to be used.
func (cfg Config) Validate() error {
	if cfg.TablePath == "" {
		return fmt.Errorf("table path not set")
	}
	if err := cfg.Recovery.Validate(); err != nil {
		return fmt.Errorf("recovery: %w", err)
	}
	if cfg.StackCapacityHint < 0 {
		return fmt.Errorf("stack capacity hint must not be negative, got %d", cfg.StackCapacityHint)
	}
	return nil
}

// Load reads and parses the TOML config file at path into a Config. It does
// not fill defaults or validate; call FillDefaults and Validate on the
// result as needed.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
