package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// config holds the settings that may come from a TOML file. Flags given on
// the command line override them.
type config struct {
	// Echo prints the syntax tree of each program.
	Echo bool `toml:"echo"`
	// Bytecode prints the instruction listing of each program.
	Bytecode bool `toml:"bytecode"`
	// Trace logs every executed instruction.
	Trace bool `toml:"trace"`
	// Verbosity is the commonlog verbosity.
	Verbosity int `toml:"verbosity"`
	// StackLimit bounds the machine stack. Zero means no limit.
	StackLimit int `toml:"stack-limit"`
}

// loadConfig parses a config file. Unknown keys are an error.
func loadConfig(path string) (config, error) {
	var c config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return c, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return c, nil
}

// verbosity is the log verbosity to configure. Tracing needs debug messages.
func (c config) verbosity() int {
	if c.Trace && c.Verbosity < 2 {
		return 2
	}
	return c.Verbosity
}
