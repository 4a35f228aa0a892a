package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// config is the optional lrgen.toml configuration file: a default table
// variant (so -v need not be passed every run), the REPL prompt string, and
// whether to echo the built automaton's states before printing the table.
// Grounded on the teacher's internal/tqw and internal/game marshaling.go use
// of toml.Unmarshal for its own on-disk formats.
type config struct {
	DefaultVariant string `toml:"default_variant"`
	Prompt         string `toml:"prompt"`
	EchoAutomaton  bool   `toml:"echo_automaton"`
}

// defaultConfig is used whenever no config file is found; a missing config
// file is not an error, per spec.md §6 (the CLI contract names only the
// grammar file as a required argument).
func defaultConfig() config {
	return config{
		DefaultVariant: "",
		Prompt:         "Write string :",
		EchoAutomaton:  false,
	}
}

// loadConfig reads the config file at path, if present. A missing file is
// not an error; a malformed one is.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
