package engine

import (
	"github.com/BurntSushi/toml"
)

// Config holds the tunables an operator can set before starting the
// UCI loop, loaded from a TOML file (see LoadConfig) and otherwise
// defaulted by DefaultConfig.
type Config struct {
	Name              string `toml:"name"`
	Author            string `toml:"author"`
	HashMB            int    `toml:"hash_mb"`
	DefaultMoveTimeMs int    `toml:"default_movetime_ms"`
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() Config {
	return Config{
		Name:              "Corvid",
		Author:            "corvidchess",
		HashMB:            64,
		DefaultMoveTimeMs: 1000,
	}
}

// LoadConfig reads and merges a TOML config file over DefaultConfig.
// Fields absent from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
