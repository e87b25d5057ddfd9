// Package picsearch finds pictures in a directory tree and browses them one at a time.
package picsearch

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

var (
	// ErrNotDir is returned when a search root is not a directory.
	ErrNotDir = errors.New("not a directory")
	// ErrUnknownFormat is returned for format names that are not recognized.
	ErrUnknownFormat = errors.New("unknown format")
)

// Config holds configuration for a picture search.
type Config struct {
	Dir        string  `toml:"dir"`
	Formats    Formats `toml:"formats"`
	SkipHidden bool    `toml:"skip_hidden"`

	// Width and Height are the initial display size for hosts that have none.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	ExportDir string `toml:"export_dir"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Formats: DefaultFormats(),
		Width:   1024,
		Height:  768,
	}
}

// LoadConfig reads a TOML configuration file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}
