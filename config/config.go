// Package config handles hopvm.toml runner configuration.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/ezrec/hopvm/cpu"
)

// Config represents a hopvm.toml runner configuration.
type Config struct {
	Machine   Machine   `toml:"machine"`
	Assembler Assembler `toml:"assembler"`
	Output    Output    `toml:"output"`
}

// Machine configures the virtual machine.
type Machine struct {
	Memory  int  `toml:"memory"`
	Verbose bool `toml:"verbose"`
}

// Assembler configures the assembler.
type Assembler struct {
	Defines map[string]string `toml:"defines"`
	Verbose bool              `toml:"verbose"`
}

// Output configures where print and printn write.
type Output struct {
	Path string `toml:"path"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{
		Machine: Machine{
			Memory: cpu.MEMORY_SIZE,
		},
		Output: Output{
			Path: "-",
		},
	}
}

// Parse decodes a configuration over the defaults.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "config: parse")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the configuration, and fills in an empty output path.
// It must be called again after any command line override.
func (c *Config) Validate() error {
	if c.Machine.Memory <= cpu.ORIGIN {
		return errors.Errorf("config: memory size %d too small", c.Machine.Memory)
	}
	if len(c.Output.Path) == 0 {
		c.Output.Path = "-"
	}

	return nil
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: cannot read %s", path)
	}

	return Parse(data)
}
