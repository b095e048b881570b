package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up from the checked directory upwards.
const FileName = ".saberlint.yaml"

// Output formats and colour modes.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Files struct {
	Sequencer string `yaml:"sequencer" json:"sequencer"`
	Hardware  string `yaml:"hardware" json:"hardware"`
	Profiles  string `yaml:"profiles" json:"profiles"`
}

type Defaults struct {
	LedCount int `yaml:"led_count" json:"led_count"`
}

type Output struct {
	Format string `yaml:"format" json:"format"`
	Color  string `yaml:"color" json:"color"`
}

type Config struct {
	Files    Files    `yaml:"files" json:"files"`
	Defaults Defaults `yaml:"defaults" json:"defaults"`
	Output   Output   `yaml:"output" json:"output"`
	Strict   bool     `yaml:"strict" json:"strict"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Files: Files{
			Sequencer: "AuxLeds.ini",
			Hardware:  "Common.ini",
			Profiles:  "Profiles.ini",
		},
		Defaults: Defaults{LedCount: 144},
		Output:   Output{Format: FormatText, Color: ColorAuto},
	}
}

// Load reads a config file. A missing file yields Default. Keys left out of
// the file keep their default values; unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes config YAML on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
