package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SourceEmbedded is reported by LoadFlappy when no file was found.
const SourceEmbedded = "embedded"

// LoadFlappy loads the flappy configuration and reports where it came from.
// Search order: customPath -> ~/.flapper/configs/flappy.{yaml,toml} ->
// ./configs/flappy.yaml -> embedded default.
// Files are decoded over the defaults, so partial files are valid.
func LoadFlappy(customPath string) (FlappyConfig, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		return cfg, customPath, err
	}

	var candidates []string
	for _, name := range []string{"flappy.yaml", "flappy.toml"} {
		if path := userConfigPath(name); path != "" {
			candidates = append(candidates, path)
		}
	}
	candidates = append(candidates, filepath.Join("configs", "flappy.yaml"))

	// Only a missing file falls through to the next candidate.
	for _, path := range candidates {
		cfg, err := loadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, path, err
	}

	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(defaultFlappyYAML, &cfg); err != nil {
		return DefaultFlappyConfig(), SourceEmbedded, fmt.Errorf("config: failed to parse embedded defaults: %w", err)
	}
	return cfg, SourceEmbedded, nil
}

// loadFile reads a YAML or TOML file over the defaults.
func loadFile(path string) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if err := Decode(data, formatOf(path), &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Decode parses data in the given format into cfg.
func Decode(data []byte, format Format, cfg *FlappyConfig) error {
	switch format {
	case FormatTOML:
		_, err := toml.Decode(string(data), cfg)
		return err
	case FormatYAML:
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("config: unsupported format %q", format)
	}
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flapper", "configs", filename)
}
