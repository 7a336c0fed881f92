package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the user home directory
const DefaultConfigFile = ".plox.yaml"

// Config holds the command line settings that can be persisted on disk
type Config struct {
	LogLevel    string `yaml:"log_level"`
	Color       bool   `yaml:"color"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	PrintAST    bool   `yaml:"print_ast"`
}

// DefaultConfig returns the settings used when no file is present
func DefaultConfig() Config {
	return Config{
		LogLevel:    "warn",
		Color:       true,
		Prompt:      "> ",
		HistoryFile: ".plox_history",
	}
}

// DefaultConfigPath returns $HOME/.plox.yaml, or an empty string when the
// home directory is unknown
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigFile)
}

// LoadConfig reads a YAML config file on top of the defaults. When
// mustExist is false a missing file is not an error.
func LoadConfig(path string, mustExist bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Level parses LogLevel
func (c Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel, fmt.Errorf("config: log_level: %w", err)
	}
	return level, nil
}

// HistoryPath resolves the history file relative to the home directory
func (c Config) HistoryPath() string {
	if c.HistoryFile == "" || filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}
