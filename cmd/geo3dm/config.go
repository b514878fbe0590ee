package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-3dm/threedm"
)

// Config represents the geo3dm configuration file
// (~/.config/geo3dm/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	FormatVersion   *int64 `yaml:"format_version"`
	EncoderRevision *int64 `yaml:"encoder_revision"`
	Units           string `yaml:"units"`
	Comment         string `yaml:"comment"`

	Application *threedm.Application `yaml:"application"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "geo3dm", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig(path string) Config {
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyWriteConfig applies config file defaults to the write command
// settings when the corresponding flag was not explicitly set.
func applyWriteConfig(c *cli.Command, cfg Config, s *writeSettings) {
	if cfg.FormatVersion != nil && !c.IsSet("format-version") {
		s.formatVersion = *cfg.FormatVersion
	}
	if cfg.EncoderRevision != nil && !c.IsSet("encoder-revision") {
		s.encoderRevision = *cfg.EncoderRevision
	}
	if cfg.Units != "" && !c.IsSet("units") {
		s.units = cfg.Units
	}
	if cfg.Comment != "" && !c.IsSet("comment") {
		s.comment = cfg.Comment
	}
	if cfg.Application != nil && !c.IsSet("app-name") {
		s.application = cfg.Application
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		s.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		s.logFormat = cfg.LogFormat
	}
}
