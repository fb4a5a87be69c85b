// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package config is the engine's tunables bag: host-supplied knobs that are
// not game state (the flow iteration safety cap, the default RNG seed, how
// many undo-relevant commands to retain) loaded from an optional YAML file.
// Mirrors the discipline of a small save file: a missing or partial file is
// fine, every field left unset keeps its Defaults value.
package config

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// defaultMaxFlowSteps matches flow's own built-in cap so a host that never
// loads a Config still gets the same safety bound.
const defaultMaxFlowSteps = 10000

// Config holds engine tunables a host may override. Every field's zero
// value is a usable default (see Defaults).
type Config struct {
	// MaxFlowSteps bounds how many flow engine ticks a single Start/Resume
	// call may take before it gives up with ErrStepCapExceeded, guarding
	// against a host's flow tree looping forever on bad data.
	MaxFlowSteps int `yaml:"maxFlowSteps"`

	// DefaultSeed seeds new games when a host doesn't supply its own seed,
	// e.g. for a demo or test harness that wants reproducible runs without
	// plumbing a seed through every call site.
	DefaultSeed uint64 `yaml:"defaultSeed"`

	// HistoryLimit is how many of the newest commands Game.TrimHistory
	// keeps when a host calls it, 0 meaning unbounded. The executor never
	// trims on its own, so without such calls the log grows for the whole
	// game.
	HistoryLimit int `yaml:"historyLimit"`
}

// Defaults returns the configuration used when no file is loaded, or when a
// loaded file leaves fields unset.
func Defaults() Config {
	return Config{
		MaxFlowSteps: defaultMaxFlowSteps,
		DefaultSeed:  1,
		HistoryLimit: 0,
	}
}

// Load reads a YAML config file at path, overlaying its fields onto
// Defaults. A missing file is not an error: Load returns Defaults()
// unchanged, mirroring save.go's "missing file is fine" restore behavior.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("config: no file, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "config: read %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), errors.Wrapf(err, "config: decode %s", path)
	}
	if cfg.MaxFlowSteps <= 0 {
		cfg.MaxFlowSteps = defaultMaxFlowSteps
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating or truncating the file.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "config: encode")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "config: write %s", path)
	}
	return nil
}
