// Package config loads optional overrides for the fingerprinting
// pipeline's fixed constants. The shipped defaults always reproduce
// the bit-compatible constants fixed by the core fingerprint package;
// a config file only exists for experimenting with alternate tunings
// without touching code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params mirrors the tunable constants of the fingerprint pipeline.
// Zero-value fields left unset by a loaded YAML file keep the default.
type Params struct {
	TargetSampleRate int     `yaml:"target_sample_rate"`
	MinFreq          int     `yaml:"min_freq"`
	MaxFreq          int     `yaml:"max_freq"`
	Algorithm        uint8   `yaml:"algorithm"`
	ResampleCutoff   float64 `yaml:"resample_cutoff"`
}

// Default returns the fixed constants the core fingerprint package
// uses when no configuration file is supplied.
func Default() Params {
	return Params{
		TargetSampleRate: 11025,
		MinFreq:          28,
		MaxFreq:          3520,
		Algorithm:        1,
		ResampleCutoff:   0.8,
	}
}

// Load reads a YAML file and merges it field-by-field over Default():
// a field absent from the file, or left at its Go zero value, keeps
// the default rather than being zeroed out.
func Load(path string) (Params, error) {
	params := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var override Params
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Params{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if override.TargetSampleRate != 0 {
		params.TargetSampleRate = override.TargetSampleRate
	}
	if override.MinFreq != 0 {
		params.MinFreq = override.MinFreq
	}
	if override.MaxFreq != 0 {
		params.MaxFreq = override.MaxFreq
	}
	if override.Algorithm != 0 {
		params.Algorithm = override.Algorithm
	}
	if override.ResampleCutoff != 0 {
		params.ResampleCutoff = override.ResampleCutoff
	}

	return params, nil
}
