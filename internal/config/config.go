package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Options is the immutable set of run-wide parameters for a distribution.
type Options struct {
	Pool                     float64
	Divisions                float64
	PerfTranslate            map[int]float64
	MinSalaryIncreasePercent float64
	BadPerformerGetsMin      bool
}

// rawOptions mirrors the options file. Pointer fields distinguish "omitted,
// use the default" from an explicit value; unknown keys are ignored.
type rawOptions struct {
	Pool                     *float64        `yaml:"pool" validate:"omitempty,gt=0"`
	Divisions                *float64        `yaml:"divisions" validate:"omitempty,gt=0"`
	PerfTranslate            map[int]float64 `yaml:"perfTranslate" validate:"omitempty,dive,min=0"`
	MinSalaryIncreasePercent *float64        `yaml:"minSalaryIncreasePercent" validate:"omitempty,min=0"`
	BadPerformerGetsMin      *bool           `yaml:"badPerformerGetsMin"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Defaults returns the built-in options: a 10000 pool handed out in divisions
// of 100, a 1.5% raise floor, the standard five-tier rating table, and no
// floor entitlement for zero-weight performers.
func Defaults() *Options {
	return &Options{
		Pool:                     10000,
		Divisions:                100,
		PerfTranslate:            map[int]float64{1: 0, 2: 0, 3: 1, 4: 1.5, 5: 2},
		MinSalaryIncreasePercent: 0.015,
		BadPerformerGetsMin:      false,
	}
}

// Load returns the defaults when no path is given, otherwise loads and
// validates the options file at path.
func Load(path string) (*Options, error) {
	if path == "" {
		return Defaults(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads and validates the options file at a specific path.
// Recognized keys override the defaults; everything else falls back.
func LoadFromPath(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	var raw rawOptions
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse options file: %w", err)
	}

	if err := validate.Struct(&raw); err != nil {
		return nil, fmt.Errorf("options validation failed: %w", err)
	}

	opts := Defaults()
	if raw.Pool != nil {
		opts.Pool = *raw.Pool
	}
	if raw.Divisions != nil {
		opts.Divisions = *raw.Divisions
	}
	if raw.PerfTranslate != nil {
		opts.PerfTranslate = raw.PerfTranslate
	}
	if raw.MinSalaryIncreasePercent != nil {
		opts.MinSalaryIncreasePercent = *raw.MinSalaryIncreasePercent
	}
	if raw.BadPerformerGetsMin != nil {
		opts.BadPerformerGetsMin = *raw.BadPerformerGetsMin
	}

	return opts, nil
}
