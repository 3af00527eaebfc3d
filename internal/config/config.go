// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
)

// Configuration holds all configuration for the feasibility engine.
type Configuration struct {
	Scenarios []ScenarioConfig
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// ScenarioConfig names one business-parameter set to project.
type ScenarioConfig struct {
	Name       string
	Active     bool
	Parameters BusinessParameters
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source, e.g. an HTTP upload.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration normalizes every scenario's parameters and returns
// warnings for clamped values, duplicate scenario names, and configurations
// with nothing to project. Structural errors are not warnings; those surface
// from BusinessParameters.Validate at projection time.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	seen := make(map[string]struct{})
	active := 0
	for i := range c.Scenarios {
		scenario := &c.Scenarios[i]
		if scenario.Name == "" {
			warnings = append(warnings, fmt.Sprintf("scenario %d has no name", i+1))
		}
		if _, dup := seen[scenario.Name]; dup && scenario.Name != "" {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario name '%s'", scenario.Name))
		}
		seen[scenario.Name] = struct{}{}

		if !scenario.Active {
			continue
		}
		active++
		for _, w := range scenario.Parameters.Normalize() {
			warnings = append(warnings, fmt.Sprintf("scenario '%s': %s", scenario.Name, w))
		}
	}

	if active == 0 {
		warnings = append(warnings, "no active scenarios configured")
	}

	return warnings
}
