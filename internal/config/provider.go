/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package config

import (
	"os"

	"github.com/authfront/authfront/internal/errdefs"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = "authfront.yaml"

// File represents the raw authfront.yaml structure: global defaults plus
// per-environment overrides.
type File struct {
	Project      string                          `yaml:"project"`
	Environment  string                          `yaml:"environment"`
	Region       string                          `yaml:"region"`
	Domain       string                          `yaml:"domain"`
	Tags         map[string]string               `yaml:"tags"`
	Environments map[string]*EnvironmentDefaults `yaml:"environments"`
}

// EnvironmentDefaults holds the file-level defaults that apply to one
// environment after global values have been overlaid.
type EnvironmentDefaults struct {
	Project string            `yaml:"project"`
	Region  string            `yaml:"region"`
	Domain  string            `yaml:"domain"`
	Tags    map[string]string `yaml:"tags"`
}

// Load reads the configuration file at path. A missing file is not an error:
// the built-in defaults apply and Load returns nil. Malformed YAML is a
// validation error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errdefs.Validationf("failed to read config file %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errdefs.Validationf("config file %s is not valid YAML: %w", path, err)
	}
	return &f, nil
}

// Defaults returns the merged defaults for an environment: the file's global
// values with the environment's own section overlaid.
func (f *File) Defaults(environment string) EnvironmentDefaults {
	merged := EnvironmentDefaults{
		Project: f.Project,
		Region:  f.Region,
		Domain:  f.Domain,
		Tags:    map[string]string{},
	}
	for k, v := range f.Tags {
		merged.Tags[k] = v
	}

	env, ok := f.Environments[environment]
	if !ok || env == nil {
		return merged
	}

	if env.Project != "" {
		merged.Project = env.Project
	}
	if env.Region != "" {
		merged.Region = env.Region
	}
	if env.Domain != "" {
		merged.Domain = env.Domain
	}
	for k, v := range env.Tags {
		merged.Tags[k] = v
	}
	return merged
}
