// Copyright 2016-2020, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workspace loads project settings for the mutscope tool.
package workspace

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SettingsFile is the name of the settings file searched for by DetectSettings.
const SettingsFile = "mutscope.yaml"

// Output formats accepted by the run command.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Settings holds the project-level defaults for the CLI. Command-line flags take precedence over these values.
type Settings struct {
	// Output is the format used to print bindings after a run.
	Output string `yaml:"output,omitempty"`
	// Color enables colored diagnostics.
	Color bool `yaml:"color,omitempty"`
	// Width is the wrap width for diagnostics; zero disables wrapping.
	Width uint `yaml:"width,omitempty"`
	// StopOnError stops evaluation at the first error.
	StopOnError bool `yaml:"stopOnError,omitempty"`
	// Globals are predeclared as immutable string bindings before each run.
	Globals Globals `yaml:"globals,omitempty"`

	// Path is the file the settings were loaded from, if any.
	Path string `yaml:"-"`
}

// Globals maps predeclared names to their string values. Scalar YAML values of any type are accepted and converted
// to strings.
type Globals map[string]string

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *Globals) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	globals := make(Globals, len(raw))
	for name, v := range raw {
		s, err := cast.ToStringE(v)
		if err != nil {
			return errors.Wrapf(err, "global %q", name)
		}
		globals[name] = s
	}
	*g = globals
	return nil
}

// DefaultSettings returns the settings used when no settings file is present.
func DefaultSettings() *Settings {
	return &Settings{Output: OutputText}
}

// GlobalNames returns the names of the configured globals in sorted order.
func (s *Settings) GlobalNames() []string {
	names := make([]string, 0, len(s.Globals))
	for name := range s.Globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the settings for values the CLI cannot act on.
func (s *Settings) Validate() error {
	switch s.Output {
	case OutputText, OutputYAML, OutputJSON:
	default:
		return errors.Errorf("unknown output format %q; expected one of text, yaml, json", s.Output)
	}
	for name := range s.Globals {
		if name == "" {
			return errors.New("globals may not contain an empty name")
		}
	}
	return nil
}

// LoadSettings reads and validates the settings file at the given path. Fields the file omits keep their defaults.
func LoadSettings(path string) (*Settings, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings file %s", path)
	}

	settings := DefaultSettings()
	if err = yaml.UnmarshalStrict(b, settings); err != nil {
		return nil, errors.Wrapf(err, "decoding settings file %s", path)
	}
	if err = settings.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid settings file %s", path)
	}
	settings.Path = path
	return settings, nil
}

// DetectSettingsPath searches dir and each of its parents for a settings file. It returns the empty string if none is
// found.
func DetectSettingsPath(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", dir)
	}
	for {
		candidate := filepath.Join(dir, SettingsFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// DetectSettings loads the nearest settings file at or above dir, or returns the defaults if there is none.
func DetectSettings(dir string) (*Settings, error) {
	path, err := DetectSettingsPath(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultSettings(), nil
	}
	return LoadSettings(path)
}
