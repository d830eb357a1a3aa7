// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Settings configures one analysis run. The zero value enables every
// built-in rule for the default target version.
type Settings struct {
	// Select lists enabled rule codes; empty enables all built-ins.
	Select []string `yaml:"select"`

	// TypingModules are modules treated like "typing" when classifying
	// annotation contexts (ClassVar, InitVar, TYPE_CHECKING, ...).
	TypingModules []string `yaml:"typing-modules"`

	// TargetVersion selects the builtin table, e.g. "py38", "py312".
	TargetVersion string `yaml:"target-version"`

	// Stub marks the source as a .pyi stub: forward references are
	// legal everywhere and annotations are never evaluated.
	Stub bool `yaml:"stub"`

	// ExtraBuiltins are bound into the module scope alongside the
	// standard builtins (e.g. names injected by an embedding host).
	ExtraBuiltins []string `yaml:"extra-builtins"`

	// CellOffsets are the byte offsets at which notebook cells begin,
	// for sources that are several concatenated cells. Affects only
	// the import-boundary rule.
	CellOffsets []int `yaml:"cell-offsets"`
}

// ParseSettings loads settings from YAML.
func ParseSettings(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return &s, nil
}

// Enabled reports whether the rule code is selected.
func (s *Settings) Enabled(code string) bool {
	if s == nil || len(s.Select) == 0 {
		return true
	}
	for _, c := range s.Select {
		if c == code {
			return true
		}
	}
	return false
}

// IsTypingModule reports whether mod is "typing" or an allowlisted
// typing-compatible module.
func (s *Settings) IsTypingModule(mod string) bool {
	if mod == "typing" || mod == "typing_extensions" {
		return true
	}
	if s == nil {
		return false
	}
	for _, m := range s.TypingModules {
		if m == mod {
			return true
		}
	}
	return false
}
