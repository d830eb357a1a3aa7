// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings([]byte(`
select: [F401, F821]
typing-modules: [mypackage.typing]
target-version: py38
stub: true
extra-builtins: [reveal_type]
cell-offsets: [0, 120, 340]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"F401", "F821"}, s.Select)
	assert.Equal(t, []string{"mypackage.typing"}, s.TypingModules)
	assert.Equal(t, "py38", s.TargetVersion)
	assert.True(t, s.Stub)
	assert.Equal(t, []string{"reveal_type"}, s.ExtraBuiltins)
	assert.Equal(t, []int{0, 120, 340}, s.CellOffsets)
}

func TestParseSettingsRejectsMalformedYAML(t *testing.T) {
	_, err := ParseSettings([]byte("select: [unclosed"))
	assert.Error(t, err)
}

func TestSettingsEnabled(t *testing.T) {
	var nilSettings *Settings
	assert.True(t, nilSettings.Enabled("F401"), "nil settings enable everything")

	empty := &Settings{}
	assert.True(t, empty.Enabled("E402"), "empty select enables everything")

	narrowed := &Settings{Select: []string{"F401"}}
	assert.True(t, narrowed.Enabled("F401"))
	assert.False(t, narrowed.Enabled("F841"))
}

func TestSettingsIsTypingModule(t *testing.T) {
	var nilSettings *Settings
	assert.True(t, nilSettings.IsTypingModule("typing"))
	assert.True(t, nilSettings.IsTypingModule("typing_extensions"))
	assert.False(t, nilSettings.IsTypingModule("mytyping"))

	s := &Settings{TypingModules: []string{"mytyping"}}
	assert.True(t, s.IsTypingModule("mytyping"))
	assert.False(t, s.IsTypingModule("other"))
}
