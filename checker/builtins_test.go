// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinsForVersion(t *testing.T) {
	py38 := builtinsForVersion("py38")
	assert.Contains(t, py38, "print")
	assert.NotContains(t, py38, "aiter")
	assert.NotContains(t, py38, "ExceptionGroup")
	assert.NotContains(t, py38, "PythonFinalizationError")

	py310 := builtinsForVersion("py310")
	assert.Contains(t, py310, "aiter")
	assert.NotContains(t, py310, "ExceptionGroup")

	py313 := builtinsForVersion("py313")
	assert.Contains(t, py313, "ExceptionGroup")
	assert.Contains(t, py313, "PythonFinalizationError")
}

func TestBuiltinsUnknownVersionGetsFullTable(t *testing.T) {
	all := builtinsForVersion("")
	assert.Contains(t, all, "aiter")
	assert.Contains(t, all, "BaseExceptionGroup")
	assert.Contains(t, all, "PythonFinalizationError")
}
