// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"fmt"

	"go.pycheck.net/pycheck/syntax"
)

// A Diagnostic is one finding, tagged with the rule that produced it.
// Ranges are always file-relative, including findings produced inside
// re-parsed string annotations.
type Diagnostic struct {
	Code    string
	Message string
	Range   syntax.Range
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%d-%d]: %s", d.Code, d.Range.Start, d.Range.End, d.Message)
}

// Rule codes reported by the built-in analyses.
const (
	CodeUnusedImport      = "F401" // imported but unused
	CodeStarImportUsage   = "F405" // may be undefined, or defined from star imports
	CodeForwardSyntax     = "F722" // syntax error in forward annotation
	CodeRedefinition      = "F811" // redefinition of unused name
	CodeUndefinedName     = "F821" // undefined name
	CodeUndefinedExport   = "F822" // undefined name in __all__
	CodeUnusedVariable    = "F841" // local variable assigned but never used
	CodeLateImport        = "E402" // module-level import not at top of file
	CodeInvalidAllFormat  = "E605" // invalid format for __all__
	CodeInvalidAllObject  = "E604" // invalid object in __all__
)

// Codes returns the rule codes of every built-in analysis.
func Codes() []string {
	return append([]string(nil), allCodes...)
}

var allCodes = []string{
	CodeUnusedImport,
	CodeStarImportUsage,
	CodeForwardSyntax,
	CodeRedefinition,
	CodeUndefinedName,
	CodeUndefinedExport,
	CodeUnusedVariable,
	CodeLateImport,
	CodeInvalidAllFormat,
	CodeInvalidAllObject,
}
