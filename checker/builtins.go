// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

// The builtin tables are keyed by target version. They are configuration,
// not shared mutable state: each model gets its own bindings, created
// once before traversal begins.

// pythonBuiltins are the names predeclared in every module scope.
var pythonBuiltins = []string{
	"abs", "aiter", "all", "anext", "any", "ascii", "bin", "bool",
	"breakpoint", "bytearray", "bytes", "callable", "chr", "classmethod",
	"compile", "complex", "copyright", "credits", "delattr", "dict",
	"dir", "divmod", "enumerate", "eval", "exec", "exit", "filter",
	"float", "format", "frozenset", "getattr", "globals", "hasattr",
	"hash", "help", "hex", "id", "input", "int", "isinstance",
	"issubclass", "iter", "len", "license", "list", "locals", "map",
	"max", "memoryview", "min", "next", "object", "oct", "open", "ord",
	"pow", "print", "property", "quit", "range", "repr", "reversed",
	"round", "set", "setattr", "slice", "sorted", "staticmethod", "str",
	"sum", "super", "tuple", "type", "vars", "zip",
	"ArithmeticError", "AssertionError", "AttributeError", "BaseException",
	"BlockingIOError", "BrokenPipeError", "BufferError", "BytesWarning",
	"ChildProcessError", "ConnectionAbortedError", "ConnectionError",
	"ConnectionRefusedError", "ConnectionResetError", "DeprecationWarning",
	"EOFError", "Ellipsis", "EnvironmentError", "Exception", "False",
	"FileExistsError", "FileNotFoundError", "FloatingPointError",
	"FutureWarning", "GeneratorExit", "IOError", "ImportError",
	"ImportWarning", "IndentationError", "IndexError", "InterruptedError",
	"IsADirectoryError", "KeyError", "KeyboardInterrupt", "LookupError",
	"MemoryError", "ModuleNotFoundError", "NameError", "None",
	"NotADirectoryError", "NotImplemented", "NotImplementedError",
	"OSError", "OverflowError", "PendingDeprecationWarning",
	"PermissionError", "ProcessLookupError", "RecursionError",
	"ReferenceError", "ResourceWarning", "RuntimeError", "RuntimeWarning",
	"StopAsyncIteration", "StopIteration", "SyntaxError", "SyntaxWarning",
	"SystemError", "SystemExit", "TabError", "TimeoutError", "True",
	"TypeError", "UnboundLocalError", "UnicodeDecodeError",
	"UnicodeEncodeError", "UnicodeError", "UnicodeTranslateError",
	"UnicodeWarning", "UserWarning", "ValueError", "Warning",
	"ZeroDivisionError", "EncodingWarning", "BaseExceptionGroup",
	"ExceptionGroup", "PythonFinalizationError",
	"__build_class__", "__builtins__", "__debug__", "__doc__",
	"__file__", "__import__", "__loader__", "__name__", "__package__",
	"__spec__",
}

// versionBuiltins lists names that exist only from a given version on.
var versionBuiltins = map[string][]string{
	"py310": {"aiter", "anext", "EncodingWarning"},
	"py311": {"BaseExceptionGroup", "ExceptionGroup"},
	"py313": {"PythonFinalizationError"},
}

var versionOrder = []string{"py38", "py39", "py310", "py311", "py312", "py313"}

// builtinsForVersion returns the builtin table for a target version
// string such as "py311". Unknown versions get the full table.
func builtinsForVersion(version string) []string {
	names := make([]string, 0, len(pythonBuiltins)+8)
	names = append(names, pythonBuiltins...)
	cut := len(versionOrder)
	for i, v := range versionOrder {
		if v == version {
			cut = i
			break
		}
	}
	for i, v := range versionOrder {
		if i <= cut {
			continue
		}
		// Target is older than v: drop v's additions.
		for _, late := range versionBuiltins[v] {
			names = remove(names, late)
		}
	}
	return names
}

func remove(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
