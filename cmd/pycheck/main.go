// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The pycheck command analyzes one parsed Python module and prints its
// findings.
//
// pycheck does not parse Python itself: the input is the JSON tree
// interchange format emitted by an external front end (see the syntax
// package). With -source the original file is used to report
// line:column positions; otherwise findings carry byte offsets.
//
// The exit code is 0 for a clean file, 1 when findings were reported,
// and 64 for usage errors.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"go.pycheck.net/pycheck/checker"
	"go.pycheck.net/pycheck/syntax"
)

// flags
var (
	settingsFile = flag.String("settings", "", "YAML settings file")
	sourceFile   = flag.String("source", "", "Python source the tree was parsed from")
	jsonOutput   = flag.Bool("json", false, "print findings as JSON")
	listCodes    = flag.Bool("codes", false, "list built-in rule codes and exit")
	noColor      = flag.Bool("nocolor", false, "disable color even on a terminal")
)

func main() {
	log.SetPrefix("pycheck: ")
	log.SetFlags(0)
	flag.Parse()
	os.Exit(doMain())
}

func doMain() int {
	if *listCodes {
		for _, code := range checker.Codes() {
			fmt.Println(code)
		}
		return 0
	}
	if flag.NArg() != 1 {
		log.Print("want exactly one tree file")
		return 64
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Print(err)
		return 64
	}
	module, err := syntax.DecodeJSON(data)
	if err != nil {
		log.Print(err)
		return 64
	}

	opts := &checker.Options{}
	if *settingsFile != "" {
		raw, err := os.ReadFile(*settingsFile)
		if err != nil {
			log.Print(err)
			return 64
		}
		settings, err := checker.ParseSettings(raw)
		if err != nil {
			log.Print(err)
			return 64
		}
		opts.Settings = settings
	}
	if *sourceFile != "" {
		src, err := os.ReadFile(*sourceFile)
		if err != nil {
			log.Print(err)
			return 64
		}
		opts.Locator = syntax.NewLocator(string(src))
	}

	diags := checker.Analyze(module, opts)

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(diags); err != nil {
			log.Print(err)
			return 1
		}
	} else {
		color := !*noColor && term.IsTerminal(int(os.Stdout.Fd()))
		for _, d := range diags {
			printDiag(d, opts.Locator, color)
		}
	}

	if len(diags) > 0 {
		return 1
	}
	return 0
}

func printDiag(d checker.Diagnostic, loc *syntax.Locator, color bool) {
	var pos string
	if loc != nil {
		pos = loc.Position(d.Range.Start).String()
	} else {
		pos = fmt.Sprintf("+%d", d.Range.Start)
	}
	code := d.Code
	if color {
		code = "\x1b[1;31m" + code + "\x1b[0m"
	}
	fmt.Printf("%s: %s %s\n", pos, code, d.Message)
}
