// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeJSONModule(t *testing.T) {
	// import os
	// x: "Foo" = f(1, key=name)
	data := []byte(`{
		"kind": "module", "start": 0, "end": 40,
		"body": [
			{
				"kind": "import", "start": 0, "end": 9,
				"names": [{
					"kind": "alias", "start": 7, "end": 9,
					"name": {"kind": "ident", "start": 7, "end": 9, "id": "os"}
				}]
			},
			{
				"kind": "annassign", "start": 10, "end": 36, "simple": true,
				"target": {"kind": "name", "start": 10, "end": 11, "id": "x"},
				"annotation": {"kind": "str", "start": 13, "end": 18, "str": "Foo"},
				"value": {
					"kind": "call", "start": 21, "end": 36,
					"func": {"kind": "name", "start": 21, "end": 22, "id": "f"},
					"args": [{"kind": "num", "start": 23, "end": 24, "num": "1"}],
					"keywords": [{
						"kind": "keyword", "start": 26, "end": 34,
						"name": {"kind": "ident", "start": 26, "end": 29, "id": "key"},
						"value": {"kind": "name", "start": 30, "end": 34, "id": "name"}
					}]
				}
			}
		]
	}`)

	got, err := DecodeJSON(data)
	if err != nil {
		t.Fatal(err)
	}

	want := &Module{
		Range: Range{0, 40},
		Body: []Stmt{
			&Import{
				Range: Range{0, 9},
				Names: []*Alias{{
					Range: Range{7, 9},
					Name:  Ident{Range: Range{7, 9}, Name: "os"},
				}},
			},
			&AnnAssign{
				Range:      Range{10, 36},
				Target:     &Name{Range: Range{10, 11}, ID: "x"},
				Annotation: &StringLiteral{Range: Range{13, 18}, Value: "Foo"},
				Value: &Call{
					Range: Range{21, 36},
					Func:  &Name{Range: Range{21, 22}, ID: "f"},
					Args:  []Expr{&NumberLiteral{Range: Range{23, 24}, Value: "1"}},
					Keywords: []*KeywordArg{{
						Range: Range{26, 34},
						Name:  &Ident{Range: Range{26, 29}, Name: "key"},
						Value: &Name{Range: Range{30, 34}, ID: "name"},
					}},
				},
				Simple: true,
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded tree mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSONFunction(t *testing.T) {
	data := []byte(`{
		"kind": "module", "start": 0, "end": 30,
		"body": [{
			"kind": "functiondef", "start": 0, "end": 30, "async": true,
			"name": {"kind": "ident", "start": 10, "end": 11, "id": "g"},
			"params": {
				"kind": "parameters", "start": 12, "end": 16,
				"args": [{
					"kind": "param", "start": 12, "end": 16,
					"name": {"kind": "ident", "start": 12, "end": 13, "id": "a"},
					"default": {"kind": "none", "start": 14, "end": 18}
				}]
			},
			"body": [{"kind": "pass", "start": 25, "end": 29}]
		}]
	}`)

	mod, err := DecodeJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	fn, ok := mod.Body[0].(*FunctionDef)
	if !ok {
		t.Fatalf("decoded %T, want *FunctionDef", mod.Body[0])
	}
	if !fn.Async {
		t.Error("async flag lost")
	}
	if len(fn.Params.Args) != 1 || fn.Params.Args[0].Name.Name != "a" {
		t.Errorf("params = %+v, want one arg named a", fn.Params.Args)
	}
	if _, ok := fn.Params.Args[0].Default.(*NoneLiteral); !ok {
		t.Error("parameter default lost")
	}
}

func TestDecodeJSONExpr(t *testing.T) {
	data := []byte(`{
		"kind": "binop", "start": 0, "end": 5, "op": "+",
		"x": {"kind": "name", "start": 0, "end": 1, "id": "a"},
		"y": {"kind": "num", "start": 4, "end": 5, "num": "2"}
	}`)
	e, err := DecodeJSONExpr(data)
	if err != nil {
		t.Fatal(err)
	}
	bin, ok := e.(*BinOp)
	if !ok {
		t.Fatalf("decoded %T, want *BinOp", e)
	}
	if bin.Op != "+" {
		t.Errorf("op = %q, want +", bin.Op)
	}
}

func TestDecodeJSONRejectsUnknownKind(t *testing.T) {
	if _, err := DecodeJSON([]byte(`{"kind": "module", "body": [{"kind": "mystery"}]}`)); err == nil {
		t.Error("unknown statement kind decoded without error")
	}
	if _, err := DecodeJSON([]byte(`{"kind": "expr"}`)); err == nil {
		t.Error("non-module root decoded without error")
	}
}
