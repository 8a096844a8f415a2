// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package calc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/syntree/calc"
	"github.com/bufbuild/syntree/internal/golden"
	"github.com/bufbuild/syntree/source"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
		errs       []string
	}{
		{text: "1", want: "File[Number]"},
		{text: "1 + 2 * 3", want: "File[Add[Number Plus Mul[Number Star Number]]]"},
		{text: "1 - 2 - 3", want: "File[Sub[Sub[Number Minus Number] Minus Number]]"},
		{text: "2 ^ 3 ^ 2", want: "File[Pow[Number Caret Pow[Number Caret Number]]]"},
		{text: "-2 ^ 2", want: "File[Neg[Minus Pow[Number Caret Number]]]"},
		{text: "2 ^ -1", want: "File[Pow[Number Caret Neg[Minus Number]]]"},
		{text: "a * -b % c", want: "File[Mod[Mul[Ident Star Neg[Minus Ident]] Percent Ident]]"},
		{text: "(1 + 2) * 3", want: "File[Mul[Paren[LParen Add[Number Plus Number] RParen] Star Number]]"},
		{text: "max(1, 2 + 3)", want: "File[Call[Ident LParen Number Comma Add[Number Plus Number] RParen]]"},
		{text: "f()", want: "File[Call[Ident LParen RParen]]"},
		{text: "f(x)^2", want: "File[Pow[Call[Ident LParen Ident RParen] Caret Number]]"},

		{
			text: "",
			want: "File[]",
			errs: []string{"test:1:1: expected an expression"},
		},
		{
			text: "1 +",
			want: "File[Add[Number Plus Error[]]]",
			errs: []string{"test:1:4: expected an expression, found end of input"},
		},
		{
			text: "(1",
			want: "File[Paren[LParen Number]]",
			errs: []string{"test:1:3: expected `)`, found end of input"},
		},
		{
			text: "1 2",
			want: "File[Number Error[Number]]",
			errs: []string{"test:1:3: unexpected `2` after expression"},
		},
		{
			text: "$",
			want: "File[Error[Unknown]]",
			errs: []string{"test:1:1: unexpected `$`"},
		},
		{
			text: "* 2",
			want: "File[Mul[Error[] Star Number]]",
			errs: []string{"test:1:1: expected an expression, found `*`"},
		},
		{
			text: "f(1 2)",
			want: "File[Call[Ident LParen Number] Error[Number RParen]]",
			errs: []string{
				"test:1:5: expected `)`, found `2`",
				"test:1:5: unexpected `2` after expression",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			tree, errs := calc.Parse(source.NewFile("test", test.text))
			assert.Equal(t, test.want, fmt.Sprint(tree.Root()))

			var got []string
			for _, err := range errs {
				got = append(got, err.Error())
			}
			assert.Equal(t, test.errs, got)
		})
	}
}

func TestParseSpans(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test", " (a + b) ")
	tree, errs := calc.Parse(file)
	assert.Empty(t, errs)

	root := tree.Root()
	assert.Equal(t, file.Span(0, 9), root.Span())

	paren := root.Cursor().Next()
	assert.Equal(t, calc.Paren, paren.Kind())
	assert.Equal(t, "(a + b)", paren.Span().Text())

	var add calc.Node
	for child := range paren.Children() {
		if child.Kind() == calc.Add {
			add = child
		}
	}
	assert.Equal(t, "a + b", add.Span().Text())
}

func TestCorpus(t *testing.T) {
	t.Parallel()

	golden.Corpus{
		Root:      "testdata/parse",
		Refresh:   "SYNTREE_REFRESH",
		Extension: "calc",
		Outputs: []golden.Output{
			{Extension: "tree"},
			{Extension: "errors"},
		},
		Test: func(t *testing.T, path, text string) []string {
			tree, errs := calc.Parse(source.NewFile(path, text))
			return []string{calc.Dump(tree.Root()), calc.DumpErrors(errs)}
		},
	}.Run(t)
}
