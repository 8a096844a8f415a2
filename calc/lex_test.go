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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/syntree/calc"
	"github.com/bufbuild/syntree/source"
)

func TestLex(t *testing.T) {
	t.Parallel()

	type tok struct {
		kind calc.Kind
		text string
	}

	tests := []struct {
		text string
		want []tok
	}{
		{text: "", want: nil},
		{text: " \t\n", want: nil},
		{
			text: "12.5+x_1",
			want: []tok{{calc.Number, "12.5"}, {calc.Plus, "+"}, {calc.Ident, "x_1"}},
		},
		{
			text: "1.x",
			want: []tok{{calc.Number, "1"}, {calc.Unknown, "."}, {calc.Ident, "x"}},
		},
		{
			text: "f(a, -b) ^ 2 % 3 / 4 * 5",
			want: []tok{
				{calc.Ident, "f"}, {calc.LParen, "("}, {calc.Ident, "a"}, {calc.Comma, ","},
				{calc.Minus, "-"}, {calc.Ident, "b"}, {calc.RParen, ")"}, {calc.Caret, "^"},
				{calc.Number, "2"}, {calc.Percent, "%"}, {calc.Number, "3"}, {calc.Slash, "/"},
				{calc.Number, "4"}, {calc.Star, "*"}, {calc.Number, "5"},
			},
		},
		{
			text: "π·2",
			want: []tok{{calc.Ident, "π"}, {calc.Unknown, "·"}, {calc.Number, "2"}},
		},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			var got []tok
			for _, leaf := range calc.Lex(source.NewFile("test", test.text)) {
				got = append(got, tok{leaf.Kind, leaf.Span.Text()})
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.True(t, calc.Number.IsToken())
	assert.True(t, calc.Comma.IsToken())
	assert.False(t, calc.File.IsToken())
	assert.False(t, calc.Error.IsToken())

	assert.Equal(t, "Pow", calc.Pow.String())
	assert.Equal(t, "calc.Kind(200)", calc.Kind(200).String())
}
