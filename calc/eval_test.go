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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/syntree/calc"
	"github.com/bufbuild/syntree/source"
)

func eval(t *testing.T, text string, env calc.Env) (float64, error) {
	t.Helper()

	tree, _ := calc.Parse(source.NewFile("test", text))
	return calc.Eval(tree.Root(), env)
}

func TestEval(t *testing.T) {
	t.Parallel()

	env := calc.Env{"x": 3, "pi": math.Pi}
	tests := []struct {
		text string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 - 3", 3},
		{"2 ^ 3 ^ 2", 512},
		{"-2 ^ 2", -4},
		{"2 ^ -1", 0.5},
		{"7 % 4", 3},
		{"9 / 2", 4.5},
		{"x * x", 9},
		{"abs(-x)", 3},
		{"sqrt(16)", 4},
		{"min(3, 1, 2)", 1},
		{"max(x, 10 / 4)", 3},
		{"max(1)", 1},
		{"--x", 3},
		{"0.25", 0.25},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			got, err := eval(t, test.text, env)
			require.NoError(t, err)
			assert.InDelta(t, test.want, got, 1e-9)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
	}{
		{"", "test:1:1: cannot evaluate an empty expression"},
		{"1 +", "test:1:4: cannot evaluate an expression with syntax errors"},
		{"y + 1", "test:1:1: undefined variable `y`"},
		{"1 / (2 - 2)", "test:1:1: division by zero"},
		{"5 % 0", "test:1:1: division by zero"},
		{"nope(1)", "test:1:1: undefined function `nope`"},
		{"abs(1, 2)", "test:1:1: `abs` takes 1 arguments, got 2"},
		{"min()", "test:1:1: `min` takes at least 1 arguments, got 0"},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			_, err := eval(t, test.text, nil)
			require.Error(t, err)
			assert.Equal(t, test.want, err.Error())

			var calcErr *calc.Error
			assert.True(t, errors.As(err, &calcErr))
		})
	}
}
