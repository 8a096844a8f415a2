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

package calc

import (
	"fmt"
	"math"
	"strconv"
)

// Env binds variable names to values for [Eval].
type Env map[string]float64

// builtins are the functions that may be called from an expression.
var builtins = map[string]struct {
	arity int // Negative for variadic with at least -arity arguments.
	fn    func(args []float64) float64
}{
	"abs":  {1, func(args []float64) float64 { return math.Abs(args[0]) }},
	"sqrt": {1, func(args []float64) float64 { return math.Sqrt(args[0]) }},
	"min": {-1, func(args []float64) float64 {
		v := args[0]
		for _, arg := range args[1:] {
			v = math.Min(v, arg)
		}
		return v
	}},
	"max": {-1, func(args []float64) float64 {
		v := args[0]
		for _, arg := range args[1:] {
			v = math.Max(v, arg)
		}
		return v
	}},
}

// Eval evaluates the expression rooted at n.
//
// n is usually the root of a tree produced by [Parse], but may be any
// expression node within it. Trees that contain [Error] nodes cannot be
// evaluated.
func Eval(n Node, env Env) (float64, error) {
	switch n.Kind() {
	case File:
		for node := range n.Preorder() {
			if node.Kind() == Error {
				return 0, errorf(node, "cannot evaluate an expression with syntax errors")
			}
		}
		var expr Node
		for child := range n.Children() {
			expr = child
		}
		if expr.IsZero() {
			return 0, errorf(n, "cannot evaluate an empty expression")
		}
		return Eval(expr, env)

	case Number:
		v, err := strconv.ParseFloat(n.Span().Text(), 64)
		if err != nil {
			return 0, errorf(n, "invalid number: %v", err)
		}
		return v, nil

	case Ident:
		if v, ok := env[n.Span().Text()]; ok {
			return v, nil
		}
		return 0, errorf(n, "undefined variable `%s`", n.Span().Text())

	case Neg:
		operands := operands(n)
		if len(operands) != 1 {
			break
		}
		v, err := Eval(operands[0], env)
		return -v, err

	case Paren:
		operands := operands(n)
		if len(operands) != 1 {
			break
		}
		return Eval(operands[0], env)

	case Add, Sub, Mul, Div, Mod, Pow:
		return evalBinary(n, env)

	case Call:
		return evalCall(n, env)
	}

	return 0, errorf(n, "cannot evaluate %v", n.Kind())
}

func evalBinary(n Node, env Env) (float64, error) {
	operands := operands(n)
	if len(operands) != 2 {
		return 0, errorf(n, "cannot evaluate %v", n.Kind())
	}

	a, err := Eval(operands[0], env)
	if err != nil {
		return 0, err
	}
	b, err := Eval(operands[1], env)
	if err != nil {
		return 0, err
	}

	switch n.Kind() {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, errorf(n, "division by zero")
		}
		return a / b, nil
	case Mod:
		if b == 0 {
			return 0, errorf(n, "division by zero")
		}
		return math.Mod(a, b), nil
	default:
		return math.Pow(a, b), nil
	}
}

func evalCall(n Node, env Env) (float64, error) {
	operands := operands(n)
	if len(operands) == 0 || operands[0].Kind() != Ident {
		return 0, errorf(n, "cannot evaluate %v", n.Kind())
	}

	name := operands[0].Span().Text()
	builtin, ok := builtins[name]
	if !ok {
		return 0, errorf(operands[0], "undefined function `%s`", name)
	}

	args := make([]float64, 0, len(operands)-1)
	for _, arg := range operands[1:] {
		v, err := Eval(arg, env)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}

	switch {
	case builtin.arity >= 0 && len(args) != builtin.arity:
		return 0, errorf(n, "`%s` takes %d arguments, got %d", name, builtin.arity, len(args))
	case builtin.arity < 0 && len(args) < -builtin.arity:
		return 0, errorf(n, "`%s` takes at least %d arguments, got %d", name, -builtin.arity, len(args))
	}
	return builtin.fn(args), nil
}

// operands returns the children of n that are not punctuation.
func operands(n Node) []Node {
	var out []Node
	for child := range n.Children() {
		if child.IsToken() && child.Kind() != Number && child.Kind() != Ident {
			continue
		}
		out = append(out, child)
	}
	return out
}

func errorf(n Node, format string, args ...any) *Error {
	return &Error{Span: n.Span(), Message: fmt.Sprintf(format, args...)}
}
