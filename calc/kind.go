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

import "fmt"

// Kind is the kind of a token or node in a calc syntax tree.
type Kind uint8

const (
	Unknown Kind = iota // Unrecognized character.

	Number  // Decimal number, such as 12 or 3.5.
	Ident   // Identifier, such as x or sqrt.
	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Caret   // ^
	LParen  // (
	RParen  // )
	Comma   // ,

	File  // The root of every tree.
	Add   // a + b
	Sub   // a - b
	Mul   // a * b
	Div   // a / b
	Mod   // a % b
	Pow   // a ^ b
	Neg   // -a
	Paren // (a)
	Call  // f(a, b)
	Error // Tokens or missing input that could not be parsed.
)

// IsToken returns whether this kind is a token kind rather than a node kind.
func (k Kind) IsToken() bool {
	return k < File
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Unknown:
		return "Unknown"
	case Number:
		return "Number"
	case Ident:
		return "Ident"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Star:
		return "Star"
	case Slash:
		return "Slash"
	case Percent:
		return "Percent"
	case Caret:
		return "Caret"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case Comma:
		return "Comma"
	case File:
		return "File"
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	case Mod:
		return "Mod"
	case Pow:
		return "Pow"
	case Neg:
		return "Neg"
	case Paren:
		return "Paren"
	case Call:
		return "Call"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("calc.Kind(%d)", int(k))
	}
}

// punct maps punctuation characters to their token kinds.
var punct = [...]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'%': Percent,
	'^': Caret,
	'(': LParen,
	')': RParen,
	',': Comma,
}

// binary returns the node kind and binding power of a binary operator
// token. Returns zero if tok is not one.
func binary(tok Kind) (Kind, int) {
	switch tok {
	case Plus:
		return Add, 1
	case Minus:
		return Sub, 1
	case Star:
		return Mul, 2
	case Slash:
		return Div, 2
	case Percent:
		return Mod, 2
	default:
		return 0, 0
	}
}
