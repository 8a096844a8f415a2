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

// Package calc is a small arithmetic expression language whose parser
// builds its syntax tree with package tree.
//
// The grammar, from lowest to highest precedence:
//
//	file  := expr?
//	expr  := expr ('+' | '-') term | term
//	term  := term ('*' | '/' | '%') unary | unary
//	unary := '-' unary | power
//	power := atom ('^' unary)?
//	atom  := number | ident | ident '(' (expr (',' expr)*)? ')' | '(' expr ')'
//
// Whitespace separates tokens but does not appear in the tree.
package calc
