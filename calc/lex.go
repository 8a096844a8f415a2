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
	"unicode"
	"unicode/utf8"

	"github.com/bufbuild/syntree/source"
	"github.com/bufbuild/syntree/tree"
)

// Token is a lexed token, ready to be supplied to a [tree.Builder].
type Token = tree.Leaf[Kind, source.Span]

// Lex splits a file into tokens. Whitespace is skipped; every other byte of
// the file belongs to exactly one token. Characters that cannot start a
// token become [Unknown] tokens, one per rune.
func Lex(file *source.File) []Token {
	text := file.Text()

	var tokens []Token
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		start := i
		i += n

		var kind Kind
		switch {
		case unicode.IsSpace(r):
			continue
		case isDigit(r):
			kind = Number
			i = skipDigits(text, i)
			if i+1 < len(text) && text[i] == '.' && isDigit(rune(text[i+1])) {
				i = skipDigits(text, i+1)
			}
		case r == '_' || unicode.IsLetter(r):
			kind = Ident
			for i < len(text) {
				r, n := utf8.DecodeRuneInString(text[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += n
			}
		case int(r) < len(punct):
			kind = punct[r]
		}

		tokens = append(tokens, Token{Kind: kind, Span: file.Span(start, i)})
	}
	return tokens
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func skipDigits(text string, i int) int {
	for i < len(text) && isDigit(rune(text[i])) {
		i++
	}
	return i
}
