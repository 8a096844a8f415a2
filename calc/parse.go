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

	"github.com/bufbuild/syntree/source"
	"github.com/bufbuild/syntree/tree"
)

// Tree is a calc syntax tree.
type Tree = tree.Tree[Kind, source.Span]

// Node is a node in a calc syntax tree.
type Node = tree.Node[Kind, source.Span]

// Error is a diagnostic for a syntax or evaluation error.
type Error struct {
	Span    source.Span
	Message string
}

// Error implements [error].
func (e *Error) Error() string {
	loc := e.Span.StartLoc()
	return fmt.Sprintf("%s:%d:%d: %s", e.Span.Path(), loc.Line, loc.Column, e.Message)
}

// Parse parses a file into a syntax tree.
//
// Parsing always produces a tree whose root is a [File] node, even when
// there are syntax errors: each error is reported, and the tokens or the
// missing input responsible for it are recorded as an [Error] node.
func Parse(file *source.File) (*Tree, []*Error) {
	p := &parser{file: file}
	p.Supply(Lex(file)...)

	p.StartNodeWithSpan(File, file.Span(0, len(file.Text())))
	if _, ok := p.Peek(); !ok {
		p.errorf(p.eof(), "expected an expression")
	} else {
		p.expr(1)
	}

	if tok, ok := p.Peek(); ok {
		p.errorf(tok.Span, "unexpected %s after expression", describe(tok))
		p.StartNode(Error)
		for p.Remaining() > 0 {
			p.Next()
		}
		p.FinishNode()
	}
	p.FinishNode()

	return p.Build(), p.errs
}

type parser struct {
	tree.Builder[Kind, source.Span]

	file *source.File
	errs []*Error
}

// expr parses a sequence of binary operations whose operators bind at
// least as tightly as minPower. Each operation wraps everything parsed so
// far, which makes them left-associative.
func (p *parser) expr(minPower int) {
	cp := p.Checkpoint()
	p.unary()

	for {
		tok, ok := p.Peek()
		if !ok {
			return
		}
		kind, power := binary(tok.Kind)
		if power == 0 || power < minPower {
			return
		}

		p.Next()
		p.expr(power + 1)
		p.FinishNodeAt(cp, kind)
	}
}

func (p *parser) unary() {
	if tok, ok := p.Peek(); ok && tok.Kind == Minus {
		p.StartNode(Neg)
		p.Next()
		p.unary()
		p.FinishNode()
		return
	}

	cp := p.Checkpoint()
	p.atom()
	if tok, ok := p.Peek(); ok && tok.Kind == Caret {
		p.Next()
		p.unary()
		p.FinishNodeAt(cp, Pow)
	}
}

func (p *parser) atom() {
	tok, ok := p.Peek()
	if !ok {
		p.missing(p.eof(), "expected an expression, found end of input")
		return
	}

	switch tok.Kind {
	case Number:
		p.Next()

	case Ident:
		cp := p.Checkpoint()
		p.Next()
		if next, ok := p.Peek(); ok && next.Kind == LParen {
			p.Next()
			p.args()
			p.expect(RParen)
			p.FinishNodeAt(cp, Call)
		}

	case LParen:
		p.StartNode(Paren)
		p.Next()
		p.expr(1)
		p.expect(RParen)
		p.FinishNode()

	case Unknown:
		p.errorf(tok.Span, "unexpected %s", describe(tok))
		p.StartNode(Error)
		p.Next()
		p.FinishNode()

	default:
		p.missing(p.file.Span(tok.Span.Start, tok.Span.Start),
			fmt.Sprintf("expected an expression, found %s", describe(tok)))
	}
}

// args parses the comma-separated arguments of a call, up to but not
// including the closing parenthesis.
func (p *parser) args() {
	if tok, ok := p.Peek(); ok && tok.Kind == RParen {
		return
	}
	for {
		p.expr(1)
		tok, ok := p.Peek()
		if !ok || tok.Kind != Comma {
			return
		}
		p.Next()
	}
}

// expect consumes a token of the given kind, or reports an error if the
// next token is something else.
func (p *parser) expect(kind Kind) {
	tok, ok := p.Peek()
	switch {
	case !ok:
		p.errorf(p.eof(), "expected %s, found end of input", describeKind(kind))
	case tok.Kind != kind:
		p.errorf(tok.Span, "expected %s, found %s", describeKind(kind), describe(tok))
	default:
		p.Next()
	}
}

// missing records an empty Error node where an expression should have been.
func (p *parser) missing(at source.Span, msg string) {
	p.errs = append(p.errs, &Error{Span: at, Message: msg})
	p.StartNodeWithSpan(Error, at)
	p.FinishNode()
}

func (p *parser) errorf(at source.Span, format string, args ...any) {
	p.errs = append(p.errs, &Error{Span: at, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) eof() source.Span {
	end := len(p.file.Text())
	return p.file.Span(end, end)
}

func describe(tok Token) string {
	return fmt.Sprintf("`%s`", tok.Span.Text())
}

func describeKind(kind Kind) string {
	switch kind {
	case RParen:
		return "`)`"
	default:
		return kind.String()
	}
}
