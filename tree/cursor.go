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

package tree

import "iter"

// Cursor is an iterator-like construct for looping over the children of a
// [Node]. Unlike a plain range func, it supports peeking and rewinding.
//
// A zero Cursor is exhausted.
type Cursor[K any, S Span[S]] struct {
	tree *Tree[K, S]
	// idx is the next child to yield; end is one past the parent's subtree.
	idx, end ID
}

// CursorMark is the return value of [Cursor.Mark], which marks a position on
// a Cursor for rewinding to.
type CursorMark[K any, S Span[S]] struct {
	owner *Cursor[K, S]
	idx   ID
}

// Done returns whether or not there are still children left to yield.
func (c *Cursor[K, S]) Done() bool {
	return c.idx >= c.end
}

// Peek returns the next child without advancing the cursor.
//
// Returns the nil node if the cursor is done.
func (c *Cursor[K, S]) Peek() Node[K, S] {
	if c.Done() {
		return Node[K, S]{}
	}
	return Node[K, S]{tree: c.tree, id: c.idx}
}

// Next returns the next child and advances the cursor past its subtree.
//
// Returns the nil node if the cursor is done.
func (c *Cursor[K, S]) Next() Node[K, S] {
	next := c.Peek()
	if !next.IsZero() {
		c.idx = next.end()
	}
	return next
}

// Rest returns an iterator over the remaining children in this cursor.
//
// Breaking out of the loop leaves the cursor positioned at the child that
// was being yielded when the loop ended, so it will be yielded again.
func (c *Cursor[K, S]) Rest() iter.Seq[Node[K, S]] {
	return func(yield func(Node[K, S]) bool) {
		for !c.Done() {
			if !yield(c.Peek()) {
				return
			}
			c.Next()
		}
	}
}

// Mark makes a mark on this cursor to indicate a place that can be rewound
// to.
func (c *Cursor[K, S]) Mark() CursorMark[K, S] {
	return CursorMark[K, S]{owner: c, idx: c.idx}
}

// Rewind moves this cursor back to the position described by mark.
//
// Panics if mark was not created using this cursor's Mark method.
func (c *Cursor[K, S]) Rewind(mark CursorMark[K, S]) {
	if c != mark.owner {
		panic("syntree/tree: rewound cursor using the wrong cursor's mark")
	}
	c.idx = mark.idx
}
