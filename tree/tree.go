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

import (
	"fmt"
	"iter"
)

// Span is a source range that can be merged with another range of the same
// type.
//
// The tree never inspects spans; it only joins them to roll the spans of
// children up into their parents.
type Span[S any] interface {
	// Join returns the smallest span that covers both the receiver and other.
	Join(other S) S
}

// Tree is an immutable syntax tree produced by [Builder.Build].
//
// A Tree may be read from multiple goroutines concurrently.
type Tree[K any, S Span[S]] struct {
	entries []entry[K, S]
}

// entry is the persisted record of a single node or token.
type entry[K any, S Span[S]] struct {
	kind K
	span S
	// The number of entries in this entry's subtree, including itself. The
	// entry's descendants are the next size-1 entries.
	size  uint32
	flags flags
}

type flags uint8

const (
	isToken flags = 1 << iota
	hasSpan
)

// join merges span into this entry's span. If the entry has no span yet,
// span becomes its span.
func (e *entry[K, S]) join(span S) {
	if e.flags&hasSpan == 0 {
		e.span = span
		e.flags |= hasSpan
		return
	}
	e.span = e.span.Join(span)
}

// Root returns the root of this tree, which is always the first entry.
//
// Panics if t is nil or empty; [Builder.Build] never produces an empty tree.
func (t *Tree[K, S]) Root() Node[K, S] {
	if t == nil || len(t.entries) == 0 {
		panic("syntree/tree: called Root() on an empty tree")
	}
	return Node[K, S]{tree: t, id: 1}
}

// Len returns the number of entries in this tree, counting both nodes and
// tokens.
func (t *Tree[K, S]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Node returns the node with the given ID.
//
// Returns the nil node if id is zero. Panics if id is out of bounds for this
// tree. No checks are performed to validate that id came from this tree; the
// caller is responsible for ensuring that themselves.
func (t *Tree[K, S]) Node(id ID) Node[K, S] {
	if id.IsZero() {
		return Node[K, S]{}
	}
	if id.index() >= t.Len() {
		panic(fmt.Sprintf("syntree/tree: %v out of bounds for tree of length %d", id, t.Len()))
	}
	return Node[K, S]{tree: t, id: id}
}

// All returns an iterator over every entry of this tree, in preorder.
func (t *Tree[K, S]) All() iter.Seq[Node[K, S]] {
	return func(yield func(Node[K, S]) bool) {
		for i := range t.Len() {
			if !yield(Node[K, S]{tree: t, id: ID(i + 1)}) {
				return
			}
		}
	}
}

// String implements [fmt.Stringer].
func (t *Tree[K, S]) String() string {
	if t.Len() == 0 {
		return "<empty>"
	}
	return t.Root().String()
}
