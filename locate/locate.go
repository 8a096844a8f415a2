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

// Package locate answers positional queries over a syntax tree whose spans
// are [source.Span]s: which nodes cover a byte offset, and which token sits
// under it.
package locate

import (
	"github.com/bufbuild/syntree/internal/interval"
	"github.com/bufbuild/syntree/source"
	"github.com/bufbuild/syntree/tree"
)

// Index is a positional index over a tree. It is immutable once built and
// may be queried from multiple goroutines.
type Index[K any] struct {
	tree  *tree.Tree[K, source.Span]
	nodes interval.Intersect[int, tree.ID]
}

// New builds an index over every node of t that has a non-empty span.
//
// For a tree of n nodes and depth d whose spans nest, which is the case for
// any tree whose spans were computed by rollup, this takes O(n(d + log n)).
func New[K any](t *tree.Tree[K, source.Span]) *Index[K] {
	idx := &Index[K]{tree: t}
	for n := range t.All() {
		span := n.Span()
		if !n.HasSpan() || span.IsZero() || span.Len() <= 0 {
			continue
		}
		// Preorder insertion keeps ancestors ahead of descendants in each
		// segment.
		idx.nodes.Insert(span.Start, span.End-1, n.ID())
	}
	return idx
}

// Tree returns the indexed tree.
func (idx *Index[K]) Tree() *tree.Tree[K, source.Span] {
	return idx.tree
}

// Covering returns every node whose span contains offset, outermost first.
func (idx *Index[K]) Covering(offset int) []tree.Node[K, source.Span] {
	ids := idx.nodes.Get(offset).Value
	if len(ids) == 0 {
		return nil
	}

	nodes := make([]tree.Node[K, source.Span], len(ids))
	for i, id := range ids {
		nodes[i] = idx.tree.Node(id)
	}
	return nodes
}

// Deepest returns the innermost node whose span contains offset, or a zero
// node if there is none.
func (idx *Index[K]) Deepest(offset int) tree.Node[K, source.Span] {
	ids := idx.nodes.Get(offset).Value
	if len(ids) == 0 {
		return tree.Node[K, source.Span]{}
	}
	return idx.tree.Node(ids[len(ids)-1])
}

// Token returns the token whose span contains offset, or a zero node if
// offset does not fall within a token.
func (idx *Index[K]) Token(offset int) tree.Node[K, source.Span] {
	n := idx.Deepest(offset)
	if n.IsZero() || !n.IsToken() {
		return tree.Node[K, source.Span]{}
	}
	return n
}
