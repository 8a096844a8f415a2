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
	"io"
	"iter"
)

// Node is a handle to a node or token within a [Tree].
//
// Nodes are small values that can be freely copied and compared; they do
// not own any part of the tree they point into. The zero value is the nil
// node, which reports the zero kind and span and has no children.
type Node[K any, S Span[S]] struct {
	tree *Tree[K, S]
	id   ID
}

// IsZero returns whether this is the nil node.
func (n Node[K, S]) IsZero() bool {
	return n.tree == nil
}

// ID returns this node's raw ID, disassociated from its tree.
func (n Node[K, S]) ID() ID {
	return n.id
}

// Tree returns the tree this node belongs to.
func (n Node[K, S]) Tree() *Tree[K, S] {
	return n.tree
}

// Kind returns this node's kind.
func (n Node[K, S]) Kind() K {
	if n.IsZero() {
		var zero K
		return zero
	}
	return n.raw().kind
}

// Span returns this node's span.
//
// For a token, this is the span it was created with. For any other node, it
// is the join of the initial span it was given (if any) and the spans of all
// of its descendants. Returns the zero span if [Node.HasSpan] is false.
func (n Node[K, S]) Span() S {
	if n.IsZero() {
		var zero S
		return zero
	}
	return n.raw().span
}

// HasSpan returns whether any span was ever recorded for this node. This is
// false only for nodes that were given no initial span and have no tokens
// among their descendants.
func (n Node[K, S]) HasSpan() bool {
	return !n.IsZero() && n.raw().flags&hasSpan != 0
}

// IsToken returns whether this node is a token (a leaf created with
// [Builder.Token] or [Builder.Next]).
//
// Nodes with no children are not tokens.
func (n Node[K, S]) IsToken() bool {
	return !n.IsZero() && n.raw().flags&isToken != 0
}

// Len returns the number of entries in this node's subtree, including
// itself. Returns zero for the nil node.
func (n Node[K, S]) Len() int {
	if n.IsZero() {
		return 0
	}
	return int(n.raw().size)
}

// Children returns an iterator over this node's direct children, in the
// order they were emitted.
//
// This performs no allocation; each step skips over the previous child's
// subtree.
func (n Node[K, S]) Children() iter.Seq[Node[K, S]] {
	return func(yield func(Node[K, S]) bool) {
		if n.IsZero() {
			return
		}
		end := n.end()
		for id := n.id + 1; id < end; id += ID(n.tree.entries[id.index()].size) {
			if !yield(Node[K, S]{tree: n.tree, id: id}) {
				return
			}
		}
	}
}

// Cursor returns a [Cursor] over this node's direct children.
func (n Node[K, S]) Cursor() *Cursor[K, S] {
	if n.IsZero() {
		return &Cursor[K, S]{}
	}
	return &Cursor[K, S]{tree: n.tree, idx: n.id + 1, end: n.end()}
}

// Preorder returns an iterator over this node's subtree in preorder,
// starting with n itself.
func (n Node[K, S]) Preorder() iter.Seq[Node[K, S]] {
	return func(yield func(Node[K, S]) bool) {
		if n.IsZero() {
			return
		}
		for id := n.id; id < n.end(); id++ {
			if !yield(Node[K, S]{tree: n.tree, id: id}) {
				return
			}
		}
	}
}

// Walk is like [Node.Preorder], but also yields the depth of each node
// relative to n, which has depth zero.
func (n Node[K, S]) Walk() iter.Seq2[Node[K, S], int] {
	return func(yield func(Node[K, S], int) bool) {
		if n.IsZero() {
			return
		}

		// ends holds the end of the subtree of each ancestor of the node
		// currently being visited.
		var ends []ID
		for id := n.id; id < n.end(); id++ {
			for len(ends) > 0 && ends[len(ends)-1] <= id {
				ends = ends[:len(ends)-1]
			}
			if !yield(Node[K, S]{tree: n.tree, id: id}, len(ends)) {
				return
			}
			ends = append(ends, id+ID(n.tree.entries[id.index()].size))
		}
	}
}

// Format implements [fmt.Formatter].
//
// Nodes are printed as Kind[child child ...] and tokens as Kind. With the
// %+v verb, every node that has a span is followed by @span.
func (n Node[K, S]) Format(s fmt.State, _ rune) {
	if n.IsZero() {
		_, _ = io.WriteString(s, "<nil>")
		return
	}
	n.format(s, s.Flag('+'))
}

// String implements [fmt.Stringer].
func (n Node[K, S]) String() string {
	return fmt.Sprint(n)
}

func (n Node[K, S]) format(w io.Writer, spans bool) {
	fmt.Fprint(w, n.Kind())
	if spans && n.HasSpan() {
		fmt.Fprintf(w, "@%v", n.Span())
	}
	if n.IsToken() {
		return
	}

	_, _ = io.WriteString(w, "[")
	first := true
	for child := range n.Children() {
		if !first {
			_, _ = io.WriteString(w, " ")
		}
		first = false
		child.format(w, spans)
	}
	_, _ = io.WriteString(w, "]")
}

// yamlNode is the YAML rendering of a [Node].
type yamlNode struct {
	Kind     string     `yaml:"kind"`
	Token    bool       `yaml:"token,omitempty"`
	Span     string     `yaml:"span,omitempty"`
	Children []yamlNode `yaml:"children,omitempty"`
}

// MarshalYAML implements [gopkg.in/yaml.v3.Marshaler].
//
// Kinds and spans are rendered with their %v formatting.
func (n Node[K, S]) MarshalYAML() (any, error) {
	if n.IsZero() {
		return nil, nil
	}
	return n.toYAML(), nil
}

func (n Node[K, S]) toYAML() yamlNode {
	out := yamlNode{
		Kind:  fmt.Sprint(n.Kind()),
		Token: n.IsToken(),
	}
	if n.HasSpan() {
		out.Span = fmt.Sprint(n.Span())
	}
	for child := range n.Children() {
		out.Children = append(out.Children, child.toYAML())
	}
	return out
}

func (n Node[K, S]) raw() *entry[K, S] {
	return &n.tree.entries[n.id.index()]
}

// end returns the ID one past the end of this node's subtree.
func (n Node[K, S]) end() ID {
	return n.id + ID(n.raw().size)
}
