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
	"slices"
)

// Builder constructs a [Tree] from a sequence of calls made by a parser.
//
// Nodes are opened with [Builder.StartNode] and closed with
// [Builder.FinishNode]; tokens are added with [Builder.Token]. A node can
// also be introduced after some of its children have been emitted by
// taking a [Checkpoint] before them and later redeeming it with
// [Builder.FinishNodeAt].
//
// A zero Builder is empty and ready to use. A Builder must not be copied
// after first use, and must not be used after [Builder.Build] returns.
type Builder[K any, S Span[S]] struct {
	// The maximum number of entries the tree may contain. If zero, or
	// greater than [MaxNodes], MaxNodes is used instead.
	Limit int

	events []event[K, S]
	wraps  []wrap[K, S]
	count  int // The number of entries the event log will produce.

	// Positions in events of the StartNode calls for nodes that are
	// currently open.
	open []int

	// Ranges of event positions that have been swallowed by a FinishNodeAt
	// call. Sorted and disjoint. A checkpoint positioned strictly inside
	// one of these ranges can no longer be redeemed.
	dead []deadRange

	// Tokens queued by Supply and the index of the next one to emit.
	supply []Leaf[K, S]
	next   int

	built bool
}

// Leaf is a token waiting to be added to a [Builder] via [Builder.Next].
type Leaf[K any, S Span[S]] struct {
	Kind K
	Span S
}

// Checkpoint is a position in a [Builder] that a node can later be
// retroactively started at; see [Builder.FinishNodeAt].
//
// A Checkpoint remains valid for as long as the node that was innermost
// open when it was taken is still open, and nothing emitted after it has
// been wrapped by a node started before it.
type Checkpoint[K any, S Span[S]] struct {
	owner *Builder[K, S]
	pos   int // Position in the event log.
	depth int // Number of open nodes.
	// One plus the event position of the innermost open node; zero at the
	// top level.
	parent int

	span    S
	hasSpan bool
}

type op uint8

const (
	opOpen op = iota + 1
	opToken
	opClose
)

// event is a single entry in a Builder's log.
type event[K any, S Span[S]] struct {
	kind    K
	span    S
	op      op
	hasSpan bool

	// One plus the index in Builder.wraps of the most recently added node
	// that FinishNodeAt started immediately before this event.
	wraps uint32
}

// wrap is a node started by FinishNodeAt. Wraps attached to the same event
// form a linked list, most recent first.
type wrap[K any, S Span[S]] struct {
	kind    K
	span    S
	hasSpan bool
	next    uint32
}

// deadRange is the open interval of event positions (start, end).
type deadRange struct {
	start, end int
}

// StartNode opens a new node of the given kind. Every subsequent node and
// token becomes a descendant of it until the matching [Builder.FinishNode].
func (b *Builder[K, S]) StartNode(kind K) {
	b.startNode(kind, *new(S), false)
}

// StartNodeWithSpan is like [Builder.StartNode], but the node's span will
// include span in addition to the spans of its descendants.
func (b *Builder[K, S]) StartNodeWithSpan(kind K, span S) {
	b.startNode(kind, span, true)
}

func (b *Builder[K, S]) startNode(kind K, span S, hasSpan bool) {
	b.checkLive("StartNode")
	b.reserve()

	b.open = append(b.open, len(b.events))
	b.events = append(b.events, event[K, S]{
		op:      opOpen,
		kind:    kind,
		span:    span,
		hasSpan: hasSpan,
	})
	b.count++
}

// FinishNode closes the most recently opened node that is still open.
//
// Panics if no node is open.
func (b *Builder[K, S]) FinishNode() {
	b.checkLive("FinishNode")
	if len(b.open) == 0 {
		panic("syntree/tree: called FinishNode() with no open node")
	}

	b.open = b.open[:len(b.open)-1]
	b.events = append(b.events, event[K, S]{op: opClose})
}

// Checkpoint records the current position, so that a node wrapping
// everything emitted from now on can later be created with
// [Builder.FinishNodeAt].
//
// Taking a checkpoint does not open a node; a checkpoint that is never
// redeemed has no effect on the tree.
func (b *Builder[K, S]) Checkpoint() Checkpoint[K, S] {
	return b.checkpoint(*new(S), false)
}

// CheckpointWithSpan is like [Builder.Checkpoint], but a node created from
// this checkpoint will include span in its span.
func (b *Builder[K, S]) CheckpointWithSpan(span S) Checkpoint[K, S] {
	return b.checkpoint(span, true)
}

func (b *Builder[K, S]) checkpoint(span S, hasSpan bool) Checkpoint[K, S] {
	b.checkLive("Checkpoint")

	cp := Checkpoint[K, S]{
		owner:   b,
		pos:     len(b.events),
		depth:   len(b.open),
		span:    span,
		hasSpan: hasSpan,
	}
	if len(b.open) > 0 {
		cp.parent = b.open[len(b.open)-1] + 1
	}
	return cp
}

// FinishNodeAt creates a node of the given kind at the position recorded by
// cp and immediately closes it. Everything emitted since cp was taken
// becomes the new node's children, in order; nodes opened before cp are not
// affected.
//
// A checkpoint may be redeemed more than once. Each redemption wraps the
// result of the previous one, which is how left-associative operator chains
// are built.
//
// Panics if cp was taken from a different builder, or if it is stale: the
// node that was innermost open when cp was taken has since been finished,
// a node started after cp is still open, or a node started before cp has
// been finished with FinishNodeAt since cp was taken.
func (b *Builder[K, S]) FinishNodeAt(cp Checkpoint[K, S], kind K) {
	b.checkLive("FinishNodeAt")
	if cp.owner != b {
		panic("syntree/tree: passed a checkpoint from a different builder to FinishNodeAt()")
	}
	if reason := b.stale(cp); reason != "" {
		panic(fmt.Sprintf("syntree/tree: passed a stale checkpoint to FinishNodeAt(): %s", reason))
	}
	b.reserve()

	b.events = append(b.events, event[K, S]{op: opClose})
	b.wraps = append(b.wraps, wrap[K, S]{
		kind:    kind,
		span:    cp.span,
		hasSpan: cp.hasSpan,
		next:    b.events[cp.pos].wraps,
	})
	b.events[cp.pos].wraps = uint32(len(b.wraps))
	b.count++

	b.kill(cp.pos, len(b.events))
}

// stale returns why cp cannot be redeemed, or the empty string if it can.
func (b *Builder[K, S]) stale(cp Checkpoint[K, S]) string {
	switch {
	case cp.depth < len(b.open):
		return "nodes opened after the checkpoint are still open"
	case cp.depth > len(b.open):
		return "the node containing the checkpoint was finished"
	case cp.depth > 0 && b.open[cp.depth-1]+1 != cp.parent:
		return "the node containing the checkpoint was finished"
	}

	// Find the last dead range that starts before cp.pos.
	i, _ := slices.BinarySearchFunc(b.dead, cp.pos, func(r deadRange, pos int) int {
		if r.start < pos {
			return -1
		}
		return 1
	})
	if i > 0 && cp.pos < b.dead[i-1].end {
		return "the checkpoint is inside a node created by an earlier FinishNodeAt()"
	}
	return ""
}

// kill records that the event positions strictly between start and end have
// been wrapped into a single node.
func (b *Builder[K, S]) kill(start, end int) {
	// Every existing range ends before end, so any range starting at or after
	// start is contained in the new one.
	for len(b.dead) > 0 && b.dead[len(b.dead)-1].start >= start {
		b.dead = b.dead[:len(b.dead)-1]
	}
	if len(b.dead) > 0 && b.dead[len(b.dead)-1].end > start {
		b.dead[len(b.dead)-1].end = end
		return
	}
	b.dead = append(b.dead, deadRange{start, end})
}

// Token adds a token with the given kind and span as a child of the
// innermost open node.
//
// Panics if there are supplied tokens that have not been consumed with
// [Builder.Next]; tokens must then come from the supply, in order.
func (b *Builder[K, S]) Token(kind K, span S) {
	b.checkLive("Token")
	if b.next < len(b.supply) {
		panic(fmt.Sprintf("syntree/tree: called Token() with %d supplied tokens pending", len(b.supply)-b.next))
	}
	b.token(kind, span)
}

func (b *Builder[K, S]) token(kind K, span S) {
	b.reserve()

	b.events = append(b.events, event[K, S]{
		op:      opToken,
		kind:    kind,
		span:    span,
		hasSpan: true,
	})
	b.count++
}

// Supply queues tokens to be added to the tree, in order, by calls to
// [Builder.Next]. This allows the lexer's output to be handed to the
// builder up front, leaving the parser to decide only where nodes go.
//
// [Builder.Build] panics if any supplied token has not been consumed.
func (b *Builder[K, S]) Supply(leaves ...Leaf[K, S]) {
	b.checkLive("Supply")
	b.supply = append(b.supply, leaves...)
}

// Peek returns the next supplied token without consuming it.
//
// Returns false if there are no supplied tokens remaining.
func (b *Builder[K, S]) Peek() (Leaf[K, S], bool) {
	if b.next >= len(b.supply) {
		return Leaf[K, S]{}, false
	}
	return b.supply[b.next], true
}

// Next adds the next supplied token to the tree, as if by [Builder.Token],
// and returns it.
//
// Panics if there are no supplied tokens remaining.
func (b *Builder[K, S]) Next() Leaf[K, S] {
	b.checkLive("Next")
	if b.next >= len(b.supply) {
		panic("syntree/tree: called Next() with no supplied tokens remaining")
	}

	leaf := b.supply[b.next]
	b.token(leaf.Kind, leaf.Span)
	b.next++
	return leaf
}

// Remaining returns the number of supplied tokens not yet consumed.
func (b *Builder[K, S]) Remaining() int {
	return len(b.supply) - b.next
}

// Depth returns the number of nodes currently open.
func (b *Builder[K, S]) Depth() int {
	return len(b.open)
}

// Len returns the number of entries the tree would contain if it were
// built now.
func (b *Builder[K, S]) Len() int {
	return b.count
}

// reserve panics if adding one more entry would exceed the limit.
func (b *Builder[K, S]) reserve() {
	limit := int64(MaxNodes)
	if b.Limit > 0 {
		limit = min(limit, int64(b.Limit))
	}
	if int64(b.count) >= limit {
		panic(fmt.Sprintf("syntree/tree: tree exceeds the maximum of %d nodes", limit))
	}
}

func (b *Builder[K, S]) checkLive(method string) {
	if b.built {
		panic(fmt.Sprintf("syntree/tree: called %s() after Build()", method))
	}
}
