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

import "fmt"

// Build consumes this builder and returns the finished tree.
//
// The event log is replayed once: each node's entry is placed when it is
// opened, its subtree size is fixed when it is closed, and its span is
// joined into its parent's as it is closed.
//
// Panics if any node is still open, if any supplied token was not consumed,
// if nothing was ever added, or if the result would have more than one
// top-level entry. The builder must not be used afterwards.
func (b *Builder[K, S]) Build() *Tree[K, S] {
	b.checkLive("Build")
	switch {
	case len(b.open) > 0:
		panic(fmt.Sprintf("syntree/tree: called Build() with %d unfinished nodes", len(b.open)))
	case b.next < len(b.supply):
		panic(fmt.Sprintf("syntree/tree: called Build() with %d supplied tokens not consumed", len(b.supply)-b.next))
	case b.count == 0:
		panic("syntree/tree: called Build() on an empty builder")
	}

	t := &Tree[K, S]{entries: make([]entry[K, S], 0, b.count)}
	// Positions in t.entries of the nodes that are open at the current point
	// of the replay.
	stack := make([]int, 0, 16)
	openEntry := func(kind K, span S, has bool) {
		e := entry[K, S]{kind: kind, span: span}
		if has {
			e.flags |= hasSpan
		}
		stack = append(stack, len(t.entries))
		t.entries = append(t.entries, e)
	}

	for i := range b.events {
		ev := &b.events[i]

		// Wraps are linked most recent first. A later wrap at the same
		// position contains the earlier ones, so it must be opened first.
		for w := ev.wraps; w != 0; w = b.wraps[w-1].next {
			wr := &b.wraps[w-1]
			openEntry(wr.kind, wr.span, wr.hasSpan)
		}

		switch ev.op {
		case opOpen:
			openEntry(ev.kind, ev.span, ev.hasSpan)

		case opToken:
			t.entries = append(t.entries, entry[K, S]{
				kind:  ev.kind,
				span:  ev.span,
				size:  1,
				flags: isToken | hasSpan,
			})
			if len(stack) > 0 {
				t.entries[stack[len(stack)-1]].join(ev.span)
			}

		case opClose:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			done := &t.entries[top]
			done.size = uint32(len(t.entries) - top)
			if len(stack) > 0 && done.flags&hasSpan != 0 {
				t.entries[stack[len(stack)-1]].join(done.span)
			}
		}
	}

	if roots := countRoots(t); roots != 1 {
		panic(fmt.Sprintf("syntree/tree: called Build() with %d top-level entries; wrap them in a single root node", roots))
	}

	b.built = true
	b.events, b.wraps, b.open, b.dead, b.supply = nil, nil, nil, nil, nil
	return t
}

// countRoots counts the top-level entries of a possibly multi-rooted tree.
func countRoots[K any, S Span[S]](t *Tree[K, S]) int {
	var n int
	for i := 0; i < len(t.entries); i += int(t.entries[i].size) {
		n++
	}
	return n
}
