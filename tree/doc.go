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

// Package tree provides a compact, arena-backed syntax tree and the
// incremental [Builder] a parser uses to produce one in a single forward
// pass.
//
// # Encoding
//
// A [Tree] is a flat slice of entries in preorder. Each entry records its
// kind, its span, and the number of entries in its subtree (itself
// included). The descendants of the entry at position p with subtree size s
// are exactly the entries in [p+1, p+s); its children are found by starting
// at p+1 and repeatedly skipping forward by each child's own subtree size.
// [Node] is a small value handle (a tree pointer and an [ID]) into this
// slice, so traversal never chases per-node heap pointers.
//
// # Checkpoints
//
// Precedence-climbing parsers emit an operand before they know whether it
// will become the left-hand side of a binary operator. [Builder.Checkpoint]
// records the position before the operand; once the operator and its
// right-hand side have been emitted, [Builder.FinishNodeAt] retroactively
// inserts a node at that position which wraps everything emitted since:
//
//	cp := b.Checkpoint()
//	b.Token(Num, one)   // 1
//	b.Token(Plus, plus) // +
//	b.Token(Num, two)   // 2
//	b.FinishNodeAt(cp, Add)
//
// produces Add[Num Plus Num].
//
// # Construction Cost
//
// The builder does not materialize entries as calls are made. Instead, it
// appends to an event log: every call is O(1), including FinishNodeAt, which
// links the new node onto the event at the checkpoint's position rather
// than shifting the entries after it. [Builder.Build] then replays the log
// once, with an explicit stack, to assign positions, subtree sizes and
// spans in O(n).
//
// # Contract Violations
//
// Misusing the builder (finishing a node that was never started, building
// with nodes still open, redeeming a checkpoint that can no longer be
// wrapped, exceeding [MaxNodes]) is a bug in the caller, not a property of
// the input being parsed. These conditions panic before any state is
// modified.
package tree
