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

// Package interval provides an interval intersection map over integer
// endpoints.
package interval

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Intersect is an interval intersection map: given a point, it returns every
// inserted interval which contains that point, in insertion order.
//
// Internally, the covered points are partitioned into disjoint segments, each
// of which records the values of every interval that covers all of it.
//
// A zero value is ready to use.
type Intersect[K Endpoint, V any] struct {
	// Keyed by the end of each segment.
	tree btree.Map[K, *Entry[K, []V]]

	scratch []*Entry[K, []V] // Reused by Insert.
}

// Entry is a segment of an [Intersect]. Every point in the segment is
// contained by exactly the intervals whose values are in Value.
type Entry[K Endpoint, V any] struct {
	Start, End K // Inclusive.
	Value      V
}

// Contains returns whether an entry contains a given point.
func (e Entry[K, V]) Contains(point K) bool {
	return e.Start <= point && point <= e.End
}

// Len returns the number of segments in the map.
func (m *Intersect[K, V]) Len() int {
	return m.tree.Len()
}

// Get returns the segment containing point.
//
// If no interval contains point, the returned [Entry] has a nil Value.
func (m *Intersect[K, V]) Get(point K) Entry[K, []V] {
	it := m.tree.Iter()
	if !it.Seek(point) || point < it.Value().Start {
		return Entry[K, []V]{}
	}
	return *it.Value()
}

// Entries returns an iterator over the segments of this map, in order.
func (m *Intersect[K, V]) Entries() iter.Seq[Entry[K, []V]] {
	return func(yield func(Entry[K, []V]) bool) {
		it := m.tree.Iter()
		for more := it.First(); more; more = it.Next() {
			if !yield(*it.Value()) {
				return
			}
		}
	}
}

// Insert adds the interval [start, end] to this map, with the given
// associated value.
//
// Returns true if the interval was disjoint from all others in the map.
func (m *Intersect[K, V]) Insert(start, end K, value V) (disjoint bool) {
	if start > end {
		panic(fmt.Sprintf("syntree/interval: start (%#v) > end (%#v)", start, end))
	}

	// Collect the overlapping segments before mutating the tree.
	overlap := m.scratch[:0]
	it := m.tree.Iter()
	for more := it.Seek(start); more && it.Value().Start <= end; more = it.Next() {
		overlap = append(overlap, it.Value())
	}
	defer func() {
		clear(overlap)
		m.scratch = overlap[:0]
	}()

	if len(overlap) == 0 {
		m.tree.Set(end, &Entry[K, []V]{Start: start, End: end, Value: []V{value}})
		return true
	}

	next := start
	for _, seg := range overlap {
		if seg.Start < start {
			// Peel off the part of seg before start; it keeps its values.
			m.tree.Set(start-1, &Entry[K, []V]{Start: seg.Start, End: start - 1, Value: seg.Value})
			seg.Start = start
		}
		if seg.End > end {
			// Likewise for the part after end. The new segment takes over
			// seg's key.
			m.tree.Set(seg.End, &Entry[K, []V]{Start: end + 1, End: seg.End, Value: seg.Value})
			seg.End = end
			m.tree.Set(end, seg)
		}
		if next < seg.Start {
			m.tree.Set(seg.Start-1, &Entry[K, []V]{Start: next, End: seg.Start - 1, Value: []V{value}})
		}

		// Clip so that segments split off above never observe this append.
		seg.Value = append(slices.Clip(seg.Value), value)
		next = seg.End + 1
	}

	if last := overlap[len(overlap)-1]; last.End < end {
		m.tree.Set(end, &Entry[K, []V]{Start: last.End + 1, End: end, Value: []V{value}})
	}
	return false
}

// Format implements [fmt.Formatter].
func (m *Intersect[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "{")
	first := true
	for e := range m.Entries() {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false

		if e.Start == e.End {
			fmt.Fprintf(s, "%#v: ", e.Start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", e.Start, e.End)
		}
		fmt.Fprintf(s, fmt.FormatString(s, v), e.Value)
	}
	fmt.Fprint(s, "}")
}
