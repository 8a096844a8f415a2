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

package interval_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/syntree/internal/interval"
)

type in struct {
	start, end int
	value      string
}

type out = interval.Entry[int, []string]

func TestInsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ranges []in
		want   []out
	}{
		{
			name:   "single",
			ranges: []in{{0, 9, "a"}},
			want:   []out{{0, 9, []string{"a"}}},
		},
		{
			name:   "disjoint",
			ranges: []in{{30, 39, "b"}, {0, 9, "a"}},
			want:   []out{{0, 9, []string{"a"}}, {30, 39, []string{"b"}}},
		},
		{
			name:   "nested",
			ranges: []in{{0, 9, "a"}, {2, 4, "b"}},
			want: []out{
				{0, 1, []string{"a"}},
				{2, 4, []string{"a", "b"}},
				{5, 9, []string{"a"}},
			},
		},
		{
			name:   "siblings",
			ranges: []in{{0, 9, "a"}, {0, 3, "b"}, {4, 9, "c"}, {5, 5, "d"}},
			want: []out{
				{0, 3, []string{"a", "b"}},
				{4, 4, []string{"a", "c"}},
				{5, 5, []string{"a", "c", "d"}},
				{6, 9, []string{"a", "c"}},
			},
		},
		{
			name:   "identical",
			ranges: []in{{0, 9, "a"}, {0, 9, "b"}},
			want:   []out{{0, 9, []string{"a", "b"}}},
		},
		{
			name:   "straddle",
			ranges: []in{{0, 9, "a"}, {20, 29, "b"}, {5, 24, "c"}},
			want: []out{
				{0, 4, []string{"a"}},
				{5, 9, []string{"a", "c"}},
				{10, 19, []string{"c"}},
				{20, 24, []string{"b", "c"}},
				{25, 29, []string{"b"}},
			},
		},
		{
			name:   "cover",
			ranges: []in{{3, 4, "a"}, {7, 8, "b"}, {0, 10, "c"}},
			want: []out{
				{0, 2, []string{"c"}},
				{3, 4, []string{"a", "c"}},
				{5, 6, []string{"c"}},
				{7, 8, []string{"b", "c"}},
				{9, 10, []string{"c"}},
			},
		},
		{
			name:   "max",
			ranges: []in{{29, math.MaxInt, "a"}, {40, math.MaxInt, "b"}},
			want: []out{
				{29, 39, []string{"a"}},
				{40, math.MaxInt, []string{"a", "b"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var m interval.Intersect[int, string]
			for _, r := range tt.ranges {
				m.Insert(r.start, r.end, r.value)
			}
			assert.Equal(t, tt.want, slices.Collect(m.Entries()))
			assert.Equal(t, len(tt.want), m.Len())
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	var m interval.Intersect[int, int]
	assert.True(t, m.Insert(10, 19, 1))
	assert.False(t, m.Insert(12, 13, 2))
	assert.True(t, m.Insert(30, 30, 3))

	assert.Nil(t, m.Get(0).Value)
	assert.Nil(t, m.Get(20).Value)
	assert.Equal(t, []int{1}, m.Get(10).Value)
	assert.Equal(t, []int{1, 2}, m.Get(13).Value)
	assert.Equal(t, []int{3}, m.Get(30).Value)
	assert.Nil(t, m.Get(31).Value)

	assert.Equal(t, "{[10, 11]: [1], [12, 13]: [1 2], [14, 19]: [1], 30: [3]}", fmt.Sprint(&m))

	assert.PanicsWithValue(t, "syntree/interval: start (5) > end (4)", func() {
		m.Insert(5, 4, 0)
	})
}

func TestRandom(t *testing.T) {
	t.Parallel()

	for seed := range uint64(32) {
		rng := rand.New(rand.NewPCG(seed, 0))

		var m interval.Intersect[int, int]
		var ranges []in
		for i := range 24 {
			start := rng.IntN(64)
			end := start + rng.IntN(16)
			ranges = append(ranges, in{start, end, ""})
			m.Insert(start, end, i)
		}

		for point := range 96 {
			var want []int
			for i, r := range ranges {
				if r.start <= point && point <= r.end {
					want = append(want, i)
				}
			}
			require.Equal(t, want, m.Get(point).Value, "seed %d, point %d", seed, point)
		}

		prev := -1
		for e := range m.Entries() {
			require.Less(t, prev, e.Start, "seed %d", seed)
			require.LessOrEqual(t, e.Start, e.End, "seed %d", seed)
			prev = e.End
		}
	}
}
