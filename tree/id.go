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
	"math"
)

// MaxNodes is the maximum number of entries a [Tree] may contain.
//
// This is the largest value an [ID] can address.
const MaxNodes = math.MaxUint32 - 1

// ID is the raw ID of a [Node] separated from its [Tree].
//
// The zero value is reserved as a nil representation. All other values are
// opaque; use [Tree.Node] to recover a Node from an ID.
type ID uint32

// IsZero returns whether this is the nil ID.
func (id ID) IsZero() bool {
	return id == 0
}

// String implements [fmt.Stringer].
func (id ID) String() string {
	if id.IsZero() {
		return "ID(<nil>)"
	}
	return fmt.Sprintf("ID(%d)", uint32(id)-1)
}

// index returns the position of the entry this ID refers to.
func (id ID) index() int {
	return int(id) - 1
}
