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

package tree_test

import (
	"fmt"

	"github.com/bufbuild/syntree/tree"
)

func ExampleBuilder_FinishNodeAt() {
	// Parse 1+2*3, the way a precedence-climbing parser would: each operand
	// is emitted before the parser knows which operator it belongs to.
	var b tree.Builder[string, span]

	sum := b.Checkpoint()
	b.Token("NUM", span{0, 1})
	b.Token("PLUS", span{1, 2})
	product := b.Checkpoint()
	b.Token("NUM", span{2, 3})
	b.Token("STAR", span{3, 4})
	b.Token("NUM", span{4, 5})
	b.FinishNodeAt(product, "Mul")
	b.FinishNodeAt(sum, "Add")

	root := b.Build().Root()
	fmt.Println(root)
	for child := range root.Children() {
		fmt.Printf("%+v\n", child)
	}

	// Output:
	// Add[NUM PLUS Mul[NUM STAR NUM]]
	// NUM@0:1
	// PLUS@1:2
	// Mul@2:5[NUM@2:3 STAR@3:4 NUM@4:5]
}
