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

package calc_test

import (
	"fmt"

	"github.com/bufbuild/syntree/calc"
	"github.com/bufbuild/syntree/source"
)

func ExampleParse() {
	tree, errs := calc.Parse(source.NewFile("example", "1 + 2"))
	if len(errs) > 0 {
		panic(errs[0])
	}

	fmt.Print(calc.Dump(tree.Root()))

	v, _ := calc.Eval(tree.Root(), nil)
	fmt.Println(v)
	// Output:
	// File 0:5
	//   Add 0:5
	//     Number 0:1 "1"
	//     Plus 2:3 "+"
	//     Number 4:5 "2"
	// 3
}
