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

package calc

import (
	"fmt"
	"strings"
)

// Dump renders the subtree rooted at n as indented text, one entry per
// line, with byte ranges. Tokens also show their text.
//
//	File 0:5
//	  Add 0:5
//	    Number 0:1 "1"
//	    Plus 2:3 "+"
//	    Number 4:5 "2"
func Dump(n Node) string {
	var out strings.Builder
	for node, depth := range n.Walk() {
		fmt.Fprintf(&out, "%*s%v", 2*depth, "", node.Kind())
		if node.HasSpan() {
			span := node.Span()
			fmt.Fprintf(&out, " %d:%d", span.Start, span.End)
			if node.IsToken() {
				fmt.Fprintf(&out, " %q", span.Text())
			}
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// DumpErrors renders a list of errors, one per line.
func DumpErrors(errs []*Error) string {
	var out strings.Builder
	for _, err := range errs {
		out.WriteString(err.Error())
		out.WriteByte('\n')
	}
	return out.String()
}
