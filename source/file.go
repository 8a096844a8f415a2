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

package source

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the number of columns a tab advances to when measuring in
// [TermWidth].
const TabstopWidth = 4

// Unit is a unit of measurement for columns.
type Unit int

const (
	Bytes     Unit = iota // Columns are measured in bytes.
	Runes                 // Columns are measured in Unicode code points.
	UTF16                 // Columns are measured in UTF-16 code units, as LSP does.
	TermWidth             // Columns are measured in terminal cells.
)

// String implements [fmt.Stringer].
func (u Unit) String() string {
	switch u {
	case Bytes:
		return "Bytes"
	case Runes:
		return "Runes"
	case UTF16:
		return "UTF16"
	case TermWidth:
		return "TermWidth"
	default:
		return fmt.Sprintf("source.Unit(%d)", int(u))
	}
}

// File is a source code file.
//
// Files are immutable once created, and may be shared between goroutines.
//
// A nil *File behaves like an empty file with the path name "".
type File struct {
	path, text string

	once sync.Once
	// The offset of the start of each line; lines[0] is always zero.
	lines []int
}

// Location is a user-displayable location within a [File].
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed.
	//
	// The units of measurement for column depend on the [Unit] used when
	// constructing it.
	Line, Column int
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's path. It doesn't need to be a real path.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Span is a shorthand for creating a new [Span].
func (f *File) Span(start, end int) Span {
	if f == nil {
		return Span{}
	}
	return Span{File: f, Start: start, End: end}
}

// Location computes the location of the given byte offset.
//
// This operation is O(log n) in the number of lines, plus the length of the
// offset's line.
func (f *File) Location(offset int, unit Unit) Location {
	if f == nil || offset == 0 {
		return Location{Offset: 0, Line: 1, Column: 1}
	}

	lines := f.lineIndex()
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}

	chunk := f.text[lines[line]:offset]
	var column int
	switch unit {
	case Bytes:
		column = len(chunk)
	case Runes:
		for range chunk {
			column++
		}
	case UTF16:
		for _, r := range chunk {
			column += utf16.RuneLen(r)
		}
	case TermWidth:
		column = termWidth(chunk)
	}

	return Location{Offset: offset, Line: line + 1, Column: column + 1}
}

// Line returns the given 1-indexed line, without its trailing newline.
func (f *File) Line(line int) string {
	lines := f.lineIndex()
	if line < 1 || line > len(lines) {
		return ""
	}

	start, end := lines[line-1], len(f.Text())
	if line < len(lines) {
		end = lines[line]
	}
	return strings.TrimSuffix(f.Text()[start:end], "\n")
}

func (f *File) lineIndex() []int {
	if f == nil {
		return []int{0}
	}

	f.once.Do(func() {
		f.lines = append(f.lines, 0)
		for i := range len(f.text) {
			if f.text[i] == '\n' {
				f.lines = append(f.lines, i+1)
			}
		}
	})
	return f.lines
}

// termWidth measures text in terminal cells, expanding tabs to the next
// multiple of [TabstopWidth].
func termWidth(text string) int {
	var column int
	for i, chunk := range strings.Split(text, "\t") {
		if i > 0 {
			column += TabstopWidth - column%TabstopWidth
		}
		column += uniseg.StringWidth(chunk)
	}
	return column
}
