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

import "fmt"

// Span is a byte range within a [File].
//
// The zero Span does not refer to any file, and is the identity for
// [Span.Join].
type Span struct {
	*File

	// The start (inclusive) and end (exclusive) byte offsets for this span.
	Start, End int
}

// IsZero returns whether or not this is the zero span.
func (s Span) IsZero() bool {
	return s.File == nil
}

// Text returns the text corresponding to this span.
func (s Span) Text() string {
	return s.File.Text()[s.Start:s.End]
}

// Len returns the length of this span, in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns whether offset falls within this span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

// StartLoc returns the start location for this span.
func (s Span) StartLoc() Location {
	return s.Location(s.Start, TermWidth)
}

// EndLoc returns the end location for this span.
func (s Span) EndLoc() Location {
	return s.Location(s.End, TermWidth)
}

// Join returns the smallest span that contains both s and other.
//
// If either span is zero, returns the other one. Panics if the spans belong
// to different files.
func (s Span) Join(other Span) Span {
	switch {
	case s.IsZero():
		return other
	case other.IsZero():
		return s
	case s.File != other.File:
		panic(fmt.Sprintf(
			"syntree/source: joined spans with distinct files: %q != %q",
			s.Path(), other.Path(),
		))
	}

	return Span{
		File:  s.File,
		Start: min(s.Start, other.Start),
		End:   max(s.End, other.End),
	}
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	if s.IsZero() {
		return "<nil>"
	}
	start := s.StartLoc()
	return fmt.Sprintf("%q:%d:%d[%d:%d]", s.Path(), start.Line, start.Column, s.Start, s.End)
}

// Join joins a collection of spans, returning the smallest span that
// contains all of them. Zero spans are ignored.
func Join(spans ...Span) Span {
	var joined Span
	for _, span := range spans {
		joined = joined.Join(span)
	}
	return joined
}
