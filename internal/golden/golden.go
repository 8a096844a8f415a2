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

// Package golden runs table-driven tests whose table lives on disk: each
// input file is paired with expected output files next to it.
package golden

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a directory of test inputs and their expected outputs.
type Corpus struct {
	// The directory containing the inputs, relative to the file that calls
	// [Corpus.Run].
	Root string

	// An environment variable holding a glob. Tests whose names match it
	// have their expected outputs rewritten instead of checked.
	Refresh string

	// The extension (without a dot) of input files, e.g. "calc".
	Extension string

	// The outputs each test produces. For an input "x.calc", an output with
	// extension "tree" is expected in "x.calc.tree". A missing output file
	// is the same as an empty one.
	Outputs []Output

	// Test runs one case, returning one string per element of Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one of the outputs of a [Corpus] test.
type Output struct {
	Extension string

	// Compares outputs. If nil, they are compared byte-for-byte and
	// mismatches are reported as a unified diff.
	Compare func(got, want string) string
}

// Run runs every test in the corpus as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	t.Helper()

	dir := callerDir()
	root := filepath.Join(dir, c.Root)
	inputs, err := doublestar.FilepathGlob(filepath.Join(root, "**", "*."+c.Extension))
	if err != nil {
		t.Fatalf("golden: could not list %q: %v", root, err)
	}
	if len(inputs) == 0 {
		t.Fatalf("golden: no *.%s files under %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		// Refreshing never counts as a pass.
		t.Logf("golden: refreshing outputs matching %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, input := range inputs {
		name, _ := filepath.Rel(dir, input)
		name = filepath.ToSlash(name)

		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(input)
			if err != nil {
				t.Fatalf("golden: could not read %q: %v", input, err)
			}

			results := c.Test(t, name, string(text))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			rewrite := refresh != "" && doublestar.MatchUnvalidated(refresh, name)
			for i, out := range c.Outputs {
				path := fmt.Sprint(input, ".", out.Extension)
				if rewrite {
					if err := write(path, results[i]); err != nil {
						t.Errorf("golden: %v", err)
					}
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("golden: could not read %q: %v", path, err)
					continue
				}

				compare := out.Compare
				if compare == nil {
					compare = Diff
				}
				if diff := compare(results[i], string(want)); diff != "" {
					t.Errorf("output mismatch for %q:\n%s", path, diff)
				}
			}
		})
	}
}

// Diff returns a colored unified diff from want to got, or the empty string
// if they are equal.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = "\033[1;92m" + line + "\033[0m"
		case strings.HasPrefix(line, "-"):
			lines[i] = "\033[1;91m" + line + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

// write writes an expected output, deleting the file instead if it would be
// empty.
func write(path, text string) error {
	if text == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("could not delete %q: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}

// callerDir returns the directory of the file that called Run.
func callerDir() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
