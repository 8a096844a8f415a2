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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/syntree/calc"
	"github.com/bufbuild/syntree/source"
)

// parsed is the result of parsing one input.
type parsed struct {
	file *source.File
	tree *calc.Tree
	errs []*calc.Error
}

// parseInputs parses each expression given with -e and each named file,
// in that order. With neither, it parses stdin.
//
// Files are read and parsed concurrently; results keep the input order.
func (g *globals) parseInputs(ctx context.Context, stdin io.Reader, exprs, paths []string) ([]parsed, error) {
	if len(exprs) == 0 && len(paths) == 0 {
		text, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []parsed{g.parse(source.NewFile("<stdin>", string(text)))}, nil
	}

	results := make([]parsed, len(exprs)+len(paths))
	for i, expr := range exprs {
		results[i] = g.parse(source.NewFile("<expr>", expr))
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			results[len(exprs)+i] = g.parse(source.NewFile(path, string(text)))
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *globals) parse(file *source.File) parsed {
	tree, errs := calc.Parse(file)
	g.logger.WithFields(log.Fields{
		"file":   file.Path(),
		"nodes":  tree.Len(),
		"errors": len(errs),
	}).Debug("parsed")
	return parsed{file: file, tree: tree, errs: errs}
}

// report prints the syntax errors of each result and returns an error if
// there were any.
func (g *globals) report(w io.Writer, results []parsed) error {
	var count int
	for _, r := range results {
		for _, err := range r.errs {
			fmt.Fprintln(w, err)
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("found %d syntax errors", count)
	}
	return nil
}
