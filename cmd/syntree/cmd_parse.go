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
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/syntree/calc"
)

func newParseCmd(g *globals) *cobra.Command {
	var exprs []string

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse expressions and print their syntax trees",
		Long: `Parse expressions and print their syntax trees.

Inputs are given with -e, as files, or on stdin. Syntax errors are printed
to stderr, and cause a non-zero exit status; trees are printed regardless.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := g.parseInputs(cmd.Context(), cmd.InOrStdin(), exprs, args)
			if err != nil {
				return err
			}

			for _, r := range results {
				if err := printTree(cmd.OutOrStdout(), g.format, r.tree.Root()); err != nil {
					return fmt.Errorf("print %s: %w", r.file.Path(), err)
				}
			}
			return g.report(cmd.ErrOrStderr(), results)
		},
	}

	cmd.Flags().StringArrayVarP(&exprs, "expr", "e", nil, "parse this expression; may be repeated")
	return cmd
}

func printTree(w io.Writer, format string, root calc.Node) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return err
		}
		return enc.Close()
	case "sexpr":
		_, err := fmt.Fprintf(w, "%v\n", root)
		return err
	default:
		_, err := io.WriteString(w, calc.Dump(root))
		return err
	}
}
