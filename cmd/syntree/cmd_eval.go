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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bufbuild/syntree/calc"
)

func newEvalCmd(g *globals) *cobra.Command {
	var (
		exprs []string
		vars  map[string]string
	)

	cmd := &cobra.Command{
		Use:   "eval [file...]",
		Short: "Evaluate expressions",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := make(calc.Env, len(vars))
			for name, value := range vars {
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid value for --var %s: %w", name, err)
				}
				env[name] = v
			}

			results, err := g.parseInputs(cmd.Context(), cmd.InOrStdin(), exprs, args)
			if err != nil {
				return err
			}
			if err := g.report(cmd.ErrOrStderr(), results); err != nil {
				return err
			}

			for _, r := range results {
				v, err := calc.Eval(r.tree.Root(), env)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&exprs, "expr", "e", nil, "evaluate this expression; may be repeated")
	cmd.Flags().StringToStringVar(&vars, "var", nil, "bind a variable, as name=value; may be repeated")
	return cmd
}
