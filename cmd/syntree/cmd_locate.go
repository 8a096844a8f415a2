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

	"github.com/spf13/cobra"

	"github.com/bufbuild/syntree/locate"
	"github.com/bufbuild/syntree/source"
)

func newLocateCmd(g *globals) *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "locate --offset N <file>",
		Short: "Print the nodes covering a byte offset, outermost first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := g.parseInputs(cmd.Context(), cmd.InOrStdin(), nil, args)
			if err != nil {
				return err
			}
			r := results[0]
			if offset < 0 || offset > len(r.file.Text()) {
				return fmt.Errorf("offset %d is outside of %s", offset, r.file.Path())
			}

			idx := locate.New(r.tree)
			loc := r.file.Location(offset, source.TermWidth)
			g.logger.WithField("file", r.file.Path()).Debugf("locating %d:%d", loc.Line, loc.Column)

			out := cmd.OutOrStdout()
			for _, n := range idx.Covering(offset) {
				span := n.Span()
				start := span.StartLoc()
				fmt.Fprintf(out, "%v %d:%d [%d:%d]", n.Kind(), start.Line, start.Column, span.Start, span.End)
				if n.IsToken() {
					fmt.Fprintf(out, " %q", span.Text())
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "the byte offset to look up")
	_ = cmd.MarkFlagRequired("offset")
	return cmd
}
