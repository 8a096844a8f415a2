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

// Command syntree parses, evaluates, and inspects calc expressions.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// formatEnv names the environment variable holding the default for --format.
const formatEnv = "SYNTREE_FORMAT"

var formats = []string{"text", "yaml", "sexpr"}

// globals are the flags shared by every subcommand.
type globals struct {
	verbose bool
	format  string

	logger *log.Logger
}

func main() {
	g := &globals{logger: log.New()}
	if err := newRootCmd(g).Execute(); err != nil {
		g.logger.Error(err)
		os.Exit(1)
	}
}

func newRootCmd(g *globals) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "syntree",
		Short:         "Parse and inspect arithmetic expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd.ErrOrStderr())
		},
	}
	g.bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newEvalCmd(g))
	rootCmd.AddCommand(newLocateCmd(g))

	return rootCmd
}

func (g *globals) bind(flags *pflag.FlagSet) {
	format := os.Getenv(formatEnv)
	if format == "" {
		format = formats[0]
	}

	flags.BoolVarP(&g.verbose, "verbose", "v", false, "log progress to stderr")
	flags.StringVarP(&g.format, "format", "f", format,
		fmt.Sprintf("output format (%s); defaults to $%s", strings.Join(formats, ", "), formatEnv))
}

func (g *globals) setup(stderr io.Writer) error {
	g.logger.SetOutput(stderr)
	g.logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	g.logger.SetLevel(log.WarnLevel)
	if g.verbose {
		g.logger.SetLevel(log.DebugLevel)
	}

	for _, f := range formats {
		if g.format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (expected one of %s)", g.format, strings.Join(formats, ", "))
}
