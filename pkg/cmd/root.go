// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package cmd wires the harisc command-line interface: a cobra root
// command carrying the global --verbose flag and a generate
// subcommand that runs a parse/finalize/emit pipeline against a schema
// file.
package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// rootCmd is the harisc entry point. Subcommands register themselves
// against it from their own files' init functions, one file per
// subcommand.
var rootCmd = &cobra.Command{
	Use:           "harisc",
	Short:         "harisc generates a C serialization library from a Haris schema",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}

		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		log.SetFormatter(&log.TextFormatter{
			DisableColors: !term.IsTerminal(int(os.Stderr.Fd())),
			FullTimestamp: false,
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// Execute runs the harisc command tree, exiting the process with a
// status code derived from the returned error (see exitCodeFor).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(exitCodeFor(err))
	}
}

// GetFlag reads a string flag from cmd, logging and exiting on failure --
// flags declared by this package never fail to parse in practice, but the
// helper keeps call sites free of repeated error checks.
func GetFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		log.Fatalf("cmd: internal error reading flag %q: %v", name, err)
	}

	return val
}
