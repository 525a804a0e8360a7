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
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theseoafs/harisc/pkg/generate"
	"github.com/theseoafs/harisc/pkg/parser"
	"github.com/theseoafs/harisc/pkg/schema"
)

var generateCmd = &cobra.Command{
	Use:   "generate <schema-file>...",
	Short: "generate a Haris C library from one or more schema files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().String("prefix", "", "symbol prefix for generated identifiers (required)")
	generateCmd.Flags().String("output", "", "output base name; writes <output>.h and <output>.c (required)")
	generateCmd.Flags().Bool("buffer", false, "emit the buffer transport")
	generateCmd.Flags().Bool("file", false, "emit the FILE* transport")
	generateCmd.Flags().Bool("fd", false, "emit the raw file-descriptor transport")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	prefix := GetFlag(cmd, "prefix")
	output := GetFlag(cmd, "output")

	if prefix == "" {
		return fmt.Errorf("cmd: %w: --prefix is required", generate.ErrJob)
	}

	if output == "" {
		return fmt.Errorf("cmd: %w: --output is required", generate.ErrJob)
	}

	protocol, err := readProtocolFlags(cmd)
	if err != nil {
		return err
	}

	s, err := readSchemaFiles(args)
	if err != nil {
		return err
	}

	if err := schema.FinalizeSchema(s); err != nil {
		return fmt.Errorf("cmd: %w: %w", generate.ErrSchema, err)
	}

	artifacts, err := generate.RunJob(generate.JobConfig{Schema: s, Prefix: prefix, Output: output, Protocol: protocol})
	if err != nil {
		return err
	}

	return writeArtifacts(output, artifacts)
}

func readProtocolFlags(cmd *cobra.Command) (generate.ProtocolSet, error) {
	buffer, _ := cmd.Flags().GetBool("buffer")
	file, _ := cmd.Flags().GetBool("file")
	fd, _ := cmd.Flags().GetBool("fd")

	if !buffer && !file && !fd {
		return generate.ProtocolSet{}, fmt.Errorf("cmd: %w: at least one of --buffer, --file, --fd is required", generate.ErrJob)
	}

	return generate.ProtocolSet{Buffer: buffer, File: file, Fd: fd}, nil
}

func readSchemaFiles(paths []string) (*schema.ParsedSchema, error) {
	var merged []byte

	for _, path := range paths {
		log.WithField("file", path).Debug("cmd: reading schema source")

		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cmd: %w: reading %q: %w", generate.ErrIO, path, err)
		}

		merged = append(merged, contents...)
		merged = append(merged, '\n')
	}

	s, err := parser.Parse(string(merged))
	if err != nil {
		return nil, err
	}

	return s, nil
}

func writeArtifacts(output string, artifacts generate.Artifacts) error {
	headerPath := output + ".h"
	sourcePath := output + ".c"

	if err := os.WriteFile(headerPath, []byte(artifacts.Header), 0o644); err != nil {
		return fmt.Errorf("cmd: %w: writing %q: %w", generate.ErrIO, headerPath, err)
	}

	if err := os.WriteFile(sourcePath, []byte(artifacts.Source), 0o644); err != nil {
		return fmt.Errorf("cmd: %w: writing %q: %w", generate.ErrIO, sourcePath, err)
	}

	log.WithFields(log.Fields{"header": headerPath, "source": sourcePath}).Info("cmd: wrote generated artifacts")
	return nil
}
