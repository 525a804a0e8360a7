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
package generate

import (
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/theseoafs/harisc/pkg/emit"
	"github.com/theseoafs/harisc/pkg/schema"
)

// ProtocolSet selects which transports a job emits, mirroring
// original_source/src/cgen.h's CJobProtocols flag triple.
type ProtocolSet struct {
	Buffer bool
	File   bool
	Fd     bool
}

// JobConfig describes one code-generation run: the finalized schema to
// walk, the symbol prefix and protocol set to emit it with, and the
// output base name the artifacts will be written under (the generated
// implementation file includes "<base>.h" by that name).
type JobConfig struct {
	Schema   *schema.ParsedSchema
	Prefix   string
	Output   string
	Protocol ProtocolSet
}

// Artifacts holds the two generated C source files a job produces.
type Artifacts struct {
	Header string
	Source string
}

// RunJob sequences every emission stage against a single shared
// emit.Context and assembles the final header/source text. The schema
// must already be finalized; RunJob does not call
// schema.FinalizeSchema itself so that callers can finalize once and run
// multiple jobs (different prefixes or protocol sets) against it.
func RunJob(cfg JobConfig) (Artifacts, error) {
	if cfg.Schema == nil {
		return Artifacts{}, fmt.Errorf("generate: %w: schema is nil", ErrJob)
	}

	if !cfg.Schema.Finalized() {
		return Artifacts{}, fmt.Errorf("generate: %w: schema must be finalized before RunJob", ErrJob)
	}

	if cfg.Prefix == "" {
		return Artifacts{}, fmt.Errorf("generate: %w: prefix must not be empty", ErrJob)
	}

	if cfg.Output == "" {
		return Artifacts{}, fmt.Errorf("generate: %w: output base name must not be empty", ErrJob)
	}

	if !cfg.Protocol.Buffer && !cfg.Protocol.File && !cfg.Protocol.Fd {
		return Artifacts{}, fmt.Errorf("generate: %w: no protocol selected", ErrJob)
	}

	log.WithFields(log.Fields{
		"prefix":  cfg.Prefix,
		"structs": len(cfg.Schema.Structs),
		"enums":   len(cfg.Schema.Enums),
	}).Info("generate: starting job")

	ctx := emit.NewContext()

	if err := EmitHeader(ctx, cfg.Schema, cfg.Prefix); err != nil {
		return Artifacts{}, fmt.Errorf("generate: header stage: %w", err)
	}

	if err := EmitSourceTables(ctx, cfg.Schema, cfg.Prefix); err != nil {
		return Artifacts{}, fmt.Errorf("generate: source stage: %w", err)
	}

	if cfg.Protocol.Buffer {
		if err := EmitBufferProtocol(ctx, cfg.Schema, cfg.Prefix); err != nil {
			return Artifacts{}, fmt.Errorf("generate: buffer protocol stage: %w", err)
		}
	}

	if cfg.Protocol.File {
		if err := EmitFileProtocol(ctx, cfg.Schema, cfg.Prefix); err != nil {
			return Artifacts{}, fmt.Errorf("generate: file protocol stage: %w", err)
		}
	}

	if cfg.Protocol.Fd {
		if err := EmitFdProtocol(ctx, cfg.Schema, cfg.Prefix); err != nil {
			return Artifacts{}, fmt.Errorf("generate: fd protocol stage: %w", err)
		}
	}

	if err := ctx.DerivePrototypes(); err != nil {
		return Artifacts{}, fmt.Errorf("generate: %w: %w", ErrJob, err)
	}

	return assembleArtifacts(cfg, ctx)
}

func assembleArtifacts(cfg JobConfig, ctx *emit.Context) (Artifacts, error) {
	guard := strings.ToUpper(cfg.Prefix) + "HARIS_H"

	var header strings.Builder
	fmt.Fprintf(&header, "#ifndef %s\n#define %s\n\n", guard, guard)

	for _, frag := range ctx.HeaderTop {
		header.WriteString(frag)
	}

	for _, frag := range ctx.HeaderBottom {
		header.WriteString(frag)
	}

	fmt.Fprintf(&header, "\n#endif /* %s */\n", guard)

	var source strings.Builder
	fmt.Fprintf(&source, "#include \"%s.h\"\n\n", filepath.Base(cfg.Output))

	for _, frag := range ctx.Source {
		source.WriteString(frag)
	}

	for _, frag := range ctx.PrivateFunctions {
		proto, err := emit.Prototype(frag)
		if err != nil {
			return Artifacts{}, fmt.Errorf("generate: %w: %w", ErrJob, err)
		}

		source.WriteString(proto)
	}

	source.WriteString("\n")

	for _, frag := range ctx.PrivateFunctions {
		source.WriteString(frag)
	}

	for _, frag := range ctx.PublicFunctions {
		source.WriteString(frag)
	}

	return Artifacts{Header: header.String(), Source: source.String()}, nil
}
