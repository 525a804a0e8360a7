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

// Package generate walks a finalized schema and an emit.Context to
// produce the two Haris C source artifacts: the header emitter, the
// source (core reflective table) emitter, the per-transport protocol
// emitters, and the job orchestrator that sequences them and assembles
// the final artifacts.
package generate

import (
	"errors"

	"github.com/theseoafs/harisc/pkg/parser"
)

// The error kinds surfaced by the generator. A parse failure is
// not produced here -- it is surfaced by pkg/parser and re-exported as
// ErrParse so callers that only import this package can still dispatch on
// it with errors.Is.
var (
	// ErrSchema signals that finalization of the schema failed.
	// schema.FinalizeSchema fails only when the schema is already
	// finalized; it does not reject a cycle of non-nullable struct
	// children, which it accepts with MaxSize 0.
	ErrSchema = errors.New("generate: schema error")
	// ErrJob signals a misconfiguration of the job itself (unknown
	// protocol, missing prefix, etc).
	ErrJob = errors.New("generate: job error")
	// ErrIO signals that writing an output artifact failed.
	ErrIO = errors.New("generate: io error")
	// ErrMem is the allocation-failure kind. Ordinary Go slice and map
	// growth aborts the process rather than returning an error, so in
	// practice this is only produced by callers with their own bounded
	// allocators.
	ErrMem = errors.New("generate: allocation error")
	// ErrParse re-exports pkg/parser's sentinel so that a caller which
	// only imports pkg/generate can still recognise a wrapped parse
	// failure.
	ErrParse = parser.ErrParse
)
