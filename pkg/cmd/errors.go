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
	"errors"

	"github.com/theseoafs/harisc/pkg/generate"
	"github.com/theseoafs/harisc/pkg/parser"
)

// exitCodeFor maps an error kind to a process exit code. The ordering is
// stable and part of the CLI contract: job misconfiguration, schema
// errors, parse failures, I/O failures and allocation failures each get
// their own code, 2 through 6 in that order.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, generate.ErrJob):
		return 2
	case errors.Is(err, generate.ErrSchema):
		return 3
	case errors.Is(err, parser.ErrParse), errors.Is(err, generate.ErrParse):
		return 4
	case errors.Is(err, generate.ErrIO):
		return 5
	case errors.Is(err, generate.ErrMem):
		return 6
	default:
		return 1
	}
}
