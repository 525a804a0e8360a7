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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theseoafs/harisc/pkg/generate"
	"github.com/theseoafs/harisc/pkg/parser"
)

func TestExitCodeFor_MapsEachErrorKind(t *testing.T) {
	assert.Equal(t, 2, exitCodeFor(fmt.Errorf("wrap: %w", generate.ErrJob)))
	assert.Equal(t, 3, exitCodeFor(fmt.Errorf("wrap: %w", generate.ErrSchema)))
	assert.Equal(t, 4, exitCodeFor(fmt.Errorf("wrap: %w", parser.ErrParse)))
	assert.Equal(t, 4, exitCodeFor(fmt.Errorf("wrap: %w", generate.ErrParse)))
	assert.Equal(t, 5, exitCodeFor(fmt.Errorf("wrap: %w", generate.ErrIO)))
	assert.Equal(t, 6, exitCodeFor(fmt.Errorf("wrap: %w", generate.ErrMem)))
	assert.Equal(t, 1, exitCodeFor(errors.New("unclassified")))
}

func TestReadProtocolFlags_RequiresAtLeastOne(t *testing.T) {
	_, err := readProtocolFlags(generateCmd)
	assert.ErrorIs(t, err, generate.ErrJob)
}
