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
package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Invariant 7: every public_functions fragment produces exactly one
// prototype in header_bottom, textually matching the signature up to the
// opening brace with a terminator appended.
func TestDerivePrototypes_SimpleSignature(t *testing.T) {
	ctx := NewContext()
	ctx.PublicFuncf("HarisStatus Foo_to_buffer(Foo *strct, unsigned char *buf)\n{\n  return HARIS_SUCCESS;\n}\n\n")

	require.NoError(t, ctx.DerivePrototypes())
	require.Len(t, ctx.HeaderBottom, 1)
	assert.Equal(t, "HarisStatus Foo_to_buffer(Foo *strct, unsigned char *buf);\n", ctx.HeaderBottom[0])
}

// The prototype derivation must tolerate multi-line signatures and
// embedded commas inside parameter types.
func TestDerivePrototypes_MultilineSignatureWithEmbeddedCommas(t *testing.T) {
	ctx := NewContext()
	ctx.PublicFuncf("HarisStatus Foo_from_file(Foo *strct, FILE *f,\n" +
		"                          haris_uint32_t *out_sz)\n" +
		"{\n  return HARIS_SUCCESS;\n}\n\n")

	require.NoError(t, ctx.DerivePrototypes())
	require.Len(t, ctx.HeaderBottom, 1)
	assert.Equal(t,
		"HarisStatus Foo_from_file(Foo *strct, FILE *f,\n                          haris_uint32_t *out_sz);\n",
		ctx.HeaderBottom[0])
}

func TestDerivePrototypes_PreservesOrder(t *testing.T) {
	ctx := NewContext()
	ctx.PublicFuncf("void A(void)\n{\n}\n\n")
	ctx.PublicFuncf("void B(void)\n{\n}\n\n")
	ctx.PublicFuncf("void C(void)\n{\n}\n\n")

	require.NoError(t, ctx.DerivePrototypes())
	require.Len(t, ctx.HeaderBottom, 3)
	assert.Equal(t, "void A(void);\n", ctx.HeaderBottom[0])
	assert.Equal(t, "void B(void);\n", ctx.HeaderBottom[1])
	assert.Equal(t, "void C(void);\n", ctx.HeaderBottom[2])
}

func TestDerivePrototypes_ErrorsOnMissingBrace(t *testing.T) {
	ctx := NewContext()
	ctx.PublicFuncf("void Broken(void)")

	assert.Error(t, ctx.DerivePrototypes())
}

func TestContext_StreamsAppendInOrder(t *testing.T) {
	ctx := NewContext()
	ctx.Headerf("one")
	ctx.Headerf("two")
	ctx.Sourcef("three")
	ctx.PrivateFuncf("four")

	assert.Equal(t, []string{"one", "two"}, ctx.HeaderTop)
	assert.Equal(t, []string{"three"}, ctx.Source)
	assert.Equal(t, []string{"four"}, ctx.PrivateFunctions)
}
