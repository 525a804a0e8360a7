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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theseoafs/harisc/pkg/emit"
	"github.com/theseoafs/harisc/pkg/schema"
)

func joinSource(ctx *emit.Context) string {
	return strings.Join(ctx.Source, "")
}

func TestEmitSourceTables_RegistrationTableOneRowPerStruct(t *testing.T) {
	s := schema.NewParsedSchema()
	a, err := s.NewStruct("A")
	require.NoError(t, err)
	require.NoError(t, a.AddScalarField("x", schema.ScalarUint32))

	b, err := s.NewStruct("B")
	require.NoError(t, err)
	require.NoError(t, b.AddStructField("a", false, a))

	require.NoError(t, schema.FinalizeSchema(s))

	ctx := emit.NewContext()
	require.NoError(t, EmitSourceTables(ctx, s, "p_"))
	out := joinSource(ctx)

	assert.Contains(t, out, "const HarisStructureInfo haris_lib_structures[2] = {\n")
	assert.Contains(t, out, "{ offsetof(p_A, x), HARIS_SCALAR_UINT32 },")
	assert.Contains(t, out, "{ offsetof(p_B, _a_info), 0, HARIS_SCALAR_UINT8, &haris_lib_structures[0], HARIS_CHILD_STRUCT },")
	assert.Contains(t, out, "{ 1, A_lib_scalars, 0, A_lib_children, 4, sizeof(p_A) },")
	assert.Contains(t, out, "{ 0, B_lib_scalars, 1, B_lib_children, 1, sizeof(p_B) },")
}

func TestEmitSourceTables_ForwardDeclaresRegistrationTable(t *testing.T) {
	s := schema.NewParsedSchema()
	_, err := s.NewStruct("A")
	require.NoError(t, err)
	require.NoError(t, schema.FinalizeSchema(s))

	ctx := emit.NewContext()
	require.NoError(t, EmitSourceTables(ctx, s, "p_"))
	out := joinSource(ctx)

	decl := "extern const HarisStructureInfo haris_lib_structures[1];\n"
	def := "const HarisStructureInfo haris_lib_structures[1] = {\n"
	assert.Contains(t, out, decl)
	assert.Less(t, strings.Index(out, decl), strings.Index(out, def))
}

func TestEmitSourceTables_DeclaresCoreLibraryRoutines(t *testing.T) {
	s := schema.NewParsedSchema()
	_, err := s.NewStruct("A")
	require.NoError(t, err)
	require.NoError(t, schema.FinalizeSchema(s))

	ctx := emit.NewContext()
	require.NoError(t, EmitSourceTables(ctx, s, "p_"))
	out := joinSource(ctx)

	assert.Contains(t, out, "haris_uint32_t haris_lib_size(void *, const HarisStructureInfo *,")
	assert.Contains(t, out, "HarisStatus _haris_to_stream(void *, const HarisStructureInfo *,")
	assert.Contains(t, out, "HarisStatus _haris_from_stream(void *, const HarisStructureInfo *,")
}

func TestEmitSourceTables_EmptyScalarAndChildTablesAreNull(t *testing.T) {
	s := schema.NewParsedSchema()
	_, err := s.NewStruct("Empty")
	require.NoError(t, err)

	require.NoError(t, schema.FinalizeSchema(s))

	ctx := emit.NewContext()
	require.NoError(t, EmitSourceTables(ctx, s, "p_"))
	out := joinSource(ctx)

	assert.Contains(t, out, "static const HarisScalar *Empty_lib_scalars = NULL;\n")
	assert.Contains(t, out, "static const HarisChild *Empty_lib_children = NULL;\n")
}

func TestEmitSourceTables_ScalarRowsFollowLayoutOrder(t *testing.T) {
	s := schema.NewParsedSchema()
	foo, err := s.NewStruct("Foo")
	require.NoError(t, err)
	require.NoError(t, foo.AddScalarField("a", schema.ScalarUint8))
	require.NoError(t, foo.AddScalarField("b", schema.ScalarUint64))
	require.NoError(t, foo.AddScalarField("c", schema.ScalarUint16))

	require.NoError(t, schema.FinalizeSchema(s))

	ctx := emit.NewContext()
	require.NoError(t, EmitSourceTables(ctx, s, "p_"))
	out := joinSource(ctx)

	bIdx := strings.Index(out, "offsetof(p_Foo, b)")
	cIdx := strings.Index(out, "offsetof(p_Foo, c)")
	aIdx := strings.Index(out, "offsetof(p_Foo, a)")
	require.NotEqual(t, -1, bIdx)
	require.NotEqual(t, -1, cIdx)
	require.NotEqual(t, -1, aIdx)
	assert.Less(t, bIdx, cIdx)
	assert.Less(t, cIdx, aIdx)
}
