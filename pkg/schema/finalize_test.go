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
package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarOrdering(t *testing.T) {
	s := NewParsedSchema()
	foo, err := s.NewStruct("Foo")
	require.NoError(t, err)
	require.NoError(t, foo.AddScalarField("a", ScalarUint8))
	require.NoError(t, foo.AddScalarField("b", ScalarUint64))
	require.NoError(t, foo.AddScalarField("c", ScalarUint16))
	require.NoError(t, foo.AddScalarField("d", ScalarInt8))

	require.NoError(t, FinalizeSchema(s))

	offsets := map[string]int{}
	for _, f := range foo.Scalars {
		offsets[f.Name] = f.Offset
	}

	assert.Equal(t, 0, offsets["b"])
	assert.Equal(t, 8, offsets["c"])
	assert.Equal(t, 10, offsets["a"])
	assert.Equal(t, 11, offsets["d"])
	assert.Equal(t, 12, foo.Meta.BodySize)
}

func TestRecursiveChildForcesUnbounded(t *testing.T) {
	s := NewParsedSchema()
	node, err := s.NewStruct("Node")
	require.NoError(t, err)
	require.NoError(t, node.AddStructField("next", true, node))

	require.NoError(t, FinalizeSchema(s))

	assert.Equal(t, 0, node.Meta.MaxSize)
	assert.False(t, node.Children[0].Embeddable)
}

func TestStructDescriptorShape(t *testing.T) {
	s := NewParsedSchema()
	a, err := s.NewStruct("A")
	require.NoError(t, err)
	require.NoError(t, a.AddScalarField("x", ScalarUint32))

	b, err := s.NewStruct("B")
	require.NoError(t, err)
	require.NoError(t, b.AddStructField("a", false, a))

	require.NoError(t, FinalizeSchema(s))

	assert.Equal(t, 0, a.SchemaIndex)
	assert.Equal(t, 1, b.SchemaIndex)
	assert.Equal(t, 4, a.Meta.BodySize)
	assert.Equal(t, 1, b.Meta.BodySize)
	assert.Len(t, a.Scalars, 1)
	assert.Equal(t, 0, a.Scalars[0].Offset)
	assert.Equal(t, ChildStruct, b.Children[0].Tag)
	assert.Same(t, a, b.Children[0].Type.Struct)
}

// Invariant 1: scalar offsets are strictly increasing and respect the
// descending-size ordering.
func TestInvariant_OffsetsIncreasingInDescendingSizeOrder(t *testing.T) {
	s := NewParsedSchema()
	strct, err := s.NewStruct("Mixed")
	require.NoError(t, err)
	require.NoError(t, strct.AddScalarField("f64", ScalarFloat64))
	require.NoError(t, strct.AddScalarField("u8", ScalarUint8))
	require.NoError(t, strct.AddScalarField("u32", ScalarUint32))
	require.NoError(t, strct.AddScalarField("flag", ScalarBool))
	require.NoError(t, strct.AddScalarField("i16", ScalarInt16))

	require.NoError(t, FinalizeSchema(s))

	prevOffset := -1
	prevSize := 1 << 30

	for _, tag := range ScalarsBySize {
		for _, f := range strct.Scalars {
			if f.Type.Tag != tag {
				continue
			}

			assert.GreaterOrEqual(t, SizeOf(tag), 0)
			assert.Greater(t, f.Offset, prevOffset)
			assert.LessOrEqual(t, SizeOf(tag), prevSize)
			prevOffset = f.Offset
			prevSize = SizeOf(tag)
		}
	}
}

// Invariant 2: body_size == sum(sizeof(scalar)) + len(children).
func TestInvariant_BodySizeFormula(t *testing.T) {
	s := NewParsedSchema()
	child, err := s.NewStruct("Child")
	require.NoError(t, err)

	parent, err := s.NewStruct("Parent")
	require.NoError(t, err)
	require.NoError(t, parent.AddScalarField("a", ScalarUint16))
	require.NoError(t, parent.AddScalarField("b", ScalarUint8))
	require.NoError(t, parent.AddStructField("c1", true, child))
	require.NoError(t, parent.AddTextField("c2", false))

	require.NoError(t, FinalizeSchema(s))

	assert.Equal(t, 2+1+2, parent.Meta.BodySize)
}

// Invariant 6: enum value indices equal declaration position.
func TestInvariant_EnumValueIndices(t *testing.T) {
	s := NewParsedSchema()
	enm, err := s.NewEnum("Color")
	require.NoError(t, err)
	enm.AddEnumeratedValue("RED")
	enm.AddEnumeratedValue("GREEN")
	enm.AddEnumeratedValue("BLUE")

	for i, v := range []string{"RED", "GREEN", "BLUE"} {
		idx, ok := enm.IndexOf(v)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}
}

func TestFinalize_RejectsMutationAfterward(t *testing.T) {
	s := NewParsedSchema()
	strct, err := s.NewStruct("S")
	require.NoError(t, err)

	require.NoError(t, FinalizeSchema(s))

	assert.ErrorIs(t, strct.AddScalarField("x", ScalarUint8), ErrSchemaFinalized)
	assert.ErrorIs(t, FinalizeSchema(s), ErrSchemaFinalized)

	_, err = s.NewStruct("T")
	assert.ErrorIs(t, err, ErrSchemaFinalized)
}

func TestNonRecursiveBoundedStructIsEmbeddable(t *testing.T) {
	s := NewParsedSchema()
	leaf, err := s.NewStruct("Leaf")
	require.NoError(t, err)
	require.NoError(t, leaf.AddScalarField("v", ScalarUint32))

	root, err := s.NewStruct("Root")
	require.NoError(t, err)
	require.NoError(t, root.AddStructField("leaf", false, leaf))

	require.NoError(t, FinalizeSchema(s))

	assert.NotEqual(t, 0, root.Meta.MaxSize)
	assert.True(t, root.Children[0].Embeddable)
}

// Declaration order of scalar fields does not affect the computed layout:
// the same field set in any order yields identical offsets and body size.
func TestLayoutIsDeterministicInFieldSetNotDeclarationOrder(t *testing.T) {
	build := func(order []string) *ParsedStruct {
		tags := map[string]ScalarTag{
			"a": ScalarUint8, "b": ScalarUint64, "c": ScalarUint16, "d": ScalarInt8,
		}

		s := NewParsedSchema()
		strct, err := s.NewStruct("Foo")
		require.NoError(t, err)

		for _, name := range order {
			require.NoError(t, strct.AddScalarField(name, tags[name]))
		}

		require.NoError(t, FinalizeSchema(s))
		return strct
	}

	first := build([]string{"a", "b", "c", "d"})
	second := build([]string{"d", "c", "b", "a"})

	assert.Equal(t, first.Meta.BodySize, second.Meta.BodySize)

	offsets := func(strct *ParsedStruct) map[string]int {
		m := map[string]int{}
		for _, f := range strct.Scalars {
			m[f.Name] = f.Offset
		}
		return m
	}

	assert.Equal(t, offsets(first), offsets(second))
}

func TestListChildForcesUnboundedMaxSize(t *testing.T) {
	s := NewParsedSchema()
	strct, err := s.NewStruct("Listy")
	require.NoError(t, err)
	require.NoError(t, strct.AddListOfScalarsField("items", false, ScalarInt32))

	require.NoError(t, FinalizeSchema(s))

	assert.Equal(t, 0, strct.Meta.MaxSize)
}
