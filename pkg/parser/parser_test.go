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
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theseoafs/harisc/pkg/schema"
)

const exampleSchema = `
enum Color { RED, GREEN, BLUE }

struct Point {
    x: int32
    y: int32
}

struct Shape {
    name: text
    outline: Point[]
    fill: Color
}
`

func TestParse_ExampleSchema(t *testing.T) {
	s, err := Parse(exampleSchema)
	require.NoError(t, err)

	color := s.FindEnum("Color")
	require.NotNil(t, color)
	assert.Equal(t, []string{"RED", "GREEN", "BLUE"}, color.Values)

	point := s.FindStruct("Point")
	require.NotNil(t, point)
	require.Len(t, point.Scalars, 2)

	shape := s.FindStruct("Shape")
	require.NotNil(t, shape)
	require.Len(t, shape.Children, 2)

	assert.Equal(t, "name", shape.Children[0].Name)
	assert.Equal(t, schema.ChildText, shape.Children[0].Tag)

	assert.Equal(t, "outline", shape.Children[1].Name)
	assert.Equal(t, schema.ChildStructList, shape.Children[1].Tag)
	assert.Same(t, point, shape.Children[1].Type.Struct)

	require.Len(t, shape.Scalars, 1)
	assert.Equal(t, "fill", shape.Scalars[0].Name)
	assert.Equal(t, schema.ScalarEnum, shape.Scalars[0].Type.Tag)
	assert.Same(t, color, shape.Scalars[0].Type.Enum)

	require.NoError(t, schema.FinalizeSchema(s))
}

func TestParse_ForwardReferenceToLaterStruct(t *testing.T) {
	src := `
struct A {
    b: B
}
struct B {
    v: int32
}
`
	s, err := Parse(src)
	require.NoError(t, err)

	a := s.FindStruct("A")
	b := s.FindStruct("B")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Same(t, b, a.Children[0].Type.Struct)
}

func TestParse_NullableSelfReference(t *testing.T) {
	src := `
struct Node {
    next?: Node
}
`
	s, err := Parse(src)
	require.NoError(t, err)

	node := s.FindStruct("Node")
	require.NotNil(t, node)
	assert.True(t, node.Children[0].Nullable)
}

func TestParse_RejectsUnknownType(t *testing.T) {
	_, err := Parse("struct A {\n  b: Nonexistent\n}\n")
	assert.ErrorIs(t, err, ErrParse)
}

func TestParse_RejectsDuplicateTopLevelName(t *testing.T) {
	src := `
struct A { v: int32 }
struct A { w: int32 }
`
	_, err := Parse(src)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, schema.ErrNameCollision)
}

func TestParse_RejectsDuplicateFieldName(t *testing.T) {
	src := `
struct A {
    v: int32
    v: int32
}
`
	_, err := Parse(src)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, schema.ErrNameCollision)
}

func TestParse_RejectsReservedWordAsIdentifier(t *testing.T) {
	_, err := Parse("struct struct { v: int32 }\n")
	assert.ErrorIs(t, err, ErrParse)
}

func TestParse_RejectsMalformedIdentifier(t *testing.T) {
	_, err := Parse("struct 1Bad { v: int32 }\n")
	assert.ErrorIs(t, err, ErrParse)
}

func TestParse_RejectsNullableScalarField(t *testing.T) {
	_, err := Parse("struct A {\n  v?: int32\n}\n")
	assert.ErrorIs(t, err, ErrParse)
}

func TestParse_RejectsNullableEnumField(t *testing.T) {
	src := `
enum Color { RED }
struct A {
    fill?: Color
}
`
	_, err := Parse(src)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParse_TextFieldCannotBeList(t *testing.T) {
	_, err := Parse("struct A {\n  v: text[]\n}\n")
	assert.ErrorIs(t, err, ErrParse)
}

func TestParse_ListOfEnumsField(t *testing.T) {
	src := `
enum Color { RED, GREEN, BLUE }
struct Palette {
    colors: Color[]
}
`
	s, err := Parse(src)
	require.NoError(t, err)

	palette := s.FindStruct("Palette")
	require.NotNil(t, palette)
	require.Len(t, palette.Children, 1)
	assert.Equal(t, schema.ChildScalarList, palette.Children[0].Tag)
	assert.Equal(t, schema.ScalarEnum, palette.Children[0].Type.ScalarList.Tag)
}

func TestParse_SkipsComments(t *testing.T) {
	src := `
# a comment
struct A {
    v: int32 # trailing comment
}
`
	s, err := Parse(src)
	require.NoError(t, err)
	assert.NotNil(t, s.FindStruct("A"))
}

func TestParse_EmptySourceYieldsEmptySchema(t *testing.T) {
	s, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, s.Structs)
	assert.Empty(t, s.Enums)
}
