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

	log "github.com/sirupsen/logrus"

	"github.com/theseoafs/harisc/pkg/emit"
	"github.com/theseoafs/harisc/pkg/schema"
)

var scalarTagConstants = map[schema.ScalarTag]string{
	schema.ScalarUint8:   "HARIS_SCALAR_UINT8",
	schema.ScalarInt8:    "HARIS_SCALAR_INT8",
	schema.ScalarUint16:  "HARIS_SCALAR_UINT16",
	schema.ScalarInt16:   "HARIS_SCALAR_INT16",
	schema.ScalarUint32:  "HARIS_SCALAR_UINT32",
	schema.ScalarInt32:   "HARIS_SCALAR_INT32",
	schema.ScalarUint64:  "HARIS_SCALAR_UINT64",
	schema.ScalarInt64:   "HARIS_SCALAR_INT64",
	schema.ScalarFloat32: "HARIS_SCALAR_FLOAT32",
	schema.ScalarFloat64: "HARIS_SCALAR_FLOAT64",
	schema.ScalarBool:    "HARIS_SCALAR_BOOL",
	schema.ScalarEnum:    "HARIS_SCALAR_ENUM",
}

var childTagConstants = map[schema.ChildTag]string{
	schema.ChildText:       "HARIS_CHILD_TEXT",
	schema.ChildStruct:     "HARIS_CHILD_STRUCT",
	schema.ChildScalarList: "HARIS_CHILD_SCALAR_LIST",
	schema.ChildStructList: "HARIS_CHILD_STRUCT_LIST",
}

// registrationTable is the name of the generated HarisStructureInfo array,
// indexed by schema position. Every protocol entry point addresses its
// struct's descriptor as &haris_lib_structures[schema_index].
const registrationTable = "haris_lib_structures"

// EmitSourceTables produces the per-struct scalar/child descriptor arrays
// and the haris_lib_structures registration table that the generated
// runtime keys its reflection off of: one flat array of
// HarisStructureInfo descriptors indexed by schema position. It also
// declares the core-library routines the protocol workers dispatch into;
// their definitions live in the core runtime, not in generated code.
func EmitSourceTables(ctx *emit.Context, s *schema.ParsedSchema, prefix string) error {
	emitCoreLibDecls(ctx)

	// The child tables point back into the registration table, which is
	// defined after them; C needs the array declared first.
	ctx.Sourcef("extern const HarisStructureInfo %s[%d];\n\n", registrationTable, len(s.Structs))

	for _, strct := range s.Structs {
		log.WithField("struct", strct.Name).Debug("generate: emitting source tables")
		emitScalarTable(ctx, prefix, strct)
		emitChildTable(ctx, prefix, strct)
	}

	emitRegistrationTable(ctx, s, prefix)
	return nil
}

func emitCoreLibDecls(ctx *emit.Context) {
	ctx.Sourcef("haris_uint32_t haris_lib_size(void *, const HarisStructureInfo *,\n" +
		"                              int, HarisStatus *);\n" +
		"HarisStatus _haris_to_stream(void *, const HarisStructureInfo *,\n" +
		"                             void *, HarisStreamWriter);\n" +
		"HarisStatus _haris_from_stream(void *, const HarisStructureInfo *,\n" +
		"                               void *, HarisStreamReader, int);\n\n")
}

func emitScalarTable(ctx *emit.Context, prefix string, strct *schema.ParsedStruct) {
	if len(strct.Scalars) == 0 {
		ctx.Sourcef("static const HarisScalar *%s = NULL;\n\n", scalarTableName(strct.Name))
		return
	}

	ctx.Sourcef("static const HarisScalar %s[] = {\n", scalarTableName(strct.Name))

	for _, tag := range schema.ScalarsBySize {
		for _, field := range strct.Scalars {
			if field.Type.Tag != tag {
				continue
			}

			ctx.Sourcef("  { offsetof(%s, %s), %s },\n",
				structTypeName(prefix, strct.Name), field.Name, scalarTagConstants[tag])
		}
	}

	ctx.Sourcef("};\n\n")
}

func emitChildTable(ctx *emit.Context, prefix string, strct *schema.ParsedStruct) {
	if len(strct.Children) == 0 {
		ctx.Sourcef("static const HarisChild *%s = NULL;\n\n", childTableName(strct.Name))
		return
	}

	ctx.Sourcef("static const HarisChild %s[] = {\n", childTableName(strct.Name))

	for i := range strct.Children {
		child := &strct.Children[i]
		nullable := 0
		if child.Nullable {
			nullable = 1
		}

		scalarElement := "HARIS_SCALAR_UINT8"
		structElement := "NULL"

		switch child.Tag {
		case schema.ChildScalarList:
			scalarElement = scalarTagConstants[child.Type.ScalarList.Tag]
		case schema.ChildStruct, schema.ChildStructList:
			structElement = fmt.Sprintf("&%s[%d]", registrationTable, child.Type.Struct.SchemaIndex)
		}

		ctx.Sourcef("  { offsetof(%s, _%s_info), %d, %s, %s, %s },\n",
			structTypeName(prefix, strct.Name), child.Name, nullable,
			scalarElement, structElement, childTagConstants[child.Tag])
	}

	ctx.Sourcef("};\n\n")
}

func emitRegistrationTable(ctx *emit.Context, s *schema.ParsedSchema, prefix string) {
	ctx.Sourcef("const HarisStructureInfo %s[%d] = {\n", registrationTable, len(s.Structs))

	for _, strct := range s.Structs {
		ctx.Sourcef("  { %d, %s, %d, %s, %d, sizeof(%s) },\n",
			len(strct.Scalars), scalarTableName(strct.Name),
			len(strct.Children), childTableName(strct.Name),
			strct.Meta.BodySize, structTypeName(prefix, strct.Name))
	}

	ctx.Sourcef("};\n\n")
}

func scalarTableName(structName string) string {
	return fmt.Sprintf("%s_lib_scalars", structName)
}

func childTableName(structName string) string {
	return fmt.Sprintf("%s_lib_children", structName)
}
