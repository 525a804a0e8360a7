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
	log "github.com/sirupsen/logrus"

	"github.com/theseoafs/harisc/pkg/emit"
	"github.com/theseoafs/harisc/pkg/schema"
)

// scalarsBySizeForLayout mirrors schema.ScalarsBySize so the emission
// order used by the header emitter reads as a self-contained constant at
// the call site.
var scalarsBySizeForLayout = schema.ScalarsBySize

// EmitHeader produces the declarations-file content, appending to
// ctx.HeaderTop: boilerplate typedefs, limits and macros, per-field
// accessor macros, enum value macros, the reflective type declarations,
// and one generated record layout per struct.
func EmitHeader(ctx *emit.Context, s *schema.ParsedSchema, prefix string) error {
	log.Debug("generate: emitting header boilerplate")
	emitBoilerplate(ctx)

	log.Debug("generate: emitting header limits and macros")
	emitLimitsAndMacros(ctx)

	for _, strct := range s.Structs {
		for i := range strct.Children {
			emitFieldMacros(ctx, prefix, strct.Name, &strct.Children[i])
		}
	}

	for _, enm := range s.Enums {
		emitEnumMacros(ctx, prefix, enm)
	}

	log.Debug("generate: emitting reflective type declarations")
	emitReflectiveTypes(ctx)

	for _, strct := range s.Structs {
		emitStructLayout(ctx, prefix, strct)
	}

	return nil
}

func emitBoilerplate(ctx *emit.Context) {
	ctx.Headerf("#include <stdio.h>\n#include <stdlib.h>\n#include <stddef.h>\n#include <string.h>\n\n")
	ctx.Headerf("#include <stdint.h>\n\n" +
		"typedef uint_fast8_t    haris_uint8_t;\n" +
		"typedef int_fast8_t     haris_int8_t;\n" +
		"typedef uint_fast16_t   haris_uint16_t;\n" +
		"typedef int_fast16_t    haris_int16_t;\n" +
		"typedef uint_fast32_t   haris_uint32_t;\n" +
		"typedef int_fast32_t    haris_int32_t;\n" +
		"typedef uint_fast64_t   haris_uint64_t;\n" +
		"typedef int_fast64_t    haris_int64_t;\n\n" +
		"typedef float           haris_float32;\n" +
		"typedef double          haris_float64;\n\n" +
		"typedef enum {\n" +
		"  HARIS_SUCCESS, HARIS_STRUCTURE_ERROR, HARIS_DEPTH_ERROR, HARIS_SIZE_ERROR,\n" +
		"  HARIS_INPUT_ERROR, HARIS_MEM_ERROR\n" +
		"} HarisStatus;\n\n" +
		"typedef HarisStatus (*HarisStreamReader)(void *, haris_uint32_t,\n" +
		"                                         const unsigned char **);\n\n" +
		"typedef HarisStatus (*HarisStreamWriter)(void *, const unsigned char *,\n" +
		"                                         haris_uint32_t);\n\n")
}

func emitLimitsAndMacros(ctx *emit.Context) {
	ctx.Headerf("#define HARIS_DEPTH_LIMIT %d\n#define HARIS_MESSAGE_SIZE_LIMIT %d\n\n",
		schema.DepthLimit, schema.MessageSizeLimit)
	ctx.Headerf("#define HARIS_FLOAT32_SIGBITS %d\n#define HARIS_FLOAT32_BIAS    %d\n"+
		"#define HARIS_FLOAT64_SIGBITS %d\n#define HARIS_FLOAT64_BIAS    %d\n\n",
		schema.Float32Sigbits, schema.Float32Bias, schema.Float64Sigbits, schema.Float64Bias)
	ctx.Headerf("#define HARIS_DEALLOC_FACTOR %g\n\n", schema.DeallocFactor)
	ctx.Headerf("#define HARIS_MALLOC(n) malloc(n)\n#define HARIS_REALLOC(p, n) realloc((p), (n))\n" +
		"#define HARIS_FREE(p) free(p)\n\n")
	ctx.Headerf("#define HARIS_ASSERT(cond, err) if (!(cond)) return HARIS_ ## err ## _ERROR\n\n")
}

// emitFieldMacros emits the accessor macro set for one child field:
// null/nullify for nullable children, len for text and lists, and get
// for every child.
func emitFieldMacros(ctx *emit.Context, prefix, structName string, child *schema.ChildField) {
	if child.Nullable {
		ctx.Headerf("#define %s(X) ((int)((X)->_%s_info.null))\n",
			nullMacro(prefix, structName, child.Name), child.Name)
		ctx.Headerf("#define %s(X) ((X)->_%s_info.null = 1)\n",
			nullifyMacro(prefix, structName, child.Name), child.Name)
	}

	if child.Tag != schema.ChildStruct {
		ctx.Headerf("#define %s(X) ((haris_uint32_t)((X)->_%s_info.len))\n",
			lenMacro(prefix, structName, child.Name), child.Name)
	}

	ctx.Headerf("#define %s(X) ((%s)((X)->_%s_info.ptr))\n\n",
		getMacro(prefix, structName, child.Name), pointerTypeName(prefix, child), child.Name)
}

func emitEnumMacros(ctx *emit.Context, prefix string, enm *schema.ParsedEnum) {
	ctx.Headerf("/* enum %s */\n", enm.Name)

	for i, value := range enm.Values {
		ctx.Headerf("#define %s %d\n", enumValueMacro(prefix, enm.Name, value), i)
	}

	ctx.Headerf("\n")
}

func emitReflectiveTypes(ctx *emit.Context) {
	ctx.Headerf("typedef enum {\n" +
		"  HARIS_SCALAR_UINT8, HARIS_SCALAR_INT8, HARIS_SCALAR_UINT16,\n" +
		"  HARIS_SCALAR_INT16, HARIS_SCALAR_UINT32, HARIS_SCALAR_INT32,\n" +
		"  HARIS_SCALAR_UINT64, HARIS_SCALAR_INT64, HARIS_SCALAR_FLOAT32,\n" +
		"  HARIS_SCALAR_FLOAT64, HARIS_SCALAR_BOOL, HARIS_SCALAR_ENUM\n" +
		"} HarisScalarType;\n\n")
	ctx.Headerf("typedef enum {\n" +
		"  HARIS_CHILD_TEXT, HARIS_CHILD_STRUCT, HARIS_CHILD_SCALAR_LIST,\n" +
		"  HARIS_CHILD_STRUCT_LIST\n" +
		"} HarisChildType;\n\n")
	ctx.Headerf("typedef struct {\n" +
		"  void *         ptr;\n" +
		"  haris_uint32_t len;\n" +
		"  haris_uint32_t alloc;\n" +
		"  char           null;\n" +
		"} HarisListInfo;\n\n")
	ctx.Headerf("typedef struct {\n  void *ptr;\n  char null;\n} HarisSubstructInfo;\n\n")
	ctx.Headerf("typedef struct HarisStructureInfo_ HarisStructureInfo;\n\n")
	ctx.Headerf("typedef struct {\n  size_t offset;\n  HarisScalarType type;\n} HarisScalar;\n\n")
	ctx.Headerf("typedef struct {\n" +
		"  size_t offset;\n" +
		"  int nullable;\n" +
		"  HarisScalarType scalar_element;\n" +
		"  const HarisStructureInfo *struct_element;\n" +
		"  HarisChildType child_type;\n" +
		"} HarisChild;\n\n")
	ctx.Headerf("struct HarisStructureInfo_ {\n" +
		"  int num_scalars;\n" +
		"  const HarisScalar *scalars;\n" +
		"  int num_children;\n" +
		"  const HarisChild *children;\n" +
		"  int body_size;\n" +
		"  size_t size_of;\n" +
		"};\n\n")
}

// emitStructLayout emits one struct's generated C record: one
// HarisListInfo/HarisSubstructInfo field per child named "_<child>_info",
// then scalars in descending-size order.
func emitStructLayout(ctx *emit.Context, prefix string, strct *schema.ParsedStruct) {
	ctx.Headerf("typedef struct {\n")

	for i := range strct.Children {
		emitChildField(ctx, &strct.Children[i])
	}

	for _, tag := range scalarsBySizeForLayout {
		for _, field := range strct.Scalars {
			if field.Type.Tag != tag {
				continue
			}

			ctx.Headerf("  %s %s;\n", schema.TypeName(field.Type.Tag), field.Name)
		}
	}

	ctx.Headerf("} %s;\n\n", structTypeName(prefix, strct.Name))
}

func emitChildField(ctx *emit.Context, child *schema.ChildField) {
	switch child.Tag {
	case schema.ChildText, schema.ChildScalarList, schema.ChildStructList:
		ctx.Headerf("  HarisListInfo _%s_info;\n", child.Name)
	case schema.ChildStruct:
		ctx.Headerf("  HarisSubstructInfo _%s_info;\n", child.Name)
	default:
		panic("generate: unhandled ChildTag in emitChildField")
	}
}
