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

// EmitFileProtocol produces the FILE* transport: the HarisFileStream state
// record in the header, private stream adapters conforming to the
// HarisStreamReader/HarisStreamWriter callback signatures, generic
// _public_to_file/_public_from_file workers that dispatch into the core
// library, and one public entry-point pair per struct.
func EmitFileProtocol(ctx *emit.Context, s *schema.ParsedSchema, prefix string) error {
	log.Debug("generate: emitting file protocol")
	emitFileStructures(ctx)
	emitStaticFileFuncs(ctx)

	for _, strct := range s.Structs {
		emitPublicFileFuncs(ctx, prefix, strct)
	}

	return nil
}

func emitFileStructures(ctx *emit.Context) {
	ctx.Headerf("typedef struct {\n" +
		"  FILE *file;\n" +
		"  haris_uint32_t curr;\n" +
		"  unsigned char buffer[256];\n" +
		"} HarisFileStream;\n\n")
}

func emitStaticFileFuncs(ctx *emit.Context) {
	ctx.PrivateFuncf(
		"static HarisStatus read_from_file_stream(void *_stream,\n" +
			"                                         haris_uint32_t count,\n" +
			"                                         const unsigned char **dest)\n" +
			"{\n" +
			"  HarisFileStream *stream = (HarisFileStream*)_stream;\n" +
			"  HARIS_ASSERT(count + stream->curr <= HARIS_MESSAGE_SIZE_LIMIT, SIZE);\n" +
			"  HARIS_ASSERT(count <= 256, SIZE);\n" +
			"  HARIS_ASSERT(fread(stream->buffer, 1, count, stream->file) == count,\n" +
			"               INPUT);\n" +
			"  *dest = stream->buffer;\n" +
			"  stream->curr += count;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")

	ctx.PrivateFuncf(
		"static HarisStatus write_to_file_stream(void *_stream,\n" +
			"                                        const unsigned char *src,\n" +
			"                                        haris_uint32_t count)\n" +
			"{\n" +
			"  HarisFileStream *stream = (HarisFileStream*)_stream;\n" +
			"  HARIS_ASSERT(fwrite(src, 1, count, stream->file) == count, INPUT);\n" +
			"  stream->curr += count;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")

	ctx.PrivateFuncf(
		"static HarisStatus _public_to_file(void *ptr,\n" +
			"                                   const HarisStructureInfo *info,\n" +
			"                                   FILE *f,\n" +
			"                                   haris_uint32_t *out_sz)\n" +
			"{\n" +
			"  HarisStatus result;\n" +
			"  HarisFileStream file_stream;\n" +
			"  haris_uint32_t encoded_size = haris_lib_size(ptr, info, 0, &result);\n" +
			"  if (encoded_size == 0) return result;\n" +
			"  HARIS_ASSERT(encoded_size <= HARIS_MESSAGE_SIZE_LIMIT, SIZE);\n" +
			"  file_stream.file = f;\n" +
			"  file_stream.curr = 0;\n" +
			"  if ((result = _haris_to_stream(ptr, info, &file_stream,\n" +
			"                                 write_to_file_stream)) != HARIS_SUCCESS)\n" +
			"    return result;\n" +
			"  if (out_sz) *out_sz = file_stream.curr;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")

	ctx.PrivateFuncf(
		"static HarisStatus _public_from_file(void *ptr,\n" +
			"                                     const HarisStructureInfo *info,\n" +
			"                                     FILE *f,\n" +
			"                                     haris_uint32_t *out_sz)\n" +
			"{\n" +
			"  HarisStatus result;\n" +
			"  HarisFileStream file_stream;\n" +
			"  file_stream.file = f;\n" +
			"  file_stream.curr = 0;\n" +
			"  if ((result = _haris_from_stream(ptr, info, &file_stream,\n" +
			"                                   read_from_file_stream, 0)) != HARIS_SUCCESS)\n" +
			"    return result;\n" +
			"  if (out_sz) *out_sz = file_stream.curr;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")
}

func emitPublicFileFuncs(ctx *emit.Context, prefix string, strct *schema.ParsedStruct) {
	typeName := structTypeName(prefix, strct.Name)

	ctx.PublicFuncf(
		"HarisStatus %s(%s *strct, FILE *f,\n"+
			"                          haris_uint32_t *out_sz)\n"+
			"{\n"+
			"  return _public_to_file(strct, &haris_lib_structures[%d],\n"+
			"                         f, out_sz);\n}\n\n",
		protocolEntryPoint(prefix, strct.Name, "to", "file"), typeName, strct.SchemaIndex)

	ctx.PublicFuncf(
		"HarisStatus %s(%s *strct, FILE *f,\n"+
			"                            haris_uint32_t *out_sz)\n"+
			"{\n"+
			"  return _public_from_file(strct, &haris_lib_structures[%d],\n"+
			"                           f, out_sz);\n}\n\n",
		protocolEntryPoint(prefix, strct.Name, "from", "file"), typeName, strct.SchemaIndex)
}
