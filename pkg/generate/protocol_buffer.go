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

// EmitBufferProtocol produces the in-memory buffer transport. It follows
// the same three-part pattern as the file transport: a HarisBufferStream
// state record in the header, private stream adapters conforming to the
// HarisStreamReader/HarisStreamWriter callback signatures, generic
// _public_to_buffer/_public_from_buffer workers that dispatch into the
// core library, and one public entry-point pair per struct. Unlike the
// file stream there is no staging copy on reads: the adapter hands out a
// pointer directly into the caller's buffer.
func EmitBufferProtocol(ctx *emit.Context, s *schema.ParsedSchema, prefix string) error {
	log.Debug("generate: emitting buffer protocol")
	emitBufferStructures(ctx)
	emitStaticBufferFuncs(ctx)

	for _, strct := range s.Structs {
		emitPublicBufferFuncs(ctx, prefix, strct)
	}

	return nil
}

func emitBufferStructures(ctx *emit.Context) {
	ctx.Headerf("typedef struct {\n" +
		"  unsigned char *buf;\n" +
		"  haris_uint32_t curr;\n" +
		"  haris_uint32_t len;\n" +
		"} HarisBufferStream;\n\n")
}

func emitStaticBufferFuncs(ctx *emit.Context) {
	ctx.PrivateFuncf(
		"static HarisStatus read_from_buffer_stream(void *_stream,\n" +
			"                                           haris_uint32_t count,\n" +
			"                                           const unsigned char **dest)\n" +
			"{\n" +
			"  HarisBufferStream *stream = (HarisBufferStream*)_stream;\n" +
			"  HARIS_ASSERT(count + stream->curr <= HARIS_MESSAGE_SIZE_LIMIT, SIZE);\n" +
			"  HARIS_ASSERT(count + stream->curr <= stream->len, INPUT);\n" +
			"  *dest = stream->buf + stream->curr;\n" +
			"  stream->curr += count;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")

	ctx.PrivateFuncf(
		"static HarisStatus write_to_buffer_stream(void *_stream,\n" +
			"                                          const unsigned char *src,\n" +
			"                                          haris_uint32_t count)\n" +
			"{\n" +
			"  HarisBufferStream *stream = (HarisBufferStream*)_stream;\n" +
			"  HARIS_ASSERT(count + stream->curr <= stream->len, SIZE);\n" +
			"  memcpy(stream->buf + stream->curr, src, count);\n" +
			"  stream->curr += count;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")

	ctx.PrivateFuncf(
		"static HarisStatus _public_to_buffer(void *ptr,\n" +
			"                                     const HarisStructureInfo *info,\n" +
			"                                     unsigned char *buf,\n" +
			"                                     haris_uint32_t sz,\n" +
			"                                     haris_uint32_t *out_sz)\n" +
			"{\n" +
			"  HarisStatus result;\n" +
			"  HarisBufferStream buffer_stream;\n" +
			"  haris_uint32_t encoded_size = haris_lib_size(ptr, info, 0, &result);\n" +
			"  if (encoded_size == 0) return result;\n" +
			"  HARIS_ASSERT(encoded_size <= HARIS_MESSAGE_SIZE_LIMIT, SIZE);\n" +
			"  HARIS_ASSERT(encoded_size <= sz, SIZE);\n" +
			"  buffer_stream.buf = buf;\n" +
			"  buffer_stream.curr = 0;\n" +
			"  buffer_stream.len = sz;\n" +
			"  if ((result = _haris_to_stream(ptr, info, &buffer_stream,\n" +
			"                                 write_to_buffer_stream)) != HARIS_SUCCESS)\n" +
			"    return result;\n" +
			"  if (out_sz) *out_sz = buffer_stream.curr;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")

	ctx.PrivateFuncf(
		"static HarisStatus _public_from_buffer(void *ptr,\n" +
			"                                       const HarisStructureInfo *info,\n" +
			"                                       unsigned char *buf,\n" +
			"                                       haris_uint32_t sz,\n" +
			"                                       haris_uint32_t *out_sz)\n" +
			"{\n" +
			"  HarisStatus result;\n" +
			"  HarisBufferStream buffer_stream;\n" +
			"  buffer_stream.buf = buf;\n" +
			"  buffer_stream.curr = 0;\n" +
			"  buffer_stream.len = sz;\n" +
			"  if ((result = _haris_from_stream(ptr, info, &buffer_stream,\n" +
			"                                   read_from_buffer_stream, 0)) != HARIS_SUCCESS)\n" +
			"    return result;\n" +
			"  if (out_sz) *out_sz = buffer_stream.curr;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")
}

func emitPublicBufferFuncs(ctx *emit.Context, prefix string, strct *schema.ParsedStruct) {
	typeName := structTypeName(prefix, strct.Name)

	ctx.PublicFuncf(
		"HarisStatus %s(%s *strct, unsigned char *buf,\n"+
			"                            haris_uint32_t sz, haris_uint32_t *out_sz)\n"+
			"{\n"+
			"  return _public_to_buffer(strct, &haris_lib_structures[%d],\n"+
			"                           buf, sz, out_sz);\n}\n\n",
		protocolEntryPoint(prefix, strct.Name, "to", "buffer"), typeName, strct.SchemaIndex)

	ctx.PublicFuncf(
		"HarisStatus %s(%s *strct, unsigned char *buf,\n"+
			"                              haris_uint32_t sz, haris_uint32_t *out_sz)\n"+
			"{\n"+
			"  return _public_from_buffer(strct, &haris_lib_structures[%d],\n"+
			"                             buf, sz, out_sz);\n}\n\n",
		protocolEntryPoint(prefix, strct.Name, "from", "buffer"), typeName, strct.SchemaIndex)
}
