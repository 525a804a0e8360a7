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

// EmitFdProtocol produces the raw file-descriptor transport: the same
// three contributions as the file transport (a HarisFdStream state record
// in the header, private adapters conforming to the stream callback
// signatures, generic workers plus public entry points), substituting
// read(2)/write(2) for fread/fwrite. A raw descriptor has no stdio
// buffering, so the adapters loop on short reads and writes themselves.
func EmitFdProtocol(ctx *emit.Context, s *schema.ParsedSchema, prefix string) error {
	log.Debug("generate: emitting fd protocol")
	ctx.Headerf("#include <unistd.h>\n\n")
	emitFdStructures(ctx)
	emitStaticFdFuncs(ctx)

	for _, strct := range s.Structs {
		emitPublicFdFuncs(ctx, prefix, strct)
	}

	return nil
}

func emitFdStructures(ctx *emit.Context) {
	ctx.Headerf("typedef struct {\n" +
		"  int fd;\n" +
		"  haris_uint32_t curr;\n" +
		"  unsigned char buffer[256];\n" +
		"} HarisFdStream;\n\n")
}

func emitStaticFdFuncs(ctx *emit.Context) {
	ctx.PrivateFuncf(
		"static HarisStatus read_from_fd_stream(void *_stream,\n" +
			"                                       haris_uint32_t count,\n" +
			"                                       const unsigned char **dest)\n" +
			"{\n" +
			"  HarisFdStream *stream = (HarisFdStream*)_stream;\n" +
			"  haris_uint32_t total = 0;\n" +
			"  HARIS_ASSERT(count + stream->curr <= HARIS_MESSAGE_SIZE_LIMIT, SIZE);\n" +
			"  HARIS_ASSERT(count <= 256, SIZE);\n" +
			"  while (total < count) {\n" +
			"    ssize_t got = read(stream->fd, stream->buffer + total, count - total);\n" +
			"    HARIS_ASSERT(got > 0, INPUT);\n" +
			"    total += (haris_uint32_t)got;\n" +
			"  }\n" +
			"  *dest = stream->buffer;\n" +
			"  stream->curr += count;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")

	ctx.PrivateFuncf(
		"static HarisStatus write_to_fd_stream(void *_stream,\n" +
			"                                      const unsigned char *src,\n" +
			"                                      haris_uint32_t count)\n" +
			"{\n" +
			"  HarisFdStream *stream = (HarisFdStream*)_stream;\n" +
			"  haris_uint32_t total = 0;\n" +
			"  while (total < count) {\n" +
			"    ssize_t put = write(stream->fd, src + total, count - total);\n" +
			"    HARIS_ASSERT(put >= 0, INPUT);\n" +
			"    total += (haris_uint32_t)put;\n" +
			"  }\n" +
			"  stream->curr += count;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")

	ctx.PrivateFuncf(
		"static HarisStatus _public_to_fd(void *ptr,\n" +
			"                                 const HarisStructureInfo *info,\n" +
			"                                 int fd,\n" +
			"                                 haris_uint32_t *out_sz)\n" +
			"{\n" +
			"  HarisStatus result;\n" +
			"  HarisFdStream fd_stream;\n" +
			"  haris_uint32_t encoded_size = haris_lib_size(ptr, info, 0, &result);\n" +
			"  if (encoded_size == 0) return result;\n" +
			"  HARIS_ASSERT(encoded_size <= HARIS_MESSAGE_SIZE_LIMIT, SIZE);\n" +
			"  fd_stream.fd = fd;\n" +
			"  fd_stream.curr = 0;\n" +
			"  if ((result = _haris_to_stream(ptr, info, &fd_stream,\n" +
			"                                 write_to_fd_stream)) != HARIS_SUCCESS)\n" +
			"    return result;\n" +
			"  if (out_sz) *out_sz = fd_stream.curr;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")

	ctx.PrivateFuncf(
		"static HarisStatus _public_from_fd(void *ptr,\n" +
			"                                   const HarisStructureInfo *info,\n" +
			"                                   int fd,\n" +
			"                                   haris_uint32_t *out_sz)\n" +
			"{\n" +
			"  HarisStatus result;\n" +
			"  HarisFdStream fd_stream;\n" +
			"  fd_stream.fd = fd;\n" +
			"  fd_stream.curr = 0;\n" +
			"  if ((result = _haris_from_stream(ptr, info, &fd_stream,\n" +
			"                                   read_from_fd_stream, 0)) != HARIS_SUCCESS)\n" +
			"    return result;\n" +
			"  if (out_sz) *out_sz = fd_stream.curr;\n" +
			"  return HARIS_SUCCESS;\n" +
			"}\n\n")
}

func emitPublicFdFuncs(ctx *emit.Context, prefix string, strct *schema.ParsedStruct) {
	typeName := structTypeName(prefix, strct.Name)

	ctx.PublicFuncf(
		"HarisStatus %s(%s *strct, int fd,\n"+
			"                        haris_uint32_t *out_sz)\n"+
			"{\n"+
			"  return _public_to_fd(strct, &haris_lib_structures[%d],\n"+
			"                       fd, out_sz);\n}\n\n",
		protocolEntryPoint(prefix, strct.Name, "to", "fd"), typeName, strct.SchemaIndex)

	ctx.PublicFuncf(
		"HarisStatus %s(%s *strct, int fd,\n"+
			"                          haris_uint32_t *out_sz)\n"+
			"{\n"+
			"  return _public_from_fd(strct, &haris_lib_structures[%d],\n"+
			"                         fd, out_sz);\n}\n\n",
		protocolEntryPoint(prefix, strct.Name, "from", "fd"), typeName, strct.SchemaIndex)
}
