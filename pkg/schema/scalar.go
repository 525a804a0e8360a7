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

// ScalarTag identifies the representation of a ScalarField.
type ScalarTag uint8

// The twelve scalar tags supported by a Haris schema. The exact order here
// has no bearing on layout; layout order is governed separately by
// ScalarsBySize.
const (
	ScalarUint8 ScalarTag = iota
	ScalarInt8
	ScalarUint16
	ScalarInt16
	ScalarUint32
	ScalarInt32
	ScalarUint64
	ScalarInt64
	ScalarFloat32
	ScalarFloat64
	ScalarBool
	ScalarEnum
)

// ScalarsBySize lists every scalar tag in the descending-size tie-break
// order mandated by the wire contract: within a struct's encoded body,
// scalars are laid out widest-first, and among equal widths in this exact
// order. This ordering governs both field offsets and the order scalar
// declarations appear in generated struct layouts.
var ScalarsBySize = []ScalarTag{
	ScalarUint64, ScalarInt64, ScalarFloat64,
	ScalarUint32, ScalarInt32, ScalarFloat32,
	ScalarUint16, ScalarInt16,
	ScalarBool, ScalarEnum,
	ScalarUint8, ScalarInt8,
}

// scalarSizes gives the encoded width, in bytes, of each scalar tag.
var scalarSizes = map[ScalarTag]int{
	ScalarUint8: 1, ScalarInt8: 1,
	ScalarUint16: 2, ScalarInt16: 2,
	ScalarUint32: 4, ScalarInt32: 4,
	ScalarUint64: 8, ScalarInt64: 8,
	ScalarFloat32: 4, ScalarFloat64: 8,
	ScalarBool: 1, ScalarEnum: 1,
}

// scalarTypeNames gives the exact C type name emitted for each scalar tag.
// This table, together with scalarSizes, is the single source of truth
// shared by finalization (offset arithmetic) and by the header emitter
// (declaration text) -- it must never be duplicated elsewhere.
var scalarTypeNames = map[ScalarTag]string{
	ScalarUint8:   "haris_uint8_t",
	ScalarInt8:    "haris_int8_t",
	ScalarUint16:  "haris_uint16_t",
	ScalarInt16:   "haris_int16_t",
	ScalarUint32:  "haris_uint32_t",
	ScalarInt32:   "haris_int32_t",
	ScalarUint64:  "haris_uint64_t",
	ScalarInt64:   "haris_int64_t",
	ScalarFloat32: "haris_float32",
	ScalarFloat64: "haris_float64",
	ScalarBool:    "unsigned char",
	ScalarEnum:    "haris_uint8_t",
}

// SizeOf returns the encoded width, in bytes, of a scalar tag. Panics on an
// unrecognised tag: ScalarTag is a closed enum owned entirely by this
// package, so an unhandled value can only mean a missing case was added
// here, not malformed external input.
func SizeOf(tag ScalarTag) int {
	sz, ok := scalarSizes[tag]
	if !ok {
		panic("schema: unhandled ScalarTag in SizeOf")
	}

	return sz
}

// TypeName returns the C type name used to declare a scalar of the given
// tag in a generated struct.
func TypeName(tag ScalarTag) string {
	name, ok := scalarTypeNames[tag]
	if !ok {
		panic("schema: unhandled ScalarTag in TypeName")
	}

	return name
}

// ScalarType fully describes a scalar: its tag and, for ScalarEnum, the
// enum it draws values from.
type ScalarType struct {
	Tag  ScalarTag
	Enum *ParsedEnum
}

// ScalarField is a fixed-width primitive field of a ParsedStruct. Offset is
// computed by FinalizeSchema and is meaningless beforehand.
type ScalarField struct {
	Name   string
	Type   ScalarType
	Offset int
}

// Wire constants from the Haris protocol, reproduced verbatim. These are
// read by the header emitter rather than re-declared there, so there is
// exactly one source of truth for each.
const (
	// DepthLimit bounds the nesting depth of a decoded message.
	DepthLimit = 64
	// MessageSizeLimit bounds the encoded size, in bytes, of any message.
	MessageSizeLimit = 1_000_000_000
	// DeallocFactor governs when a shrinking list reallocates its backing
	// storage rather than merely adjusting its length.
	DeallocFactor = 0.6
	// Float32Sigbits is the number of significand bits in the wire
	// encoding of a 32-bit float.
	Float32Sigbits = 23
	// Float32Bias is the exponent bias of a wire-encoded 32-bit float.
	Float32Bias = 127
	// Float64Sigbits is the number of significand bits in the wire
	// encoding of a 64-bit float.
	Float64Sigbits = 52
	// Float64Bias is the exponent bias of a wire-encoded 64-bit float.
	Float64Bias = 1023
)
