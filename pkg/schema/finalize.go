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

// structHeaderBytes is the per-struct wire overhead (beyond the body and
// presence bytes) that a nested struct contributes to its parent's
// maximum encoded size. The runtime library's exact wire layout is not
// this package's concern; this constant exists purely to give MaxSize a
// deterministic, always-finite-when-bounded value.
const structHeaderBytes = 4

// FinalizeSchema runs the one-shot analysis pass described by the schema:
// it assigns SchemaIndex, computes scalar offsets and body sizes, detects
// recursive struct cycles, and computes MaxSize/Embeddable for every
// struct and child field. It must be called exactly once; a schema that
// has already been finalized returns ErrSchemaFinalized.
func FinalizeSchema(s *ParsedSchema) error {
	if s.finalized {
		return ErrSchemaFinalized
	}

	assignSchemaIndices(s)

	for _, strct := range s.Structs {
		computeScalarOffsets(strct)
		computeBodySize(strct)
	}

	recursive := detectRecursiveStructs(s)
	computeMaxSizes(s, recursive)
	computeEmbeddable(s)

	s.finalized = true

	for _, strct := range s.Structs {
		strct.finalized = true
	}

	return nil
}

// assignSchemaIndices implements step 1: schema_index equals position.
func assignSchemaIndices(s *ParsedSchema) {
	for i, strct := range s.Structs {
		strct.SchemaIndex = i
	}
}

// computeScalarOffsets implements step 2: scalars are laid out in
// descending-size order with the fixed tie-break given by ScalarsBySize.
// Offsets begin at 0 and increase by sizeof(scalar) per field.
func computeScalarOffsets(strct *ParsedStruct) {
	offset := 0

	for _, tag := range ScalarsBySize {
		for i := range strct.Scalars {
			field := &strct.Scalars[i]
			if field.Type.Tag != tag {
				continue
			}

			field.Offset = offset
			offset += SizeOf(tag)
		}
	}
}

// computeBodySize implements step 3: sum of scalar sizes plus one
// presence byte per child.
func computeBodySize(strct *ParsedStruct) {
	size := 0

	for _, field := range strct.Scalars {
		size += SizeOf(field.Type.Tag)
	}

	size += len(strct.Children)
	strct.Meta.BodySize = size
}

// detectRecursiveStructs finds every struct that can reach itself via one
// or more ChildStruct edges (struct-list edges never embed, so they play
// no part in this cycle check). Detection uses a visitation stack rather
// than a global "seen" set, so that a struct
// visited along two different non-cyclic paths is not mistakenly flagged.
func detectRecursiveStructs(s *ParsedSchema) map[int]bool {
	recursive := make(map[int]bool)

	for _, root := range s.Structs {
		stack := map[int]bool{root.SchemaIndex: true}
		if reachesIndex(root, root.SchemaIndex, stack) {
			recursive[root.SchemaIndex] = true
		}
	}

	return recursive
}

// reachesIndex reports whether target is reachable from strct by
// following one or more ChildStruct edges.
func reachesIndex(strct *ParsedStruct, target int, stack map[int]bool) bool {
	for _, child := range strct.Children {
		if child.Tag != ChildStruct {
			continue
		}

		next := child.Type.Struct

		if next.SchemaIndex == target {
			return true
		}

		if stack[next.SchemaIndex] {
			continue
		}

		stack[next.SchemaIndex] = true

		if reachesIndex(next, target, stack) {
			return true
		}

		delete(stack, next.SchemaIndex)
	}

	return false
}

// computeMaxSizes implements step 5 by fixed-point iteration: a struct's
// MaxSize is 0 (unbounded) if it is recursive, or has any text/list child,
// or has a ChildStruct child whose own MaxSize is (still) 0; otherwise it
// is BodySize plus structHeaderBytes per ChildStruct child plus the sum of
// those children's MaxSize. Iteration proceeds until no struct's MaxSize
// changes, which terminates because MaxSize only ever moves from unknown
// towards a fixed finite value or towards the absorbing 0.
func computeMaxSizes(s *ParsedSchema, recursive map[int]bool) {
	const unknown = -1

	sizes := make([]int, len(s.Structs))
	for i := range sizes {
		sizes[i] = unknown
	}

	for {
		changed := false

		for _, strct := range s.Structs {
			idx := strct.SchemaIndex
			if sizes[idx] == 0 {
				continue // already settled at the absorbing unbounded value
			}

			size, resolved := tryComputeMaxSize(strct, sizes, recursive, unknown)
			if !resolved {
				continue
			}

			if sizes[idx] != size {
				sizes[idx] = size
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	// Any struct whose value never resolved (all remaining cases are
	// mutually-dependent non-recursive cycles, which cannot actually
	// occur since detectRecursiveStructs already covers every cycle)
	// defaults to unbounded defensively.
	for _, strct := range s.Structs {
		idx := strct.SchemaIndex
		if sizes[idx] == unknown {
			sizes[idx] = 0
		}

		strct.Meta.MaxSize = sizes[idx]
	}
}

// tryComputeMaxSize attempts to resolve strct's MaxSize given the current
// (possibly partial) sizes table. It returns resolved=false only when a
// ChildStruct dependency has not yet settled.
func tryComputeMaxSize(strct *ParsedStruct, sizes []int, recursive map[int]bool, unknown int) (int, bool) {
	if recursive[strct.SchemaIndex] {
		return 0, true
	}

	total := strct.Meta.BodySize

	for _, child := range strct.Children {
		switch child.Tag {
		case ChildText, ChildScalarList, ChildStructList:
			return 0, true
		case ChildStruct:
			childSize := sizes[child.Type.Struct.SchemaIndex]
			if childSize == unknown {
				return 0, false
			}

			if childSize == 0 {
				return 0, true
			}

			total += structHeaderBytes + childSize
		}
	}

	return total, true
}

// computeEmbeddable implements step 4 in terms of the already-resolved
// MaxSize values: a ChildStruct field referencing C is embeddable iff C
// has a finite MaxSize and C's own ChildStruct closure does not reach back
// to the owning struct.
func computeEmbeddable(s *ParsedSchema) {
	for _, strct := range s.Structs {
		for i := range strct.Children {
			child := &strct.Children[i]
			if child.Tag != ChildStruct {
				continue
			}

			target := child.Type.Struct
			if target.Meta.MaxSize == 0 {
				child.Embeddable = false
				continue
			}

			stack := map[int]bool{target.SchemaIndex: true}
			child.Embeddable = !reachesIndex(target, strct.SchemaIndex, stack)
		}
	}
}
