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

// Package schema holds the in-memory representation of a Haris message
// schema: structs, enums and their fields, together with the one-shot
// finalization pass that assigns offsets and computes size/embeddability
// metadata.
//
// Structs reference other structs by SchemaIndex, never by an owning
// pointer cycle, so that recursive and mutually-referencing schemas can be
// represented without a graph of pointers that a garbage collector would
// have to reason about cyclically. A non-owning *ParsedStruct pointer is
// still used inside a single ChildField for convenience; every struct is
// allocated on its own, so its address does not change when further
// structs are appended to a ParsedSchema.
package schema
