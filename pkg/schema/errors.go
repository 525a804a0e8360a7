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

import "errors"

// ErrSchemaFinalized is returned by any builder operation invoked after
// FinalizeSchema has already run against the receiver. The schema is
// read-only from that point on; mutating it further is a program error.
var ErrSchemaFinalized = errors.New("schema: cannot modify a finalized schema")

// ErrNameCollision is the sentinel callers wrap when a collision
// predicate (StructNameCollide, EnumNameCollide) reports a name already
// taken. The model itself never checks for collisions on its own.
var ErrNameCollision = errors.New("schema: name collision")
