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

// ParsedEnum is a named, ordered set of unique value names. Values are
// numbered 0..N-1 by position; that numbering appears verbatim in
// generated symbol definitions, so reordering Values after the fact
// changes the wire contract.
type ParsedEnum struct {
	Name   string
	Values []string
}

// EnumNameCollide reports whether name already appears among e's values.
// The model does not call this itself; callers (the parser) are expected
// to check before AddEnumeratedValue.
func (e *ParsedEnum) EnumNameCollide(name string) bool {
	for _, v := range e.Values {
		if v == name {
			return true
		}
	}

	return false
}

// AddEnumeratedValue appends a new value to e, at the next position.
func (e *ParsedEnum) AddEnumeratedValue(name string) {
	e.Values = append(e.Values, name)
}

// IndexOf returns the position of name within e's values, and whether it
// was found at all.
func (e *ParsedEnum) IndexOf(name string) (int, bool) {
	for i, v := range e.Values {
		if v == name {
			return i, true
		}
	}

	return 0, false
}
