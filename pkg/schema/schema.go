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

// ParsedSchema is the root container of a Haris schema: an ordered
// sequence of structs and an ordered sequence of enums. It exclusively
// owns every struct, enum and field transitively reachable from it.
type ParsedSchema struct {
	Structs []*ParsedStruct
	Enums   []*ParsedEnum

	finalized bool
}

// NewParsedSchema constructs an empty schema, ready for builder calls.
func NewParsedSchema() *ParsedSchema {
	return &ParsedSchema{}
}

// Finalized reports whether FinalizeSchema has already run against s.
func (s *ParsedSchema) Finalized() bool {
	return s.finalized
}

// NewStruct appends a new, empty struct named name to s and returns it.
// The returned pointer remains valid for the lifetime of s: each
// *ParsedStruct is allocated on its own, so reallocation of Structs'
// backing array by later appends never moves it.
func (s *ParsedSchema) NewStruct(name string) (*ParsedStruct, error) {
	if s.finalized {
		return nil, ErrSchemaFinalized
	}

	strct := &ParsedStruct{Name: name}
	s.Structs = append(s.Structs, strct)

	return strct, nil
}

// NewEnum appends a new, empty enum named name to s and returns it.
func (s *ParsedSchema) NewEnum(name string) (*ParsedEnum, error) {
	if s.finalized {
		return nil, ErrSchemaFinalized
	}

	enm := &ParsedEnum{Name: name}
	s.Enums = append(s.Enums, enm)

	return enm, nil
}

// StructNameCollide reports whether name is already used by a struct or
// enum declared directly in s. The model does not call this itself;
// callers (the parser) are expected to check before NewStruct/NewEnum.
func (s *ParsedSchema) StructNameCollide(name string) bool {
	for _, strct := range s.Structs {
		if strct.Name == name {
			return true
		}
	}

	for _, enm := range s.Enums {
		if enm.Name == name {
			return true
		}
	}

	return false
}

// FindStruct looks up a struct by name, returning nil if none exists.
func (s *ParsedSchema) FindStruct(name string) *ParsedStruct {
	for _, strct := range s.Structs {
		if strct.Name == name {
			return strct
		}
	}

	return nil
}

// FindEnum looks up an enum by name, returning nil if none exists.
func (s *ParsedSchema) FindEnum(name string) *ParsedEnum {
	for _, enm := range s.Enums {
		if enm.Name == name {
			return enm
		}
	}

	return nil
}
