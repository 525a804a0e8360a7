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

// StructMetadata holds the values FinalizeSchema computes for a
// ParsedStruct. BodySize and MaxSize are both only meaningful after
// finalization.
type StructMetadata struct {
	// BodySize is the size, in bytes, of the scalar region plus one
	// presence byte per child.
	BodySize int
	// MaxSize is the maximum encoded size, in bytes, of the struct,
	// including all bounded descendants. A value of 0 signals
	// "unbounded" (the struct transitively contains text or a list, or
	// is recursive through its struct children, nullable or not).
	MaxSize int
}

// ParsedStruct is a named record of scalar and child fields. SchemaIndex is
// assigned by FinalizeSchema and is stable thereafter; reflective metadata
// tables emitted by the source emitter are indexed by it.
type ParsedStruct struct {
	Name        string
	SchemaIndex int
	Scalars     []ScalarField
	Children    []ChildField
	Meta        StructMetadata

	finalized bool
}

// StructNameCollide reports whether name is already used by a scalar or
// child field of s. The model does not call this itself; callers (the
// parser) are expected to check before any Add*Field call.
func (s *ParsedStruct) StructNameCollide(name string) bool {
	for _, f := range s.Scalars {
		if f.Name == name {
			return true
		}
	}

	for _, f := range s.Children {
		if f.Name == name {
			return true
		}
	}

	return false
}

// AddScalarField appends a fixed-width scalar field to s.
func (s *ParsedStruct) AddScalarField(name string, tag ScalarTag) error {
	if s.finalized {
		return ErrSchemaFinalized
	}

	s.Scalars = append(s.Scalars, ScalarField{Name: name, Type: ScalarType{Tag: tag}})

	return nil
}

// AddEnumField appends a scalar field whose values are drawn from enm.
func (s *ParsedStruct) AddEnumField(name string, enm *ParsedEnum) error {
	if s.finalized {
		return ErrSchemaFinalized
	}

	s.Scalars = append(s.Scalars, ScalarField{Name: name, Type: ScalarType{Tag: ScalarEnum, Enum: enm}})

	return nil
}

// AddTextField appends a UTF-8 text child field to s.
func (s *ParsedStruct) AddTextField(name string, nullable bool) error {
	if s.finalized {
		return ErrSchemaFinalized
	}

	s.Children = append(s.Children, ChildField{Name: name, Nullable: nullable, Tag: ChildText})

	return nil
}

// AddStructField appends a nested-struct child field to s, referencing
// child. child must already have been created via the same schema's
// NewStruct, and must not be removed from the schema afterward.
func (s *ParsedStruct) AddStructField(name string, nullable bool, child *ParsedStruct) error {
	if s.finalized {
		return ErrSchemaFinalized
	}

	s.Children = append(s.Children, ChildField{
		Name: name, Nullable: nullable, Tag: ChildStruct,
		Type: ChildType{Struct: child},
	})

	return nil
}

// AddListOfScalarsField appends a list-of-scalars child field to s.
func (s *ParsedStruct) AddListOfScalarsField(name string, nullable bool, tag ScalarTag) error {
	if s.finalized {
		return ErrSchemaFinalized
	}

	s.Children = append(s.Children, ChildField{
		Name: name, Nullable: nullable, Tag: ChildScalarList,
		Type: ChildType{ScalarList: ScalarType{Tag: tag}},
	})

	return nil
}

// AddListOfEnumsField appends a list-of-enum-values child field to s. An
// enum list is represented the same as a scalar list of ScalarEnum,
// carrying the referenced enum.
func (s *ParsedStruct) AddListOfEnumsField(name string, nullable bool, enm *ParsedEnum) error {
	if s.finalized {
		return ErrSchemaFinalized
	}

	s.Children = append(s.Children, ChildField{
		Name: name, Nullable: nullable, Tag: ChildScalarList,
		Type: ChildType{ScalarList: ScalarType{Tag: ScalarEnum, Enum: enm}},
	})

	return nil
}

// AddListOfStructsField appends a list-of-structs child field to s,
// referencing child under the same addressing constraint as
// AddStructField.
func (s *ParsedStruct) AddListOfStructsField(name string, nullable bool, child *ParsedStruct) error {
	if s.finalized {
		return ErrSchemaFinalized
	}

	s.Children = append(s.Children, ChildField{
		Name: name, Nullable: nullable, Tag: ChildStructList,
		Type: ChildType{Struct: child},
	})

	return nil
}
