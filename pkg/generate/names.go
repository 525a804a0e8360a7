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
	"fmt"

	"github.com/theseoafs/harisc/pkg/schema"
)

// structTypeName returns the generated C type name for a struct: the
// configured prefix followed by the struct's own name.
func structTypeName(prefix, structName string) string {
	return prefix + structName
}

// pointerTypeName returns the C pointer-cast type used by a _get_ accessor
// macro for the given child field.
func pointerTypeName(prefix string, child *schema.ChildField) string {
	switch child.Tag {
	case schema.ChildText:
		return "char*"
	case schema.ChildScalarList:
		return schema.TypeName(child.Type.ScalarList.Tag) + "*"
	case schema.ChildStructList, schema.ChildStruct:
		return structTypeName(prefix, child.Type.Struct.Name) + "*"
	default:
		panic("generate: unhandled ChildTag in pointerTypeName")
	}
}

// nullMacro returns the name of the _null_ accessor macro for a nullable
// child field.
func nullMacro(prefix, structName, childName string) string {
	return fmt.Sprintf("%s%s_null_%s", prefix, structName, childName)
}

// nullifyMacro returns the name of the _nullify_ accessor macro for a
// nullable child field.
func nullifyMacro(prefix, structName, childName string) string {
	return fmt.Sprintf("%s%s_nullify_%s", prefix, structName, childName)
}

// lenMacro returns the name of the _len_ accessor macro for a text or list
// child field.
func lenMacro(prefix, structName, childName string) string {
	return fmt.Sprintf("%s%s_len_%s", prefix, structName, childName)
}

// getMacro returns the name of the _get_ accessor macro for a child field.
func getMacro(prefix, structName, childName string) string {
	return fmt.Sprintf("%s%s_get_%s", prefix, structName, childName)
}

// enumValueMacro returns the name of the #define for one enum value.
func enumValueMacro(prefix, enumName, valueName string) string {
	return fmt.Sprintf("%s%s_%s", prefix, enumName, valueName)
}

// protocolEntryPoint returns the name of a protocol's public entry point,
// e.g. "<prefix>Foo_to_file".
func protocolEntryPoint(prefix, structName, direction, transport string) string {
	return fmt.Sprintf("%s%s_%s_%s", prefix, structName, direction, transport)
}
