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

// Package emit holds the structured accumulator emitters append generated
// source fragments into: five ordered, append-only streams, classified by
// destination file and by what (if anything) must be derived from them
// before the final artifacts are assembled.
package emit

import (
	"fmt"
	"strings"
)

// Context is the emit buffer. It is passed explicitly to every emitter;
// there is no package-level instance anywhere in this module.
type Context struct {
	// HeaderTop holds includes, typedefs, macros, reflective types and
	// struct layouts -- the head of the declarations file.
	HeaderTop []string
	// HeaderBottom holds prototypes of public functions, derived from
	// PublicFunctions by DerivePrototypes -- the tail of the
	// declarations file.
	HeaderBottom []string
	// Source holds reflective tables and other boilerplate destined for
	// the implementation file.
	Source []string
	// PublicFunctions holds complete, user-callable function
	// definitions. Each one also contributes a prototype to
	// HeaderBottom.
	PublicFunctions []string
	// PrivateFunctions holds file-local helper function definitions.
	PrivateFunctions []string
}

// NewContext constructs an empty emit buffer.
func NewContext() *Context {
	return &Context{}
}

// Headerf formats and appends a fragment to HeaderTop.
func (c *Context) Headerf(format string, args ...any) {
	c.HeaderTop = append(c.HeaderTop, fmt.Sprintf(format, args...))
}

// HeaderBottomf formats and appends a fragment directly to HeaderBottom,
// bypassing prototype derivation, for anything that belongs at the tail
// of the declarations file verbatim. The closing guard is not part of
// this stream; the job orchestrator writes it at assembly time.
func (c *Context) HeaderBottomf(format string, args ...any) {
	c.HeaderBottom = append(c.HeaderBottom, fmt.Sprintf(format, args...))
}

// Sourcef formats and appends a fragment to Source.
func (c *Context) Sourcef(format string, args ...any) {
	c.Source = append(c.Source, fmt.Sprintf(format, args...))
}

// PublicFuncf formats and appends a complete function definition to
// PublicFunctions. The fragment must contain a signature followed by a
// '{'; DerivePrototypes later extracts the prototype from it.
func (c *Context) PublicFuncf(format string, args ...any) {
	c.PublicFunctions = append(c.PublicFunctions, fmt.Sprintf(format, args...))
}

// PrivateFuncf formats and appends a complete function definition to
// PrivateFunctions.
func (c *Context) PrivateFuncf(format string, args ...any) {
	c.PrivateFunctions = append(c.PrivateFunctions, fmt.Sprintf(format, args...))
}

// DerivePrototypes derives prototypes: for each fragment already
// pushed onto PublicFunctions, read the signature up to (but not
// including) the first brace, append a terminator, and append the result
// to HeaderBottom. This must run after every public function has been
// emitted and before the artifacts are assembled.
func (c *Context) DerivePrototypes() error {
	for _, fn := range c.PublicFunctions {
		proto, err := Prototype(fn)
		if err != nil {
			return err
		}

		c.HeaderBottom = append(c.HeaderBottom, proto)
	}

	return nil
}

// Prototype extracts the prototype from a complete function definition:
// the signature up to (but not including) the first brace, with a
// terminator appended. Used for PublicFunctions fragments headed for
// HeaderBottom and for the static prototypes that precede
// PrivateFunctions in the assembled implementation file.
//
// The scan is a naive byte search for the first '{'. Every fragment is a
// complete C function definition, and a C function signature cannot
// contain a brace of its own; braces in string literals only ever occur
// inside a body, after the one this scan stops at.
func Prototype(fn string) (string, error) {
	idx := strings.IndexByte(fn, '{')
	if idx < 0 {
		return "", fmt.Errorf("emit: function fragment has no body: %q", fn)
	}

	return strings.TrimRight(fn[:idx], " \t\n") + ";\n", nil
}
