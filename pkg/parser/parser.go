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
package parser

import (
	"fmt"
	"regexp"

	"github.com/theseoafs/harisc/pkg/schema"
)

// identifierPattern resolves the identifier-validation Open Question: an
// identifier must start with a letter or underscore and contain only
// letters, digits and underscores. This is stricter than the original C
// implementation, which left the question to the C compiler that would
// eventually consume the emitted symbol names; the parser enforces it up
// front instead of letting an invalid name surface as a cryptic C
// compiler error much later.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var reservedWords = map[string]bool{
	"struct": true, "enum": true, "text": true, "bool": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
}

var scalarKeywords = map[string]schema.ScalarTag{
	"int8": schema.ScalarInt8, "int16": schema.ScalarInt16,
	"int32": schema.ScalarInt32, "int64": schema.ScalarInt64,
	"uint8": schema.ScalarUint8, "uint16": schema.ScalarUint16,
	"uint32": schema.ScalarUint32, "uint64": schema.ScalarUint64,
	"float32": schema.ScalarFloat32, "float64": schema.ScalarFloat64,
	"bool": schema.ScalarBool,
}

type pendingField struct {
	name      string
	nullable  bool
	typeName  string
	isList    bool
	isText    bool
	scalarTag schema.ScalarTag
	isScalar  bool
}

type pendingStruct struct {
	decl   *schema.ParsedStruct
	fields []pendingField
}

// parser builds a schema.ParsedSchema in two passes: the first walks the
// token stream once, registering every struct and enum name (so fields
// can forward-reference types declared later in the source) and
// collecting each struct's fields as pending records; the second applies
// the pending fields now that every type name resolves to a live
// *schema.ParsedStruct or *schema.ParsedEnum. Enums carry no type
// references, so they are built entirely in the first pass.
type parser struct {
	lex  *lexer
	tok  token
	next token

	schema  *schema.ParsedSchema
	structs []*pendingStruct
}

// Parse reads src as a Haris schema description and returns an
// unfinalized schema.ParsedSchema. Callers must still invoke
// schema.FinalizeSchema before the result is usable by pkg/generate.
func Parse(src string) (*schema.ParsedSchema, error) {
	p := &parser{lex: newLexer(src), schema: schema.NewParsedSchema()}
	p.advance()
	p.advance()

	if err := p.parseDecls(); err != nil {
		return nil, err
	}

	if err := p.fillStructs(); err != nil {
		return nil, err
	}

	return p.schema, nil
}

func (p *parser) advance() {
	p.tok = p.next
	p.next = p.lex.next()
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.tok.kind != kind {
		return token{}, newSyntaxError(p.tok.pos, "expected %s, found %q", what, p.tok.text)
	}

	tok := p.tok
	p.advance()

	return tok, nil
}

func (p *parser) expectIdent(what string) (token, error) {
	return p.expect(tokIdent, what)
}

func validateIdentifier(tok token) error {
	if !identifierPattern.MatchString(tok.text) {
		return newSyntaxError(tok.pos, "invalid identifier %q", tok.text)
	}

	if reservedWords[tok.text] {
		return newSyntaxError(tok.pos, "%q is a reserved word", tok.text)
	}

	return nil
}

func (p *parser) parseDecls() error {
	for p.tok.kind != tokEOF {
		ident, err := p.expectIdent("'struct' or 'enum'")
		if err != nil {
			return err
		}

		switch ident.text {
		case "struct":
			if err := p.parseStructDecl(); err != nil {
				return err
			}
		case "enum":
			if err := p.parseEnumDecl(); err != nil {
				return err
			}
		default:
			return newSyntaxError(ident.pos, "expected 'struct' or 'enum', found %q", ident.text)
		}
	}

	return nil
}

func (p *parser) declareName(tok token) error {
	if err := validateIdentifier(tok); err != nil {
		return err
	}

	if p.schema.StructNameCollide(tok.text) {
		return fmt.Errorf("parser: %w: %s: %w: %q is already declared",
			ErrParse, tok.pos, schema.ErrNameCollision, tok.text)
	}

	return nil
}

func (p *parser) parseEnumDecl() error {
	nameTok, err := p.expectIdent("enum name")
	if err != nil {
		return err
	}

	if err := p.declareName(nameTok); err != nil {
		return err
	}

	enm, err := p.schema.NewEnum(nameTok.text)
	if err != nil {
		return fmt.Errorf("parser: %w: %w", ErrParse, err)
	}

	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return err
	}

	for p.tok.kind != tokRBrace {
		valueTok, err := p.expectIdent("enum value")
		if err != nil {
			return err
		}

		if err := validateIdentifier(valueTok); err != nil {
			return err
		}

		if enm.EnumNameCollide(valueTok.text) {
			return fmt.Errorf("parser: %w: %s: %w: value %q is already declared on enum %q",
				ErrParse, valueTok.pos, schema.ErrNameCollision, valueTok.text, enm.Name)
		}

		enm.AddEnumeratedValue(valueTok.text)

		if p.tok.kind == tokComma {
			p.advance()
		} else {
			break
		}
	}

	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return err
	}

	return nil
}

func (p *parser) parseStructDecl() error {
	nameTok, err := p.expectIdent("struct name")
	if err != nil {
		return err
	}

	if err := p.declareName(nameTok); err != nil {
		return err
	}

	strct, err := p.schema.NewStruct(nameTok.text)
	if err != nil {
		return fmt.Errorf("parser: %w: %w", ErrParse, err)
	}

	ps := &pendingStruct{decl: strct}

	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return err
	}

	for p.tok.kind != tokRBrace {
		field, err := p.parseFieldDecl()
		if err != nil {
			return err
		}

		// Fields are applied to the model in the second pass, so the
		// collision check scans the pending list, not the struct.
		for i := range ps.fields {
			if ps.fields[i].name == field.name {
				return fmt.Errorf("parser: %w: %s: %w: field %q is already declared on %q",
					ErrParse, p.tok.pos, schema.ErrNameCollision, field.name, strct.Name)
			}
		}

		ps.fields = append(ps.fields, field)
	}

	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return err
	}

	p.structs = append(p.structs, ps)
	return nil
}

func (p *parser) parseFieldDecl() (pendingField, error) {
	nameTok, err := p.expectIdent("field name")
	if err != nil {
		return pendingField{}, err
	}

	if err := validateIdentifier(nameTok); err != nil {
		return pendingField{}, err
	}

	field := pendingField{name: nameTok.text}

	if p.tok.kind == tokQuestion {
		field.nullable = true
		p.advance()
	}

	if _, err := p.expect(tokColon, "':'"); err != nil {
		return pendingField{}, err
	}

	typeTok, err := p.expectIdent("field type")
	if err != nil {
		return pendingField{}, err
	}

	if p.tok.kind == tokLBracket {
		p.advance()

		if _, err := p.expect(tokRBracket, "']'"); err != nil {
			return pendingField{}, err
		}

		field.isList = true
	}

	if typeTok.text == "text" {
		if field.isList {
			return pendingField{}, newSyntaxError(typeTok.pos, "text fields cannot be lists")
		}

		field.isText = true
		return field, nil
	}

	if tag, ok := scalarKeywords[typeTok.text]; ok {
		field.isScalar = true
		field.scalarTag = tag
		return field, nil
	}

	field.typeName = typeTok.text
	return field, nil
}

func (p *parser) resolveStruct(name string) *schema.ParsedStruct {
	return p.schema.FindStruct(name)
}

func (p *parser) resolveEnum(name string) *schema.ParsedEnum {
	return p.schema.FindEnum(name)
}

func (p *parser) fillStructs() error {
	for _, ps := range p.structs {
		for _, field := range ps.fields {
			if err := p.applyField(ps.decl, field); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *parser) applyField(strct *schema.ParsedStruct, field pendingField) error {
	switch {
	case field.isText:
		return strct.AddTextField(field.name, field.nullable)

	case field.isScalar:
		if field.isList {
			return strct.AddListOfScalarsField(field.name, field.nullable, field.scalarTag)
		}

		if field.nullable {
			return fmt.Errorf("parser: %w: scalar field %q on %q cannot be nullable", ErrParse, field.name, strct.Name)
		}

		return strct.AddScalarField(field.name, field.scalarTag)

	default:
		if enm := p.resolveEnum(field.typeName); enm != nil {
			if field.isList {
				return strct.AddListOfEnumsField(field.name, field.nullable, enm)
			}

			if field.nullable {
				return fmt.Errorf("parser: %w: enum field %q on %q cannot be nullable", ErrParse, field.name, strct.Name)
			}

			return strct.AddEnumField(field.name, enm)
		}

		if target := p.resolveStruct(field.typeName); target != nil {
			if field.isList {
				return strct.AddListOfStructsField(field.name, field.nullable, target)
			}

			return strct.AddStructField(field.name, field.nullable, target)
		}

		return fmt.Errorf("parser: %w: unknown type %q referenced by field %q on %q",
			ErrParse, field.typeName, field.name, strct.Name)
	}
}
