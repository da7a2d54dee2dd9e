package parser

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/lexer"
)

// parseDecl dispatches to the Data/Enum/Func/Import sentence shapes
// (spec.md §4.4 "Sentence shapes").
func (p *Parser) parseDecl() ast.Decl {
	switch {
	case p.keyword("define"):
		return p.parseDefineDecl()
	case p.keyword("rule"):
		return p.parseFuncDecl()
	case p.keyword("use"):
		return p.parseImportDecl()
	}
	p.fail("expected a declaration (define/rule/use), got %s(%v)", p.cur().Kind, p.cur().Value)
	return nil
}

// parseDefineDecl disambiguates Data from Enum by looking past the type
// name for "with"/"has" (Data) versus "as one of" (Enum).
func (p *Parser) parseDefineDecl() ast.Decl {
	if p.keywordAt(2, "with") || p.keywordAt(2, "has") {
		return p.parseDataDecl()
	}
	return p.parseEnumDecl()
}

func (p *Parser) parseDataDecl() ast.Decl {
	start := p.cur().Span.Start
	p.expectKeyword("define")
	name := p.identLike()
	if !p.matchKeyword("with") {
		p.expectKeyword("has")
	}
	fields := p.parseDataFieldList()
	end := p.expect(lexer.DOT).Span.End

	d := &ast.DataDecl{Name: name, Fields: fields}
	d.SetSpan(span(start, end))
	return d
}

func (p *Parser) parseDataFieldList() []*ast.DataField {
	fields := []*ast.DataField{p.parseDataField()}
	for p.matchKeyword("and") || p.matchKind(lexer.COMMA) {
		fields = append(fields, p.parseDataField())
	}
	return fields
}

func (p *Parser) parseDataField() *ast.DataField {
	start := p.cur().Span.Start
	name := p.identLike()
	p.expect(lexer.COLON)
	typ := p.parseType()
	cs := p.parseConstraints()
	return &ast.DataField{Name: name, Type: typ, Constraints: cs, Sp: span(start, p.toks[p.pos-1].Span.End)}
}

func (p *Parser) parseEnumDecl() ast.Decl {
	start := p.cur().Span.Start
	p.expectKeyword("define")
	name := p.identLike()
	p.expectPhrase("as", "one", "of")

	variants := []string{p.identLike()}
	for p.matchKeyword("or") || p.matchKind(lexer.COMMA) {
		variants = append(variants, p.identLike())
	}
	end := p.expect(lexer.DOT).Span.End

	d := &ast.EnumDecl{Name: name, Variants: variants}
	d.SetSpan(span(start, end))
	return d
}

func (p *Parser) parseImportDecl() ast.Decl {
	start := p.cur().Span.Start
	p.expectKeyword("use")
	name := joinDotted(p.dottedName())
	asName := ""
	if p.matchKeyword("as") {
		asName = p.identLike()
	}
	end := p.expect(lexer.DOT).Span.End

	d := &ast.ImportDecl{Name: name, AsName: asName}
	d.SetSpan(span(start, end))
	return d
}

// parseFuncDecl parses "Rule name [of T1, ...] given p1: T1 and p2: T2,
// produce R. [It performs ...][:] [block]" (spec.md §4.4 "Func").
//
// Type parameters are declared with "of T1, T2" right after the rule's
// name, before they are referenced in the parameter list, avoiding any
// forward-reference ambiguity; effect parameters are declared the same
// way inside the effects clause ("it performs io of E1, E2").
func (p *Parser) parseFuncDecl() ast.Decl {
	start := p.cur().Span.Start
	p.expectKeyword("rule")
	name := p.identLike()

	var typeParams []string
	if p.matchKeyword("of") {
		typeParams = append(typeParams, p.identLike())
		for p.matchKind(lexer.COMMA) {
			typeParams = append(typeParams, p.identLike())
		}
	}
	p.typeParamSet = map[string]bool{}
	for _, t := range typeParams {
		p.typeParamSet[t] = true
	}
	p.effectParamSet = map[string]bool{}
	defer func() {
		p.typeParamSet = nil
		p.effectParamSet = nil
	}()

	p.expectKeyword("given")
	params := p.parseParamList()
	p.expect(lexer.COMMA)
	p.expectKeyword("produce")
	retType := p.parseType()
	p.expect(lexer.DOT)

	var declaredEffects []ast.EffectItem
	var effectCaps []string
	capsExplicit := false
	if p.keyword("it") {
		declaredEffects, effectCaps, capsExplicit = p.parseEffectsClause()
	}

	var effectParams []string
	for _, e := range declaredEffects {
		if e.IsVar {
			effectParams = append(effectParams, e.Name)
			p.effectParamSet[e.Name] = true
		}
	}

	var body *ast.Block
	if p.matchKind(lexer.COLON) {
		body = p.parseBlock()
	}

	end := retType.Span().End
	if body != nil {
		end = body.Span().End
	}

	d := &ast.FuncDecl{
		Name:               name,
		TypeParams:         typeParams,
		EffectParams:       effectParams,
		Params:             params,
		RetType:            retType,
		DeclaredEffects:    declaredEffects,
		EffectCaps:         effectCaps,
		EffectCapsExplicit: capsExplicit,
		Body:               body,
	}
	d.SetSpan(span(start, end))
	return d
}

// parseEffectsClause parses "it performs io [and cpu] [of E1, E2] [with
// Http and Sql | [Http, Sql]]." (spec.md §4.4 "Func").
func (p *Parser) parseEffectsClause() (effects []ast.EffectItem, caps []string, capsExplicit bool) {
	p.expectKeyword("it")
	p.expectKeyword("performs")

	effects = append(effects, ast.EffectItem{Name: p.identLike()})
	for p.keyword("and") && p.peekAt(1).Kind == lexer.IDENT {
		p.advance()
		effects = append(effects, ast.EffectItem{Name: p.identLike()})
	}

	if p.matchKeyword("of") {
		effects = append(effects, ast.EffectItem{Name: p.identLike(), IsVar: true})
		for p.matchKind(lexer.COMMA) {
			effects = append(effects, ast.EffectItem{Name: p.identLike(), IsVar: true})
		}
	}

	switch {
	case p.matchKind(lexer.LBRACKET):
		if !p.at(lexer.RBRACKET) {
			caps = append(caps, p.identLike())
			for p.matchKind(lexer.COMMA) {
				caps = append(caps, p.identLike())
			}
		}
		p.expect(lexer.RBRACKET)
		capsExplicit = true
	case p.matchKeyword("with"):
		caps = append(caps, p.identLike())
		for p.matchKeyword("and") {
			caps = append(caps, p.identLike())
		}
		capsExplicit = true
	}

	// The "It performs ..." sentence ends with '.', except when a block
	// follows directly and ':' takes its place (spec.md §6.2: "It performs
	// cpu:").
	if !p.at(lexer.COLON) {
		p.expect(lexer.DOT)
	}
	return effects, caps, capsExplicit
}
