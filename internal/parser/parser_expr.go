package parser

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/lexer"
)

// parseExpr is the expression grammar's entry point. Precedence, weakest to
// strongest (spec.md §4.4 "Expression grammar"): not, comparisons, plus/
// minus, times/divided by, primary.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseNot()
}

func (p *Parser) mkCall(name string, start ast.Pos, args ...ast.Expr) *ast.Call {
	end := start
	if len(args) > 0 {
		end = args[len(args)-1].Span().End
	}
	target := &ast.Name{Parts: []string{name}}
	target.SetSpan(span(start, start))
	call := &ast.Call{Target: target, Args: args}
	call.SetSpan(span(start, end))
	return call
}

func (p *Parser) parseNot() ast.Expr {
	if p.keyword("not") {
		start := p.cur().Span.Start
		p.advance()
		e := p.parseComparison()
		return p.mkCall("not", start, e)
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdd()
	for {
		start := left.Span().Start
		switch {
		case p.matchPhrase("less", "than"):
			left = p.mkCall("<", start, left, p.parseAdd())
		case p.matchPhrase("greater", "than"):
			left = p.mkCall(">", start, left, p.parseAdd())
		case p.matchPhrase("equals", "to"):
			left = p.mkCall("==", start, left, p.parseAdd())
		case p.matchPhrase("at", "least"):
			left = p.mkCall(">=", start, left, p.parseAdd())
		case p.matchPhrase("at", "most"):
			left = p.mkCall("<=", start, left, p.parseAdd())
		default:
			return left
		}
	}
}

func (p *Parser) parseAdd() ast.Expr {
	left := p.parseMul()
	for {
		start := left.Span().Start
		switch {
		case p.matchKeyword("plus"):
			left = p.mkCall("+", start, left, p.parseMul())
		case p.matchKeyword("minus"):
			left = p.mkCall("-", start, left, p.parseMul())
		default:
			return left
		}
	}
}

func (p *Parser) parseMul() ast.Expr {
	left := p.parsePrimary()
	for {
		start := left.Span().Start
		switch {
		case p.matchKeyword("times"):
			left = p.mkCall("*", start, left, p.parsePrimary())
		case p.matchPhrase("divided", "by"):
			left = p.mkCall("/", start, left, p.parsePrimary())
		default:
			return left
		}
	}
}

func (p *Parser) literal(kind ast.LiteralKind, value any, start, end ast.Pos) *ast.Literal {
	n := &ast.Literal{Kind: kind, Value: value}
	n.SetSpan(span(start, end))
	return n
}

// parsePrimary covers constructions, dotted names, calls, literals,
// parenthesized expressions, Ok/Err/Some/None, Await, and the two lambda
// surface forms (spec.md §4.4 "Expression grammar").
func (p *Parser) parsePrimary() ast.Expr {
	start := p.cur().Span.Start

	switch {
	case p.at(lexer.BOOL):
		t := p.advance()
		return p.literal(ast.BoolLit, t.Value, start, t.Span.End)
	case p.at(lexer.INT):
		t := p.advance()
		return p.literal(ast.IntLit, t.Value, start, t.Span.End)
	case p.at(lexer.LONG):
		t := p.advance()
		return p.literal(ast.LongLit, t.Value, start, t.Span.End)
	case p.at(lexer.FLOAT):
		t := p.advance()
		return p.literal(ast.FloatLit, t.Value, start, t.Span.End)
	case p.at(lexer.STRING):
		t := p.advance()
		return p.literal(ast.StringLit, t.Value, start, t.Span.End)
	case p.at(lexer.NULL):
		t := p.advance()
		return p.literal(ast.NullLit, nil, start, t.Span.End)
	case p.phrase("ok", "of"):
		p.matchPhrase("ok", "of")
		v := p.parseExpr()
		n := &ast.Ok{Value: v}
		n.SetSpan(span(start, v.Span().End))
		return n
	case p.phrase("err", "of"):
		p.matchPhrase("err", "of")
		v := p.parseExpr()
		n := &ast.Err{Value: v}
		n.SetSpan(span(start, v.Span().End))
		return n
	case p.phrase("some", "of"):
		p.matchPhrase("some", "of")
		v := p.parseExpr()
		n := &ast.Some{Value: v}
		n.SetSpan(span(start, v.Span().End))
		return n
	case p.keyword("none"):
		p.advance()
		n := &ast.None{}
		n.SetSpan(span(start, p.toks[p.pos-1].Span.End))
		return n
	case p.keyword("await"):
		p.advance()
		p.expect(lexer.LPAREN)
		v := p.parseExpr()
		end := p.expect(lexer.RPAREN).Span.End
		n := &ast.Await{Value: v}
		n.SetSpan(span(start, end))
		return n
	case p.at(lexer.LPAREN):
		return p.parseParenOrLambda()
	case p.at(lexer.IDENT) && p.cur().Value == "function":
		return p.parseBlockLambda()
	case p.at(lexer.IDENT) || p.at(lexer.TYPE_IDENT):
		return p.parseIdentStartExpr()
	}

	p.fail("unexpected token %s in expression", p.cur().Kind)
	return nil
}

// parseIdentStartExpr parses a dotted name, then either a Construct ("T
// with f = e and g = e"), a Call ("target(args)"), or a bare Name.
func (p *Parser) parseIdentStartExpr() ast.Expr {
	start := p.cur().Span.Start
	firstIsType := p.at(lexer.TYPE_IDENT)
	parts := p.dottedName()

	if firstIsType && len(parts) == 1 && p.keyword("with") {
		p.advance()
		fields := p.parseConstructFields()
		end := p.toks[p.pos-1].Span.End
		n := &ast.Construct{TypeName: parts[0], Fields: fields}
		n.SetSpan(span(start, end))
		return n
	}

	return p.finishNameOrCall(start, parts)
}

func (p *Parser) finishNameOrCall(start ast.Pos, parts []string) ast.Expr {
	if p.at(lexer.LPAREN) {
		p.advance()
		var args []ast.Expr
		if !p.at(lexer.RPAREN) {
			args = append(args, p.parseExpr())
			for p.matchKind(lexer.COMMA) {
				args = append(args, p.parseExpr())
			}
		}
		end := p.expect(lexer.RPAREN).Span.End
		target := &ast.Name{Parts: parts}
		target.SetSpan(span(start, start))
		call := &ast.Call{Target: target, Args: args}
		call.SetSpan(span(start, end))
		return call
	}
	n := &ast.Name{Parts: parts}
	n.SetSpan(span(start, p.toks[p.pos-1].Span.End))
	return n
}

func (p *Parser) parseConstructFields() []*ast.ConstructField {
	fields := []*ast.ConstructField{p.parseConstructField()}
	for p.matchKeyword("and") || p.matchKind(lexer.COMMA) {
		fields = append(fields, p.parseConstructField())
	}
	return fields
}

func (p *Parser) parseConstructField() *ast.ConstructField {
	name := p.identLike()
	p.expect(lexer.EQUALS)
	val := p.parseExpr()
	return &ast.ConstructField{Name: name, Value: val}
}

// matchingParen returns the index of the RPAREN that closes the LPAREN at
// openIdx, or -1 if the token stream runs out first.
func (p *Parser) matchingParen(openIdx int) int {
	depth := 0
	for i := openIdx; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseParenOrLambda disambiguates a parenthesized expression from a short
// lambda by scanning ahead for the "(...) =>" two-token marker (spec.md
// §3 Token note: "=>" lexes as EQUALS then GT).
func (p *Parser) parseParenOrLambda() ast.Expr {
	start := p.cur().Span.Start
	closeIdx := p.matchingParen(p.pos)
	if closeIdx >= 0 && closeIdx+2 < len(p.toks) &&
		p.toks[closeIdx+1].Kind == lexer.EQUALS && p.toks[closeIdx+2].Kind == lexer.GT {
		return p.parseShortLambda(start)
	}

	p.advance() // consume '('
	e := p.parseExpr()
	p.expect(lexer.RPAREN)
	return e
}

func (p *Parser) parseShortLambda(start ast.Pos) ast.Expr {
	p.expect(lexer.LPAREN)
	var params []*ast.Param
	if !p.at(lexer.RPAREN) {
		params = append(params, p.parseParam())
		for p.matchKind(lexer.COMMA) {
			params = append(params, p.parseParam())
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.EQUALS)
	p.expect(lexer.GT)

	body := p.parseExpr()
	ret := &ast.ReturnStmt{Value: body}
	ret.SetSpan(body.Span())
	block := &ast.Block{Stmts: []ast.Stmt{ret}}
	block.SetSpan(body.Span())

	lam := &ast.Lambda{Params: params, Body: block, Short: true}
	lam.SetSpan(span(start, p.toks[p.pos-1].Span.End))
	return lam
}

// parseBlockLambda parses the block-lambda surface form, "function with
// p1: T1 and p2: T2, produce T: <block>" (the articled "a function..." of
// spec.md §4.4 after the canonicalizer's article removal, spec.md §4.1
// step 4).
func (p *Parser) parseBlockLambda() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // the literal word "function" (not a lexicon keyword)
	p.expectKeyword("with")
	params := p.parseParamList()
	p.matchKind(lexer.COMMA)
	p.expectKeyword("produce")
	ret := p.parseType()
	p.expect(lexer.COLON)
	body := p.parseBlock()

	lam := &ast.Lambda{Params: params, RetType: ret, Body: body, Short: false}
	lam.SetSpan(span(start, body.Span().End))
	return lam
}
