package parser

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/lexer"
)

// parseType parses a type expression (spec.md §3 "Types"). Generic shapes
// (Maybe/Option/Result/List/Map/Pii, and any other name) use the angle-
// bracket form "Name<Arg, ...>"; FuncType uses "Func(T1, T2) produce R".
func (p *Parser) parseType() ast.Type {
	start := p.cur().Span.Start
	var name string
	if p.keyword("option") {
		p.advance()
		name = "Option"
	} else {
		name = p.identLike()
	}

	mk := func(t ast.Type) ast.Type {
		if n, ok := t.(interface{ SetSpan(ast.Span) }); ok {
			n.SetSpan(span(start, p.toks[p.pos-1].Span.End))
		}
		return t
	}

	switch name {
	case "Maybe":
		p.expect(lexer.LT)
		elem := p.parseType()
		p.expect(lexer.GT)
		return mk(&ast.Maybe{Elem: elem})
	case "Option":
		p.expect(lexer.LT)
		elem := p.parseType()
		p.expect(lexer.GT)
		return mk(&ast.Option{Elem: elem})
	case "Result":
		p.expect(lexer.LT)
		ok := p.parseType()
		p.expect(lexer.COMMA)
		errT := p.parseType()
		p.expect(lexer.GT)
		return mk(&ast.Result{Ok: ok, Err: errT})
	case "List":
		p.expect(lexer.LT)
		elem := p.parseType()
		p.expect(lexer.GT)
		return mk(&ast.List{Elem: elem})
	case "Map":
		p.expect(lexer.LT)
		key := p.parseType()
		p.expect(lexer.COMMA)
		val := p.parseType()
		p.expect(lexer.GT)
		return mk(&ast.Map{Key: key, Value: val})
	case "Pii":
		p.expect(lexer.LT)
		base := p.parseType()
		p.expect(lexer.COMMA)
		sens := p.identLike()
		p.expect(lexer.COMMA)
		cat := p.identLike()
		p.expect(lexer.GT)
		return mk(&ast.PiiType{BaseType: base, Sensitivity: ast.PiiSensitivity(sens), Category: cat})
	case "Func":
		p.expect(lexer.LPAREN)
		var params []ast.Type
		if !p.at(lexer.RPAREN) {
			params = append(params, p.parseType())
			for p.matchKind(lexer.COMMA) {
				params = append(params, p.parseType())
			}
		}
		p.expect(lexer.RPAREN)
		p.expectKeyword("produce")
		ret := p.parseType()
		return mk(&ast.FuncType{Params: params, Ret: ret})
	}

	if p.typeParamSet != nil && p.typeParamSet[name] {
		return mk(&ast.TypeVar{Name: name})
	}
	if p.effectParamSet != nil && p.effectParamSet[name] {
		return mk(&ast.EffectVar{Name: name})
	}

	if p.at(lexer.LT) {
		p.advance()
		args := []ast.Type{p.parseType()}
		for p.matchKind(lexer.COMMA) {
			args = append(args, p.parseType())
		}
		p.expect(lexer.GT)
		return mk(&ast.TypeApp{BaseName: name, Args: args})
	}

	return mk(&ast.TypeName{Name: name})
}

// parseConstraintValue parses a bare numeric literal used by between/at
// least/at most constraints.
func (p *Parser) parseConstraintValue() float64 {
	t := p.cur()
	switch t.Kind {
	case lexer.INT, lexer.LONG:
		p.advance()
		return float64(t.Value.(int64))
	case lexer.FLOAT:
		p.advance()
		return t.Value.(float64)
	default:
		p.fail("expected a number, got %s", t.Kind)
		return 0
	}
}

// atConstraintStart reports whether a field constraint clause begins at
// the given lookahead offset (spec.md §4.4 "Data" field constraints).
func (p *Parser) atConstraintStart(off int) bool {
	switch {
	case p.keywordAt(off, "required"):
		return true
	case p.keywordAt(off, "between"):
		return true
	case p.keywordAt(off, "at") && (p.keywordAt(off+1, "least") || p.keywordAt(off+1, "most")):
		return true
	case p.keywordAt(off, "matching") && p.keywordAt(off+1, "pattern"):
		return true
	}
	return false
}

// parseConstraint parses one field constraint (spec.md §4.4 "Data").
func (p *Parser) parseConstraint() ast.Constraint {
	switch {
	case p.matchKeyword("required"):
		return ast.RequiredConstraint{}
	case p.matchKeyword("between"):
		low := p.parseConstraintValue()
		p.expectKeyword("and")
		high := p.parseConstraintValue()
		return ast.BetweenConstraint{Low: low, High: high}
	case p.matchPhrase("at", "least"):
		return ast.AtLeastConstraint{N: p.parseConstraintValue()}
	case p.matchPhrase("at", "most"):
		return ast.AtMostConstraint{N: p.parseConstraintValue()}
	case p.matchPhrase("matching", "pattern"):
		tok := p.expect(lexer.STRING)
		return ast.MatchingConstraint{Pattern: tok.Value.(string)}
	default:
		p.fail("expected a field constraint")
		return nil
	}
}

// parseConstraints collects zero or more constraints, chained by "and" only
// when the token following "and" itself starts a constraint — otherwise the
// "and"/"," is left for the enclosing field-list separator.
func (p *Parser) parseConstraints() []ast.Constraint {
	var cs []ast.Constraint
	for p.atConstraintStart(0) {
		cs = append(cs, p.parseConstraint())
		if p.keyword("and") && p.atConstraintStart(1) {
			p.advance()
			continue
		}
		break
	}
	return cs
}
