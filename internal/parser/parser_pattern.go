package parser

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/lexer"
)

// parsePattern parses one Match-arm pattern (spec.md §3 "Patterns", §4.4
// "Patterns"): null, an integer literal, a constructor with optional
// nested arguments, or a bare identifier that binds the scrutinee.
func (p *Parser) parsePattern() ast.Pattern {
	start := p.cur().Span.Start

	if p.at(lexer.NULL) {
		p.advance()
		n := &ast.PatNull{}
		n.SetSpan(span(start, p.toks[p.pos-1].Span.End))
		return n
	}

	if p.at(lexer.INT) || p.at(lexer.LONG) {
		t := p.advance()
		v, _ := t.Value.(int64)
		n := &ast.PatInt{Value: v}
		n.SetSpan(span(start, t.Span.End))
		return n
	}

	kwCtor := ""
	for kw, ctor := range map[string]string{"ok": "Ok", "err": "Err", "some": "Some", "none": "None"} {
		if p.keyword(kw) {
			kwCtor = ctor
		}
	}
	if p.at(lexer.TYPE_IDENT) || kwCtor != "" {
		var name string
		if kwCtor != "" {
			p.advance()
			name = kwCtor
		} else {
			name = p.identLike()
		}
		if p.matchKind(lexer.LPAREN) {
			var args []ast.Pattern
			if !p.at(lexer.RPAREN) {
				args = append(args, p.parsePattern())
				for p.matchKind(lexer.COMMA) {
					args = append(args, p.parsePattern())
				}
			}
			end := p.expect(lexer.RPAREN).Span.End
			n := &ast.PatCtor{TypeName: name, Args: args}
			n.SetSpan(span(start, end))
			return n
		}
		n := &ast.PatCtor{TypeName: name}
		n.SetSpan(span(start, p.toks[p.pos-1].Span.End))
		return n
	}

	name := p.identLike()
	n := &ast.PatName{Name: name}
	n.SetSpan(span(start, p.toks[p.pos-1].Span.End))
	return n
}
