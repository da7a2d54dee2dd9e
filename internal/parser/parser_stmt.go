package parser

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/lexer"
)

// parseBlock parses a mandatory-newline, INDENT-opened statement sequence
// (spec.md §4.4 "Block discipline"), closing it on its matching DEDENT.
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur().Span.Start
	p.skipNewlines()
	p.expect(lexer.INDENT)

	var stmts []ast.Stmt
	for !p.at(lexer.DEDENT) && !p.at(lexer.EOF) {
		stmts = append(stmts, p.parseStmt())
		p.skipNewlines()
	}
	end := p.cur().Span.End
	if p.at(lexer.DEDENT) {
		p.advance()
	}

	b := &ast.Block{Stmts: stmts}
	b.SetSpan(span(start, end))
	return b
}

// consumeStmtEnd consumes a terminating '.' if present. Return statements
// (and, tolerantly, any statement) may instead end at NEWLINE/DEDENT/EOF
// (spec.md §4.4 "Block discipline").
func (p *Parser) consumeStmtEnd() ast.Pos {
	if p.at(lexer.DOT) {
		return p.advance().Span.End
	}
	return p.cur().Span.Start
}

func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.keyword("let"):
		return p.parseLetStmt()
	case p.keyword("set"):
		return p.parseSetStmt()
	case p.keyword("return"):
		return p.parseReturnStmt()
	case p.keyword("if"):
		return p.parseIfStmt()
	case p.keyword("match"):
		return p.parseMatchStmt()
	case p.keyword("workflow"):
		return p.parseWorkflowStmt()
	case p.keyword("start"):
		return p.parseStartStmt()
	case p.phrase("wait", "for"):
		return p.parseWaitStmt()
	case p.phrase("within", "scope"):
		return p.parseScopeStmt()
	}
	p.fail("unknown statement starting with %s", p.cur().Kind)
	return nil
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.cur().Span.Start
	p.expectKeyword("let")
	name := p.identLike()
	p.expectKeyword("be")
	val := p.parseExpr()
	end := p.consumeStmtEnd()
	n := &ast.LetStmt{Name: name, Value: val}
	n.SetSpan(span(start, end))
	return n
}

func (p *Parser) parseSetStmt() ast.Stmt {
	start := p.cur().Span.Start
	p.expectKeyword("set")
	name := p.identLike()
	p.expectKeyword("to")
	val := p.parseExpr()
	end := p.consumeStmtEnd()
	n := &ast.SetStmt{Name: name, Value: val}
	n.SetSpan(span(start, end))
	return n
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.cur().Span.Start
	p.expectKeyword("return")
	var val ast.Expr
	if !p.at(lexer.DOT) && !p.at(lexer.NEWLINE) && !p.at(lexer.DEDENT) && !p.at(lexer.EOF) {
		val = p.parseExpr()
	}
	end := p.consumeStmtEnd()
	n := &ast.ReturnStmt{Value: val}
	n.SetSpan(span(start, end))
	return n
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.cur().Span.Start
	p.expectKeyword("if")
	cond := p.parseExpr()
	p.expect(lexer.COLON)
	then := p.parseBlock()

	var els *ast.Block
	p.skipNewlines()
	if p.matchKeyword("otherwise") {
		p.expect(lexer.COLON)
		els = p.parseBlock()
	}

	end := then.Span().End
	if els != nil {
		end = els.Span().End
	}
	n := &ast.IfStmt{Cond: cond, Then: then, Else: els}
	n.SetSpan(span(start, end))
	return n
}

// parseMatchStmt supports both block styles spec.md §4.4 allows: an
// indented sequence of "When ..." arms, or all arms written inline on one
// logical line (spec.md §6.2: "Match v: When Ok(n), Return n. When
// Err(e), Return 0.").
func (p *Parser) parseMatchStmt() ast.Stmt {
	start := p.cur().Span.Start
	p.expectKeyword("match")
	scrutinee := p.parseExpr()
	p.expect(lexer.COLON)
	p.skipNewlines()
	indented := p.matchKind(lexer.INDENT)

	var arms []*ast.MatchArm
	for p.keyword("when") {
		arms = append(arms, p.parseMatchArm())
		p.skipNewlines()
	}

	end := p.toks[p.pos-1].Span.End
	if indented {
		end = p.cur().Span.End
		p.expect(lexer.DEDENT)
	}

	n := &ast.MatchStmt{Scrutinee: scrutinee, Arms: arms}
	n.SetSpan(span(start, end))
	return n
}

func (p *Parser) parseMatchArm() *ast.MatchArm {
	start := p.cur().Span.Start
	p.expectKeyword("when")
	pat := p.parsePattern()

	var body *ast.Block
	if p.matchKind(lexer.COMMA) {
		stmt := p.parseStmt()
		body = &ast.Block{Stmts: []ast.Stmt{stmt}}
		body.SetSpan(stmt.Span())
	} else {
		p.expect(lexer.COLON)
		body = p.parseBlock()
	}

	return &ast.MatchArm{Pattern: pat, Body: body, Sp: span(start, body.Span().End)}
}

func (p *Parser) parseWorkflowStmt() ast.Stmt {
	start := p.cur().Span.Start
	p.expectKeyword("workflow")
	p.expect(lexer.COLON)
	p.skipNewlines()
	p.expect(lexer.INDENT)

	var steps []*ast.WorkflowStep
	for p.keyword("step") {
		steps = append(steps, p.parseWorkflowStep())
		p.skipNewlines()
	}

	var retry *ast.RetryPolicy
	if p.keyword("retry") {
		retry = p.parseRetryPolicy()
		p.skipNewlines()
	}
	var timeout *ast.Timeout
	if p.keyword("timeout") {
		timeout = p.parseTimeout()
		p.skipNewlines()
	}

	end := p.cur().Span.End
	p.expect(lexer.DEDENT)
	p.matchKind(lexer.DOT)

	n := &ast.WorkflowStmt{Steps: steps, Retry: retry, Timeout: timeout}
	n.SetSpan(span(start, end))
	return n
}

func (p *Parser) parseWorkflowStep() *ast.WorkflowStep {
	start := p.cur().Span.Start
	p.expectKeyword("step")
	name := p.identLike()

	var deps []string
	explicit := false
	if p.matchPhrase("depends", "on") {
		explicit = true
		p.expect(lexer.LBRACKET)
		if !p.at(lexer.RBRACKET) {
			deps = append(deps, p.expect(lexer.STRING).Value.(string))
			for p.matchKind(lexer.COMMA) {
				deps = append(deps, p.expect(lexer.STRING).Value.(string))
			}
		}
		p.expect(lexer.RBRACKET)
	}

	p.expect(lexer.COLON)
	body := p.parseBlock()

	var compensate *ast.Block
	p.skipNewlines()
	if p.matchKeyword("compensate") {
		p.expect(lexer.COLON)
		compensate = p.parseBlock()
	}

	end := body.Span().End
	if compensate != nil {
		end = compensate.Span().End
	}
	return &ast.WorkflowStep{
		Name: name, Dependencies: deps, DependenciesExplicit: explicit,
		Body: body, Compensate: compensate, Sp: span(start, end),
	}
}

func (p *Parser) parseRetryPolicy() *ast.RetryPolicy {
	start := p.cur().Span.Start
	p.expectKeyword("retry")
	p.expect(lexer.COLON)
	p.skipNewlines()
	indented := p.matchKind(lexer.INDENT)

	p.expectPhrase("max", "attempts")
	n := int(p.parseConstraintValue())
	p.matchKind(lexer.DOT)
	p.skipNewlines()

	p.expectKeyword("backoff")
	backoff := p.identLike()
	end := p.toks[p.pos-1].Span.End
	p.matchKind(lexer.DOT)

	if indented {
		p.skipNewlines()
		p.expect(lexer.DEDENT)
	}

	return &ast.RetryPolicy{MaxAttempts: n, Backoff: backoff, Sp: span(start, end)}
}

func (p *Parser) parseTimeout() *ast.Timeout {
	start := p.cur().Span.Start
	p.expectKeyword("timeout")
	p.expect(lexer.COLON)
	n := int(p.parseConstraintValue())
	p.expectKeyword("seconds")
	end := p.toks[p.pos-1].Span.End
	p.matchKind(lexer.DOT)
	return &ast.Timeout{Seconds: n, Sp: span(start, end)}
}

func (p *Parser) parseStartStmt() ast.Stmt {
	start := p.cur().Span.Start
	p.expectKeyword("start")
	name := p.identLike()
	p.expectKeyword("as")
	p.expectKeyword("async")
	val := p.parseExpr()
	end := p.consumeStmtEnd()
	n := &ast.StartStmt{Name: name, Value: val}
	n.SetSpan(span(start, end))
	return n
}

func (p *Parser) parseWaitStmt() ast.Stmt {
	start := p.cur().Span.Start
	p.expectPhrase("wait", "for")
	names := []string{p.identLike()}
	for p.matchKeyword("and") || p.matchKind(lexer.COMMA) {
		names = append(names, p.identLike())
	}
	end := p.consumeStmtEnd()
	n := &ast.WaitStmt{Names: names}
	n.SetSpan(span(start, end))
	return n
}

func (p *Parser) parseScopeStmt() ast.Stmt {
	start := p.cur().Span.Start
	p.expectPhrase("within", "scope")
	p.expect(lexer.COLON)
	body := p.parseBlock()
	n := &ast.ScopeStmt{Body: body}
	n.SetSpan(span(start, body.Span().End))
	return n
}

// parseParamList parses a comma/"and"-separated parameter list shared by
// Func declarations and lambdas.
func (p *Parser) parseParamList() []*ast.Param {
	params := []*ast.Param{p.parseParam()}
	for p.matchKeyword("and") || (p.at(lexer.COMMA) && !p.keywordAt(1, "produce") && p.matchKind(lexer.COMMA)) {
		params = append(params, p.parseParam())
	}
	return params
}

func (p *Parser) parseParam() *ast.Param {
	start := p.cur().Span.Start
	name := p.identLike()
	if p.matchKind(lexer.COLON) {
		typ := p.parseType()
		cs := p.parseConstraints()
		return &ast.Param{Name: name, Type: typ, Constraints: cs, Sp: span(start, p.toks[p.pos-1].Span.End)}
	}
	return &ast.Param{Name: name, TypeInferred: true, Sp: span(start, p.toks[p.pos-1].Span.End)}
}
