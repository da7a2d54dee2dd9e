// Package parser implements the recursive-descent parser for the CNL
// grammar (spec.md §4.4): token stream in, a surface ast.File out, or a
// positional error on the first structural failure — there is no error
// recovery (spec.md §4.4 "Failure").
package parser

import (
	"fmt"

	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/lexer"
)

// Error is the parser's single positional failure kind.
type Error struct {
	Msg string
	Pos ast.Pos
}

func (e *Error) Error() string { return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Msg) }

// Parser holds the token cursor. Trivia-channel tokens (comments) are
// filtered out before parsing begins — the parser only ever sees the main
// channel (spec.md §3 "Tokens": channel tag separates the two streams).
type Parser struct {
	toks []lexer.Token
	pos  int

	// typeParamSet and effectParamSet hold the type/effect parameter names
	// declared by the function currently being parsed (spec.md §4.4's
	// "given ... of T" / "it performs ... of E" clauses), so parseType can
	// tell a generic reference (ast.TypeVar/ast.EffectVar) from an ordinary
	// ast.TypeName. Both are nil outside of a function header.
	typeParamSet   map[string]bool
	effectParamSet map[string]bool
}

// Parse parses a full token stream (as produced by internal/lexer, already
// keyword-translated) into an ast.File.
func Parse(tokens []lexer.Token) (file *ast.File, err error) {
	main := make([]lexer.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Channel == lexer.MainChannel {
			main = append(main, t)
		}
	}
	p := &Parser{toks: main}

	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(*Error); ok {
				err = perr
				return
			}
			panic(r)
		}
	}()

	return p.parseFile(), nil
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[idx]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if t.Kind != lexer.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) at(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) fail(format string, args ...any) {
	panic(&Error{Msg: fmt.Sprintf(format, args...), Pos: p.cur().Span.Start})
}

func (p *Parser) expect(k lexer.Kind) lexer.Token {
	if !p.at(k) {
		p.fail("expected %s, got %s", k, p.cur().Kind)
	}
	return p.advance()
}

// keyword reports whether the current token is KEYWORD with the given
// (already-lowercased) word value.
func (p *Parser) keyword(word string) bool {
	t := p.cur()
	return t.Kind == lexer.KEYWORD && t.Value == word
}

func (p *Parser) keywordAt(n int, word string) bool {
	t := p.peekAt(n)
	return t.Kind == lexer.KEYWORD && t.Value == word
}

// matchKeyword consumes a single keyword word if present.
func (p *Parser) matchKeyword(word string) bool {
	if p.keyword(word) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectKeyword(word string) lexer.Token {
	if !p.keyword(word) {
		p.fail("expected keyword %q, got %s(%v)", word, p.cur().Kind, p.cur().Value)
	}
	return p.advance()
}

// phrase reports whether the next len(words) tokens are consecutive
// KEYWORD tokens matching words in order (spec.md §4.2 note: multi-word
// keywords lex as a run of single-word KEYWORD tokens).
func (p *Parser) phrase(words ...string) bool {
	for i, w := range words {
		if !p.keywordAt(i, w) {
			return false
		}
	}
	return true
}

func (p *Parser) matchPhrase(words ...string) bool {
	if !p.phrase(words...) {
		return false
	}
	for range words {
		p.advance()
	}
	return true
}

func (p *Parser) expectPhrase(words ...string) {
	if !p.matchPhrase(words...) {
		p.fail("expected %v", words)
	}
}

// skipNewlines consumes zero or more NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.at(lexer.NEWLINE) {
		p.advance()
	}
}

// dottedName parses IDENT|TYPE_IDENT ("." IDENT|TYPE_IDENT)*.
func (p *Parser) dottedName() []string {
	parts := []string{p.identLike()}
	for p.at(lexer.DOT) && (p.peekAt(1).Kind == lexer.IDENT || p.peekAt(1).Kind == lexer.TYPE_IDENT) {
		p.advance()
		parts = append(parts, p.identLike())
	}
	return parts
}

func (p *Parser) identLike() string {
	t := p.cur()
	if t.Kind != lexer.IDENT && t.Kind != lexer.TYPE_IDENT {
		p.fail("expected identifier, got %s", t.Kind)
	}
	p.advance()
	return t.Value.(string)
}

func span(start, end ast.Pos) ast.Span { return ast.Span{Start: start, End: end} }

func (p *Parser) parseFile() *ast.File {
	start := p.cur().Span.Start
	p.skipNewlines()

	moduleName := ""
	if p.matchKeyword("module") {
		moduleName = joinDotted(p.dottedName())
		p.expect(lexer.DOT)
	} else if p.phrase("this", "module", "is") {
		p.matchPhrase("this", "module", "is")
		moduleName = joinDotted(p.dottedName())
		p.expect(lexer.DOT)
	}
	p.skipNewlines()

	var decls []ast.Decl
	for !p.at(lexer.EOF) {
		p.skipNewlines()
		if p.at(lexer.EOF) {
			break
		}
		decls = append(decls, p.parseDecl())
		p.skipNewlines()
	}

	end := p.cur().Span.End
	file := &ast.File{ModuleName: moduleName, Decls: decls}
	file.SetSpan(span(start, end))
	return file
}

// matchKind consumes the current token if it has kind k.
func (p *Parser) matchKind(k lexer.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func joinDotted(parts []string) string {
	s := parts[0]
	for _, p := range parts[1:] {
		s += "." + p
	}
	return s
}
