// Package lexer converts canonicalized CNL source text into an
// indentation-aware token stream.
package lexer

import (
	"fmt"

	"github.com/aster-cloud/aster/internal/ast"
)

// Kind is the closed set of token kinds the lexer produces (spec.md §3).
type Kind int

const (
	KEYWORD Kind = iota
	IDENT
	TYPE_IDENT
	INT
	LONG
	FLOAT
	STRING
	BOOL
	NULL
	DOT
	COLON
	COMMA
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	EQUALS
	LT
	GT
	NEWLINE
	INDENT
	DEDENT
	COMMENT
	EOF
)

var kindNames = map[Kind]string{
	KEYWORD:    "KEYWORD",
	IDENT:      "IDENT",
	TYPE_IDENT: "TYPE_IDENT",
	INT:        "INT",
	LONG:       "LONG",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	BOOL:       "BOOL",
	NULL:       "NULL",
	DOT:        "DOT",
	COLON:      "COLON",
	COMMA:      "COMMA",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	EQUALS:     "EQUALS",
	LT:         "LT",
	GT:         "GT",
	NEWLINE:    "NEWLINE",
	INDENT:     "INDENT",
	DEDENT:     "DEDENT",
	COMMENT:    "COMMENT",
	EOF:        "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Channel tags whether a token feeds the parser or is side-channel trivia.
type Channel int

const (
	MainChannel Channel = iota
	TriviaChannel
)

// TriviaKind classifies a trivia-channel COMMENT token.
type TriviaKind int

const (
	NotTrivia TriviaKind = iota
	Inline               // preceded by a non-trivia token on the same line
	Standalone
)

// Token is one lexical unit. Value holds the kind-dependent literal: bool
// for BOOL, int64 for INT/LONG, float64 for FLOAT, string for STRING/IDENT/
// TYPE_IDENT/KEYWORD/COMMENT, nil otherwise. A KEYWORD token's Value is a
// single lowercased word, even for keywords whose canonical surface is a
// phrase ("wait for", "depends on"): the lexer has no arrow/phrase kind to
// hold a multi-word lexeme, so each word of a phrase is emitted as its own
// KEYWORD token and the parser recognizes the phrase by matching a run of
// consecutive KEYWORD tokens against the lexicon (spec.md §4.2/§4.4). The
// same two-token trick is used for "=>": EQUALS followed immediately by GT.
type Token struct {
	Kind    Kind
	Value   any
	Span    ast.Span
	Channel Channel
	Trivia  TriviaKind
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%v)@%s", t.Kind, t.Value, t.Span.Start)
}
