// Package lexicon holds the locale keyword registry: the mapping from
// abstract semantic token kinds (IF, FUNC_PRODUCE, WAIT_FOR, ...) to
// locale-specific keyword strings, plus the reverse index used by the
// keyword translator to rewrite non-English tokens to their canonical
// English form.
//
// Lexicon data is read-only configuration (spec.md §2): this package loads
// it from YAML, it never mutates a loaded Lexicon, and the pipeline threads
// the loaded value through explicitly rather than reaching for a process
// global.
package lexicon

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the lexicon file format version this loader understands.
const SchemaVersion = "aster.lexicon/v1"

// Semantic is an abstract, locale-independent keyword kind.
type Semantic string

const (
	KwModule       Semantic = "MODULE"
	KwThisModuleIs Semantic = "THIS_MODULE_IS"
	KwDefine       Semantic = "DEFINE"
	KwWith         Semantic = "WITH"
	KwHas          Semantic = "HAS"
	KwAsOneOf      Semantic = "AS_ONE_OF"
	KwOr           Semantic = "OR"
	KwAnd          Semantic = "AND"
	KwRule         Semantic = "RULE"
	KwGiven        Semantic = "GIVEN"
	KwProduce      Semantic = "PRODUCE"
	KwItPerforms   Semantic = "IT_PERFORMS"
	KwUse          Semantic = "USE"
	KwAs           Semantic = "AS"
	KwLet          Semantic = "LET"
	KwBe           Semantic = "BE"
	KwSet          Semantic = "SET"
	KwTo           Semantic = "TO"
	KwReturn       Semantic = "RETURN"
	KwIf           Semantic = "IF"
	KwOtherwise    Semantic = "OTHERWISE"
	KwMatch        Semantic = "MATCH"
	KwWhen         Semantic = "WHEN"
	KwWorkflow     Semantic = "WORKFLOW"
	KwStep         Semantic = "STEP"
	KwDependsOn    Semantic = "DEPENDS_ON"
	KwCompensate   Semantic = "COMPENSATE"
	KwRetry        Semantic = "RETRY"
	KwMaxAttempts  Semantic = "MAX_ATTEMPTS"
	KwBackoff      Semantic = "BACKOFF"
	KwTimeout      Semantic = "TIMEOUT"
	KwSeconds      Semantic = "SECONDS"
	KwStart        Semantic = "START"
	KwAsync        Semantic = "ASYNC"
	KwWaitFor      Semantic = "WAIT_FOR"
	KwWithinScope  Semantic = "WITHIN_SCOPE"
	KwOkOf         Semantic = "OK_OF"
	KwErrOf        Semantic = "ERR_OF"
	KwSomeOf       Semantic = "SOME_OF"
	KwNone         Semantic = "NONE"
	KwAwait        Semantic = "AWAIT"
	KwNot          Semantic = "NOT"
	KwLessThan     Semantic = "LESS_THAN"
	KwGreaterThan  Semantic = "GREATER_THAN"
	KwEqualsTo     Semantic = "EQUALS_TO"
	KwAtLeast      Semantic = "AT_LEAST"
	KwAtMost       Semantic = "AT_MOST"
	KwPlus         Semantic = "PLUS"
	KwMinus        Semantic = "MINUS"
	KwTimes        Semantic = "TIMES"
	KwDividedBy    Semantic = "DIVIDED_BY"
	KwRequired     Semantic = "REQUIRED"
	KwBetween      Semantic = "BETWEEN"
	KwMatchingPat  Semantic = "MATCHING_PATTERN"
	KwOptionOf     Semantic = "OPTION_OF"
	KwTrue         Semantic = "TRUE"
	KwFalse        Semantic = "FALSE"
	KwNull         Semantic = "NULL"
)

// MultiWord lists the semantic kinds whose canonical English surface form
// is more than one word, longest-match-first within each length tier. The
// canonicalizer uses this to lowercase phrases in place (spec.md §4.1 step
// 3); the keyword translator uses it to rewrite a non-English phrase back
// to this exact English spelling.
var MultiWord = []Semantic{
	KwThisModuleIs, KwAsOneOf, KwItPerforms, KwDependsOn, KwMaxAttempts,
	KwWaitFor, KwWithinScope, KwOkOf, KwErrOf, KwSomeOf, KwLessThan,
	KwGreaterThan, KwEqualsTo, KwAtLeast, KwAtMost, KwDividedBy,
	KwMatchingPat, KwOptionOf,
}

// Lexicon maps semantic keyword kinds to the concrete keyword string(s) of
// one human locale, plus the locale's removable function words (English:
// "a", "an", "the") and any domain identifier substitutions.
type Lexicon struct {
	Locale      string              `yaml:"locale"`
	Keywords    map[Semantic]string `yaml:"keywords"`
	RemoveWords []string            `yaml:"remove_words"`

	// byKeyword is the reverse index: lowercased keyword surface -> semantic
	// kind, built once at load time.
	byKeyword map[string]Semantic

	// words is the set of individual lowercased words that appear in any
	// keyword surface, single- or multi-word alike (e.g. "wait for" yields
	// both "wait" and "for"). The lexer consults this, not byKeyword, when
	// classifying a single scanned identifier: multi-word keywords are
	// lexed as a run of individual KEYWORD tokens, and the parser matches
	// the run against a phrase (spec.md §4.2/§4.4).
	words map[string]bool
}

// Domain is an optional table of localized identifiers (struct/field/
// function/enum-variant names) to their canonical English names, used by
// the canonicalizer's step 5 substitution pass.
type Domain struct {
	Name         string            `yaml:"name"`
	Translations map[string]string `yaml:"translations"`
}

// English returns the built-in, always-available English lexicon.
func English() *Lexicon {
	lx := &Lexicon{
		Locale: "en",
		Keywords: map[Semantic]string{
			KwModule:       "module",
			KwThisModuleIs: "this module is",
			KwDefine:       "define",
			KwWith:         "with",
			KwHas:          "has",
			KwAsOneOf:      "as one of",
			KwOr:           "or",
			KwAnd:          "and",
			KwRule:         "rule",
			KwGiven:        "given",
			KwProduce:      "produce",
			KwItPerforms:   "it performs",
			KwUse:          "use",
			KwAs:           "as",
			KwLet:          "let",
			KwBe:           "be",
			KwSet:          "set",
			KwTo:           "to",
			KwReturn:       "return",
			KwIf:           "if",
			KwOtherwise:    "otherwise",
			KwMatch:        "match",
			KwWhen:         "when",
			KwWorkflow:     "workflow",
			KwStep:         "step",
			KwDependsOn:    "depends on",
			KwCompensate:   "compensate",
			KwRetry:        "retry",
			KwMaxAttempts:  "max attempts",
			KwBackoff:      "backoff",
			KwTimeout:      "timeout",
			KwSeconds:      "seconds",
			KwStart:        "start",
			KwAsync:        "async",
			KwWaitFor:      "wait for",
			KwWithinScope:  "within scope",
			KwOkOf:         "ok of",
			KwErrOf:        "err of",
			KwSomeOf:       "some of",
			KwNone:         "none",
			KwAwait:        "await",
			KwNot:          "not",
			KwLessThan:     "less than",
			KwGreaterThan:  "greater than",
			KwEqualsTo:     "equals to",
			KwAtLeast:      "at least",
			KwAtMost:       "at most",
			KwPlus:         "plus",
			KwMinus:        "minus",
			KwTimes:        "times",
			KwDividedBy:    "divided by",
			KwRequired:     "required",
			KwBetween:      "between",
			KwMatchingPat:  "matching pattern",
			KwOptionOf:     "option of",
			KwTrue:         "true",
			KwFalse:        "false",
			KwNull:         "null",
		},
		RemoveWords: []string{"a", "an", "the"},
	}
	lx.buildIndex()
	return lx
}

func (lx *Lexicon) buildIndex() {
	lx.byKeyword = make(map[string]Semantic, len(lx.Keywords))
	lx.words = make(map[string]bool)
	for sem, surface := range lx.Keywords {
		lx.byKeyword[surface] = sem
		for _, w := range strings.Fields(surface) {
			lx.words[w] = true
		}
	}
}

// IsKeywordWord reports whether word (already lowercased) is one of the
// individual words making up any keyword surface in this lexicon, whether
// that keyword is single- or multi-word.
func (lx *Lexicon) IsKeywordWord(word string) bool {
	return lx.words[word]
}

// Load parses a lexicon definition from YAML (spec.md §2: "read-only
// configuration with a documented shape").
func Load(data []byte) (*Lexicon, error) {
	var lx Lexicon
	if err := yaml.Unmarshal(data, &lx); err != nil {
		return nil, fmt.Errorf("lexicon: parse: %w", err)
	}
	if lx.Locale == "" {
		return nil, fmt.Errorf("lexicon: missing locale")
	}
	if len(lx.Keywords) == 0 {
		return nil, fmt.Errorf("lexicon: %s: no keywords defined", lx.Locale)
	}
	lx.buildIndex()
	return &lx, nil
}

// LoadDomain parses a domain identifier table from YAML.
func LoadDomain(data []byte) (*Domain, error) {
	var d Domain
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("lexicon: domain: parse: %w", err)
	}
	return &d, nil
}

// Lookup returns the semantic kind for a keyword surface string (already
// lowercased by the caller), and whether it is recognized as a keyword at
// all in this lexicon.
func (lx *Lexicon) Lookup(surface string) (Semantic, bool) {
	sem, ok := lx.byKeyword[surface]
	return sem, ok
}

// Surface returns the canonical surface string for a semantic kind, or ""
// if this lexicon does not define it.
func (lx *Lexicon) Surface(sem Semantic) string {
	return lx.Keywords[sem]
}

// IsEnglish reports whether this lexicon is the canonical English one (no
// keyword translation pass is needed for it).
func (lx *Lexicon) IsEnglish() bool { return lx.Locale == "en" }
