// Package canon implements the canonicalizer (spec.md §4.1): the first
// compiler stage, which normalizes line endings, quotes, interior
// whitespace, multi-word keyword casing, and (optionally) removes English
// articles and substitutes domain identifiers, producing a string that is
// semantically equivalent for the lexer. Canonicalization never fails; it
// only transforms (spec.md §4.1 "Failure").
package canon

import (
	"bytes"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/aster-cloud/aster/internal/lexicon"
)

// Options configures one canonicalization pass.
type Options struct {
	Lexicon *lexicon.Lexicon // defaults to lexicon.English() if nil
	Domain  *lexicon.Domain  // nil disables identifier substitution (step 5)
}

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

var smartQuoteReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
)

var interiorWhitespace = regexp.MustCompile(`[ \t]+`)
var spaceBeforePunct = regexp.MustCompile(` +([.,:])`)

// Canonicalize runs the full canonicalization algorithm (spec.md §4.1 steps
// 1-5) and is idempotent: Canonicalize(Canonicalize(s)) == Canonicalize(s).
func Canonicalize(source string, opts Options) string {
	lx := opts.Lexicon
	if lx == nil {
		lx = lexicon.English()
	}

	s := normalizeEncoding(source)
	s = normalizeLineEndings(s)
	s = smartQuoteReplacer.Replace(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = canonicalizeLine(line, lx, opts.Domain)
	}
	return strings.Join(lines, "\n")
}

// normalizeEncoding strips a UTF-8 BOM and applies Unicode NFC
// normalization so lexically equivalent source in different Unicode forms
// produces identical output.
func normalizeEncoding(s string) string {
	b := []byte(s)
	b = bytes.TrimPrefix(b, bomUTF8)
	if !norm.NFC.IsNormal(b) {
		b = norm.NFC.Bytes(b)
	}
	return string(b)
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// canonicalizeLine canonicalizes one line: leading whitespace (indentation)
// is preserved verbatim so column positions of non-whitespace text survive
// (spec.md §3 invariants); string-literal and comment regions are left
// untouched by keyword-lowering/article-removal/domain-substitution so that
// tokenizing those regions later is unaffected by this pass (spec.md §9
// open question).
func canonicalizeLine(line string, lx *lexicon.Lexicon, domain *lexicon.Domain) string {
	indent := leadingWhitespace(line)
	rest := line[len(indent):]

	segs := segmentProtected(rest)
	var out strings.Builder
	out.WriteString(indent)
	for _, seg := range segs {
		if seg.protected {
			out.WriteString(seg.text)
			continue
		}
		t := seg.text
		t = interiorWhitespace.ReplaceAllString(t, " ")
		t = spaceBeforePunct.ReplaceAllString(t, "$1")
		t = lowercaseKeywordPhrases(t, lx)
		t = removeWholeWords(t, lx.RemoveWords)
		if domain != nil {
			t = substituteWholeWords(t, domain.Translations)
		}
		t = interiorWhitespace.ReplaceAllString(t, " ")
		out.WriteString(t)
	}
	return out.String()
}

func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

type segment struct {
	text      string
	protected bool
}

// segmentProtected splits a line (with leading indentation already removed)
// into alternating protected (string literal / line comment) and
// unprotected runs. Protected runs are copied through untouched by every
// later transform in this pass.
func segmentProtected(s string) []segment {
	var segs []segment
	var cur strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '"':
			if cur.Len() > 0 {
				segs = append(segs, segment{text: cur.String()})
				cur.Reset()
			}
			start := i
			i++
			for i < len(s) {
				if s[i] == '\\' && i+1 < len(s) {
					i += 2
					continue
				}
				if s[i] == '"' {
					i++
					break
				}
				i++
			}
			segs = append(segs, segment{text: s[start:i], protected: true})
		case c == '#' || (c == '/' && i+1 < len(s) && s[i+1] == '/'):
			if cur.Len() > 0 {
				segs = append(segs, segment{text: cur.String()})
				cur.Reset()
			}
			segs = append(segs, segment{text: s[i:], protected: true})
			i = len(s)
		default:
			cur.WriteByte(c)
			i++
		}
	}
	if cur.Len() > 0 {
		segs = append(segs, segment{text: cur.String()})
	}
	return segs
}

// lowercaseKeywordPhrases lowercases every occurrence of a multi-word
// keyword phrase, case-insensitively, greedily matching the longest phrase
// first so e.g. "Wait For" inside "Wait For A And B" is not partially
// shadowed by a shorter phrase (spec.md §4.1 step 3).
func lowercaseKeywordPhrases(s string, lx *lexicon.Lexicon) string {
	phrases := make([]string, 0, len(lexicon.MultiWord))
	for _, sem := range lexicon.MultiWord {
		if surface := lx.Surface(sem); surface != "" && strings.Contains(surface, " ") {
			phrases = append(phrases, surface)
		}
	}
	sort.Slice(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })

	for _, phrase := range phrases {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
		s = re.ReplaceAllString(s, phrase)
	}
	return s
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// tokenizeWords splits s into alternating word / non-word runs, preserving
// every byte of the original string across the concatenation of runs.
func tokenizeWords(s string) []string {
	var runs []string
	var cur strings.Builder
	var curIsWord bool
	first := true
	for _, r := range s {
		w := isWordChar(r)
		if !first && w != curIsWord {
			runs = append(runs, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		curIsWord = w
		first = false
	}
	if cur.Len() > 0 {
		runs = append(runs, cur.String())
	}
	return runs
}

// removeWholeWords deletes each whole-word (case-insensitive) match of
// words from s (spec.md §4.1 step 4: English article removal).
func removeWholeWords(s string, words []string) string {
	if len(words) == 0 {
		return s
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	runs := tokenizeWords(s)
	var out strings.Builder
	for _, run := range runs {
		if len(run) > 0 && isWordChar(rune(run[0])) && set[strings.ToLower(run)] {
			continue
		}
		out.WriteString(run)
	}
	return out.String()
}

// substituteWholeWords replaces exact, whole-word (Unicode boundary)
// matches using table, case-sensitively, so "Driver" substitutes but
// "driver" or "Driverless" do not (spec.md §4.1 step 5).
func substituteWholeWords(s string, table map[string]string) string {
	if len(table) == 0 {
		return s
	}
	runs := tokenizeWords(s)
	var out strings.Builder
	for _, run := range runs {
		if repl, ok := table[run]; ok {
			out.WriteString(repl)
			continue
		}
		out.WriteString(run)
	}
	return out.String()
}
