package canon

import (
	"testing"

	"github.com/aster-cloud/aster/internal/lexicon"
)

func TestIdempotent(t *testing.T) {
	samples := []string{
		"This module is demo.\nRule greet given name: Text, produce Text:\n  Return \"Hello, \" plus name.\n",
		"Wait   For   a   and b.",
		"  x:   Int   ,",
		"# a comment about a the an\n",
	}
	for _, s := range samples {
		once := Canonicalize(s, Options{})
		twice := Canonicalize(once, Options{})
		if once != twice {
			t.Fatalf("not idempotent for %q:\nonce:  %q\ntwice: %q", s, once, twice)
		}
	}
}

func TestArticleRemoval(t *testing.T) {
	got := Canonicalize("Define a Driver with the name.", Options{})
	want := "Define Driver with name."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestArticlesPreservedInsideStrings(t *testing.T) {
	got := Canonicalize(`Return "a cat and a hat".`, Options{})
	want := `Return "a cat and a hat".`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCommentsUntouchedByArticleRemoval(t *testing.T) {
	got := Canonicalize("x. # remove the article here, not", Options{})
	want := "x. # remove the article here, not"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSmartQuotesNormalized(t *testing.T) {
	got := Canonicalize("Return \u201cHello\u201d.", Options{})
	want := `Return "Hello".`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDomainSubstitution(t *testing.T) {
	dom := &lexicon.Domain{Translations: map[string]string{"驾驶员": "Driver"}}
	got := Canonicalize("Define 驾驶员 with name: Text.", Options{Domain: dom})
	want := "Define Driver with name: Text."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestKeywordPhraseLowercasedInPlace(t *testing.T) {
	got := Canonicalize("WAIT FOR orderId and email.", Options{})
	want := "wait for orderId and email."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIndentationColumnsPreserved(t *testing.T) {
	got := Canonicalize("    Return  x.", Options{})
	want := "    Return x."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
