package lexicon

import "testing"

func TestEnglishLookupRoundTrip(t *testing.T) {
	en := English()
	for sem, surface := range en.Keywords {
		got, ok := en.Lookup(surface)
		if !ok || got != sem {
			t.Fatalf("Lookup(%q) = (%v, %v), want (%v, true)", surface, got, ok, sem)
		}
	}
}

func TestLoadRejectsEmptyKeywords(t *testing.T) {
	_, err := Load([]byte("locale: fr\n"))
	if err == nil {
		t.Fatal("expected error loading lexicon with no keywords")
	}
}

func TestTranslateNonEnglish(t *testing.T) {
	fr, err := Load([]byte(`
locale: fr
keywords:
  RETURN: "retourner"
  IF: "si"
remove_words: ["un", "une", "le", "la"]
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := Translate(fr, "retourner"); got != "return" {
		t.Fatalf("Translate(retourner) = %q, want %q", got, "return")
	}
	if got := Translate(fr, "inconnu"); got != "inconnu" {
		t.Fatalf("Translate of non-keyword must pass through unchanged, got %q", got)
	}
}

func TestTranslateEnglishIsIdentity(t *testing.T) {
	en := English()
	if got := Translate(en, "return"); got != "return" {
		t.Fatalf("Translate on English lexicon must be identity, got %q", got)
	}
}
