package lexicon

// Translate rewrites a non-English keyword surface string to its canonical
// English form using this lexicon's semantic mapping against the English
// lexicon's surface forms (spec.md §4.3). Non-keyword surfaces (identifiers,
// literals) are returned unchanged — callers only invoke this for tokens
// already classified as keywords by Lookup.
func Translate(lx *Lexicon, surface string) string {
	if lx.IsEnglish() {
		return surface
	}
	sem, ok := lx.Lookup(surface)
	if !ok {
		return surface
	}
	en := English().Surface(sem)
	if en == "" {
		return surface
	}
	return en
}
