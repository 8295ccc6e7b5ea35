package scaffold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// apostrophes are dropped rather than treated as word breaks.
var apostrophes = strings.NewReplacer("'", "", "\u2019", "")

// MachineName converts a display name to snake_case: "My Project" becomes
// "my_project", "XMLHttpRequest2" becomes "xml_http_request_2". Accents and
// apostrophes are dropped, so "Don't Panic" becomes "dont_panic". Applying it to its own output is a no-op.
func MachineName(s string) string {
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		folded = s
	}
	return strings.Join(words(apostrophes.Replace(folded)), "_")
}

type runeClass int

const (
	classOther runeClass = iota
	classLower
	classUpper
	classDigit
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsLetter(r):
		return classLower
	case unicode.IsDigit(r):
		return classDigit
	default:
		return classOther
	}
}

// words splits s at separators, case changes and letter/digit boundaries,
// and lowercases each word.
func words(s string) []string {
	rs := []rune(s)
	var out []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	for i, r := range rs {
		c := classify(r)
		if c == classOther {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := classify(cur[len(cur)-1])
			switch {
			case (prev == classDigit) != (c == classDigit):
				flush()
			case prev == classLower && c == classUpper:
				flush()
			case prev == classUpper && c == classUpper &&
				i+1 < len(rs) && classify(rs[i+1]) == classLower:
				// Last capital of an acronym starts the next word.
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}
