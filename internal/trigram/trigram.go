// Package trigram implements the trigram similarity used by PostgreSQL's
// pg_trgm extension, for stores that do not provide it natively.
package trigram

import (
	"strings"
	"unicode"
)

// Trigrams returns the set of trigrams in s. The string is lower-cased and
// split into words of letters and digits; each word is padded with two
// spaces in front and one behind before the three-rune windows are taken.
func Trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		padded := []rune("  " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// Similarity returns the number of trigrams a and b share divided by the
// number of distinct trigrams in either. It is 0 when either has none.
func Similarity(a, b string) float64 {
	ta, tb := Trigrams(a), Trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(ta)+len(tb)-shared)
}
