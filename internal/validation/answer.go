package validation

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var articles = []string{"the ", "a ", "an "}

// NormalizeAnswer folds case, strips accents and punctuation, drops a leading
// article and collapses whitespace.
func NormalizeAnswer(answer string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, answer)
	if err != nil {
		stripped = answer
	}
	folded := cases.Fold().String(stripped)

	var b strings.Builder
	for _, r := range folded {
		if !unicode.IsPunct(r) {
			b.WriteRune(r)
		}
	}

	normalized := strings.Join(strings.Fields(b.String()), " ")
	for _, article := range articles {
		if rest, ok := strings.CutPrefix(normalized, article); ok {
			return rest
		}
	}
	return normalized
}

// IsSimilarAnswer reports whether a given answer is close enough to the expected one
func IsSimilarAnswer(expected, given string) bool {
	want := NormalizeAnswer(expected)
	got := NormalizeAnswer(given)
	if got == "" {
		return false
	}
	if want == got {
		return true
	}

	a, b := []rune(want), []rune(got)
	shortest, longest := len(a), len(b)
	if shortest > longest {
		shortest, longest = longest, shortest
	}

	// "Lake Victoria" accepts "victoria" but not "a"
	if shortest*2 >= longest && (strings.Contains(want, got) || strings.Contains(got, want)) {
		return true
	}

	return float64(levenshtein(a, b))/float64(longest) < 0.2
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
