package alcohol

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"accident-risk-api/risk"
)

const maxSuggestDistance = 3

// Result is a resolved drink description with legal-limit checks.
type Result struct {
	Key             string            `json:"key"`
	Level           risk.AlcoholLevel `json:"level"`
	Description     string            `json:"description"`
	PerMille        decimal.Decimal   `json:"per_mille"`
	LegalPrivate    bool              `json:"legal_private"`
	LegalCommercial bool              `json:"legal_commercial"`
	WaitHours       int               `json:"wait_hours"`
}

// Search resolves free text such as "3 bira" or "2 duble rakı içtim".
// It tries an exact key, then a bare drink name as one drink, then the
// longest key found as whole words in the text or containing the text, then
// a "<count> <drink>" pattern mapped onto the drink's ladder.
func (t *Table) Search(text string) (Result, bool) {
	in := normalize(text)
	if in == "" {
		return Result{}, false
	}

	if i, ok := t.index[in]; ok {
		return t.result(t.entries[i]), true
	}
	if rungs, ok := t.ladders[in]; ok {
		return t.result(t.entries[t.index[rungs[0]]]), true
	}

	best := -1
	for i, e := range t.entries {
		if !containsWord(in, e.Key) && !strings.Contains(e.Key, in) {
			continue
		}
		if best < 0 || len(e.Key) > len(t.entries[best].Key) {
			best = i
		}
	}
	if best >= 0 {
		return t.result(t.entries[best]), true
	}

	if t.pattern != nil {
		if m := t.pattern.FindStringSubmatch(in); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil && n > 0 {
				rungs := t.ladders[m[2]]
				key := rungs[min(n, len(rungs))-1]
				return t.result(t.entries[t.index[key]]), true
			}
		}
	}

	return Result{}, false
}

// Suggest returns the key closest to text by edit distance, if any key is
// close enough to be a plausible typo.
func (t *Table) Suggest(text string) (string, bool) {
	in := normalize(text)
	if in == "" {
		return "", false
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, e := range t.entries {
		if d := levenshtein.ComputeDistance(in, e.Key); d < bestDist {
			best, bestDist = e.Key, d
		}
	}
	return best, best != ""
}

func (t *Table) result(e Entry) Result {
	r := Result{
		Key:             e.Key,
		Level:           e.Level,
		Description:     e.Description,
		PerMille:        e.PerMille,
		LegalPrivate:    e.PerMille.LessThan(t.limits.Private),
		LegalCommercial: e.PerMille.LessThan(t.limits.Commercial),
	}
	if e.PerMille.IsPositive() {
		r.WaitHours = int(e.PerMille.Div(t.limits.EliminationPerHour).Ceil().IntPart())
	}
	return r
}

// normalize lowercases with Turkish rules (I -> ı, İ -> i) and collapses
// whitespace. A Caser is not safe for concurrent use, so one is built per
// call.
func normalize(s string) string {
	s = cases.Lower(language.Turkish).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// containsWord reports whether needle occurs in haystack with no letter or
// digit directly on either side.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for from := 0; from <= len(haystack)-len(needle); {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(haystack[start:])
		from = start + size
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
