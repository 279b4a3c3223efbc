package csvcodec

import (
	"fmt"
	"sort"
	"strings"
)

// levenshtein computes the edit distance between a and b over runes.
// No pack repository carries a dedicated edit-distance library, so
// this is a direct implementation of the classic dynamic-programming
// algorithm (see DESIGN.md for why stdlib-only is the right call here).
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

type keyDistance struct {
	key      string
	distance int
}

// SuggestKey synthesizes a suggestion for a key-not-found error
// following spec.md §4.8: distance 0 (case-insensitive exact match) ⇒
// "case differs"; 1-2 ⇒ a single "did you mean"; 3+ (but within
// threshold) ⇒ up to 3 closest; no close match and <=5 available keys
// ⇒ list them all; otherwise no suggestion.
func SuggestKey(key string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	threshold := len(key) / 2
	if threshold < 3 {
		threshold = 3
	}

	lowerKey := strings.ToLower(key)
	distances := make([]keyDistance, 0, len(available))
	for _, k := range available {
		if strings.ToLower(k) == lowerKey {
			return fmt.Sprintf("Did you mean %q? (case differs)", k)
		}
		distances = append(distances, keyDistance{key: k, distance: levenshtein(lowerKey, strings.ToLower(k))})
	}

	sort.Slice(distances, func(i, j int) bool {
		if distances[i].distance != distances[j].distance {
			return distances[i].distance < distances[j].distance
		}
		return distances[i].key < distances[j].key
	})

	best := distances[0]
	switch {
	case best.distance <= 2:
		return fmt.Sprintf("Did you mean %q?", best.key)
	case best.distance <= threshold:
		names := make([]string, 0, 3)
		for _, d := range distances {
			if d.distance > threshold {
				break
			}
			names = append(names, fmt.Sprintf("%q", d.key))
			if len(names) == 3 {
				break
			}
		}
		return "Did you mean one of: " + strings.Join(names, ", ") + "?"
	case len(available) <= 5:
		names := make([]string, len(available))
		for i, k := range available {
			names[i] = fmt.Sprintf("%q", k)
		}
		return "Available keys: " + strings.Join(names, ", ")
	default:
		return ""
	}
}

var boolLikeWords = []string{
	"true", "false", "yes", "no", "oui", "non", "ja", "nein", "да", "нет", "是", "否",
}

// SuggestTypeMismatch synthesizes a pattern-driven hint for a
// type_mismatch error.
func SuggestTypeMismatch(expected, actual string) string {
	lower := strings.ToLower(actual)
	switch {
	case strings.Contains(expected, "integer") && (strings.Contains(actual, ".") || strings.Contains(actual, ",")):
		return "The value contains a decimal or grouping separator; try a float/number strategy or the flexible number strategy."
	case containsAny(actual, currencySymbolSet):
		return "The value looks like currency; try NumberDecodeCurrencyStrategy or the flexible number strategy."
	case expected == "bool" && containsAnyWord(lower, boolLikeWords):
		return "The value looks boolean-like; try the flexible bool strategy for non-English words."
	case strings.Contains(expected, "date") && containsAny(actual, []string{"/", "-", "."}):
		return "The value looks date-like with a different separator or field order; try the flexible date strategy."
	case strings.Contains(expected, "date") && isAllDigits(actual):
		return "The value looks like a numeric timestamp; try secondsSince1970 or msSince1970."
	default:
		return ""
	}
}

// SuggestParsingError synthesizes a hint for a parsing_error based on
// keywords present in the message.
func SuggestParsingError(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "unterminated quote"):
		return "Check for a missing closing quote in the source row."
	case strings.Contains(lower, "quote"):
		return "Check the delimiter and quote character configuration."
	case strings.Contains(lower, "expected") && strings.Contains(lower, "found"):
		return "Check whether the delimiter choice matches the file, or relax Dialect.ExpectedFieldCount."
	default:
		return ""
	}
}

func containsAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
