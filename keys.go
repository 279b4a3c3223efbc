package csvcodec

import "strings"

// SnakeToCamel converts "first_name" to "firstName".
func SnakeToCamel(s string) string {
	return splitJoinCamel(s, '_')
}

// KebabToCamel converts "first-name" to "firstName".
func KebabToCamel(s string) string {
	return splitJoinCamel(s, '-')
}

func splitJoinCamel(s string, sep byte) string {
	parts := strings.Split(s, string(sep))
	if len(parts) == 0 {
		return s
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return b.String()
}

// ScreamingToCamel converts "FIRST_NAME" to "firstName".
func ScreamingToCamel(s string) string {
	return SnakeToCamel(strings.ToLower(s))
}

// PascalToCamel converts "FirstName" to "firstName" by lowercasing the
// first rune and leaving the rest untouched.
func PascalToCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = toLowerRune(r[0])
	return string(r)
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// ApplyKeyDecodeStrategy transforms a raw header name per the
// configured KeyDecodeStrategy.
func ApplyKeyDecodeStrategy(raw string, strat KeyDecodeStrategy) string {
	switch strat.Kind {
	case KeyDecodeDefault:
		return raw
	case KeyDecodeSnake:
		return SnakeToCamel(raw)
	case KeyDecodeKebab:
		return KebabToCamel(raw)
	case KeyDecodeScreaming:
		return ScreamingToCamel(raw)
	case KeyDecodePascal:
		return PascalToCamel(raw)
	case KeyDecodeCustom:
		if strat.Custom != nil {
			return strat.Custom(raw)
		}
		return raw
	default:
		return raw
	}
}

// splitCamelWords splits "firstName" into ["first", "Name"] at
// uppercase boundaries, keeping each boundary rune with its following
// segment.
func splitCamelWords(s string) []string {
	if s == "" {
		return nil
	}
	var words []string
	start := 0
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		if runes[i] >= 'A' && runes[i] <= 'Z' {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}

// CamelToSnakeHeader converts "firstName" to "first_name".
func CamelToSnakeHeader(s string) string {
	words := splitCamelWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// CamelToKebabHeader converts "firstName" to "first-name".
func CamelToKebabHeader(s string) string {
	words := splitCamelWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// CamelToScreamingHeader converts "firstName" to "FIRST_NAME".
func CamelToScreamingHeader(s string) string {
	return strings.ToUpper(CamelToSnakeHeader(s))
}

// ApplyKeyEncodeStrategy transforms a record key into a header name
// per the configured KeyEncodeStrategy.
func ApplyKeyEncodeStrategy(key string, strat KeyEncodeStrategy) string {
	switch strat.Kind {
	case KeyEncodeDefault:
		return key
	case KeyEncodeSnake:
		return CamelToSnakeHeader(key)
	case KeyEncodeKebab:
		return CamelToKebabHeader(key)
	case KeyEncodeScreaming:
		return CamelToScreamingHeader(key)
	case KeyEncodeCustom:
		if strat.Custom != nil {
			return strat.Custom(key)
		}
		return key
	default:
		return key
	}
}
