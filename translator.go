package csvcodec

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// ValueTranslator applies a StrategySet's per-type decode/encode rules
// to individual field values. It holds no per-call state and is safe
// for concurrent use, matching the "shareable immutable" model in
// spec.md §5.
type ValueTranslator struct {
	Strategies StrategySet
}

// NewValueTranslator binds a StrategySet to a ValueTranslator.
func NewValueTranslator(strategies StrategySet) *ValueTranslator {
	return &ValueTranslator{Strategies: strategies}
}

// IsNil reports whether field, already unescaped and optionally
// trimmed, represents a nil value under the configured NilDecoding
// strategy. The empty_string strategy requires zero *unquoted* bytes;
// callers pass wasQuoted so a quoted empty string is never treated as
// nil.
func (t *ValueTranslator) IsNil(field string, wasQuoted bool) bool {
	switch t.Strategies.NilDecoding.Kind {
	case NilDecodeEmptyString:
		return !wasQuoted && field == ""
	case NilDecodeNullLiteral:
		return strings.EqualFold(strings.TrimSpace(field), "null")
	case NilDecodeCustom:
		trimmed := strings.TrimSpace(field)
		for _, candidate := range t.Strategies.NilDecoding.Custom {
			if trimmed == candidate {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// DecodeString returns field unchanged; string decoding has no
// strategy variation beyond what the parser/codec already applied
// (unescaping, trimming).
func (t *ValueTranslator) DecodeString(field string) (string, error) {
	return field, nil
}

var (
	standardTrue  = []string{"true", "yes", "1"}
	standardFalse = []string{"false", "no", "0"}
	flexibleTrue  = append(append([]string{}, standardTrue...), "oui", "ja", "да", "是")
	flexibleFalse = append(append([]string{}, standardFalse...), "non", "nein", "нет", "否")
)

// DecodeBool parses field as a boolean under the configured
// BoolDecoding strategy.
func (t *ValueTranslator) DecodeBool(field string) (bool, error) {
	trimmed := strings.TrimSpace(field)
	lower := strings.ToLower(trimmed)

	switch t.Strategies.BoolDecoding.Kind {
	case BoolDecodeStandard:
		return matchBoolSet(lower, standardTrue, standardFalse, field)
	case BoolDecodeFlexible:
		return matchBoolSet(lower, flexibleTrue, flexibleFalse, field)
	case BoolDecodeCustom:
		return matchBoolSet(trimmed, t.Strategies.BoolDecoding.TrueSet, t.Strategies.BoolDecoding.FalseSet, field)
	default:
		return matchBoolSet(lower, standardTrue, standardFalse, field)
	}
}

func matchBoolSet(candidate string, trueSet, falseSet []string, original string) (bool, error) {
	for _, v := range trueSet {
		if candidate == strings.ToLower(v) || candidate == v {
			return true, nil
		}
	}
	for _, v := range falseSet {
		if candidate == strings.ToLower(v) || candidate == v {
			return false, nil
		}
	}
	return false, newTypeMismatchErr("bool", original)
}

// DecodeInt64 parses field as a signed integer. Under the flexible
// number strategy, digit-group separators and currency affixes are
// stripped before parsing.
func (t *ValueTranslator) DecodeInt64(field string) (int64, error) {
	cleaned, err := t.cleanNumeric(field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, newTypeMismatchErr("integer", field)
	}
	return v, nil
}

// DecodeUint64 parses field as an unsigned integer.
func (t *ValueTranslator) DecodeUint64(field string) (uint64, error) {
	cleaned, err := t.cleanNumeric(field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(cleaned, 10, 64)
	if err != nil {
		return 0, newTypeMismatchErr("unsigned integer", field)
	}
	return v, nil
}

// cleanNumeric strips grouping separators / currency affixes for
// integer decoding under the flexible strategy; standard strategy
// rejects any non-digit (besides a leading sign) outright.
func (t *ValueTranslator) cleanNumeric(field string) (string, error) {
	trimmed := strings.TrimSpace(field)
	if t.Strategies.NumberDecoding.Kind != NumberDecodeFlexible {
		return trimmed, nil
	}
	s := stripCurrencyAffixes(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	// Infer the grouping separator: the one that is NOT the rightmost
	// punctuation mark, if both appear (the decimal mark is kept, so the
	// integer parse rejects it); otherwise any comma/period is treated as
	// grouping for the integer path.
	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	default:
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, ".", "")
	}
	return s, nil
}

var currencySymbolSet = []string{"$", "€", "£", "¥", "₹"}

func stripCurrencyAffixes(s string) string {
	s = strings.TrimSpace(s)
	for _, sym := range currencySymbolSet {
		s = strings.TrimPrefix(s, sym)
		s = strings.TrimSuffix(s, sym)
	}
	s = strings.TrimSpace(s)
	// Strip a trailing 3-letter ISO-like currency code, e.g. "7.50 USD".
	if len(s) > 4 {
		tail := s[len(s)-3:]
		if isAllUpperLetters(tail) && s[len(s)-4] == ' ' {
			s = strings.TrimSpace(s[:len(s)-4])
		}
	}
	return s
}

func isAllUpperLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return len(s) > 0
}

// DecodeFloat64 parses field as a floating point / decimal value under
// the configured NumberDecoding strategy.
func (t *ValueTranslator) DecodeFloat64(field string) (float64, error) {
	switch t.Strategies.NumberDecoding.Kind {
	case NumberDecodeStandard:
		return parseStandardFloat(field)
	case NumberDecodeFlexible:
		return t.parseFlexibleFloat(field)
	case NumberDecodeLocale, NumberDecodeParseStrategy:
		return t.parseLocaleFloat(field, t.Strategies.NumberDecoding.Locale)
	case NumberDecodeCurrency:
		return t.parseCurrencyFloat(field, t.Strategies.NumberDecoding.CurrencyCode, t.Strategies.NumberDecoding.Locale)
	default:
		return parseStandardFloat(field)
	}
}

func parseStandardFloat(field string) (float64, error) {
	trimmed := strings.TrimSpace(field)
	if strings.ContainsAny(trimmed, ", ") {
		return 0, newTypeMismatchErr("float", field)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, newTypeMismatchErr("float", field)
	}
	return v, nil
}

// parseFlexibleFloat implements the heuristic described in spec.md
// §4.3: strip currency, then disambiguate ',' vs '.' by position and
// digit-group shape. The EU interpretation (',' as decimal mark) is used
// only when no '.' is present anywhere in the field and exactly one ','
// occurs, whatever the number of digits after it.
func (t *ValueTranslator) parseFlexibleFloat(field string) (float64, error) {
	s := stripCurrencyAffixes(strings.TrimSpace(field))
	s = strings.ReplaceAll(s, " ", "")

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	var normalized string
	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Whichever separator occurs rightmost is the decimal mark;
		// the other is a grouping separator to be dropped.
		if lastComma > lastDot {
			normalized = strings.ReplaceAll(s[:lastComma], ".", "") + "." + s[lastComma+1:]
		} else {
			normalized = strings.ReplaceAll(s[:lastDot], ",", "") + "." + s[lastDot+1:]
		}
	case lastComma >= 0:
		// Only commas: EU decimal interpretation when exactly one
		// comma, including when it has >=3 trailing digits (spec's
		// tie-break); several commas are thousands separators.
		if strings.Count(s, ",") == 1 {
			normalized = s[:lastComma] + "." + s[lastComma+1:]
		} else {
			normalized = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		normalized = s
	default:
		normalized = s
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, newTypeMismatchErr("float", field)
	}
	return v, nil
}

func (t *ValueTranslator) parseLocaleFloat(field string, tag language.Tag) (float64, error) {
	lf, ok := t.localeFormat(tag)
	if !ok {
		return 0, newUnsupportedTypeErr("no locale format registered for " + tag.String())
	}
	s := strings.TrimSpace(field)
	s = strings.ReplaceAll(s, string(lf.GroupingSep), "")
	s = strings.ReplaceAll(s, string(lf.DecimalSep), ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newTypeMismatchErr("float", field)
	}
	return v, nil
}

func (t *ValueTranslator) parseCurrencyFloat(field, code string, tag language.Tag) (float64, error) {
	s := strings.TrimSpace(field)
	if code != "" {
		if _, err := currency.ParseISO(code); err == nil {
			s = strings.TrimSpace(strings.TrimPrefix(s, code))
		}
	}
	s = stripCurrencyAffixes(s)
	return t.parseLocaleFloat(s, tag)
}

func (t *ValueTranslator) localeFormat(tag language.Tag) (LocaleFormat, bool) {
	if t.Strategies.Locale == nil {
		return LocaleFormat{}, false
	}
	return t.Strategies.Locale.Format(tag)
}

// flexibleDatePatterns is the ordered pattern set tried by the
// flexible date strategy (spec.md §6), expressed as Go reference-time
// layouts.
var flexibleDatePatterns = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC1123Z,
}

// DecodeDate parses field as a time.Time under the configured
// DateDecoding strategy.
func (t *ValueTranslator) DecodeDate(field string) (time.Time, error) {
	trimmed := strings.TrimSpace(field)
	switch t.Strategies.DateDecoding.Kind {
	case DateDecodeDeferred:
		return time.Parse(time.RFC3339, trimmed)
	case DateDecodeSecondsSince1970:
		return parseEpoch(trimmed, time.Second)
	case DateDecodeMillisecondsSince1970:
		return parseEpoch(trimmed, time.Millisecond)
	case DateDecodeISO8601:
		if v, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
			return v, nil
		}
		return time.Parse(time.RFC3339, trimmed)
	case DateDecodeFormatted:
		return time.Parse(t.Strategies.DateDecoding.Pattern, trimmed)
	case DateDecodeCustom:
		if t.Strategies.DateDecoding.Custom == nil {
			return time.Time{}, newUnsupportedTypeErr("custom date strategy has no function")
		}
		return t.Strategies.DateDecoding.Custom(trimmed)
	case DateDecodeFlexible:
		return parseFlexibleDate(trimmed, nil)
	case DateDecodeFlexibleWithHint:
		return parseFlexibleDate(trimmed, []string{t.Strategies.DateDecoding.Pattern})
	case DateDecodeLocaleAware:
		return t.parseLocaleAwareDate(trimmed)
	default:
		return time.Parse(time.RFC3339, trimmed)
	}
}

func parseEpoch(field string, unit time.Duration) (time.Time, error) {
	n, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return time.Time{}, newTypeMismatchErr("epoch timestamp", field)
	}
	switch unit {
	case time.Second:
		return time.Unix(n, 0).UTC(), nil
	case time.Millisecond:
		return time.UnixMilli(n).UTC(), nil
	default:
		return time.Time{}, newUnsupportedTypeErr("unsupported epoch unit")
	}
}

// parseFlexibleDate tries hint patterns first, then the canonical
// flexible set, then a bare numeric epoch in seconds or milliseconds.
func parseFlexibleDate(field string, hints []string) (time.Time, error) {
	for _, pattern := range hints {
		if pattern == "" {
			continue
		}
		if v, err := time.Parse(pattern, field); err == nil {
			return v, nil
		}
	}
	for _, pattern := range flexibleDatePatterns {
		if v, err := time.Parse(pattern, field); err == nil {
			return v, nil
		}
	}
	if n, err := strconv.ParseInt(field, 10, 64); err == nil {
		if len(field) >= 13 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	return time.Time{}, newTypeMismatchErr("date", field)
}

func (t *ValueTranslator) parseLocaleAwareDate(field string) (time.Time, error) {
	lf, ok := t.localeFormat(t.Strategies.DateDecoding.Locale)
	if !ok {
		return parseFlexibleDate(field, nil)
	}
	var patterns []string
	switch t.Strategies.DateDecoding.Style {
	case DateStyleNumeric:
		patterns = []string{"01/02/2006", "02/01/2006", "2006-01-02"}
	case DateStyleAbbreviated, DateStyleLong:
		// Month names differ per locale; fall back to the Go-layout
		// month token since Go's time package only recognizes English
		// month names natively. Non-English month names are matched
		// by position against the locale table instead.
		if v, err := matchNamedMonth(field, lf); err == nil {
			return v, nil
		}
		patterns = []string{"Jan 2, 2006", "2 Jan 2006"}
	}
	return parseFlexibleDate(field, patterns)
}

func matchNamedMonth(field string, lf LocaleFormat) (time.Time, error) {
	for i, name := range lf.MonthsLong {
		if idx := strings.Index(field, name); idx >= 0 {
			return extractDayYearAroundMonth(field, idx, len(name), i+1)
		}
	}
	for i, name := range lf.MonthsShort {
		if idx := strings.Index(field, name); idx >= 0 {
			return extractDayYearAroundMonth(field, idx, len(name), i+1)
		}
	}
	return time.Time{}, newTypeMismatchErr("date", field)
}

func extractDayYearAroundMonth(field string, monthIdx, monthLen, month int) (time.Time, error) {
	before := strings.TrimFunc(field[:monthIdx], isDateSeparatorRune)
	after := strings.TrimFunc(field[monthIdx+monthLen:], isDateSeparatorRune)
	day, derr := strconv.Atoi(strings.TrimSpace(before))
	year, yerr := strconv.Atoi(strings.TrimSpace(after))
	if derr != nil || yerr != nil {
		return time.Time{}, newTypeMismatchErr("date", field)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func isDateSeparatorRune(r rune) bool {
	return r == ' ' || r == ',' || r == '.' || r == '-' || r == '/'
}

// DecodeNestedJSON decodes field as a JSON-encoded value under the
// NestedJSON strategy into v (a pointer).
func (t *ValueTranslator) DecodeNestedJSON(field string, v any) error {
	if err := json.Unmarshal([]byte(field), v); err != nil {
		return newTypeMismatchErr("json", field)
	}
	return nil
}
