package csvcodec

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// EncodeNil renders the nil sentinel under the configured NilEncoding
// strategy.
func (t *ValueTranslator) EncodeNil() string {
	switch t.Strategies.NilEncoding.Kind {
	case NilEncodeEmptyString:
		return ""
	case NilEncodeNullLiteral:
		return "null"
	case NilEncodeCustom:
		return t.Strategies.NilEncoding.Custom
	default:
		return ""
	}
}

// EncodeBool renders v under the configured BoolEncoding strategy.
func (t *ValueTranslator) EncodeBool(v bool) string {
	switch t.Strategies.BoolEncoding.Kind {
	case BoolEncodeNumeric:
		if v {
			return "1"
		}
		return "0"
	case BoolEncodeTrueFalse:
		if v {
			return "true"
		}
		return "false"
	case BoolEncodeYesNo:
		if v {
			return "yes"
		}
		return "no"
	case BoolEncodeCustom:
		if v {
			return t.Strategies.BoolEncoding.True
		}
		return t.Strategies.BoolEncoding.False
	default:
		if v {
			return "1"
		}
		return "0"
	}
}

// EncodeInt64 renders a signed integer as a decimal string.
func (t *ValueTranslator) EncodeInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// EncodeUint64 renders an unsigned integer as a decimal string.
func (t *ValueTranslator) EncodeUint64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// EncodeFloat64 renders v under the configured NumberEncoding strategy.
func (t *ValueTranslator) EncodeFloat64(v float64) string {
	switch t.Strategies.NumberEncoding.Kind {
	case NumberEncodeStandard:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case NumberEncodeLocale:
		return t.encodeLocaleFloat(v, t.Strategies.NumberEncoding.Locale)
	case NumberEncodeCustom:
		if t.Strategies.NumberEncoding.Custom != nil {
			return t.Strategies.NumberEncoding.Custom(v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func (t *ValueTranslator) encodeLocaleFloat(v float64, tag language.Tag) string {
	lf, ok := t.localeFormat(tag)
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !ok {
		return s
	}
	if lf.DecimalSep != '.' {
		s = strings.ReplaceAll(s, ".", string(lf.DecimalSep))
	}
	return s
}

// EncodeDate renders v under the configured DateEncoding strategy.
func (t *ValueTranslator) EncodeDate(v time.Time) string {
	switch t.Strategies.DateEncoding.Kind {
	case DateEncodeISO8601:
		return v.UTC().Format(time.RFC3339)
	case DateEncodeSecondsSince1970:
		return strconv.FormatInt(v.Unix(), 10)
	case DateEncodeMillisecondsSince1970:
		return strconv.FormatInt(v.UnixMilli(), 10)
	case DateEncodeFormatted:
		return v.Format(t.Strategies.DateEncoding.Pattern)
	case DateEncodeLocaleAware:
		return t.encodeLocaleAwareDate(v)
	case DateEncodeCustom:
		if t.Strategies.DateEncoding.Custom != nil {
			return t.Strategies.DateEncoding.Custom(v)
		}
		return v.UTC().Format(time.RFC3339)
	default:
		return v.UTC().Format(time.RFC3339)
	}
}

func (t *ValueTranslator) encodeLocaleAwareDate(v time.Time) string {
	lf, ok := t.localeFormat(t.Strategies.DateEncoding.Locale)
	if !ok {
		return v.Format("Jan 2, 2006")
	}
	month := int(v.Month()) - 1
	switch t.Strategies.DateEncoding.Style {
	case DateStyleNumeric:
		return v.Format("01/02/2006")
	case DateStyleAbbreviated:
		return lf.MonthsShort[month] + " " + strconv.Itoa(v.Day()) + ", " + strconv.Itoa(v.Year())
	case DateStyleLong:
		return lf.MonthsLong[month] + " " + strconv.Itoa(v.Day()) + ", " + strconv.Itoa(v.Year())
	default:
		return v.Format(time.RFC3339)
	}
}

// EncodeNestedJSON renders v as a JSON string under the NestedJSON
// strategy.
func (t *ValueTranslator) EncodeNestedJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", newInvalidValueErr(err.Error())
	}
	return string(b), nil
}
