package csvcodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTranslator(strategies StrategySet) *ValueTranslator {
	return NewValueTranslator(strategies)
}

func TestValueTranslator_IsNil_EmptyString(t *testing.T) {
	tr := newTranslator(DefaultStrategies())
	assert.True(t, tr.IsNil("", false))
	assert.False(t, tr.IsNil("", true), "a quoted empty string is not nil")
}

func TestValueTranslator_IsNil_NullLiteral(t *testing.T) {
	s := DefaultStrategies()
	s.NilDecoding = NilDecodeNullLiteralStrategy()
	tr := newTranslator(s)
	assert.True(t, tr.IsNil("null", false))
	assert.True(t, tr.IsNil("NULL", false))
	assert.False(t, tr.IsNil("nullish", false))
}

func TestValueTranslator_DecodeBool_Standard(t *testing.T) {
	tr := newTranslator(DefaultStrategies())
	for _, in := range []string{"true", "TRUE", "yes", "1"} {
		v, err := tr.DecodeBool(in)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, in := range []string{"false", "no", "0"} {
		v, err := tr.DecodeBool(in)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := tr.DecodeBool("maybe")
	assert.Error(t, err)
}

func TestValueTranslator_DecodeBool_Flexible(t *testing.T) {
	s := DefaultStrategies()
	s.BoolDecoding = BoolDecodeFlexibleStrategy()
	tr := newTranslator(s)
	v, err := tr.DecodeBool("oui")
	require.NoError(t, err)
	assert.True(t, v)
	v, err = tr.DecodeBool("nein")
	require.NoError(t, err)
	assert.False(t, v)
}

func TestValueTranslator_DecodeInt64(t *testing.T) {
	tr := newTranslator(DefaultStrategies())
	v, err := tr.DecodeInt64("-42")
	require.NoError(t, err)
	assert.Equal(t, int64(-42), v)

	_, err = tr.DecodeInt64("not-a-number")
	assert.Error(t, err)
}

func TestValueTranslator_DecodeFloat64_Standard(t *testing.T) {
	tr := newTranslator(DefaultStrategies())
	v, err := tr.DecodeFloat64("3.14")
	require.NoError(t, err)
	assert.InDelta(t, 3.14, v, 1e-9)

	_, err = tr.DecodeFloat64("1,234.5")
	assert.Error(t, err, "standard strategy rejects grouping separators")
}

func TestValueTranslator_DecodeFloat64_FlexibleUSFormat(t *testing.T) {
	s := DefaultStrategies()
	s.NumberDecoding = NumberDecodeFlexibleStrategy()
	tr := newTranslator(s)
	v, err := tr.DecodeFloat64("1,234.56")
	require.NoError(t, err)
	assert.InDelta(t, 1234.56, v, 1e-9)
}

func TestValueTranslator_DecodeFloat64_FlexibleEUFormat(t *testing.T) {
	s := DefaultStrategies()
	s.NumberDecoding = NumberDecodeFlexibleStrategy()
	tr := newTranslator(s)
	v, err := tr.DecodeFloat64("1.234,56")
	require.NoError(t, err)
	assert.InDelta(t, 1234.56, v, 1e-9)
}

func TestValueTranslator_DecodeFloat64_FlexibleSingleCommaTieBreak(t *testing.T) {
	s := DefaultStrategies()
	s.NumberDecoding = NumberDecodeFlexibleStrategy()
	tr := newTranslator(s)

	// Single comma with >=3 trailing digits and no '.': decimal separator (EU).
	v, err := tr.DecodeFloat64("12,345")
	require.NoError(t, err)
	assert.InDelta(t, 12.345, v, 1e-9)

	// Single comma with <3 trailing digits: decimal separator (EU).
	v, err = tr.DecodeFloat64("12,5")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, v, 1e-9)
}

func TestValueTranslator_DecodeFloat64_Currency(t *testing.T) {
	s := DefaultStrategies()
	s.NumberDecoding = NumberDecodeCurrencyStrategy("USD", language.AmericanEnglish)
	tr := newTranslator(s)
	v, err := tr.DecodeFloat64("$1,234.56")
	require.NoError(t, err)
	assert.InDelta(t, 1234.56, v, 1e-9)
}

func TestValueTranslator_DecodeDate_ISO8601(t *testing.T) {
	tr := newTranslator(DefaultStrategies())
	v, err := tr.DecodeDate("2024-03-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2024, v.Year())
	assert.Equal(t, time.Month(3), v.Month())
}

func TestValueTranslator_DecodeDate_SecondsSinceEpoch(t *testing.T) {
	s := DefaultStrategies()
	s.DateDecoding = DateDecodeSecondsStrategy()
	tr := newTranslator(s)
	v, err := tr.DecodeDate("0")
	require.NoError(t, err)
	assert.True(t, v.Equal(time.Unix(0, 0).UTC()))
}

func TestValueTranslator_DecodeDate_Flexible(t *testing.T) {
	s := DefaultStrategies()
	s.DateDecoding = DateDecodeFlexibleStrategy()
	tr := newTranslator(s)
	for _, in := range []string{"2024-03-15", "03/15/2024", "15-03-2024", "Mar 15, 2024"} {
		v, err := tr.DecodeDate(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, 2024, v.Year(), "input %q", in)
	}
}

func TestValueTranslator_DecodeDate_LocaleAwareGerman(t *testing.T) {
	s := DefaultStrategies()
	s.DateDecoding = DateDecodeLocaleAwareStrategy(language.German, DateStyleLong)
	tr := newTranslator(s)
	v, err := tr.DecodeDate("15. März 2024")
	require.NoError(t, err)
	assert.Equal(t, time.Month(3), v.Month())
	assert.Equal(t, 15, v.Day())
	assert.Equal(t, 2024, v.Year())
}

func TestValueTranslator_DecodeNestedJSON(t *testing.T) {
	tr := newTranslator(DefaultStrategies())
	var out struct {
		Name string `json:"name"`
	}
	err := tr.DecodeNestedJSON(`{"name":"x"}`, &out)
	require.NoError(t, err)
	assert.Equal(t, "x", out.Name)
}
