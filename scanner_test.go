package csvcodec

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseToStrings(t *testing.T, p *Parser, input string) [][]string {
	t.Helper()
	rows := p.Parse([]byte(input))
	out := make([][]string, len(rows))
	for i, r := range rows {
		fields := make([]string, r.FieldCount())
		for j := range fields {
			fields[j] = r.String(j, false)
		}
		out[i] = fields
	}
	return out
}

func TestParser_BasicFields(t *testing.T) {
	p := NewParser(',')
	got := parseToStrings(t, p, "a,b,c\n")
	assert.Equal(t, [][]string{{"a", "b", "c"}}, got)
}

func TestParser_MultipleRows(t *testing.T) {
	p := NewParser(',')
	got := parseToStrings(t, p, "a,b\nc,d\n")
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, got)
}

func TestParser_TrailingNewlineOptional(t *testing.T) {
	p := NewParser(',')
	withNL := parseToStrings(t, p, "a,b\n")
	withoutNL := parseToStrings(t, p, "a,b")
	assert.Equal(t, withNL, withoutNL)
}

func TestParser_EmptyInput(t *testing.T) {
	p := NewParser(',')
	rows := p.Parse([]byte(""))
	assert.Empty(t, rows)
}

func TestParser_CRLFAndCR(t *testing.T) {
	p := NewParser(',')
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, parseToStrings(t, p, "a,b\r\nc,d\r\n"))
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, parseToStrings(t, p, "a,b\rc,d\r"))
}

func TestParser_QuotedFieldWithDelimiterAndNewline(t *testing.T) {
	p := NewParser(',')
	got := parseToStrings(t, p, "\"a,b\",\"c\nd\"\n")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a,b", "c\nd"}, got[0])
}

func TestParser_DoubledQuoteEscape(t *testing.T) {
	p := NewParser(',')
	got := parseToStrings(t, p, `"say ""hi""",b`+"\n")
	require.Len(t, got, 1)
	assert.Equal(t, `say "hi"`, got[0][0])
}

func TestParser_DanglingEmptyField(t *testing.T) {
	p := NewParser(',')
	got := parseToStrings(t, p, "a,\n")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a", ""}, got[0])
}

func TestParser_UnterminatedQuoteFlag(t *testing.T) {
	p := NewParser(',')
	rows := p.Parse([]byte(`"abc`))
	require.Len(t, rows, 1)
	assert.True(t, rows[0].UnterminatedQuote)
}

func TestParser_QuoteInUnquotedFieldFlag(t *testing.T) {
	p := NewParser(',')
	rows := p.Parse([]byte(`ab"cd,ef` + "\n"))
	require.Len(t, rows, 1)
	assert.True(t, rows[0].QuoteInUnquotedField)
}

func TestParser_BOMStripped(t *testing.T) {
	p := NewParser(',')
	input := string([]byte{0xEF, 0xBB, 0xBF}) + "a,b\n"
	got := parseToStrings(t, p, input)
	assert.Equal(t, [][]string{{"a", "b"}}, got)
}

func TestParser_TrimWhitespaceOnlyAppliesUnquoted(t *testing.T) {
	p := NewParser(',')
	rows := p.Parse([]byte(` a , "  b  " ` + "\n"))
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].String(0, true))
	assert.Equal(t, "  b  ", rows[0].String(1, true))
}

// TestParser_DifferentialAgainstEncodingCSV compares the parser against
// the standard library's encoding/csv on well-formed RFC-4180 input,
// where both should agree field-for-field.
func TestParser_DifferentialAgainstEncodingCSV(t *testing.T) {
	inputs := []string{
		"a,b,c\n1,2,3\n",
		"\"x,y\",z\n\"a\"\"b\",c\n",
		"name,age\nAlice,30\nBob,25\n",
	}
	for _, in := range inputs {
		stdReader := csv.NewReader(strings.NewReader(in))
		want, err := stdReader.ReadAll()
		require.NoError(t, err)

		p := NewParser(',')
		got := parseToStrings(t, p, in)
		assert.Equal(t, want, got, "input: %q", in)
	}
}
