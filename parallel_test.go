package csvcodec

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInQuotedFieldAt(t *testing.T) {
	assert.False(t, inQuotedFieldAt([]byte(`a,b,c`), ',', 5))
	assert.True(t, inQuotedFieldAt([]byte(`a,"b,c`), ',', 6))
	assert.False(t, inQuotedFieldAt([]byte(`a,"b,c"`), ',', 7))
}

func TestInQuotedFieldAt_IgnoresStrayQuoteInUnquotedField(t *testing.T) {
	// A literal `"` inside an unquoted field (tolerated in Lenient mode,
	// flagged as QuoteInUnquotedField by the scanner) must not be mistaken
	// for the start of a quoted region: everything after it on this line
	// is still unquoted, and a later multi-line quoted field must still
	// be tracked correctly.
	buf := []byte("a,b\"c\n" + `"d,` + "\n" + `e",f` + "\ng,h\n")
	// buf: `a,b"c` / `"d,\ne",f` (one quoted field spanning a newline) / `g,h`
	nlAfterFirstRow := 6 // offset right after "a,b\"c\n"
	assert.False(t, inQuotedFieldAt(buf, ',', nlAfterFirstRow), "stray quote in row 1 must not desync state")

	insideQuotedNewline := nlAfterFirstRow + len(`"d,`) + 1
	assert.True(t, inQuotedFieldAt(buf, ',', insideQuotedNewline), "newline inside the quoted field must read as in-quotes")
}

func TestPlanSplits_SingleChunkWhenSmall(t *testing.T) {
	buf := []byte("a,b\nc,d\n")
	splits := planSplits(buf, ',', 4096)
	assert.Equal(t, []int{len(buf)}, splits)
}

func TestPlanSplits_NeverSplitsInsideQuotedNewline(t *testing.T) {
	// A quoted field spanning a naive chunk boundary must not be split
	// mid-field; planSplits must advance to the next real row boundary.
	row := `"` + strings.Repeat("x", 50) + "\n" + strings.Repeat("y", 50) + `",end` + "\n"
	buf := []byte(strings.Repeat("a,b\n", 5) + row + strings.Repeat("c,d\n", 5))
	splits := planSplits(buf, ',', 20)

	for _, off := range splits {
		assert.False(t, inQuotedFieldAt(buf, ',', off), "split at %d lands inside a quoted field", off)
	}
}

func TestPlanSplits_StrayQuoteInUnquotedFieldDoesNotCorruptLaterSplit(t *testing.T) {
	// Regression: a raw quote-byte-parity count would be desynced by the
	// stray `"` in row 1, making it misjudge the real quoted field's
	// embedded newline as a safe split point.
	var b strings.Builder
	b.WriteString(`weird"field,plain` + "\n")
	for i := 0; i < 5; i++ {
		b.WriteString("a,b\n")
	}
	quotedRow := `"` + strings.Repeat("z", 40) + "\n" + strings.Repeat("w", 40) + `",tail` + "\n"
	b.WriteString(quotedRow)
	for i := 0; i < 5; i++ {
		b.WriteString("c,d\n")
	}
	buf := []byte(b.String())

	splits := planSplits(buf, ',', 30)
	for _, off := range splits {
		assert.False(t, inQuotedFieldAt(buf, ',', off), "split at %d lands inside a quoted field", off)
	}
}

func TestParallelDecoder_MatchesSequentialOnQuotedData(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString(`"value, with comma",plain` + "\n")
	}
	buf := []byte(b.String())

	parser := NewParser(',')
	seq := parser.Parse(buf)

	pd := NewParallelDecoder(parser)
	pd.ChunkSize = 512
	pd.Workers = 4

	batches, err := pd.Decode(context.Background(), buf)
	require.NoError(t, err)
	got := Flatten(batches)

	require.Equal(t, len(seq), len(got))
	for i := range seq {
		assert.Equal(t, seq[i].String(0, false), got[i].String(0, false))
		assert.Equal(t, seq[i].String(1, false), got[i].String(1, false))
	}
}

func TestParallelDecoder_EmptyInput(t *testing.T) {
	pd := NewParallelDecoder(NewParser(','))
	batches, err := pd.Decode(context.Background(), []byte(""))
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestParallelDecoder_ContextCancellation(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10000; i++ {
		b.WriteString("a,b,c\n")
	}
	buf := []byte(b.String())

	pd := NewParallelDecoder(NewParser(','))
	pd.ChunkSize = 64

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pd.Decode(ctx, buf)
	assert.Error(t, err)
}
