package csvcodec

// FieldSlice is a non-owning reference into a RowView's source buffer.
// Start and Length exclude surrounding quotes; WasQuoted records whether
// the field was taken from inside a quoted region, which disables
// whitespace trimming for that field regardless of Dialect.TrimWhitespace.
type FieldSlice struct {
	Start     int
	Length    int
	WasQuoted bool
	// Escaped is true when the raw bytes contain a doubled quote ("")
	// and must be collapsed on materialization.
	Escaped bool
}

// RowView is a non-owning description of one parsed CSV record. Its
// field slices reference the buffer passed to the Parser that produced
// it; a RowView must not outlive that buffer.
type RowView struct {
	buf    []byte
	Fields []FieldSlice

	// UnterminatedQuote is set when the row ended (at EOF) while still
	// inside a quoted field. Decoding must fail for such a row.
	UnterminatedQuote bool
	// QuoteInUnquotedField is set when a '"' byte was encountered
	// inside an unquoted field. Strict mode fails the row; Lenient
	// mode ignores the flag.
	QuoteInUnquotedField bool
	// Line is the 1-based input line number the row started on.
	Line int
}

// FieldCount reports the number of fields in the row.
func (r RowView) FieldCount() int { return len(r.Fields) }

// Raw returns the raw bytes of field i as they appear in the source
// buffer: surrounding quotes are excluded (see FieldSlice), while
// escaped quote-pairs are kept verbatim (i.e. not unescaped).
func (r RowView) Raw(i int) []byte {
	f := r.Fields[i]
	return r.buf[f.Start : f.Start+f.Length]
}

// String materializes field i as a string, collapsing any escaped
// double quotes. Whitespace is trimmed only when trim is true and the
// field was not quoted.
func (r RowView) String(i int, trim bool) string {
	f := r.Fields[i]
	raw := r.buf[f.Start : f.Start+f.Length]
	if trim && !f.WasQuoted {
		raw = trimASCIISpace(raw)
	}
	if !f.Escaped {
		return string(raw)
	}
	return unescapeQuotes(raw)
}

func trimASCIISpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isASCIISpaceOrTab(b[start]) {
		start++
	}
	for end > start && isASCIISpaceOrTab(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isASCIISpaceOrTab(b byte) bool { return b == ' ' || b == '\t' }

func unescapeQuotes(b []byte) string {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '"' && i+1 < len(b) && b[i+1] == '"' {
			out = append(out, '"')
			i++
			continue
		}
		out = append(out, b[i])
	}
	return string(out)
}
